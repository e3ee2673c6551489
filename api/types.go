// Package api defines the request and response shapes of the HTTP surface.
package api

import "time"

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	ValidationErrors []ValidationError `json:"validationErrors"`
	RequestId        string            `json:"requestId,omitempty"`
	Timestamp        time.Time         `json:"timestamp"`
}

type CreateTransactionRequest struct {
	Amount   int64  `json:"amount" validate:"required,gt=0"`
	Currency string `json:"currency" validate:"required,currency"`
}

type TransactionResponse struct {
	TransactionId string `json:"transactionId"`
	ClientSecret  string `json:"clientSecret"`
}

type CheckoutSessionResponse struct {
	Url string `json:"url"`
}

type RefundRequest struct {
	PaymentIntentId string `json:"paymentIntentId" validate:"required"`
	Amount          int64  `json:"amount" validate:"required,gt=0"`
}

type RefundResponse struct {
	Success  bool   `json:"success"`
	RefundId string `json:"refundId"`
	Status   string `json:"status"`
	Amount   int64  `json:"amount"`
}

type WebhookResponse struct {
	Received bool `json:"received"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}
