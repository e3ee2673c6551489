package app

import (
	"net/http"
	"time"

	"github.com/metinatakli/payment-gateway/api"
	"github.com/metinatakli/payment-gateway/internal/audit"
	"github.com/metinatakli/payment-gateway/internal/domain"
)

// CreateTransactionHandler opens a payment intent at the processor for an
// arbitrary amount and mirrors it locally as a pending payment record.
func (app *Application) CreateTransactionHandler(w http.ResponseWriter, r *http.Request) {
	var input api.CreateTransactionRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	paymentIntent, err := app.paymentProvider.CreatePaymentIntent(r.Context(), input.Amount, input.Currency)
	if err != nil {
		app.processorErrorResponse(w, r, err)
		return
	}

	payment := domain.Payment{
		TransactionID: paymentIntent.ID,
		Amount:        input.Amount,
		Currency:      input.Currency,
		Status:        domain.PaymentStatus(paymentIntent.Status),
	}

	err = app.paymentRepo.Create(r.Context(), &payment)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.contextGetLogger(r).Info("created transaction",
		"transaction_id", paymentIntent.ID, "amount", input.Amount, "currency", input.Currency)

	resp := api.TransactionResponse{
		TransactionId: paymentIntent.ID,
		ClientSecret:  paymentIntent.ClientSecret,
	}

	app.writeJSON(w, http.StatusOK, resp, nil)
}

// CreateCheckoutSessionHandler starts a hosted checkout for the catalog item.
// The record is keyed by the session id until the completion webhook rebinds
// it to the payment intent id.
func (app *Application) CreateCheckoutSessionHandler(w http.ResponseWriter, r *http.Request) {
	item := domain.DefaultCatalogItem

	session, err := app.paymentProvider.CreateCheckoutSession(r.Context(), item)
	if err != nil {
		app.processorErrorResponse(w, r, err)
		return
	}

	payment := domain.Payment{
		TransactionID: session.ID,
		Amount:        item.UnitAmount(),
		Currency:      item.Currency,
		Status:        domain.PaymentStatusRequiresPaymentMethod,
	}

	err = app.paymentRepo.Create(r.Context(), &payment)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.contextGetLogger(r).Info("created checkout session", "session_id", session.ID)

	resp := api.CheckoutSessionResponse{
		Url: session.URL,
	}

	app.writeJSON(w, http.StatusOK, resp, nil)
}

// RefundPaymentHandler issues a refund at the processor. The refund itself is
// the authoritative outcome; the audit document and the local status update
// are best effort and never fail the request.
func (app *Application) RefundPaymentHandler(w http.ResponseWriter, r *http.Request) {
	var input api.RefundRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	refund, err := app.paymentProvider.CreateRefund(r.Context(), input.PaymentIntentId, input.Amount)
	if err != nil {
		app.processorErrorResponse(w, r, err)
		return
	}

	logger := app.contextGetLogger(r)
	logger.Info("issued refund", "refund_id", refund.ID, "payment_intent_id", input.PaymentIntentId)

	rows, err := app.paymentRepo.UpdateStatus(r.Context(), input.PaymentIntentId, domain.PaymentStatusRefunded)
	switch {
	case err != nil:
		logger.Error("failed to mark payment record as refunded", "payment_intent_id", input.PaymentIntentId, "error", err)
	case rows == 0:
		logger.Warn("no payment record found for refunded transaction", "payment_intent_id", input.PaymentIntentId)
	}

	app.auditor.Report(audit.IndexRefunds, audit.RefundDocument{
		PaymentIntentID: input.PaymentIntentId,
		RefundID:        refund.ID,
		Amount:          input.Amount,
		Status:          string(refund.Status),
		Timestamp:       time.Now().UTC(),
	})

	resp := api.RefundResponse{
		Success:  true,
		RefundId: refund.ID,
		Status:   string(refund.Status),
		Amount:   input.Amount,
	}

	app.writeJSON(w, http.StatusOK, resp, nil)
}
