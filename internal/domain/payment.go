package domain

import (
	"context"
	"time"
)

type PaymentStatus string

const (
	PaymentStatusRequiresPaymentMethod PaymentStatus = "requires_payment_method"
	PaymentStatusPending               PaymentStatus = "pending"
	PaymentStatusSucceeded             PaymentStatus = "succeeded"
	PaymentStatusFailed                PaymentStatus = "failed"
	PaymentStatusCanceled              PaymentStatus = "canceled"
	PaymentStatusRefunded              PaymentStatus = "refunded"
)

// Payment is the local record of a payment attempt. TransactionID is assigned
// by the payment processor; for checkout flows it temporarily holds the
// checkout session id until the session completes and the record is rebound
// to the durable payment intent id. Amount is in minor currency units.
type Payment struct {
	ID            int
	TransactionID string
	Amount        int64
	Currency      string
	Status        PaymentStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type PaymentRepository interface {
	// Create inserts a payment record. A duplicate transaction id is an
	// idempotent success, not an error.
	Create(ctx context.Context, payment *Payment) error

	// UpdateStatus sets the status of the record keyed by transactionID and
	// reports the number of rows affected. Zero rows is not an error; webhook
	// delivery may race record creation.
	UpdateStatus(ctx context.Context, transactionID string, status PaymentStatus) (int64, error)

	// Rebind re-keys the record from oldID to newID, preserving every other
	// field, and reports the number of rows affected.
	Rebind(ctx context.Context, oldID, newID string) (int64, error)

	GetByTransactionID(ctx context.Context, transactionID string) (*Payment, error)
}
