package domain

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
)

// PaymentProvider is the external payment processor of record. It owns the
// authoritative state of every transaction; the local store only mirrors it.
type PaymentProvider interface {
	CreatePaymentIntent(ctx context.Context, amount int64, currency string) (*stripe.PaymentIntent, error)
	CreateCheckoutSession(ctx context.Context, item CatalogItem) (*stripe.CheckoutSession, error)
	CreateRefund(ctx context.Context, transactionID string, amount int64) (*stripe.Refund, error)

	// ConstructWebhookEvent authenticates and parses a raw webhook payload.
	// Implementations wrap ErrInvalidSignature when verification fails.
	ConstructWebhookEvent(payload []byte, signatureHeader string) (stripe.Event, error)
}

// CatalogItem is a fixed-price product sold through the checkout flow.
// Price is in major currency units.
type CatalogItem struct {
	Name     string
	Price    decimal.Decimal
	Currency string
}

// UnitAmount converts the price to minor currency units.
func (i CatalogItem) UnitAmount() int64 {
	return i.Price.Mul(decimal.NewFromInt(100)).IntPart()
}

// DefaultCatalogItem is the single product offered by the checkout endpoint.
var DefaultCatalogItem = CatalogItem{
	Name:     "T-shirt",
	Price:    decimal.NewFromInt(20),
	Currency: "usd",
}
