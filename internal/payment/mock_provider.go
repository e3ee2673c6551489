package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/metinatakli/payment-gateway/internal/domain"
	"github.com/stripe/stripe-go/v82"
)

// MockPaymentProvider returns canned processor responses without any network
// calls. Webhook verification behaves exactly like the real provider, so
// signature handling is still exercised end to end.
type MockPaymentProvider struct {
	webhookSecret string
}

func NewMockPaymentProvider(webhookSecret string) *MockPaymentProvider {
	return &MockPaymentProvider{webhookSecret: webhookSecret}
}

func (m *MockPaymentProvider) CreatePaymentIntent(
	_ context.Context,
	amount int64,
	currency string) (*stripe.PaymentIntent, error) {

	id := fmt.Sprintf("pi_mock_%s", uuid.NewString()[:8])

	return &stripe.PaymentIntent{
		ID:           id,
		Amount:       amount,
		Currency:     stripe.Currency(currency),
		Status:       stripe.PaymentIntentStatusRequiresPaymentMethod,
		ClientSecret: id + "_secret",
	}, nil
}

func (m *MockPaymentProvider) CreateCheckoutSession(
	_ context.Context,
	item domain.CatalogItem) (*stripe.CheckoutSession, error) {

	id := fmt.Sprintf("cs_mock_%s", uuid.NewString()[:8])

	return &stripe.CheckoutSession{
		ID:          id,
		URL:         "https://checkout.example.com/" + id,
		AmountTotal: item.UnitAmount(),
		Currency:    stripe.Currency(item.Currency),
	}, nil
}

func (m *MockPaymentProvider) CreateRefund(
	_ context.Context,
	transactionID string,
	amount int64) (*stripe.Refund, error) {

	return &stripe.Refund{
		ID:     fmt.Sprintf("re_mock_%s", uuid.NewString()[:8]),
		Amount: amount,
		Status: stripe.RefundStatusSucceeded,
	}, nil
}

func (m *MockPaymentProvider) ConstructWebhookEvent(payload []byte, signatureHeader string) (stripe.Event, error) {
	return constructEvent(payload, signatureHeader, m.webhookSecret)
}
