package mocks

import (
	"context"

	"github.com/metinatakli/payment-gateway/internal/domain"
	"github.com/stretchr/testify/mock"
	"github.com/stripe/stripe-go/v82"
)

type MockPaymentProvider struct {
	mock.Mock
	domain.PaymentProvider
}

func (m *MockPaymentProvider) CreatePaymentIntent(
	ctx context.Context,
	amount int64,
	currency string) (*stripe.PaymentIntent, error) {

	args := m.Called(ctx, amount, currency)
	return args.Get(0).(*stripe.PaymentIntent), args.Error(1)
}

func (m *MockPaymentProvider) CreateCheckoutSession(
	ctx context.Context,
	item domain.CatalogItem) (*stripe.CheckoutSession, error) {

	args := m.Called(ctx, item)
	return args.Get(0).(*stripe.CheckoutSession), args.Error(1)
}

func (m *MockPaymentProvider) CreateRefund(
	ctx context.Context,
	transactionID string,
	amount int64) (*stripe.Refund, error) {

	args := m.Called(ctx, transactionID, amount)
	return args.Get(0).(*stripe.Refund), args.Error(1)
}

func (m *MockPaymentProvider) ConstructWebhookEvent(payload []byte, signatureHeader string) (stripe.Event, error) {
	args := m.Called(payload, signatureHeader)
	return args.Get(0).(stripe.Event), args.Error(1)
}
