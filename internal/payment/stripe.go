package payment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/metinatakli/payment-gateway/internal/domain"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/paymentintent"
	"github.com/stripe/stripe-go/v82/refund"
	"github.com/stripe/stripe-go/v82/webhook"
)

type StripePaymentProvider struct {
	webhookSecret string
	successUrl    string
	cancelUrl     string
}

func NewStripePaymentProvider(webhookSecret, successUrl, cancelUrl string) *StripePaymentProvider {
	return &StripePaymentProvider{
		webhookSecret: webhookSecret,
		successUrl:    successUrl,
		cancelUrl:     cancelUrl,
	}
}

func (s *StripePaymentProvider) CreatePaymentIntent(
	ctx context.Context,
	amount int64,
	currency string) (*stripe.PaymentIntent, error) {

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.IdempotencyKey = stripe.String(uuid.NewString())

	return paymentintent.New(params)
}

func (s *StripePaymentProvider) CreateCheckoutSession(
	ctx context.Context,
	item domain.CatalogItem) (*stripe.CheckoutSession, error) {

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(item.Currency),
					UnitAmount: stripe.Int64(item.UnitAmount()),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(item.Name),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(s.successUrl),
		CancelURL:  stripe.String(s.cancelUrl),
	}
	params.Context = ctx

	return session.New(params)
}

func (s *StripePaymentProvider) CreateRefund(
	ctx context.Context,
	transactionID string,
	amount int64) (*stripe.Refund, error) {

	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(transactionID),
		Amount:        stripe.Int64(amount),
	}
	params.Context = ctx
	params.IdempotencyKey = stripe.String(uuid.NewString())

	return refund.New(params)
}

// ConstructWebhookEvent verifies the Stripe-Signature header against the
// configured signing secret and parses the event. With no secret configured
// the payload is parsed without verification; the application only permits
// that in explicit insecure mode.
func (s *StripePaymentProvider) ConstructWebhookEvent(payload []byte, signatureHeader string) (stripe.Event, error) {
	return constructEvent(payload, signatureHeader, s.webhookSecret)
}

func constructEvent(payload []byte, signatureHeader, secret string) (stripe.Event, error) {
	if secret == "" {
		var event stripe.Event
		if err := json.Unmarshal(payload, &event); err != nil {
			return stripe.Event{}, fmt.Errorf("parsing unverified webhook payload: %w", err)
		}
		return event, nil
	}

	event, err := webhook.ConstructEvent(payload, signatureHeader, secret)
	if err != nil {
		return stripe.Event{}, fmt.Errorf("%w: %v", domain.ErrInvalidSignature, err)
	}

	return event, nil
}
