package payment

import (
	"encoding/json"

	"github.com/metinatakli/payment-gateway/internal/domain"
	"github.com/stripe/stripe-go/v82"
)

// NormalizeEvent maps a verified Stripe event onto the domain event shape.
// It returns false for event types the reconciler does not handle, and for
// payloads whose object cannot be decoded.
func NormalizeEvent(event stripe.Event) (domain.Event, bool) {
	switch event.Type {
	case "checkout.session.completed":
		var cs stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
			return domain.Event{}, false
		}

		normalized := domain.Event{
			ID:            event.ID,
			Kind:          domain.EventCheckoutSessionCompleted,
			TransactionID: cs.ID,
			Amount:        cs.AmountTotal,
			Currency:      string(cs.Currency),
		}
		if cs.PaymentIntent != nil {
			normalized.PaymentIntentID = cs.PaymentIntent.ID
		}

		return normalized, true

	case "payment_intent.succeeded", "payment_intent.payment_failed", "payment_intent.canceled":
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return domain.Event{}, false
		}

		normalized := domain.Event{
			ID:            event.ID,
			Kind:          domain.EventKind(event.Type),
			TransactionID: pi.ID,
			Amount:        pi.Amount,
			Currency:      string(pi.Currency),
		}
		if pi.LastPaymentError != nil {
			normalized.ErrorCode = string(pi.LastPaymentError.Code)
			normalized.ErrorMessage = pi.LastPaymentError.Msg
		}

		return normalized, true
	}

	return domain.Event{}, false
}
