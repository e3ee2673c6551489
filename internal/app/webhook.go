package app

import (
	"errors"
	"io"
	"net/http"

	"github.com/metinatakli/payment-gateway/api"
	"github.com/metinatakli/payment-gateway/internal/domain"
	"github.com/metinatakli/payment-gateway/internal/payment"
)

const webhookMaxBodyBytes = 65536

// StripeWebhookHandler receives processor notifications. Anything that made it
// past signature verification gets a 200 unless the local store failed, since
// only a store failure can be resolved by the processor retrying delivery.
func (app *Application) StripeWebhookHandler(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, webhookMaxBodyBytes))
	if err != nil {
		app.badRequestResponse(w, r, errors.New("failed to read webhook payload"))
		return
	}

	stripeEvent, err := app.paymentProvider.ConstructWebhookEvent(payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSignature) {
			app.errorResponse(w, r, http.StatusBadRequest, "invalid webhook signature")
			return
		}
		app.badRequestResponse(w, r, errors.New("invalid webhook payload"))
		return
	}

	logger := app.contextGetLogger(r)

	event, ok := payment.NormalizeEvent(stripeEvent)
	if !ok {
		logger.Info("ignoring unhandled webhook event", "event_id", stripeEvent.ID, "type", stripeEvent.Type)
		app.writeJSON(w, http.StatusOK, api.WebhookResponse{Received: true}, nil)
		return
	}

	err = app.reconciler.Process(r.Context(), event)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.writeJSON(w, http.StatusOK, api.WebhookResponse{Received: true}, nil)
}
