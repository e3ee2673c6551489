// Package reconcile maps the processor's asynchronous event stream onto local
// payment records. Delivery is at-least-once and possibly out of order; every
// transition is idempotent and zero-row updates are acknowledged rather than
// retried.
package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/metinatakli/payment-gateway/internal/audit"
	"github.com/metinatakli/payment-gateway/internal/domain"
)

type Reconciler struct {
	payments domain.PaymentRepository
	metrics  domain.MetricsRecorder
	auditor  domain.AuditReporter
	dedup    Deduper
	logger   *slog.Logger
}

func NewReconciler(
	payments domain.PaymentRepository,
	metrics domain.MetricsRecorder,
	auditor domain.AuditReporter,
	dedup Deduper,
	logger *slog.Logger) *Reconciler {

	return &Reconciler{
		payments: payments,
		metrics:  metrics,
		auditor:  auditor,
		dedup:    dedup,
		logger:   logger,
	}
}

// Process applies a normalized processor event to the payment record store.
// An error is returned only when the store itself fails, since that is the one
// condition the processor's redelivery can actually resolve. Unknown event
// kinds and updates that match no record are logged and acknowledged.
//
// The event id is marked as processed only after the store write succeeds:
// a store failure answers 5xx and must leave the redelivery free to retry.
func (r *Reconciler) Process(ctx context.Context, event domain.Event) error {
	if r.dedup != nil && event.ID != "" && r.dedup.Seen(ctx, event.ID) {
		r.logger.Info("skipping already processed webhook event", "event_id", event.ID, "type", event.Kind)
		return nil
	}

	if event.Kind == domain.EventCheckoutSessionCompleted && event.PaymentIntentID == "" {
		r.logger.Warn("checkout completion event without payment intent id",
			"session_id", event.TransactionID)
		r.markProcessed(ctx, event)
		return nil
	}

	next, ok := domain.Apply(domain.Payment{TransactionID: event.TransactionID}, event)
	if !ok {
		r.logger.Info("unhandled webhook event type", "type", event.Kind)
		r.markProcessed(ctx, event)
		return nil
	}

	var (
		rows int64
		err  error
	)

	if next.TransactionID != event.TransactionID {
		rows, err = r.payments.Rebind(ctx, event.TransactionID, next.TransactionID)
	} else {
		rows, err = r.payments.UpdateStatus(ctx, event.TransactionID, next.Status)
	}
	if err != nil {
		return fmt.Errorf("applying %s for %s: %w", event.Kind, event.TransactionID, err)
	}

	if rows == 0 {
		// Benign: the webhook may have raced the initial record insert, or
		// this is a redelivery for an already rebound session id.
		r.logger.Warn("webhook event matched no payment record",
			"type", event.Kind, "transaction_id", event.TransactionID)
	}

	switch event.Kind {
	case domain.EventPaymentIntentSucceeded:
		r.metrics.IncSuccess(event.Currency)
	case domain.EventPaymentIntentFailed:
		r.metrics.IncFailure(event.Currency, event.ErrorCodeOrDefault())
		r.auditor.Report(audit.IndexFailedPayments, audit.FailedPaymentDocument{
			PaymentIntentID: event.TransactionID,
			ErrorCode:       event.ErrorCodeOrDefault(),
			ErrorMessage:    event.ErrorMessage,
			Amount:          event.Amount,
			Currency:        event.Currency,
			Timestamp:       time.Now().UTC(),
		})
	}

	r.markProcessed(ctx, event)

	return nil
}

func (r *Reconciler) markProcessed(ctx context.Context, event domain.Event) {
	if r.dedup != nil && event.ID != "" {
		r.dedup.Mark(ctx, event.ID)
	}
}
