package domain

type EventKind string

const (
	EventCheckoutSessionCompleted EventKind = "checkout.session.completed"
	EventPaymentIntentSucceeded   EventKind = "payment_intent.succeeded"
	EventPaymentIntentFailed      EventKind = "payment_intent.payment_failed"
	EventPaymentIntentCanceled    EventKind = "payment_intent.canceled"
)

// Event is a normalized webhook notification from the payment processor.
// TransactionID is the id of the object the event refers to, which is the
// checkout session id for checkout events and the payment intent id otherwise.
type Event struct {
	ID              string
	Kind            EventKind
	TransactionID   string
	PaymentIntentID string
	Amount          int64
	Currency        string
	ErrorCode       string
	ErrorMessage    string
}

// ErrorCodeOrDefault returns the processor error code, or "unknown" when the
// processor did not attach one.
func (e Event) ErrorCodeOrDefault() string {
	if e.ErrorCode == "" {
		return "unknown"
	}
	return e.ErrorCode
}

type transition func(Payment, Event) Payment

// transitions maps each handled event kind to a pure function over the payment
// record. The table does not guard on the record's prior status: redelivered
// and out-of-order events overwrite the status field last-write-wins, which
// keeps every transition idempotent.
var transitions = map[EventKind]transition{
	EventCheckoutSessionCompleted: func(p Payment, e Event) Payment {
		p.TransactionID = e.PaymentIntentID
		return p
	},
	EventPaymentIntentSucceeded: func(p Payment, _ Event) Payment {
		p.Status = PaymentStatusSucceeded
		return p
	},
	EventPaymentIntentFailed: func(p Payment, _ Event) Payment {
		p.Status = PaymentStatusFailed
		return p
	},
	EventPaymentIntentCanceled: func(p Payment, _ Event) Payment {
		p.Status = PaymentStatusCanceled
		return p
	},
}

// Apply runs the transition for the event against the given record and returns
// the resulting record. The second return value reports whether the event kind
// is handled at all; unhandled kinds leave the record untouched.
func Apply(p Payment, e Event) (Payment, bool) {
	t, ok := transitions[e.Kind]
	if !ok {
		return p, false
	}
	return t(p, e), true
}
