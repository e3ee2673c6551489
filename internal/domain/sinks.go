package domain

import "context"

// AuditSink indexes JSON documents into an external audit store.
type AuditSink interface {
	Index(ctx context.Context, index string, doc any) error
}

// AuditReporter queues documents for best-effort delivery to the audit sink.
// Failures are logged and swallowed; the request path never waits on them.
type AuditReporter interface {
	Report(index string, doc any)
}

// MetricsRecorder counts terminal payment outcomes. Counters may double-count
// on webhook redelivery; the record store itself stays consistent.
type MetricsRecorder interface {
	IncSuccess(currency string)
	IncFailure(currency, errorCode string)
}
