package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/metinatakli/payment-gateway/internal/domain"
	"github.com/metinatakli/payment-gateway/internal/worker"
)

// Dispatcher implements domain.AuditReporter by pushing index operations onto
// a bounded worker pool. The request path never joins on delivery; a full
// queue or a sink error costs an audit document, not a payment response.
type Dispatcher struct {
	sink    domain.AuditSink
	pool    *worker.Pool
	timeout time.Duration
	logger  *slog.Logger
}

func NewDispatcher(sink domain.AuditSink, pool *worker.Pool, timeout time.Duration, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		sink:    sink,
		pool:    pool,
		timeout: timeout,
		logger:  logger,
	}
}

func (d *Dispatcher) Report(index string, doc any) {
	ok := d.pool.TrySubmit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.sink.Index(ctx, index, doc); err != nil {
			d.logger.Error("failed to index audit document", "index", index, "error", err)
		}
	})

	if !ok {
		d.logger.Warn("audit queue full, dropping document", "index", index)
	}
}
