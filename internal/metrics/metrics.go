// Package metrics exposes payment outcome counters in the Prometheus text
// exposition format, together with the default process and Go collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder implements domain.MetricsRecorder on top of a private registry, so
// the counters are injected into their consumers instead of living in package
// globals.
type Recorder struct {
	registry       *prometheus.Registry
	successTotal   *prometheus.CounterVec
	failedTotal    *prometheus.CounterVec
	auditQueueSize prometheus.GaugeFunc
}

func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	successTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_success_total",
			Help: "Total number of successful payments",
		},
		[]string{"currency"},
	)

	failedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_failed_total",
			Help: "Total number of failed payments",
		},
		[]string{"currency", "error_code"},
	)

	registry.MustRegister(successTotal, failedTotal)

	return &Recorder{
		registry:     registry,
		successTotal: successTotal,
		failedTotal:  failedTotal,
	}
}

func (r *Recorder) IncSuccess(currency string) {
	r.successTotal.WithLabelValues(currency).Inc()
}

func (r *Recorder) IncFailure(currency, errorCode string) {
	r.failedTotal.WithLabelValues(currency, errorCode).Inc()
}

// RegisterAuditQueueDepth publishes the audit worker pool's queue depth.
func (r *Recorder) RegisterAuditQueueDepth(depth func() float64) {
	r.auditQueueSize = prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "audit_queue_depth",
			Help: "Current depth of the audit sink worker queue",
		},
		depth,
	)
	r.registry.MustRegister(r.auditQueueSize)
}

// Handler serves the registry in the pull-based text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
