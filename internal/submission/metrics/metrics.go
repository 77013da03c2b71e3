// Package metrics exposes Prometheus metrics for the submission pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the submission pipeline.
// Counters are labeled by form ("contact" or "worker") so both endpoints
// share one set of series.
type Metrics struct {
	Received        *prometheus.CounterVec
	Accepted        *prometheus.CounterVec
	Rejected        *prometheus.CounterVec
	FieldFailures   *prometheus.CounterVec
	EndpointLatency *prometheus.HistogramVec
}

// New creates and registers all submission metrics against the given
// registerer. Tests pass a fresh registry to avoid duplicate
// registration panics.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Received: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "merididi_submissions_received_total",
			Help: "Total number of submissions received, labeled by form",
		}, []string{"form"}),
		Accepted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "merididi_submissions_accepted_total",
			Help: "Total number of submissions stored, labeled by form",
		}, []string{"form"}),
		Rejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "merididi_submissions_rejected_total",
			Help: "Total number of submissions rejected by validation, labeled by form",
		}, []string{"form"}),
		FieldFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "merididi_validation_failures_total",
			Help: "Total number of field-level validation failures, labeled by form and field",
		}, []string{"form", "field"}),
		EndpointLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "merididi_endpoint_latency_seconds",
			Help:    "Latency of endpoints in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
}

// IncrementReceived increments the received counter for a form.
func (m *Metrics) IncrementReceived(form string) {
	m.Received.WithLabelValues(form).Inc()
}

// IncrementAccepted increments the accepted counter for a form.
func (m *Metrics) IncrementAccepted(form string) {
	m.Accepted.WithLabelValues(form).Inc()
}

// IncrementRejected increments the rejected counter for a form.
func (m *Metrics) IncrementRejected(form string) {
	m.Rejected.WithLabelValues(form).Inc()
}

// IncrementFieldFailure increments the per-field validation failure counter.
func (m *Metrics) IncrementFieldFailure(form, field string) {
	m.FieldFailures.WithLabelValues(form, field).Inc()
}

// ObserveEndpointLatency records the latency for a given endpoint.
func (m *Metrics) ObserveEndpointLatency(endpoint string, durationSeconds float64) {
	m.EndpointLatency.WithLabelValues(endpoint).Observe(durationSeconds)
}
