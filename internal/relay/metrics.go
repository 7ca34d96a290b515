package relay

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts relay requests by outcome.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
}

// Request outcomes.
const (
	OutcomeSent     = "sent"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// NewMetrics builds a Metrics with its own registry so tests can create
// independent instances.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "relay_requests_total",
		Help: "Contact-form relay requests by outcome.",
	}, []string{"outcome"})
	registry.MustRegister(requests)

	return &Metrics{registry: registry, requests: requests}
}

// Observe records one request outcome.
func (m *Metrics) Observe(outcome string) {
	m.requests.WithLabelValues(outcome).Inc()
}

// Registry exposes the underlying registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
