// Package metrics defines the prometheus collectors for the routing engine.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics groups every collector the engine emits.
type Metrics struct {
	InvocationLatency *prometheus.HistogramVec
	InvocationErrors  *prometheus.CounterVec
	TimeoutsPersisted *prometheus.CounterVec
	VoidOutcomes      *prometheus.CounterVec
}

// New registers and returns the engine collectors on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		InvocationLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "card_router",
			Name:      "invocation_duration_seconds",
			Help:      "Latency of remote processor invocations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"provider", "operation"}),
		InvocationErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "card_router",
			Name:      "invocation_errors_total",
			Help:      "Canonical error codes surfaced per provider.",
		}, []string{"provider", "code"}),
		TimeoutsPersisted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "card_router",
			Name:      "timeouts_persisted_total",
			Help:      "Timed-out requests parked for reconciliation.",
		}, []string{"provider"}),
		VoidOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "card_router",
			Name:      "automatic_void_total",
			Help:      "Automatic void attempts by outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(m.InvocationLatency, m.InvocationErrors, m.TimeoutsPersisted, m.VoidOutcomes)
	return m
}

// NewNop returns collectors registered on a private registry, for tests and
// wiring paths that do not expose metrics.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
