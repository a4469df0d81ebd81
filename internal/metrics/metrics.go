package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/analist0/ai-client-dashboard-sub001/internal/health"
)

// Metrics groups all Prometheus instruments used across the application.
// Registered once at startup via New(); passed by pointer wherever needed.
type Metrics struct {
	ProbesTotal  *prometheus.CounterVec
	ProbeSeconds *prometheus.HistogramVec
}

// New registers all instruments with the given Prometheus registerer and
// returns the populated Metrics struct.
// Using a custom registry (instead of prometheus.DefaultRegisterer) keeps
// tests isolated and avoids global state.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ProbesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "health_probes_total",
			Help: "Total number of dependency probes by backend and outcome.",
		}, []string{"backend", "status"}),

		ProbeSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "health_probe_seconds",
			Help:    "Probe latency from invocation to outcome classification.",
			Buckets: prometheus.DefBuckets,
		}, []string{"backend"}),
	}

	reg.MustRegister(
		m.ProbesTotal,
		m.ProbeSeconds,
	)

	return m
}

// ReporterHooks returns the callback set expected by health.Hooks for one
// probe backend. Centralises the prometheus observation calls so the
// health package stays free of prometheus imports.
func (m *Metrics) ReporterHooks(backend string) health.Hooks {
	return health.Hooks{
		OnProbe: func(status health.Status, elapsed time.Duration) {
			m.ProbesTotal.WithLabelValues(backend, string(status)).Inc()
			m.ProbeSeconds.WithLabelValues(backend).Observe(elapsed.Seconds())
		},
	}
}
