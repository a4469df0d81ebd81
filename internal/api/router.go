package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/analist0/ai-client-dashboard-sub001/internal/api/handler"
	apimw "github.com/analist0/ai-client-dashboard-sub001/internal/api/middleware"
)

// NewRouter wires the chi router, attaches all middleware, and registers
// every route. It is the single source of truth for the HTTP surface area.
func NewRouter(
	hh *handler.HealthHandler,
	reg prometheus.Gatherer,
	logger *zap.Logger,
	ratePerSec int,
) http.Handler {
	r := chi.NewRouter()

	// --- global middleware (applied to every route) ---
	r.Use(chimw.Recoverer) // recover panics, return 500
	r.Use(chimw.RealIP)    // trust X-Forwarded-For / X-Real-IP
	r.Use(apimw.RequestID) // X-Request-ID inject / echo
	r.Use(apimw.RequestLogger(logger))

	// --- routes ---
	r.Get("/health", hh.Live)

	// Raw Prometheus scrape endpoint (for Prometheus server / Grafana)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	// Dependency probes are public and each one costs an upstream read,
	// so they sit behind the rate limiter.
	r.Route("/api", func(r chi.Router) {
		r.Use(apimw.Throttle(ratePerSec))
		r.Get("/health", hh.Store)
		r.Get("/health/db", hh.DB)
	})

	return r
}
