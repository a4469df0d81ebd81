package handler

import (
	"net/http"

	"github.com/analist0/ai-client-dashboard-sub001/internal/health"
)

// HealthHandler serves the liveness endpoint and the dependency probes.
type HealthHandler struct {
	store health.Checker
	db    health.Checker // nil when no direct database probe is configured
}

func NewHealthHandler(store, db health.Checker) *HealthHandler {
	return &HealthHandler{store: store, db: db}
}

// Live handles GET /health
//
// Process liveness only; no dependencies are consulted.
//
// @Summary  Liveness probe
// @Tags     system
// @Produce  json
// @Success  200  {object}  map[string]string
// @Router   /health [get]
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Store handles GET /api/health
//
// @Summary  Probe the hosted data store through its REST API
// @Tags     system
// @Produce  json
// @Success  200  {object}  health.Report
// @Failure  503  {object}  health.Report
// @Router   /api/health [get]
func (h *HealthHandler) Store(w http.ResponseWriter, r *http.Request) {
	report := h.store.Check(r.Context())
	respondJSON(w, report.HTTPStatus(), report)
}

// DB handles GET /api/health/db
//
// @Summary  Probe the Postgres instance directly
// @Tags     system
// @Produce  json
// @Success  200  {object}  health.Report
// @Failure  503  {object}  health.Report
// @Router   /api/health/db [get]
func (h *HealthHandler) DB(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		respondError(w, http.StatusNotFound, "direct database probe is not configured")
		return
	}
	report := h.db.Check(r.Context())
	respondJSON(w, report.HTTPStatus(), report)
}
