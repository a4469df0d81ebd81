package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/analist0/ai-client-dashboard-sub001/internal/api/handler"
	"github.com/analist0/ai-client-dashboard-sub001/internal/health"
)

// stubChecker returns a canned report, giving the handler tests full
// control without real probes.
type stubChecker struct {
	report health.Report
}

func (s stubChecker) Check(ctx context.Context) health.Report { return s.report }

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json, got %q", ct)
	}
	var m map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	return m
}

func TestStore_OK(t *testing.T) {
	h := handler.NewHealthHandler(stubChecker{report: health.Report{
		Status:    health.StatusOK,
		LatencyMs: 12,
		Timestamp: "2026-08-30T12:00:00Z",
	}}, nil)

	rec := httptest.NewRecorder()
	h.Store(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decode(t, rec)
	if body["status"] != "ok" {
		t.Fatalf("expected status=ok, got %v", body["status"])
	}
	if body["latencyMs"] != float64(12) {
		t.Fatalf("expected latencyMs=12, got %v", body["latencyMs"])
	}
	if _, ok := body["error"]; ok {
		t.Fatal("ok response must not carry an error field")
	}
}

func TestStore_Degraded(t *testing.T) {
	h := handler.NewHealthHandler(stubChecker{report: health.Report{
		Status:    health.StatusDegraded,
		LatencyMs: 40,
		Error:     "permission denied",
	}}, nil)

	rec := httptest.NewRecorder()
	h.Store(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	body := decode(t, rec)
	if body["status"] != "degraded" {
		t.Fatalf("expected status=degraded, got %v", body["status"])
	}
	if body["error"] != "permission denied" {
		t.Fatalf("expected error=%q, got %v", "permission denied", body["error"])
	}
	if _, ok := body["timestamp"]; ok {
		t.Fatal("degraded response must not carry a timestamp field")
	}
}

func TestStore_Error(t *testing.T) {
	h := handler.NewHealthHandler(stubChecker{report: health.Report{
		Status:    health.StatusError,
		LatencyMs: 2,
		Error:     "dial tcp 127.0.0.1:443: connect: connection refused",
	}}, nil)

	rec := httptest.NewRecorder()
	h.Store(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	body := decode(t, rec)
	if body["status"] != "error" {
		t.Fatalf("expected status=error, got %v", body["status"])
	}
	if body["error"] == "" {
		t.Fatal("expected a non-empty error field")
	}
}

func TestDB_NotConfigured(t *testing.T) {
	h := handler.NewHealthHandler(stubChecker{}, nil)

	rec := httptest.NewRecorder()
	h.DB(rec, httptest.NewRequest(http.MethodGet, "/api/health/db", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestDB_Configured(t *testing.T) {
	h := handler.NewHealthHandler(stubChecker{}, stubChecker{report: health.Report{
		Status:    health.StatusOK,
		LatencyMs: 5,
		Timestamp: "2026-08-30T12:00:00Z",
	}})

	rec := httptest.NewRecorder()
	h.DB(rec, httptest.NewRequest(http.MethodGet, "/api/health/db", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := decode(t, rec); body["status"] != "ok" {
		t.Fatalf("expected status=ok, got %v", body["status"])
	}
}

func TestLive_AlwaysOK(t *testing.T) {
	h := handler.NewHealthHandler(stubChecker{report: health.Report{Status: health.StatusError}}, nil)

	rec := httptest.NewRecorder()
	h.Live(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := decode(t, rec); body["status"] != "ok" {
		t.Fatalf("expected status=ok, got %v", body["status"])
	}
}
