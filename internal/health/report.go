// Package health answers "is this service and its data dependency
// currently usable?" with one bounded, side-effect-free read per check.
package health

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Status is the tri-state outcome of a probe.
type Status string

const (
	// StatusOK: the store answered the probe query.
	StatusOK Status = "ok"
	// StatusDegraded: the store was reached but reported an error for the
	// probe query (e.g. permission denied).
	StatusDegraded Status = "degraded"
	// StatusError: the probe failed before a store-level answer was
	// obtained (misconfiguration, network fault, construction failure).
	StatusError Status = "error"
)

// Report is the JSON body produced by one probe invocation. Exactly one of
// Timestamp (ok) or Error (degraded/error) is populated; LatencyMs is
// always present and measures wall-clock time up to the moment the report
// was built, on every path.
type Report struct {
	Status    Status `json:"status"`
	LatencyMs int64  `json:"latencyMs"`
	Timestamp string `json:"timestamp,omitempty"`
	Error     string `json:"error,omitempty"`
}

// HTTPStatus maps the report to its response code: 200 for ok, 503 for
// degraded and error.
func (r Report) HTTPStatus() int {
	if r.Status == StatusOK {
		return http.StatusOK
	}
	return http.StatusServiceUnavailable
}

// Checker is implemented by probe reporters. Check never panics and never
// returns an error: every failure mode is folded into the report.
type Checker interface {
	Check(ctx context.Context) Report
}

// Hooks carries the metric callback invoked after every probe.
// Keeps this package free of prometheus imports.
type Hooks struct {
	OnProbe func(status Status, elapsed time.Duration)
}

// probeBase is shared by the REST and Postgres reporters: report
// construction, failure logging, and the metrics hook.
type probeBase struct {
	logger *zap.Logger
	hooks  Hooks
}

func (b *probeBase) finish(start time.Time, status Status, err error) Report {
	elapsed := time.Since(start)
	report := Report{
		Status:    status,
		LatencyMs: elapsed.Milliseconds(),
	}
	if err != nil {
		report.Error = err.Error()
		b.logger.Warn("probe failed",
			zap.String("status", string(status)),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
	} else {
		report.Timestamp = time.Now().UTC().Format(time.RFC3339Nano)
	}
	if b.hooks.OnProbe != nil {
		b.hooks.OnProbe(status, elapsed)
	}
	return report
}
