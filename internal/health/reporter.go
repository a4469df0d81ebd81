package health

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/analist0/ai-client-dashboard-sub001/internal/store"
)

// Options configures the REST store probe.
type Options struct {
	// Endpoint is the base URL of the hosted data store's REST API.
	Endpoint string
	// ServiceRoleKey is the elevated credential. Preferred when set.
	ServiceRoleKey string
	// AnonKey is the restricted read-only fallback credential.
	AnonKey string
	// Collection is the table the probe reads from.
	Collection string
	// Timeout bounds one whole probe, client construction included.
	Timeout time.Duration
}

// Reporter probes the hosted data store through its REST API. A fresh
// client is constructed per invocation so no credential or connection
// state is retained between checks; concurrent checks are independent.
type Reporter struct {
	probeBase
	opts Options
}

func NewReporter(opts Options, logger *zap.Logger, hooks Hooks) *Reporter {
	return &Reporter{
		probeBase: probeBase{logger: logger, hooks: hooks},
		opts:      opts,
	}
}

// Check performs one probe: construct a client, issue a single limit-1
// read, classify the outcome. A store-reported error is degraded; any
// other fault is error; otherwise ok. Zero matching rows is still ok —
// the probe asks about reachability, not contents.
func (rp *Reporter) Check(ctx context.Context) (report Report) {
	start := time.Now()
	defer func() {
		if v := recover(); v != nil {
			report = rp.finish(start, StatusError, fmt.Errorf("probe panic: %v", v))
		}
	}()

	if rp.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, rp.opts.Timeout)
		defer cancel()
	}

	key := rp.opts.ServiceRoleKey
	if key == "" {
		key = rp.opts.AnonKey
	}

	client, err := store.New(rp.opts.Endpoint, key, rp.opts.Timeout)
	if err != nil {
		return rp.finish(start, StatusError, err)
	}

	if _, err := client.Query(ctx, rp.opts.Collection, "id", 1); err != nil {
		var qe *store.QueryError
		if errors.As(err, &qe) {
			return rp.finish(start, StatusDegraded, qe)
		}
		return rp.finish(start, StatusError, err)
	}

	return rp.finish(start, StatusOK, nil)
}

var _ Checker = (*Reporter)(nil)
