package health

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// PgReporter probes the Postgres instance behind the REST API directly,
// which separates "REST gateway down" from "database down". Each check
// dials one connection and closes it before the report is built; a pool
// would keep background goroutines alive between checks, which the probe
// must not do.
type PgReporter struct {
	probeBase
	dsn     string
	timeout time.Duration
}

func NewPgReporter(dsn string, timeout time.Duration, logger *zap.Logger, hooks Hooks) *PgReporter {
	return &PgReporter{
		probeBase: probeBase{logger: logger, hooks: hooks},
		dsn:       dsn,
		timeout:   timeout,
	}
}

// Check dials, runs SELECT 1, and classifies: a server-reported error is
// degraded, a parse/dial/network fault is error, otherwise ok.
func (rp *PgReporter) Check(ctx context.Context) (report Report) {
	start := time.Now()
	defer func() {
		if v := recover(); v != nil {
			report = rp.finish(start, StatusError, fmt.Errorf("probe panic: %v", v))
		}
	}()

	if rp.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, rp.timeout)
		defer cancel()
	}

	conn, err := pgx.Connect(ctx, rp.dsn)
	if err != nil {
		return rp.finish(start, StatusError, err)
	}
	defer conn.Close(context.Background())

	var one int
	if err := conn.QueryRow(ctx, "SELECT 1").Scan(&one); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			return rp.finish(start, StatusDegraded, errors.New(pgErr.Message))
		}
		return rp.finish(start, StatusError, err)
	}

	return rp.finish(start, StatusOK, nil)
}

var _ Checker = (*PgReporter)(nil)
