package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/analist0/ai-client-dashboard-sub001/internal/api"
	"github.com/analist0/ai-client-dashboard-sub001/internal/api/handler"
	"github.com/analist0/ai-client-dashboard-sub001/internal/config"
	"github.com/analist0/ai-client-dashboard-sub001/internal/health"
	"github.com/analist0/ai-client-dashboard-sub001/internal/metrics"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync() //nolint:errcheck

	// ---- configuration ----
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	// A missing credential is not fatal: the probe endpoint must stay up
	// and report the misconfiguration as status=error instead.
	if _, tier := cfg.Credential(); tier != "" {
		logger.Info("probe credential selected", zap.String("tier", tier))
	} else {
		logger.Warn("no store credential configured; probes will report status=error")
	}

	// ---- core dependencies ----
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	storeProbe := health.NewReporter(health.Options{
		Endpoint:       cfg.StoreURL,
		ServiceRoleKey: cfg.ServiceRoleKey,
		AnonKey:        cfg.AnonKey,
		Collection:     cfg.ProbeCollection,
		Timeout:        cfg.ProbeTimeout,
	}, logger, m.ReporterHooks("store"))

	var dbProbe health.Checker
	if cfg.DatabaseURL != "" {
		dbProbe = health.NewPgReporter(cfg.DatabaseURL, cfg.ProbeTimeout, logger, m.ReporterHooks("postgres"))
		logger.Info("direct database probe enabled")
	}

	// ---- HTTP server ----
	hh := handler.NewHealthHandler(storeProbe, dbProbe)
	router := api.NewRouter(hh, reg, logger, cfg.RateLimit)
	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start server in a goroutine so it does not block the shutdown listener.
	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// ---- graceful shutdown ----
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	logger.Info("server stopped cleanly")
}
