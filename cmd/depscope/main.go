package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/depscope/depscope/pkg/cache"
	"github.com/depscope/depscope/pkg/config"
	"github.com/depscope/depscope/pkg/httputil"
	"github.com/depscope/depscope/pkg/observability"
	"github.com/depscope/depscope/pkg/registry"
)

const serviceVersion = "1.0.0"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		os.Stderr.WriteString("depscope: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Observability.LogLevel, os.Stdout)

	var metrics *observability.Metrics
	if cfg.Observability.MetricsEnabled {
		metrics = observability.NewMetrics(prometheus.NewRegistry())
	}

	catalog := registry.NewCatalog()
	reports := cache.New[any](&cfg.Cache)
	handlers := registry.NewAnalysisHandlers(catalog, reports, metrics)

	router := mux.NewRouter()
	handlers.RegisterRoutes(router)

	chain := []func(http.Handler) http.Handler{
		httputil.RequestIDMiddleware,
		httputil.LoggingMiddleware(logger),
		httputil.RecoveryMiddleware(logger),
		httputil.MaxBytesMiddleware(cfg.Server.MaxBodyBytes),
	}
	if metrics != nil {
		chain = append(chain, metrics.HTTPMiddleware)
	}

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      httputil.Chain(chain...)(router),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	healthServer := newHealthServer(cfg, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.WithField("addr", healthServer.Addr).Info("health server listening")
		if err := healthServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("health server failed")
		}
	}()

	go func() {
		logger.WithField("addr", server.Addr).Info("depscope listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("server failed")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("server shutdown failed")
	}
	if err := healthServer.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("health server shutdown failed")
	}
}

func newHealthServer(cfg *config.Config, metrics *observability.Metrics) *http.Server {
	health := observability.NewHealthHandler("depscope", serviceVersion)

	healthMux := http.NewServeMux()
	healthMux.HandleFunc("/healthz", health.Liveness)
	healthMux.HandleFunc("/readyz", health.Readiness)
	if metrics != nil {
		healthMux.Handle("/metrics", metrics.Handler())
	}

	return &http.Server{
		Addr:    cfg.Server.Host + ":" + cfg.Server.HealthPort,
		Handler: healthMux,
	}
}
