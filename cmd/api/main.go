package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"calcpad/internal/calcapi"
	"calcpad/internal/config"
	"calcpad/internal/observability"
	"calcpad/internal/server"
	"calcpad/internal/session"
)

func main() {
	var cfg config.API
	if err := config.Load(&cfg); err != nil {
		panic(err)
	}

	ctx := context.Background()

	// Logger
	if err := observability.InitLogger(cfg.LogLevel); err != nil {
		panic(err)
	}
	defer observability.SyncLogger()

	// Telemetry
	shutdownTelemetry, err := initTelemetry(ctx, cfg.OTelEnabled)
	if err != nil {
		observability.Logger.Fatal("init telemetry", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(ctx); err != nil {
			observability.Logger.Error("telemetry shutdown", zap.Error(err))
		}
	}()

	// Sessions
	store := session.NewStore(cfg.SessionTTL, cfg.SessionCleanup)
	if err := calcapi.RegisterSessionGauge(prometheus.DefaultRegisterer, store); err != nil {
		observability.Logger.Fatal("register session gauge", zap.Error(err))
	}

	// Router
	router := server.NewRouter(calcapi.NewHandler(store), prometheus.DefaultGatherer)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		observability.Logger.Info("server started", zap.String("addr", cfg.HTTPAddr))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			observability.Logger.Fatal("listen", zap.Error(err))
		}
	}()

	waitForShutdown(srv, store, cfg.ShutdownTimeout)
}

func waitForShutdown(srv *http.Server, store *session.Store, timeout time.Duration) {
	stop := make(chan os.Signal, 1)

	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	observability.Logger.Info("shutting down")
	if err := srv.Shutdown(ctx); err != nil {
		observability.Logger.Error("http shutdown", zap.Error(err))
	}
	if err := store.Close(); err != nil {
		observability.Logger.Error("session store close", zap.Error(err))
	}
}
