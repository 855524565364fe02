package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"calcpad/internal/config"
	"calcpad/internal/mcptools"
	"calcpad/internal/observability"
	"calcpad/internal/session"
)

func main() {
	var cfg config.MCP
	if err := config.Load(&cfg); err != nil {
		panic(err)
	}

	// stdout carries the protocol; logs go to stderr.
	if err := observability.InitLogger(cfg.LogLevel, "stderr"); err != nil {
		panic(err)
	}
	defer observability.SyncLogger()
	logger := observability.Logger

	store := session.NewStore(cfg.SessionTTL, cfg.SessionCleanup)
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := mcptools.NewServer(store, logger).Serve(ctx, os.Stdin, os.Stdout); err != nil {
		logger.Error("server error", zap.Error(err))
	}
	logger.Info("server stopped")
}
