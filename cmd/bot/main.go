package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"calcpad/internal/config"
	"calcpad/internal/observability"
	"calcpad/internal/session"
	"calcpad/internal/telegram"
)

func main() {
	var cfg config.Bot
	if err := config.Load(&cfg); err != nil {
		panic(err)
	}

	if err := observability.InitLogger(cfg.LogLevel); err != nil {
		panic(err)
	}
	defer observability.SyncLogger()
	logger := observability.Logger

	store := session.NewStore(cfg.SessionTTL, cfg.SessionCleanup)
	bot, err := telegram.NewBot(cfg.Token, telegram.Options{
		Offset:     cfg.Offset,
		Timeout:    cfg.Timeout,
		SessionTTL: cfg.SessionTTL,
	}, store, logger)
	if err != nil {
		logger.Fatal("failed to connect telegram", zap.Error(err))
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("starting telegram bot")
		if err := bot.Run(); !errors.Is(err, telegram.ErrClosed) {
			logger.Error("telegram bot stopped unexpectedly", zap.Error(err))
		}
		quit <- os.Interrupt
	}()

	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	logger.Info("stopping telegram bot")
	if err := bot.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed, closing", zap.Error(err))
		_ = bot.Close()
	}
	logger.Info("telegram bot stopped")
}
