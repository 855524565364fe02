package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"calcpad/internal/config"
	"calcpad/internal/observability"
	"calcpad/internal/theme"
	"calcpad/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "calcpad:", err)
		os.Exit(1)
	}
}

func run() error {
	var cfg config.TUI
	if err := config.Load(&cfg); err != nil {
		return err
	}

	// The terminal belongs to the UI, so logs go to a file or nowhere.
	if cfg.LogFile != "" {
		if err := observability.InitLogger(cfg.LogLevel, cfg.LogFile); err != nil {
			return err
		}
		defer observability.SyncLogger()
	}
	logger := observability.Logger

	path := cfg.ThemeFile
	if path == "" {
		var err error
		if path, err = theme.DefaultPath(); err != nil {
			return err
		}
	}
	logger.Info("starting tui", zap.String("theme_file", path))

	p := tea.NewProgram(tui.New(theme.NewFileStore(path), logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
