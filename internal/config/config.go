// Package config loads settings for the calcpad commands from the
// environment, after applying an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Common settings shared by every command.
type Common struct {
	LogLevel        string        `env:"CALCPAD_LOG_LEVEL" env-default:"info"`
	SessionTTL      time.Duration `env:"CALCPAD_SESSION_TTL" env-default:"20m"`
	SessionCleanup  time.Duration `env:"CALCPAD_SESSION_CLEANUP" env-default:"1m"`
	ShutdownTimeout time.Duration `env:"CALCPAD_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type API struct {
	Common
	HTTPAddr    string `env:"CALCPAD_HTTP_ADDR" env-default:":8080"`
	OTelEnabled bool   `env:"CALCPAD_OTEL_ENABLED" env-default:"true"`
}

type Bot struct {
	Common
	Token   string `env:"CALCPAD_TELEGRAM_TOKEN,required"`
	Offset  int    `env:"CALCPAD_TELEGRAM_OFFSET" env-default:"0"`
	Timeout int    `env:"CALCPAD_TELEGRAM_TIMEOUT" env-default:"60"`
}

type TUI struct {
	LogLevel string `env:"CALCPAD_LOG_LEVEL" env-default:"info"`
	// LogFile is empty to disable logging; the terminal belongs to the UI.
	LogFile   string `env:"CALCPAD_TUI_LOG_FILE"`
	ThemeFile string `env:"CALCPAD_THEME_FILE"`
}

type MCP struct {
	Common
}

// Load applies .env when present, without overriding the process
// environment, and reads dst.
func Load(dst any) error {
	if err := loadDotEnv(); err != nil {
		return err
	}
	return Read(dst)
}

func loadDotEnv() error {
	err := godotenv.Load()
	if err == nil {
		return nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("load .env: %w", err)
}
