package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadDefaults(t *testing.T) {
	var cfg API
	require.NoError(t, Read(&cfg))

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.True(t, cfg.OTelEnabled)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 20*time.Minute, cfg.SessionTTL)
	assert.Equal(t, time.Minute, cfg.SessionCleanup)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestReadOverrides(t *testing.T) {
	t.Setenv("CALCPAD_HTTP_ADDR", "127.0.0.1:9000")
	t.Setenv("CALCPAD_OTEL_ENABLED", "false")
	t.Setenv("CALCPAD_SESSION_TTL", "90s")
	t.Setenv("CALCPAD_LOG_LEVEL", "debug")

	var cfg API
	require.NoError(t, Read(&cfg))

	assert.Equal(t, "127.0.0.1:9000", cfg.HTTPAddr)
	assert.False(t, cfg.OTelEnabled)
	assert.Equal(t, 90*time.Second, cfg.SessionTTL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestReadRequired(t *testing.T) {
	var cfg Bot
	err := Read(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CALCPAD_TELEGRAM_TOKEN")

	t.Setenv("CALCPAD_TELEGRAM_TOKEN", "123:abc")
	t.Setenv("CALCPAD_TELEGRAM_TIMEOUT", "30")
	require.NoError(t, Read(&cfg))
	assert.Equal(t, "123:abc", cfg.Token)
	assert.Equal(t, 30, cfg.Timeout)
	assert.Equal(t, 0, cfg.Offset)
}

func TestReadBadValue(t *testing.T) {
	t.Setenv("CALCPAD_SESSION_TTL", "soon")

	var cfg MCP
	err := Read(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CALCPAD_SESSION_TTL")
}

func TestReadSupportedKinds(t *testing.T) {
	var dst struct {
		Ratio  float64  `env:"TEST_RATIO"`
		Count  uint16   `env:"TEST_COUNT"`
		Names  []string `env:"TEST_NAMES"`
		Unset  string   `env:"TEST_UNSET"`
		Nested struct {
			Flag bool `env:"TEST_FLAG" env-default:"true"`
		}
		hidden string `env:"TEST_HIDDEN"`
	}
	t.Setenv("TEST_RATIO", "0.25")
	t.Setenv("TEST_COUNT", "0x10")
	t.Setenv("TEST_NAMES", "a, b,,c")
	t.Setenv("TEST_HIDDEN", "x")

	require.NoError(t, Read(&dst))
	assert.Equal(t, 0.25, dst.Ratio)
	assert.Equal(t, uint16(16), dst.Count)
	assert.Equal(t, []string{"a", "b", "c"}, dst.Names)
	assert.Empty(t, dst.Unset)
	assert.True(t, dst.Nested.Flag)
	assert.Empty(t, dst.hidden)
}

func TestReadRejectsNonPointer(t *testing.T) {
	assert.Error(t, Read(API{}))
	assert.Error(t, Read((*API)(nil)))
	n := 1
	assert.Error(t, Read(&n))
}

func TestLoadAppliesDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("CALCPAD_THEME_FILE=/tmp/prefs.json\nCALCPAD_LOG_LEVEL=warn\n"), 0o644))
	t.Chdir(dir)
	// Variables set by the process win over .env.
	t.Setenv("CALCPAD_LOG_LEVEL", "error")
	t.Cleanup(func() { os.Unsetenv("CALCPAD_THEME_FILE") })

	var cfg TUI
	require.NoError(t, Load(&cfg))
	assert.Equal(t, "/tmp/prefs.json", cfg.ThemeFile)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Empty(t, cfg.LogFile)
}

func TestLoadWithoutDotEnv(t *testing.T) {
	t.Chdir(t.TempDir())

	var cfg MCP
	require.NoError(t, Load(&cfg))
	assert.Equal(t, "info", cfg.LogLevel)
}
