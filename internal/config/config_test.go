package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	// Ensure inherited environment does not leak into the test
	for _, key := range []string{
		"DARTS_LISTEN_ADDR", "DARTS_STORAGE", "DARTS_REDIS_URL",
		"DARTS_POSTGRES_URL", "DARTS_THROW_INTERVAL", "DARTS_HOLD_DELAY",
		"DARTS_BUST_DISPLAY", "DARTS_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "memory", cfg.StorageType)
	assert.Equal(t, 1*time.Second, cfg.ThrowInterval)
	assert.Equal(t, 1500*time.Millisecond, cfg.HoldDelay)
	assert.Equal(t, 1500*time.Millisecond, cfg.BustDisplay)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DARTS_LISTEN_ADDR", "0.0.0.0:9000")
	t.Setenv("DARTS_STORAGE", "redis")
	t.Setenv("DARTS_REDIS_URL", "redis://localhost:6379/1")
	t.Setenv("DARTS_THROW_INTERVAL", "250ms")
	t.Setenv("DARTS_HOLD_DELAY", "2s")
	t.Setenv("DARTS_BUST_DISPLAY", "500ms")
	t.Setenv("DARTS_LOG_LEVEL", "debug")

	cfg := Load()

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "redis", cfg.StorageType)
	assert.Equal(t, "redis://localhost:6379/1", cfg.RedisURL)
	assert.Equal(t, 250*time.Millisecond, cfg.ThrowInterval)
	assert.Equal(t, 2*time.Second, cfg.HoldDelay)
	assert.Equal(t, 500*time.Millisecond, cfg.BustDisplay)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoadIgnoresGarbage(t *testing.T) {
	t.Setenv("DARTS_LISTEN_ADDR", "not-an-address")
	t.Setenv("DARTS_THROW_INTERVAL", "soon")
	t.Setenv("DARTS_LOG_LEVEL", "chatty")

	cfg := Load()

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 1*time.Second, cfg.ThrowInterval)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}
