package config

import (
	"log/slog"
	"net"
	"os"
	"strconv"
	"time"
)

// Config holds the server settings read from the environment. Every
// field has a working default, so an empty environment boots an
// in-memory server on :8080.
type Config struct {
	// Host and Port come from DARTS_LISTEN_ADDR ("host:port")
	Host string
	Port int
	// StorageType selects the backend: memory, redis or postgres
	StorageType string
	// RedisURL is required when StorageType is redis
	RedisURL string
	// PostgresURL is required when StorageType is postgres
	PostgresURL string
	// ThrowInterval is the gap between computer darts
	ThrowInterval time.Duration
	// HoldDelay keeps a finished computer visit on screen
	HoldDelay time.Duration
	// BustDisplay is how long the bust indicator shows
	BustDisplay time.Duration
	// LogLevel is the slog level for the server logger
	LogLevel slog.Level
}

// Load reads the configuration from DARTS_* environment variables,
// falling back to defaults for anything unset or unparseable
func Load() Config {
	host, port := parseListenAddr(envOrDefault("DARTS_LISTEN_ADDR", ":8080"))

	return Config{
		Host:          host,
		Port:          port,
		StorageType:   envOrDefault("DARTS_STORAGE", "memory"),
		RedisURL:      os.Getenv("DARTS_REDIS_URL"),
		PostgresURL:   os.Getenv("DARTS_POSTGRES_URL"),
		ThrowInterval: durationOrDefault("DARTS_THROW_INTERVAL", 1*time.Second),
		HoldDelay:     durationOrDefault("DARTS_HOLD_DELAY", 1500*time.Millisecond),
		BustDisplay:   durationOrDefault("DARTS_BUST_DISPLAY", 1500*time.Millisecond),
		LogLevel:      levelOrDefault("DARTS_LOG_LEVEL", slog.LevelInfo),
	}
}

func envOrDefault(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func durationOrDefault(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func levelOrDefault(key string, def slog.Level) slog.Level {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(v)); err != nil {
		return def
	}
	return level
}

func parseListenAddr(addr string) (string, int) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 8080
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return host, 8080
	}
	return host, port
}
