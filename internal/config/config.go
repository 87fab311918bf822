package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

type Config struct {
	Port           string
	Environment    string
	LogLevel       slog.Level
	StorageBackend string
	RedisURL       string
	SessionTTL     time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       parseLogLevel(getEnv("LOG_LEVEL", "info")),
		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", StorageMemory)),
		RedisURL:       getEnv("REDIS_URL", "localhost:6379"),
	}

	ttl, err := time.ParseDuration(getEnv("SESSION_TTL", "2h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("invalid SESSION_TTL: must be positive, got %s", ttl)
	}
	cfg.SessionTTL = ttl

	switch cfg.StorageBackend {
	case StorageMemory, StorageRedis:
	default:
		return nil, fmt.Errorf("invalid STORAGE_BACKEND %q: supported values are %q and %q",
			cfg.StorageBackend, StorageMemory, StorageRedis)
	}

	return cfg, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
