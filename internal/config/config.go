package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StorageFile  = "file"
	StorageRedis = "redis"
)

type Config struct {
	Environment string
	LogLevel    slog.Level

	// DataDir holds the authored content catalog (events, items, levels,
	// sequences).
	DataDir string

	// Storage selects the snapshot backend: "file" or "redis".
	Storage string

	// SaveDir overrides the save file location for the file backend.
	// Empty means the platform user config dir.
	SaveDir string

	// SaveSlot names the save for the redis backend.
	SaveSlot string
	RedisURL string

	// ActionWait is the default pause between actions in a sequence.
	ActionWait time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),
		DataDir:     getEnv("DATA_DIR", "./data"),
		Storage:     strings.ToLower(getEnv("STORAGE", StorageFile)),
		SaveDir:     getEnv("SAVE_DIR", ""),
		SaveSlot:    getEnv("SAVE_SLOT", "default"),
		RedisURL:    getEnv("REDIS_URL", "localhost:6379"),
		ActionWait:  parseMillis(getEnv("ACTION_WAIT_MS", "500")),
	}

	switch cfg.Storage {
	case StorageFile, StorageRedis:
	default:
		return nil, fmt.Errorf("invalid STORAGE value %q, supported: %s, %s", cfg.Storage, StorageFile, StorageRedis)
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

func parseMillis(value string) time.Duration {
	ms, err := strconv.Atoi(value)
	if err != nil || ms < 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(ms) * time.Millisecond
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
