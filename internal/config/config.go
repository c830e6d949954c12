package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr        string
	APIKey      string
	LogLevel    slog.Level
	HTTPTimeout time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Addr:        getString("PHOTOVIEW_ADDR", ":8080"),
		APIKey:      strings.TrimSpace(os.Getenv("FLICKR_API_KEY")),
		LogLevel:    getLogLevel("PHOTOVIEW_LOG_LEVEL", slog.LevelInfo),
		HTTPTimeout: getDuration("PHOTOVIEW_HTTP_TIMEOUT", 15*time.Second),
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("FLICKR_API_KEY must be set")
	}

	return cfg, nil
}

func getString(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func getLogLevel(key string, fallback slog.Level) slog.Level {
	value := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	switch value {
	case "":
		return fallback
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return fallback
	}
}
