package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	DBPath           string
	APIPort          string
	LogLevel         slog.Level
	LogFormat        string
	AutosaveDelay    time.Duration
	SentimentEnabled bool
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates the rest.
// If a .env file exists in the current directory or project root, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	// Check current directory first, then walk up to find project root
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		DBPath:    getEnv("DB_PATH", "./data/inkwell.db"),
		APIPort:   getEnv("API_PORT", "9000"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be \"text\" or \"json\", got %q", cfg.LogFormat)
	}

	// Autosave delay is the quiet window after an entry edit before the
	// entries collection is flushed to disk.
	delayStr := getEnv("AUTOSAVE_DELAY_MS", "1000")
	delayMs, err := strconv.Atoi(delayStr)
	if err != nil {
		return nil, fmt.Errorf("AUTOSAVE_DELAY_MS must be a valid integer: %w", err)
	}
	if delayMs <= 0 {
		return nil, fmt.Errorf("AUTOSAVE_DELAY_MS must be greater than 0")
	}
	cfg.AutosaveDelay = time.Duration(delayMs) * time.Millisecond

	sentimentStr := getEnv("SENTIMENT_ENABLED", "true")
	sentiment, err := strconv.ParseBool(sentimentStr)
	if err != nil {
		return nil, fmt.Errorf("SENTIMENT_ENABLED must be a boolean: %w", err)
	}
	cfg.SentimentEnabled = sentiment

	// Create the data directory if it doesn't exist
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// parseLogLevel maps a LOG_LEVEL string to a slog.Level.
func parseLogLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error; got %q", s)
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
