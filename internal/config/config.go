// Package config provides environment configuration for the chat client.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the client.
type Config struct {
	// Backend settings
	BaseURL string

	// Gateway timeout budgets. The extended budget covers chat sends, which
	// can take multiple standard budgets while the backend runs analytics.
	FastTimeout     time.Duration
	StandardTimeout time.Duration
	ExtendedTimeout time.Duration

	// Retry settings for idempotent reads
	ReadRetryMax     int
	ReadRetryBackoff time.Duration

	// Logging
	LogLevel string

	// Tracing
	TracingEndpoint string
	TracingEnabled  bool
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		// Backend
		BaseURL: getEnv("CHAT_API_URL", "http://localhost:8000"),

		// Timeouts
		FastTimeout:     getDurationEnv("CHAT_FAST_TIMEOUT", 5*time.Second),
		StandardTimeout: getDurationEnv("CHAT_STANDARD_TIMEOUT", 10*time.Second),
		ExtendedTimeout: getDurationEnv("CHAT_EXTENDED_TIMEOUT", 60*time.Second),

		// Retries
		ReadRetryMax:     getIntEnv("CHAT_READ_RETRY_MAX", 2),
		ReadRetryBackoff: getDurationEnv("CHAT_READ_RETRY_BACKOFF", 250*time.Millisecond),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),

		// Tracing
		TracingEndpoint: getEnv("TRACING_ENDPOINT", "localhost:4318"),
		TracingEnabled:  getBoolEnv("TRACING_ENABLED", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
