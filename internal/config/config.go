package config

import (
	"os"
	"strconv"
)

// Config holds all server configuration.
type Config struct {
	DBPath      string
	Addr        string
	LogFormat   string // "text" or "json"; "auto" picks by terminal
	LogLevel    string
	SSEBuffer   int
	SeedOnStart bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DBPath:    "huddle.db",
		Addr:      ":8080",
		LogFormat: "auto",
		LogLevel:  "info",
		SSEBuffer: 64,
	}
}

// LoadConfig reads configuration from environment variables, falling back
// to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("HUDDLE_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("HUDDLE_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("HUDDLE_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("HUDDLE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("HUDDLE_SSE_BUFFER"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SSEBuffer = n
		}
	}
	if v := os.Getenv("HUDDLE_SEED"); v != "" {
		cfg.SeedOnStart = v == "1" || v == "true"
	}

	return cfg
}
