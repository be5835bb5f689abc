// Package config loads runtime configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the CLI needs to run.
type Config struct {
	// DBPath is the SQLite database file.
	DBPath string

	// LogLevel is debug, info, warn or error.
	LogLevel string

	// MetricsAddr is the listen address for the Prometheus endpoint,
	// empty to disable it.
	MetricsAddr string
}

// Load reads configuration from the environment. A missing .env file
// is not an error.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		DBPath:      getEnv("DB_PATH", "./data/splitledger.db"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		MetricsAddr: os.Getenv("METRICS_ADDR"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
