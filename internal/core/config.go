package core

import (
	"os"
)

// Config holds the application configuration.
type Config struct {
	LogLevel     string // debug, info, warn, error
	CSVDelimiter string // default delimiter for CSV inputs
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	logLevel := getEnvOrDefault("LOG_LEVEL", "info")

	// DEBUG flag overrides log level
	if os.Getenv("DEBUG") == "1" {
		logLevel = "debug"
	}

	cfg := &Config{
		LogLevel:     logLevel,
		CSVDelimiter: getEnvOrDefault("LIMSRULES_CSV_DELIM", ","),
	}

	return cfg, nil
}

// getEnvOrDefault returns the value of an environment variable or a default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
