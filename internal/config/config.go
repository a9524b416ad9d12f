// Package config provides configuration loading and validation for the
// server and CLI.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the application configuration, loaded from environment
// variables. JWT and password settings are loaded separately because they
// carry their own validation.
type Config struct {
	// DatabaseURL is the PostgreSQL connection string.
	DatabaseURL string

	// Port is the HTTP listen port.
	Port int

	// GeminiAPIKey authorizes calls to the Gemini API. AI skill endpoints
	// are disabled when it is empty.
	GeminiAPIKey string

	// StorageRoot is the directory backing the object store.
	StorageRoot string

	// UseBrowser enables the headless-browser fallback for job ingestion.
	UseBrowser bool

	// Verbose enables detailed request logging.
	Verbose bool
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		StorageRoot:  os.Getenv("STORAGE_ROOT"),
		UseBrowser:   boolEnv("INGEST_USE_BROWSER"),
		Verbose:      boolEnv("VERBOSE"),
	}

	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %v", err)
	}
	cfg.Port = port

	if cfg.StorageRoot == "" {
		cfg.StorageRoot = "data/storage"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("config error: DATABASE_URL is required but not set")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: PORT out of range: %d", c.Port)
	}
	return nil
}

func boolEnv(name string) bool {
	v := os.Getenv(name)
	return v == "1" || v == "true" || v == "yes"
}
