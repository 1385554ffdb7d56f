package config

import (
	"os"
	"strconv"

	"gopanel/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Batch    BatchConfig
	Paths    PathConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL     string
	SSLMode string
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port string
}

// BatchConfig holds concurrent batch execution settings
type BatchConfig struct {
	MaxConcurrent int64
}

// PathConfig holds file system paths
type PathConfig struct {
	WorksheetFile string
}

// Load reads configuration from environment variables and validates it.
// The aggregation core itself needs none of this; only the hosting service,
// repository, and worksheet tooling do.
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Batch: BatchConfig{
			MaxConcurrent: int64(getEnvIntOrDefault("BATCH_MAX_CONCURRENT", 8)),
		},
		Paths: PathConfig{
			WorksheetFile: getEnvOrDefault("WORKSHEET_FILE", ""),
		},
		Database: DatabaseConfig{
			URL:     os.Getenv("DATABASE_URL"),
			SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
		},
	}

	if err := validate(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

// RequireDatabase errors when no DATABASE_URL is configured. Split from Load
// so the CLI can aggregate files without a database.
func (c *Config) RequireDatabase() error {
	if c.Database.URL == "" {
		return errors.ConfigInvalid("DATABASE_URL is required")
	}
	return nil
}

func validate(c *Config) error {
	if c.Server.Port == "" {
		return errors.ConfigInvalid("PORT cannot be empty")
	}
	if c.Batch.MaxConcurrent < 1 {
		return errors.ConfigInvalid("BATCH_MAX_CONCURRENT must be at least 1")
	}
	return nil
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvIntOrDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
