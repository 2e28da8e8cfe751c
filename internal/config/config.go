package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the application
type Config struct {
	// DatabaseURL is the MongoDB connection string. It may contain
	// credentials, so it is never echoed in logs or error messages.
	DatabaseURL  string `envconfig:"PROJECT_DB_URL" required:"true"`
	DatabaseName string `envconfig:"DB_NAME" default:"songs_db"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// MaxHistoryEntries caps the per-user history retention.
	MaxHistoryEntries int `envconfig:"MAX_HISTORY_ENTRIES" default:"100"`
	// DefaultListLimit bounds list and search results when no limit is given.
	DefaultListLimit int `envconfig:"DEFAULT_LIST_LIMIT" default:"50"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
