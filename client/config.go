package client

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the process-level construction parameters of a Client.
// Variables are read without a prefix so the app's existing
// EXPO_PUBLIC_API_URL keeps working.
type Config struct {
	BaseURL string        `envconfig:"EXPO_PUBLIC_API_URL"`
	Timeout time.Duration `envconfig:"API_TIMEOUT" default:"15s"`
	Debug   bool          `envconfig:"API_DEBUG" default:"false"`
}

// LoadConfig reads Config from the environment. An unset or empty
// EXPO_PUBLIC_API_URL falls back to DefaultBaseURL.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		return Config{}, fmt.Errorf("API_TIMEOUT must be > 0, got %s", cfg.Timeout)
	}
	return cfg, nil
}
