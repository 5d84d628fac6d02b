package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPath string            // .hcl file or directory of .hcl files
	Vars       map[string]string // -var overrides, bound as strings

	Format    string // "hcl" or "json"
	LogFormat string
	LogLevel  string
}

// NewConfig validates the given configuration and applies defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" {
		return nil, errors.New("ConfigPath is a required configuration field and cannot be empty")
	}

	if cfg.Format == "" {
		cfg.Format = "hcl"
	}
	if cfg.Format != "hcl" && cfg.Format != "json" {
		return nil, fmt.Errorf("invalid output format %q: must be 'hcl' or 'json'", cfg.Format)
	}

	return &cfg, nil
}
