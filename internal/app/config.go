package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	PacksPath  string // directory of pack manifests
	AgentsFile string // optional agents.yaml registry overlay
	DataDir    string // deployment state database location

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
	WorkerCount     int
}

// NewConfig validates a raw config and applies defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.PacksPath == "" {
		return nil, errors.New("PacksPath is a required configuration field and cannot be empty")
	}

	switch cfg.LogFormat {
	case "", "text", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	switch cfg.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}

	return &cfg, nil
}
