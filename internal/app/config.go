package app

import (
	"errors"
	"fmt"
	"strings"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ManifestPaths []string // manifest files or directories
	Targets       []string // backend names, e.g. "kotlin"
	OutputDir     string
	Check         bool // compare against existing files instead of writing
	Workers       int

	LogFormat string
	LogLevel  string
	LogFile   string // empty logs to the app writer
}

// NewConfig validates cfg and fills the defaults a zero value leaves open.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.ManifestPaths) == 0 {
		return nil, errors.New("ManifestPaths is a required configuration field and cannot be empty")
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	switch cfg.LogFormat {
	case "":
		cfg.LogFormat = "text"
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	switch cfg.LogLevel {
	case "":
		cfg.LogLevel = "info"
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}

	return &cfg, nil
}
