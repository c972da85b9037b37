package app

import (
	"errors"
	"fmt"

	"github.com/vk/reportgridgo/internal/timeseries"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	TemplatePath string // report markup
	MetricsPath  string // metric .hcl files
	OutputPath   string // empty means stdout
	Date         string // reference date for clauses without one

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.TemplatePath == "" {
		return nil, errors.New("TemplatePath is a required configuration field and cannot be empty")
	}
	if cfg.MetricsPath == "" {
		return nil, errors.New("MetricsPath is a required configuration field and cannot be empty")
	}
	if cfg.Date != "" {
		if _, err := timeseries.ParseDate(cfg.Date); err != nil {
			return nil, fmt.Errorf("invalid -date: %w", err)
		}
	}
	return &cfg, nil
}
