// Package config defines service configuration and its loading layers.
package config

import (
	"fmt"
	"strings"
)

// Early-warning threshold bounds accepted by Validate.
const (
	minEWSThreshold = 0.5
	maxEWSThreshold = 3.0
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Env labels metrics with the deployment environment.
	Env string `koanf:"env"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataPath is the dataset CSV served by the dashboard.
	DataPath string `koanf:"data_path"`

	// RateLimitRPS and RateLimitBurst bound API requests per second.
	RateLimitRPS   float64 `koanf:"rate_limit_rps"`
	RateLimitBurst int     `koanf:"rate_limit_burst"`

	// EWSThreshold is the default early-warning TPT rise in percentage points.
	EWSThreshold float64 `koanf:"ews_threshold"`

	// MaxRankingLimit caps GET /api/v1/rankings/{indicator}?limit.
	MaxRankingLimit int `koanf:"max_ranking_limit"`

	// ChartWidthIn and ChartHeightIn size rendered PNG charts in inches.
	ChartWidthIn  float64 `koanf:"chart_width_in"`
	ChartHeightIn float64 `koanf:"chart_height_in"`
}

// New creates a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		Env:             "development",
		Addr:            ":9080",
		DataPath:        "data/labor_market.csv",
		RateLimitRPS:    50,
		RateLimitBurst:  100,
		EWSThreshold:    1.0,
		MaxRankingLimit: 34,
		ChartWidthIn:    10,
		ChartHeightIn:   5,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.DataPath) == "":
		return fmt.Errorf("%w: data_path must not be empty", ErrInvalidConfig)
	case c.RateLimitRPS <= 0:
		return fmt.Errorf("%w: rate_limit_rps must be positive", ErrInvalidConfig)
	case c.RateLimitBurst < 1:
		return fmt.Errorf("%w: rate_limit_burst must be at least 1", ErrInvalidConfig)
	case c.EWSThreshold < minEWSThreshold || c.EWSThreshold > maxEWSThreshold:
		return fmt.Errorf("%w: ews_threshold must be within [%.1f, %.1f]", ErrInvalidConfig, minEWSThreshold, maxEWSThreshold)
	case c.MaxRankingLimit < 1:
		return fmt.Errorf("%w: max_ranking_limit must be at least 1", ErrInvalidConfig)
	case c.ChartWidthIn <= 0 || c.ChartHeightIn <= 0:
		return fmt.Errorf("%w: chart size must be positive", ErrInvalidConfig)
	}
	return nil
}
