// Package config loads charstat configuration from file, environment and
// defaults. CLI flags override loaded values; the merge happens in the
// command layer so this package stays free of cobra.
package config

import (
	"errors"
	"fmt"
	"slices"
)

// Config is the top-level configuration struct for charstat.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Stats   StatsConfig   `mapstructure:"stats"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// StatsConfig holds the aggregation and enumeration knobs.
type StatsConfig struct {
	IncludeMerges bool   `mapstructure:"include_merges"`
	GroupBy       string `mapstructure:"group_by"`
	Limit         int    `mapstructure:"limit"`
	ProgressEvery int    `mapstructure:"progress_every"`
	Branch        string `mapstructure:"branch"`
	Since         string `mapstructure:"since"`
	Until         string `mapstructure:"until"`
}

// LoggingConfig holds diagnostics settings. Level is empty by default so
// verbosity flags can decide; a non-empty level always wins.
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Verbose bool   `mapstructure:"verbose"`
}

// Sentinel errors for configuration validation.
var (
	// ErrInvalidGroupBy indicates an unsupported grouping mode.
	ErrInvalidGroupBy = errors.New("stats.group_by must be one of: name, email")
	// ErrInvalidLimit indicates a negative author limit.
	ErrInvalidLimit = errors.New("stats.limit must be non-negative")
	// ErrInvalidProgressEvery indicates a negative progress interval.
	ErrInvalidProgressEvery = errors.New("stats.progress_every must be non-negative")
	// ErrInvalidLogLevel indicates an unknown logging level name.
	ErrInvalidLogLevel = errors.New("logging.level must be one of: debug, info, warn, error")
)

// validGroupBy lists the accepted grouping modes.
var validGroupBy = []string{"name", "email"}

// validLogLevels lists the accepted level names; empty defers to flags.
var validLogLevels = []string{"", "debug", "info", "warn", "error"}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if !slices.Contains(validGroupBy, c.Stats.GroupBy) {
		return fmt.Errorf("%w: got %q", ErrInvalidGroupBy, c.Stats.GroupBy)
	}

	if c.Stats.Limit < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidLimit, c.Stats.Limit)
	}

	if c.Stats.ProgressEvery < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidProgressEvery, c.Stats.ProgressEvery)
	}

	if !slices.Contains(validLogLevels, c.Logging.Level) {
		return fmt.Errorf("%w: got %q", ErrInvalidLogLevel, c.Logging.Level)
	}

	return nil
}
