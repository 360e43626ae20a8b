// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

package recommend

import (
	"fmt"
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Build contains snapshot rebuild parameters.
	Build BuildConfig `json:"build"`

	// Limits contains query limits.
	Limits LimitsConfig `json:"limits"`
}

// BuildConfig contains snapshot rebuild parameters.
type BuildConfig struct {
	// Timeout is the maximum time allowed for loading and building a snapshot.
	// Default: 10m.
	Timeout time.Duration `json:"timeout"`

	// MinInteractions is the minimum number of interaction records required
	// to publish a snapshot. An empty history always fails with ErrNoData.
	// Default: 1.
	MinInteractions int `json:"min_interactions"`

	// Workers is the number of goroutines used for similarity computation.
	// Zero uses runtime.NumCPU().
	Workers int `json:"workers"`
}

// LimitsConfig contains query limits.
type LimitsConfig struct {
	// DefaultN is the result count hosts should use when the caller gives none.
	// Default: 5.
	DefaultN int `json:"default_n"`

	// MaxN caps the number of results of any query. Larger requests are clamped.
	// Default: 100.
	MaxN int `json:"max_n"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		Build: BuildConfig{
			Timeout:         10 * time.Minute,
			MinInteractions: 1,
			Workers:         0,
		},
		Limits: LimitsConfig{
			DefaultN: 5,
			MaxN:     100,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Build.Timeout <= 0 {
		return fmt.Errorf("build.timeout must be positive, got %v", c.Build.Timeout)
	}
	if c.Build.MinInteractions < 1 {
		return fmt.Errorf("build.min_interactions must be positive, got %d", c.Build.MinInteractions)
	}
	if c.Build.Workers < 0 {
		return fmt.Errorf("build.workers must be non-negative, got %d", c.Build.Workers)
	}

	if c.Limits.DefaultN < 1 {
		return fmt.Errorf("limits.default_n must be positive, got %d", c.Limits.DefaultN)
	}
	if c.Limits.MaxN < c.Limits.DefaultN {
		return fmt.Errorf("limits.max_n must be >= default_n (%d), got %d", c.Limits.DefaultN, c.Limits.MaxN)
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
