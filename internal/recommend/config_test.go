// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

package recommend

import (
	"testing"
)

func TestDefaultConfig_Valid(t *testing.T) {
	t.Parallel()

	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"zero timeout", func(c *Config) { c.Build.Timeout = 0 }},
		{"zero min interactions", func(c *Config) { c.Build.MinInteractions = 0 }},
		{"negative workers", func(c *Config) { c.Build.Workers = -1 }},
		{"zero default n", func(c *Config) { c.Limits.DefaultN = 0 }},
		{"max below default", func(c *Config) { c.Limits.DefaultN = 10; c.Limits.MaxN = 5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestConfig_Clone(t *testing.T) {
	t.Parallel()

	orig := DefaultConfig()
	clone := orig.Clone()
	clone.Limits.MaxN = 1

	if orig.Limits.MaxN == 1 {
		t.Error("modifying clone changed the original")
	}
}
