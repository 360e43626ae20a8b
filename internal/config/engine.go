// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

package config

import "github.com/tomtom215/basketrec/internal/recommend"

// EngineConfig maps the recommend settings onto the engine configuration.
func (c *RecommendConfig) EngineConfig() *recommend.Config {
	cfg := recommend.DefaultConfig()
	cfg.Build.Timeout = c.BuildTimeout
	cfg.Build.MinInteractions = c.MinInteractions
	cfg.Build.Workers = c.Workers
	cfg.Limits.DefaultN = c.DefaultN
	cfg.Limits.MaxN = c.MaxN
	return cfg
}
