// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

// Package logging provides the zerolog-based structured logging used across Basketrec.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Str("driver", "postgres").Msg("Order history source ready")
//	logging.Err(err).Msg("Rebuild failed")
//
// Components take a zerolog.Logger by value and tag it with a component field:
//
//	engine, err := recommend.NewEngine(cfg, source, logging.WithComponent("recommend"))
//
// # Context Fields
//
// The ops HTTP server stores a request ID in the request context and the
// rebuild service stores the rebuild trigger. Ctx copies both onto a logger:
//
//	logging.Ctx(ctx, logger).Info().Msg("Rebuild requested")
//
// # slog Adapter
//
// Suture reports supervisor events through sutureslog, which takes an
// *slog.Logger. NewSlogLogger returns one that writes through zerolog so the
// supervisor shares the same JSON output.
//
// # Configuration
//
// Environment Variables (read by the config package):
//
//	LOG_LEVEL   - trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - json, console (default: json)
//	LOG_CALLER  - include caller file:line (default: false)
package logging
