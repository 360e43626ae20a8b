// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

// Package resilience wraps order history sources with a sony/gobreaker circuit breaker.
//
// BreakerSource opens after a run of consecutive failed reads and then fails
// reads immediately with recommend.ErrSourceUnavailable. The engine
// treats that like any other failed rebuild and keeps serving the previous
// snapshot. State transitions are logged and exported as circuit_breaker_state.
package resilience
