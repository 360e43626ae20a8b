// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

// Package source opens the order history store named by SOURCE_DRIVER
// (postgres, duckdb or neo4j) and wraps it in a resilience.BreakerSource.
// Both binaries read their interactions through it.
package source
