// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

// Package database reads the shop's paid order history from SQL stores.
//
// # Drivers
//
//   - NewPostgres: the shop's PostgreSQL database through lib/pq
//   - NewDuckDB: an embedded DuckDB file, or ":memory:" for tests and demos
//
// Both return a *DB implementing recommend.InteractionSource. The same join
// over orders, order_items, products, categories and brands runs on either
// driver and yields one recommend.Interaction per line of every paid order,
// oldest order first.
//
// # Schema and Demo Data
//
// CreateSchema creates the five tables the recommender reads. SeedDemoData
// fills an empty database with a small wine, beer and whisky shop so the
// service and CLI can run without an external database:
//
//	db, err := database.NewDuckDB(&config.DuckDBConfig{Path: ":memory:", SeedDemoData: true}, time.Minute)
//
// # Metrics
//
// Every LoadPaidInteractions call is timed and counted under the driver label
// (basketrec_source_load_duration_seconds, basketrec_source_rows_loaded_total).
package database
