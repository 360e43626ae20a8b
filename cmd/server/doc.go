// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

/*
Package main is the entry point for the basketrec server.

The server keeps an in-memory recommendation snapshot built from the paid
order history and rebuilds it on a schedule. It runs under a Suture v4 tree:

	RootSupervisor ("basketrec")
	├── EngineSupervisor ("engine-layer")
	│   └── RebuildService (startup, interval and on-demand rebuilds)
	└── APISupervisor ("api-layer")
	    └── Ops HTTP server (/healthz, /readyz, /metrics, /admin/rebuild)

Component initialization order:

 1. Configuration: Koanf v2 (defaults, config.yaml, .env, environment)
 2. Logging: zerolog with JSON or console output
 3. Source: PostgreSQL, DuckDB or Neo4j behind a circuit breaker
 4. Engine: recommend.Engine with the Prometheus observer
 5. Supervisor tree: rebuild service and ops server

# Signals

SIGHUP queues an on-demand rebuild (subject to RECOMMEND_MIN_REBUILD_GAP).
SIGINT and SIGTERM cancel the tree and shut the ops server down gracefully.

# Example

Run against the bundled demo history:

	SOURCE_DRIVER=duckdb DUCKDB_PATH=:memory: DUCKDB_SEED_DEMO_DATA=true ./basketrec

Run against the shop's PostgreSQL database:

	SOURCE_DRIVER=postgres DB_HOST=db DB_NAME=alcohol_shop DB_USER=shop DB_PASSWORD=... ./basketrec
*/
package main
