// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

/*
Package metrics provides Prometheus metrics for Basketrec.

All collectors are registered with the default registry through promauto and
are exposed by the ops server on GET /metrics.

# Metric Families

Order history source:
  - basketrec_source_load_duration_seconds{driver}
  - basketrec_source_load_errors_total{driver}
  - basketrec_source_rows_loaded_total{driver}

Rebuilds and the published snapshot:
  - basketrec_rebuilds_total{outcome}
  - basketrec_rebuild_duration_seconds{outcome}
  - basketrec_rebuilds_skipped_total{reason}
  - basketrec_snapshot_version, basketrec_snapshot_built_at_seconds
  - basketrec_snapshot_users, basketrec_snapshot_products, basketrec_snapshot_interactions

Queries:
  - basketrec_queries_total{operation,outcome}
  - basketrec_query_duration_seconds{operation}
  - basketrec_fallbacks_total{operation,reason}

Circuit breaker:
  - circuit_breaker_state{name} (0=closed, 1=half-open, 2=open)
  - circuit_breaker_requests_total{name,result}
  - circuit_breaker_state_transitions_total{name,from_state,to_state}

Ops HTTP:
  - basketrec_ops_requests_total{method,route,status_code}
  - basketrec_ops_request_duration_seconds{method,route}

# Engine Integration

The recommend package has no dependency on Prometheus. EngineObserver
implements recommend.Observer and is installed at startup:

	engine.SetObserver(metrics.EngineObserver{})
*/
package metrics
