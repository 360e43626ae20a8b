// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Order History Source Metrics
	SourceLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "basketrec_source_load_duration_seconds",
			Help:    "Duration of order history reads in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"driver"},
	)

	SourceLoadErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "basketrec_source_load_errors_total",
			Help: "Total number of failed order history reads",
		},
		[]string{"driver"},
	)

	SourceRowsLoaded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "basketrec_source_rows_loaded_total",
			Help: "Total number of paid order lines read from the source",
		},
		[]string{"driver"},
	)

	// Rebuild Metrics
	RebuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "basketrec_rebuild_duration_seconds",
			Help:    "Duration of snapshot rebuilds in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300, 600},
		},
		[]string{"outcome"},
	)

	RebuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "basketrec_rebuilds_total",
			Help: "Total number of rebuild attempts by outcome",
		},
		[]string{"outcome"}, // success, no_data, error, cancelled
	)

	RebuildsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "basketrec_rebuilds_skipped_total",
			Help: "Total number of rebuild requests that did not start a rebuild",
		},
		[]string{"reason"}, // throttled, in_progress, coalesced
	)

	// Snapshot Metrics
	SnapshotVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "basketrec_snapshot_version",
			Help: "Version of the published snapshot (0 before the first rebuild)",
		},
	)

	SnapshotBuiltAt = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "basketrec_snapshot_built_at_seconds",
			Help: "Unix time the published snapshot was built",
		},
	)

	SnapshotUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "basketrec_snapshot_users",
			Help: "Number of users in the published snapshot",
		},
	)

	SnapshotProducts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "basketrec_snapshot_products",
			Help: "Number of products in the published snapshot",
		},
	)

	SnapshotInteractions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "basketrec_snapshot_interactions",
			Help: "Number of order lines the published snapshot was built from",
		},
	)

	// Query Metrics
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "basketrec_queries_total",
			Help: "Total number of recommendation queries",
		},
		[]string{"operation", "outcome"},
	)

	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "basketrec_query_duration_seconds",
			Help:    "Recommendation query duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"operation"},
	)

	FallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "basketrec_fallbacks_total",
			Help: "Total number of queries answered from the popularity ranking instead",
		},
		[]string{"operation", "reason"}, // unknown_user, catalog_exhausted
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Ops HTTP Metrics
	OpsRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "basketrec_ops_requests_total",
			Help: "Total number of ops HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	OpsRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "basketrec_ops_request_duration_seconds",
			Help:    "Ops HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// RecordSourceLoad records one read of the order history.
func RecordSourceLoad(driver string, duration time.Duration, rows int, err error) {
	SourceLoadDuration.WithLabelValues(driver).Observe(duration.Seconds())
	if err != nil {
		SourceLoadErrors.WithLabelValues(driver).Inc()
		return
	}
	SourceRowsLoaded.WithLabelValues(driver).Add(float64(rows))
}

// RecordRebuildSkipped records a rebuild request that was dropped.
func RecordRebuildSkipped(reason string) {
	RebuildsSkipped.WithLabelValues(reason).Inc()
}

// RecordCircuitBreakerRequest records a call through a breaker.
func RecordCircuitBreakerRequest(name, result string) {
	CircuitBreakerRequests.WithLabelValues(name, result).Inc()
}

// RecordCircuitBreakerTransition records a state change and updates the
// state gauge. States are gobreaker state names.
func RecordCircuitBreakerTransition(name, from, to string) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
	CircuitBreakerState.WithLabelValues(name).Set(breakerStateValue(to))
}

func breakerStateValue(state string) float64 {
	switch state {
	case "half-open":
		return 1
	case "open":
		return 2
	default:
		return 0
	}
}

// RecordOpsRequest records one ops HTTP request.
func RecordOpsRequest(method, route string, statusCode int, duration time.Duration) {
	OpsRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	OpsRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
