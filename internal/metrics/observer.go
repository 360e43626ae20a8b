// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

package metrics

import (
	"time"

	"github.com/tomtom215/basketrec/internal/recommend"
)

// EngineObserver reports recommendation engine events to Prometheus.
//
//	engine.SetObserver(metrics.EngineObserver{})
type EngineObserver struct{}

var _ recommend.Observer = EngineObserver{}

// ObserveRebuild records the rebuild and, on success, the published snapshot's shape.
func (EngineObserver) ObserveRebuild(outcome string, duration time.Duration, snap *recommend.Snapshot) {
	RebuildsTotal.WithLabelValues(outcome).Inc()
	RebuildDuration.WithLabelValues(outcome).Observe(duration.Seconds())

	if snap == nil {
		return
	}
	SnapshotVersion.Set(float64(snap.Version))
	SnapshotBuiltAt.Set(float64(snap.BuiltAt.Unix()))
	SnapshotUsers.Set(float64(snap.UserCount()))
	SnapshotProducts.Set(float64(snap.ProductCount()))
	SnapshotInteractions.Set(float64(snap.InteractionCount))
}

// ObserveQuery records one query.
func (EngineObserver) ObserveQuery(op recommend.Operation, outcome string, duration time.Duration) {
	QueriesTotal.WithLabelValues(op.String(), outcome).Inc()
	QueryDuration.WithLabelValues(op.String()).Observe(duration.Seconds())
}

// ObserveFallback records a query answered from the popularity ranking.
func (EngineObserver) ObserveFallback(op recommend.Operation, reason string) {
	FallbacksTotal.WithLabelValues(op.String(), reason).Inc()
}
