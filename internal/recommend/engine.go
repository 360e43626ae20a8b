// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Note: This package has no dependencies on other internal packages.
// Metrics are reported through the Observer interface.

// Observer receives engine events for metrics collection.
type Observer interface {
	// ObserveRebuild is called after every rebuild attempt. snap is nil on failure.
	ObserveRebuild(outcome string, duration time.Duration, snap *Snapshot)

	// ObserveQuery is called after every query.
	ObserveQuery(op Operation, outcome string, duration time.Duration)

	// ObserveFallback is called when a query degrades to the popularity ranking.
	ObserveFallback(op Operation, reason string)
}

type nopObserver struct{}

func (nopObserver) ObserveRebuild(string, time.Duration, *Snapshot) {}
func (nopObserver) ObserveQuery(Operation, string, time.Duration)   {}
func (nopObserver) ObserveFallback(Operation, string)               {}

// Outcomes reported to the Observer.
const (
	OutcomeSuccess   = "success"
	OutcomeNoData    = "no_data"
	OutcomeError     = "error"
	OutcomeCancelled = "cancelled"
	OutcomeNotFound  = "not_found"
	OutcomeInvalid   = "invalid"
	OutcomeNotReady  = "not_ready"
)

// Fallback reasons reported to the Observer.
const (
	FallbackUnknownUser      = "unknown_user"
	FallbackCatalogExhausted = "catalog_exhausted"
)

// Engine serves recommendations from the most recently published snapshot.
// Queries are lock-free; Rebuild is the only writer and publishes a new
// snapshot with a single atomic store.
type Engine struct {
	config   *Config
	logger   zerolog.Logger
	source   InteractionSource
	observer Observer

	current atomic.Pointer[Snapshot]

	rebuildMu  sync.Mutex
	rebuilding atomic.Bool

	statusMu      sync.RWMutex
	lastError     string
	lastAttemptAt time.Time
}

// NewEngine creates a new recommendation engine reading from source.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, source InteractionSource, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if source == nil {
		return nil, fmt.Errorf("interaction source is required")
	}

	return &Engine{
		config:   cfg.Clone(),
		logger:   logger.With().Str("component", "recommend").Logger(),
		source:   source,
		observer: nopObserver{},
	}, nil
}

// SetObserver installs an observer for rebuild and query events.
// It must be called before the engine is shared between goroutines.
func (e *Engine) SetObserver(o Observer) {
	if o == nil {
		o = nopObserver{}
	}
	e.observer = o
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Snapshot returns the currently published snapshot, or nil before the
// first successful rebuild.
func (e *Engine) Snapshot() *Snapshot {
	return e.current.Load()
}

// Rebuild loads the full paid-order history and publishes a new snapshot.
// On any failure the previously published snapshot stays in place and the
// error is returned. Concurrent calls fail with ErrRebuildInProgress.
func (e *Engine) Rebuild(ctx context.Context) error {
	if !e.rebuildMu.TryLock() {
		return ErrRebuildInProgress
	}
	defer e.rebuildMu.Unlock()

	e.rebuilding.Store(true)
	defer e.rebuilding.Store(false)

	start := time.Now()
	logger := e.logger.With().Str("rebuild_id", uuid.NewString()).Logger()
	logger.Info().Msg("starting snapshot rebuild")

	snap, err := e.build(ctx, logger)
	duration := time.Since(start)
	e.recordAttempt(err)

	if err != nil {
		outcome := rebuildOutcome(err)
		e.observer.ObserveRebuild(outcome, duration, nil)
		logger.Warn().
			Err(err).
			Str("outcome", outcome).
			Int64("duration_ms", duration.Milliseconds()).
			Msg("snapshot rebuild failed, keeping previous snapshot")
		return err
	}

	if prev := e.current.Load(); prev != nil {
		snap.Version = prev.Version + 1
	} else {
		snap.Version = 1
	}
	e.current.Store(snap)
	e.observer.ObserveRebuild(OutcomeSuccess, duration, snap)

	logger.Info().
		Int64("version", snap.Version).
		Int("interactions", snap.InteractionCount).
		Int("users", snap.UserCount()).
		Int("products", snap.ProductCount()).
		Int64("duration_ms", duration.Milliseconds()).
		Msg("snapshot rebuild complete")

	return nil
}

// build loads interactions and computes a complete, unpublished snapshot.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) build(ctx context.Context, logger zerolog.Logger) (*Snapshot, error) {
	buildCtx, cancel := context.WithTimeout(ctx, e.config.Build.Timeout)
	defer cancel()

	interactions, err := e.source.LoadPaidInteractions(buildCtx)
	if err != nil {
		return nil, fmt.Errorf("load interactions: %w", err)
	}

	if len(interactions) < e.config.Build.MinInteractions {
		if len(interactions) == 0 {
			return nil, ErrNoData
		}
		return nil, &InsufficientDataError{Have: len(interactions), Want: e.config.Build.MinInteractions}
	}

	logger.Debug().
		Int("interactions", len(interactions)).
		Msg("loaded paid order history")

	return BuildSnapshot(buildCtx, interactions, e.config.Build.Workers)
}

func (e *Engine) recordAttempt(err error) {
	e.statusMu.Lock()
	defer e.statusMu.Unlock()

	e.lastAttemptAt = time.Now()
	if err != nil {
		e.lastError = err.Error()
	} else {
		e.lastError = ""
	}
}

func rebuildOutcome(err error) string {
	switch {
	case errors.Is(err, ErrNoData):
		return OutcomeNoData
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeCancelled
	default:
		return OutcomeError
	}
}

// Status reports the published snapshot and the last rebuild attempt.
func (e *Engine) Status() Status {
	e.statusMu.RLock()
	st := Status{
		Rebuilding:    e.rebuilding.Load(),
		LastError:     e.lastError,
		LastAttemptAt: e.lastAttemptAt,
	}
	e.statusMu.RUnlock()

	if snap := e.current.Load(); snap != nil {
		st.Ready = true
		st.Version = snap.Version
		st.BuiltAt = snap.BuiltAt
		st.BuildDurationMS = snap.BuildDuration.Milliseconds()
		st.InteractionCount = snap.InteractionCount
		st.UserCount = snap.UserCount()
		st.ProductCount = snap.ProductCount()
	}

	return st
}

// acquire returns the current snapshot and the effective result count.
func (e *Engine) acquire(n int) (*Snapshot, int, error) {
	if n < 1 {
		return nil, 0, fmt.Errorf("%w, got %d", ErrInvalidCount, n)
	}
	if n > e.config.Limits.MaxN {
		n = e.config.Limits.MaxN
	}

	snap := e.current.Load()
	if snap == nil {
		return nil, 0, ErrNotInitialized
	}
	return snap, n, nil
}

func (e *Engine) observe(op Operation, start time.Time, err error) {
	outcome := OutcomeSuccess
	switch {
	case err == nil:
	case errors.Is(err, ErrNotInitialized):
		outcome = OutcomeNotReady
	case errors.Is(err, ErrProductNotFound):
		outcome = OutcomeNotFound
	case errors.Is(err, ErrInvalidCount):
		outcome = OutcomeInvalid
	default:
		outcome = OutcomeError
	}
	e.observer.ObserveQuery(op, outcome, time.Since(start))
}
