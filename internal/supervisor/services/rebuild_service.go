// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/basketrec/internal/logging"
	"github.com/tomtom215/basketrec/internal/metrics"
	"github.com/tomtom215/basketrec/internal/recommend"
)

// Rebuild triggers.
const (
	TriggerStartup  = "startup"
	TriggerSchedule = "schedule"
	TriggerAdmin    = "admin"
	TriggerSignal   = "signal"
)

// ErrRebuildThrottled is returned by Trigger when an on-demand rebuild was
// requested sooner than MinRebuildGap after the previous one.
var ErrRebuildThrottled = errors.New("rebuild throttled")

// Rebuilder is the engine side of the rebuild service.
type Rebuilder interface {
	Rebuild(ctx context.Context) error
}

// RebuildServiceConfig holds configuration for the rebuild service.
type RebuildServiceConfig struct {
	// RebuildOnStartup builds a snapshot as soon as the service starts.
	RebuildOnStartup bool

	// RebuildInterval is the time between scheduled rebuilds. Zero disables
	// the schedule; rebuilds then only happen on startup or on demand.
	RebuildInterval time.Duration

	// MinRebuildGap is the minimum spacing of on-demand rebuilds. Zero
	// accepts every request.
	MinRebuildGap time.Duration
}

type rebuildRequest struct {
	trigger   string
	requestID string
}

// RebuildService owns the snapshot rebuild schedule for Suture supervision.
// All rebuilds run on the service goroutine, one at a time. On-demand
// requests made while one is already queued are merged into it.
type RebuildService struct {
	engine   Rebuilder
	config   RebuildServiceConfig
	logger   zerolog.Logger
	limiter  *rate.Limiter
	requests chan rebuildRequest
	name     string
}

// NewRebuildService creates a new rebuild service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRebuildService(engine Rebuilder, cfg RebuildServiceConfig, logger zerolog.Logger) *RebuildService {
	limit := rate.Inf
	if cfg.MinRebuildGap > 0 {
		limit = rate.Every(cfg.MinRebuildGap)
	}
	return &RebuildService{
		engine:   engine,
		config:   cfg,
		logger:   logger.With().Str("service", "rebuild").Logger(),
		limiter:  rate.NewLimiter(limit, 1),
		requests: make(chan rebuildRequest, 1),
		name:     "rebuild-service",
	}
}

// Trigger requests an on-demand rebuild. It never blocks: the request is
// queued for the service goroutine, merged into an already queued request,
// or rejected with ErrRebuildThrottled.
func (s *RebuildService) Trigger(ctx context.Context, trigger string) error {
	if !s.limiter.Allow() {
		metrics.RecordRebuildSkipped("throttled")
		return ErrRebuildThrottled
	}

	req := rebuildRequest{trigger: trigger, requestID: logging.RequestIDFromContext(ctx)}
	select {
	case s.requests <- req:
	default:
		metrics.RecordRebuildSkipped("coalesced")
		s.logger.Debug().Str("trigger", trigger).Msg("rebuild already queued, request merged")
	}
	return nil
}

// Serve implements the suture.Service interface.
func (s *RebuildService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("rebuild_on_startup", s.config.RebuildOnStartup).
		Dur("rebuild_interval", s.config.RebuildInterval).
		Dur("min_rebuild_gap", s.config.MinRebuildGap).
		Msg("rebuild service starting")

	if s.config.RebuildOnStartup {
		s.rebuild(ctx, rebuildRequest{trigger: TriggerStartup})
	}

	// A nil channel never fires, which disables the schedule.
	var tick <-chan time.Time
	if s.config.RebuildInterval > 0 {
		ticker := time.NewTicker(s.config.RebuildInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("rebuild service shutting down")
			return ctx.Err()

		case <-tick:
			s.rebuild(ctx, rebuildRequest{trigger: TriggerSchedule})

		case req := <-s.requests:
			s.rebuild(ctx, req)
		}
	}
}

// rebuild runs one rebuild. Failures are logged and never stop the service;
// the engine keeps serving its previous snapshot.
func (s *RebuildService) rebuild(ctx context.Context, req rebuildRequest) {
	ctx = logging.ContextWithTrigger(ctx, req.trigger)
	if req.requestID != "" {
		ctx = logging.ContextWithRequestID(ctx, req.requestID)
	}
	logger := logging.Ctx(ctx, s.logger)

	start := time.Now()
	err := s.engine.Rebuild(ctx)
	switch {
	case err == nil:
		logger.Debug().Dur("duration", time.Since(start)).Msg("rebuild finished")
	case errors.Is(err, recommend.ErrRebuildInProgress):
		metrics.RecordRebuildSkipped("in_progress")
		logger.Debug().Msg("rebuild already in progress, skipped")
	case ctx.Err() != nil:
		logger.Debug().Err(err).Msg("rebuild interrupted by shutdown")
	default:
		logger.Warn().Err(err).Msg("rebuild failed, previous snapshot kept")
	}
}

// String returns the service name for logging.
func (s *RebuildService) String() string {
	return s.name
}
