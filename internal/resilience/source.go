// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

package resilience

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/basketrec/internal/config"
	"github.com/tomtom215/basketrec/internal/metrics"
	"github.com/tomtom215/basketrec/internal/recommend"
)

// BreakerSource guards an InteractionSource with a circuit breaker. After
// FailureThreshold consecutive failed reads the breaker opens and reads fail
// fast with recommend.ErrSourceUnavailable until Timeout elapses.
type BreakerSource struct {
	source recommend.InteractionSource
	cb     *gobreaker.CircuitBreaker[[]recommend.Interaction]
	name   string
	logger zerolog.Logger
}

var _ recommend.InteractionSource = (*BreakerSource)(nil)

// NewBreakerSource wraps source. name labels the breaker in logs and metrics.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewBreakerSource(name string, source recommend.InteractionSource, cfg *config.BreakerConfig, logger zerolog.Logger) *BreakerSource {
	bs := &BreakerSource{
		source: source,
		name:   name,
		logger: logger.With().Str("component", "breaker").Str("breaker", name).Logger(),
	}

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	bs.cb = gobreaker.NewCircuitBreaker[[]recommend.Interaction](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		// A caller giving up is not a fault of the source.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			bs.logger.Warn().
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state transition")
			metrics.RecordCircuitBreakerTransition(name, from.String(), to.String())
		},
	})

	return bs
}

// LoadPaidInteractions reads through the breaker.
func (bs *BreakerSource) LoadPaidInteractions(ctx context.Context) ([]recommend.Interaction, error) {
	interactions, err := bs.cb.Execute(func() ([]recommend.Interaction, error) {
		return bs.source.LoadPaidInteractions(ctx)
	})

	switch {
	case err == nil:
		metrics.RecordCircuitBreakerRequest(bs.name, "success")
		return interactions, nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.RecordCircuitBreakerRequest(bs.name, "rejected")
		return nil, fmt.Errorf("%w: %s breaker is %s", recommend.ErrSourceUnavailable, bs.name, bs.cb.State())
	default:
		metrics.RecordCircuitBreakerRequest(bs.name, "failure")
		return nil, err
	}
}

// State returns the breaker state name: closed, half-open or open.
func (bs *BreakerSource) State() string {
	return bs.cb.State().String()
}
