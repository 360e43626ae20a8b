// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

package source

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/basketrec/internal/config"
	"github.com/tomtom215/basketrec/internal/database"
	"github.com/tomtom215/basketrec/internal/graphsource"
	"github.com/tomtom215/basketrec/internal/recommend"
	"github.com/tomtom215/basketrec/internal/resilience"
)

// Source is the configured order history store behind a circuit breaker.
type Source struct {
	*resilience.BreakerSource

	driver string
	ping   func(ctx context.Context) error
	close  func(ctx context.Context) error
}

var _ recommend.InteractionSource = (*Source)(nil)

// Open connects to the store selected by cfg.Source.Driver.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Open(cfg *config.Config, logger zerolog.Logger) (*Source, error) {
	s := &Source{driver: cfg.Source.Driver}
	var raw recommend.InteractionSource

	switch cfg.Source.Driver {
	case config.DriverPostgres:
		db, err := database.NewPostgres(&cfg.Postgres, cfg.Source.QueryTimeout)
		if err != nil {
			return nil, err
		}
		raw = db
		s.ping = db.Ping
		s.close = func(context.Context) error { return db.Close() }

	case config.DriverDuckDB:
		db, err := database.NewDuckDB(&cfg.DuckDB, cfg.Source.QueryTimeout)
		if err != nil {
			return nil, err
		}
		raw = db
		s.ping = db.Ping
		s.close = func(context.Context) error { return db.Close() }

	case config.DriverNeo4j:
		gs, err := graphsource.New(&cfg.Neo4j, cfg.Source.QueryTimeout, logger)
		if err != nil {
			return nil, err
		}
		raw = gs
		s.ping = gs.Ping
		s.close = gs.Close

	default:
		return nil, fmt.Errorf("unsupported source driver %q", cfg.Source.Driver)
	}

	s.BreakerSource = resilience.NewBreakerSource(cfg.Source.Driver, raw, &cfg.Breaker, logger)

	logger.Info().Str("driver", cfg.Source.Driver).Msg("order history source opened")
	return s, nil
}

// Driver returns the configured driver name.
func (s *Source) Driver() string {
	return s.driver
}

// Ping checks connectivity to the underlying store, bypassing the breaker.
func (s *Source) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

// Close releases the underlying connection. It is safe on a nil Source.
func (s *Source) Close() error {
	if s == nil || s.close == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.close(ctx)
}
