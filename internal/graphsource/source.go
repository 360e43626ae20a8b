// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

package graphsource

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog"

	"github.com/tomtom215/basketrec/internal/config"
	"github.com/tomtom215/basketrec/internal/metrics"
	"github.com/tomtom215/basketrec/internal/recommend"
)

// connectTimeout bounds the connectivity check when the source is opened.
const connectTimeout = 10 * time.Second

// paidInteractionsCypher returns one row per CONTAINS relationship of every
// paid order, oldest order first.
const paidInteractionsCypher = `
MATCH (u:User)-[:PLACED]->(o:Order {status: 'paid'})-[line:CONTAINS]->(p:Product)-[:IN_CATEGORY]->(c:Category),
      (p)-[:MADE_BY]->(b:Brand)
RETURN u.id AS user_id,
       p.id AS product_id,
       line.quantity AS quantity,
       o.created_at AS created_at,
       c.id AS category_id,
       b.id AS brand_id,
       p.volume AS volume,
       p.strength AS strength,
       p.price AS price,
       p.name AS product_name,
       c.name AS category_name,
       b.name AS brand_name
ORDER BY o.created_at, o.id, p.id
`

// Source reads the paid order history from a Neo4j purchase graph.
type Source struct {
	driver       neo4j.DriverWithContext
	database     string
	queryTimeout time.Duration
	logger       zerolog.Logger
}

var _ recommend.InteractionSource = (*Source)(nil)

// New connects to Neo4j and verifies connectivity.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func New(cfg *config.Neo4jConfig, queryTimeout time.Duration, logger zerolog.Logger) (*Source, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create Neo4j driver: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("failed to verify Neo4j connectivity: %w", err)
	}

	s := &Source{
		driver:       driver,
		database:     cfg.Database,
		queryTimeout: queryTimeout,
		logger:       logger.With().Str("component", "graphsource").Logger(),
	}
	s.logger.Info().Str("uri", cfg.URI).Str("database", cfg.Database).Msg("Connected to Neo4j purchase graph")

	return s, nil
}

// Ping runs a trivial read query against the configured database.
func (s *Source) Ping(ctx context.Context) error {
	_, err := neo4j.ExecuteQuery(ctx, s.driver, "RETURN 1", nil,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(s.database),
		neo4j.ExecuteQueryWithReadersRouting())
	if err != nil {
		return fmt.Errorf("neo4j health check failed: %w", err)
	}
	return nil
}

// Close closes the driver.
func (s *Source) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

// LoadPaidInteractions reads the full paid-order history from the graph.
func (s *Source) LoadPaidInteractions(ctx context.Context) ([]recommend.Interaction, error) {
	start := time.Now()
	interactions, err := s.load(ctx)
	metrics.RecordSourceLoad(config.DriverNeo4j, time.Since(start), len(interactions), err)
	return interactions, err
}

func (s *Source) load(ctx context.Context) ([]recommend.Interaction, error) {
	if s.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.queryTimeout)
		defer cancel()
	}

	result, err := neo4j.ExecuteQuery(ctx, s.driver, paidInteractionsCypher, nil,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(s.database),
		neo4j.ExecuteQueryWithReadersRouting())
	if err != nil {
		return nil, fmt.Errorf("query paid interactions: %w", err)
	}

	interactions := make([]recommend.Interaction, 0, len(result.Records))
	for i, record := range result.Records {
		in, err := interactionFromRecord(record.AsMap())
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		interactions = append(interactions, in)
	}

	return interactions, nil
}
