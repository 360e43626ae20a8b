// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

package recommend

import (
	"context"
	"fmt"
	"time"
)

// Snapshot is one immutable, internally consistent set of recommendation
// artifacts built from a single read of the order history.
// Nothing mutates a snapshot once the engine has published it.
type Snapshot struct {
	Matrix         *Matrix
	Catalog        Catalog
	UserSimilarity *SimilarityMatrix
	ItemSimilarity *SimilarityMatrix
	Popularity     *Popularity

	// Version increases by one with every published snapshot.
	Version int64

	BuiltAt          time.Time
	BuildDuration    time.Duration
	InteractionCount int
}

// BuildSnapshot runs the matrix, popularity and similarity stages over
// interactions. It returns ErrNoData for an empty history and ctx.Err()
// if the context is cancelled during the similarity stage.
func BuildSnapshot(ctx context.Context, interactions []Interaction, workers int) (*Snapshot, error) {
	start := time.Now()

	m, catalog, err := BuildMatrix(interactions)
	if err != nil {
		return nil, fmt.Errorf("build matrix: %w", err)
	}

	users, err := UserSimilarity(ctx, m, workers)
	if err != nil {
		return nil, fmt.Errorf("user similarity: %w", err)
	}

	items, err := ItemSimilarity(ctx, m, workers)
	if err != nil {
		return nil, fmt.Errorf("item similarity: %w", err)
	}

	now := time.Now()
	return &Snapshot{
		Matrix:           m,
		Catalog:          catalog,
		UserSimilarity:   users,
		ItemSimilarity:   items,
		Popularity:       RankPopularity(m),
		BuiltAt:          now,
		BuildDuration:    now.Sub(start),
		InteractionCount: len(interactions),
	}, nil
}

// UserCount returns the number of matrix rows.
func (s *Snapshot) UserCount() int {
	return s.Matrix.Rows()
}

// ProductCount returns the number of matrix columns.
func (s *Snapshot) ProductCount() int {
	return s.Matrix.Cols()
}
