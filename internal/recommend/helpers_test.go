// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

package recommend

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

const epsilon = 1e-9

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// line builds an interaction with catalog attributes derived from the product id.
func line(userID, productID int64, qty float64) Interaction {
	categoryID := productID / 10
	return Interaction{
		UserID:       userID,
		ProductID:    productID,
		Quantity:     qty,
		OrderedAt:    baseTime,
		CategoryID:   categoryID,
		BrandID:      productID % 10,
		Volume:       0.75,
		Strength:     12.5,
		Price:        float64(productID) * 100,
		ProductName:  productNames[productID],
		CategoryName: categoryNames[categoryID],
		BrandName:    "brand",
	}
}

var productNames = map[int64]string{
	10: "Merlot",
	11: "Cabernet",
	20: "Lager",
	21: "Stout",
	30: "Vodka",
}

var categoryNames = map[int64]string{
	1: "Wine",
	2: "Beer",
	3: "Spirits",
}

// fixtureInteractions returns a small history over products 10, 11 (wine),
// 20, 21 (beer) and 30 (spirits).
//
// Totals: 20=4, 10=3, 11=3, 21=2, 30=1.
func fixtureInteractions() []Interaction {
	return []Interaction{
		line(1, 10, 1),
		line(1, 11, 1),
		line(1, 10, 1), // repeated pair collapses into one cell
		line(2, 10, 1),
		line(2, 11, 2),
		line(2, 20, 1),
		line(3, 20, 3),
		line(3, 21, 2),
		line(4, 30, 1),
	}
}

// stubSource is an InteractionSource whose data can be swapped between rebuilds.
type stubSource struct {
	mu           sync.Mutex
	interactions []Interaction
	err          error
	calls        int

	// block, when non-nil, is waited on before returning; entered is closed
	// on the first call.
	block   chan struct{}
	entered chan struct{}
}

func (s *stubSource) LoadPaidInteractions(ctx context.Context) ([]Interaction, error) {
	s.mu.Lock()
	s.calls++
	block, entered := s.block, s.entered
	s.entered = nil
	interactions, err := s.interactions, s.err
	s.mu.Unlock()

	if entered != nil {
		close(entered)
	}
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		return nil, err
	}
	return interactions, nil
}

func (s *stubSource) set(interactions []Interaction, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interactions = interactions
	s.err = err
}

// newTestEngine returns an engine over source with a quiet logger.
func newTestEngine(t *testing.T, source InteractionSource) *Engine {
	t.Helper()

	e, err := NewEngine(DefaultConfig(), source, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

// builtEngine returns an engine with a published snapshot of interactions.
func builtEngine(t *testing.T, interactions []Interaction) *Engine {
	t.Helper()

	e := newTestEngine(t, &stubSource{interactions: interactions})
	if err := e.Rebuild(context.Background()); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}
	return e
}

func productIDs(recs []Recommendation) []int64 {
	ids := make([]int64, len(recs))
	for i, r := range recs {
		ids[i] = r.ProductID
	}
	return ids
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}
