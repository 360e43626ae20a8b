// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

package recommend

import (
	"cmp"
	"math"
	"slices"
	"time"
)

// scored is a product with a ranking score.
type scored struct {
	id    int64
	score float64
}

// rankScored sorts by score descending, then product id ascending,
// and truncates to n.
func rankScored(items []scored, n int) []scored {
	slices.SortFunc(items, func(a, b scored) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})
	if len(items) > n {
		items = items[:n]
	}
	return items
}

func float(v float64) *float64 {
	return &v
}

// RecommendForUser returns up to n products the user has not bought yet,
// ranked by the similarity-weighted purchases of every other user.
// Unknown users, and users who already bought every product, receive Popular(n).
func (e *Engine) RecommendForUser(userID int64, n int) (recs []Recommendation, err error) {
	start := time.Now()
	defer func() { e.observe(OpRecommendForUser, start, err) }()

	snap, n, err := e.acquire(n)
	if err != nil {
		return nil, err
	}

	u, ok := snap.Matrix.Users.Position(userID)
	if !ok {
		e.observer.ObserveFallback(OpRecommendForUser, FallbackUnknownUser)
		return popular(snap, n), nil
	}

	candidates := scoreCandidates(snap, u)
	if len(candidates) == 0 {
		e.observer.ObserveFallback(OpRecommendForUser, FallbackCatalogExhausted)
		return popular(snap, n), nil
	}

	ranked := rankScored(candidates, n)
	recs = make([]Recommendation, len(ranked))
	for i, c := range ranked {
		recs[i] = newRecommendation(snap.Catalog[c.id])
		recs[i].Score = float(c.score)
	}
	return recs, nil
}

// scoreCandidates scores every product user u has not bought as
// sum(S[v] * m[v][p]) / sum(|S[v]|) over all users v != u.
// Negative similarities contribute as-is; a zero denominator scores 0.
func scoreCandidates(snap *Snapshot, u int) []scored {
	m := snap.Matrix
	sims := snap.UserSimilarity.row(u)
	owned := m.row(u)

	var denom float64
	for v, s := range sims {
		if v != u {
			denom += math.Abs(s)
		}
	}

	candidates := make([]scored, 0, m.Cols())
	for p, qty := range owned {
		if qty != 0 {
			continue
		}

		var score float64
		if denom != 0 {
			var num float64
			for v, s := range sims {
				if v != u {
					num += s * m.At(v, p)
				}
			}
			score = num / denom
		}
		candidates = append(candidates, scored{id: m.Products.ID(p), score: score})
	}

	return candidates
}

// SimilarItems returns up to n products ranked by item similarity to
// productID, excluding productID itself.
func (e *Engine) SimilarItems(productID int64, n int) (recs []Recommendation, err error) {
	start := time.Now()
	defer func() { e.observe(OpSimilarItems, start, err) }()

	snap, n, err := e.acquire(n)
	if err != nil {
		return nil, err
	}

	p, ok := snap.Matrix.Products.Position(productID)
	if !ok {
		return nil, &ProductNotFoundError{ProductID: productID}
	}

	sims := snap.ItemSimilarity.row(p)
	others := make([]scored, 0, len(sims))
	for q, s := range sims {
		if q != p {
			others = append(others, scored{id: snap.Matrix.Products.ID(q), score: s})
		}
	}

	ranked := rankScored(others, n)
	recs = make([]Recommendation, len(ranked))
	for i, c := range ranked {
		recs[i] = newRecommendation(snap.Catalog[c.id])
		recs[i].Similarity = float(c.score)
	}
	return recs, nil
}

// Popular returns the n best-selling products.
func (e *Engine) Popular(n int) (recs []Recommendation, err error) {
	start := time.Now()
	defer func() { e.observe(OpPopular, start, err) }()

	snap, n, err := e.acquire(n)
	if err != nil {
		return nil, err
	}
	return popular(snap, n), nil
}

// PopularInCategory returns the n best-selling products of a category.
// An unknown category yields an empty list.
func (e *Engine) PopularInCategory(categoryID int64, n int) (recs []Recommendation, err error) {
	start := time.Now()
	defer func() { e.observe(OpPopularInCategory, start, err) }()

	snap, n, err := e.acquire(n)
	if err != nil {
		return nil, err
	}
	return withPopularity(snap, snap.Popularity.InCategory(snap.Catalog, categoryID, n)), nil
}

func popular(snap *Snapshot, n int) []Recommendation {
	return withPopularity(snap, snap.Popularity.Top(n))
}

func withPopularity(snap *Snapshot, ids []int64) []Recommendation {
	recs := make([]Recommendation, len(ids))
	for i, id := range ids {
		recs[i] = newRecommendation(snap.Catalog[id])
		recs[i].Popularity = float(snap.Popularity.Total(id))
	}
	return recs
}
