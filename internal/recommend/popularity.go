// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

package recommend

import (
	"cmp"
	"slices"
)

// Popularity is the global product ranking by total quantity sold.
// It is computed once per snapshot and sliced per request.
type Popularity struct {
	ranked []int64
	totals map[int64]float64
}

// RankPopularity orders products by aggregate quantity descending,
// breaking ties by product id ascending.
func RankPopularity(m *Matrix) *Popularity {
	sums := m.ColumnSums()

	totals := make(map[int64]float64, len(sums))
	ranked := make([]int64, len(sums))
	for p, total := range sums {
		id := m.Products.ID(p)
		ranked[p] = id
		totals[id] = total
	}

	slices.SortFunc(ranked, func(a, b int64) int {
		if c := cmp.Compare(totals[b], totals[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	return &Popularity{ranked: ranked, totals: totals}
}

// Len returns the number of ranked products.
func (p *Popularity) Len() int {
	return len(p.ranked)
}

// Top returns up to n product ids from the head of the ranking.
func (p *Popularity) Top(n int) []int64 {
	if n > len(p.ranked) {
		n = len(p.ranked)
	}
	if n <= 0 {
		return []int64{}
	}
	return slices.Clone(p.ranked[:n])
}

// InCategory returns up to n ranked product ids whose catalog category is
// categoryID, preserving ranking order.
func (p *Popularity) InCategory(catalog Catalog, categoryID int64, n int) []int64 {
	if n <= 0 {
		return []int64{}
	}
	out := make([]int64, 0, min(n, len(p.ranked)))
	for _, id := range p.ranked {
		if len(out) >= n {
			break
		}
		if catalog[id].CategoryID == categoryID {
			out = append(out, id)
		}
	}
	return out
}

// Total returns the aggregate quantity sold of productID.
func (p *Popularity) Total(productID int64) float64 {
	return p.totals[productID]
}
