// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

package recommend

import (
	"slices"
)

// Index maps identifiers to dense positions and back.
// Positions follow ascending id order and never change for the lifetime of
// the snapshot that owns the index.
type Index struct {
	pos map[int64]int
	ids []int64
}

// NewIndex builds an index over the distinct values of ids.
func NewIndex(ids []int64) *Index {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	pos := make(map[int64]int, len(sorted))
	for i, id := range sorted {
		pos[id] = i
	}

	return &Index{pos: pos, ids: sorted}
}

// Position returns the dense position of id.
func (x *Index) Position(id int64) (int, bool) {
	p, ok := x.pos[id]
	return p, ok
}

// ID returns the identifier at position p. It panics if p is out of range.
func (x *Index) ID(p int) int64 {
	return x.ids[p]
}

// Len returns the number of indexed identifiers.
func (x *Index) Len() int {
	return len(x.ids)
}

// IDs returns a copy of the identifiers in position order.
func (x *Index) IDs() []int64 {
	return slices.Clone(x.ids)
}
