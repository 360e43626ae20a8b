// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

package recommend

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestNewIndex(t *testing.T) {
	t.Parallel()

	x := NewIndex([]int64{30, 10, 20, 10, 30})

	if x.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", x.Len())
	}
	if got, want := x.IDs(), []int64{10, 20, 30}; !reflect.DeepEqual(got, want) {
		t.Errorf("IDs() = %v, want %v", got, want)
	}
	for p, id := range []int64{10, 20, 30} {
		got, ok := x.Position(id)
		if !ok || got != p {
			t.Errorf("Position(%d) = %d, %v, want %d, true", id, got, ok, p)
		}
		if x.ID(p) != id {
			t.Errorf("ID(%d) = %d, want %d", p, x.ID(p), id)
		}
	}
	if _, ok := x.Position(99); ok {
		t.Error("Position(99) found, want missing")
	}
}

func TestIndex_IDsReturnsCopy(t *testing.T) {
	t.Parallel()

	x := NewIndex([]int64{1, 2})
	ids := x.IDs()
	ids[0] = 42

	if x.ID(0) != 1 {
		t.Errorf("ID(0) = %d after mutating IDs() result, want 1", x.ID(0))
	}
}

func TestBuildMatrix(t *testing.T) {
	t.Parallel()

	m, catalog, err := BuildMatrix(fixtureInteractions())
	if err != nil {
		t.Fatalf("BuildMatrix() error = %v", err)
	}

	if m.Rows() != 4 || m.Cols() != 5 {
		t.Fatalf("shape = %dx%d, want 4x5", m.Rows(), m.Cols())
	}

	tests := []struct {
		user, product int64
		want          float64
	}{
		{1, 10, 2}, // two lines summed
		{1, 11, 1},
		{1, 20, 0},
		{2, 11, 2},
		{3, 20, 3},
		{4, 30, 1},
		{4, 10, 0},
		{99, 10, 0}, // unknown user
		{1, 99, 0},  // unknown product
	}
	for _, tt := range tests {
		if got := m.Quantity(tt.user, tt.product); got != tt.want {
			t.Errorf("Quantity(%d, %d) = %v, want %v", tt.user, tt.product, got, tt.want)
		}
	}

	if len(catalog) != m.Cols() {
		t.Errorf("len(catalog) = %d, want one entry per column (%d)", len(catalog), m.Cols())
	}
	for _, id := range m.Products.IDs() {
		f, ok := catalog[id]
		if !ok {
			t.Errorf("catalog missing product %d", id)
			continue
		}
		if f.ProductID != id || f.Name != productNames[id] {
			t.Errorf("catalog[%d] = %+v, want name %q", id, f, productNames[id])
		}
	}
}

func TestBuildMatrix_FirstOccurrenceSuppliesCatalog(t *testing.T) {
	t.Parallel()

	first := line(1, 10, 1)
	later := line(2, 10, 1)
	later.Price = 1
	later.ProductName = "Renamed"

	_, catalog, err := BuildMatrix([]Interaction{first, later})
	if err != nil {
		t.Fatalf("BuildMatrix() error = %v", err)
	}

	if got := catalog[10]; got.Name != "Merlot" || got.Price != first.Price {
		t.Errorf("catalog[10] = %+v, want first occurrence", got)
	}
}

func TestBuildMatrix_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		interactions []Interaction
		wantNoData   bool
	}{
		{name: "empty history", interactions: nil, wantNoData: true},
		{name: "negative quantity", interactions: []Interaction{line(1, 10, -1)}},
		{name: "NaN quantity", interactions: []Interaction{line(1, 10, math.NaN())}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := BuildMatrix(tt.interactions)
			if err == nil {
				t.Fatal("BuildMatrix() error = nil, want error")
			}
			if errors.Is(err, ErrNoData) != tt.wantNoData {
				t.Errorf("errors.Is(err, ErrNoData) = %v, want %v (err = %v)", !tt.wantNoData, tt.wantNoData, err)
			}
		})
	}
}

func TestBuildMatrix_Deterministic(t *testing.T) {
	t.Parallel()

	a, catA, err := BuildMatrix(fixtureInteractions())
	if err != nil {
		t.Fatalf("BuildMatrix() error = %v", err)
	}
	b, catB, err := BuildMatrix(fixtureInteractions())
	if err != nil {
		t.Fatalf("BuildMatrix() error = %v", err)
	}

	if !reflect.DeepEqual(a.cells, b.cells) {
		t.Errorf("cells differ between identical builds: %v vs %v", a.cells, b.cells)
	}
	if !reflect.DeepEqual(a.Users.IDs(), b.Users.IDs()) || !reflect.DeepEqual(a.Products.IDs(), b.Products.IDs()) {
		t.Error("index order differs between identical builds")
	}
	if !reflect.DeepEqual(catA, catB) {
		t.Error("catalog differs between identical builds")
	}
}

func TestMatrix_RowColumnCopies(t *testing.T) {
	t.Parallel()

	m, _, err := BuildMatrix(fixtureInteractions())
	if err != nil {
		t.Fatalf("BuildMatrix() error = %v", err)
	}

	u, _ := m.Users.Position(1)
	p, _ := m.Products.Position(10)

	row := m.Row(u)
	row[p] = 100
	col := m.Column(p)
	col[u] = 100

	if m.At(u, p) != 2 {
		t.Errorf("At() = %v after mutating copies, want 2", m.At(u, p))
	}
	if got, want := m.Column(p), []float64{2, 1, 0, 0}; !reflect.DeepEqual(got, want) {
		t.Errorf("Column(10) = %v, want %v", got, want)
	}
	if got, want := m.ColumnSums(), []float64{3, 3, 4, 2, 1}; !reflect.DeepEqual(got, want) {
		t.Errorf("ColumnSums() = %v, want %v", got, want)
	}
}
