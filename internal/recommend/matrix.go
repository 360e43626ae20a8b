// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

package recommend

import (
	"fmt"
	"math"
	"slices"
)

// Matrix is a dense user x product purchase-quantity matrix.
// Cell (u, p) holds the lifetime quantity of product p bought by user u.
type Matrix struct {
	// Users indexes the rows.
	Users *Index

	// Products indexes the columns.
	Products *Index

	cells []float64 // row-major, len = Users.Len() * Products.Len()
}

// Catalog maps product ids to their display attributes.
type Catalog map[int64]ItemFeatures

// BuildMatrix aggregates interactions into a matrix and a deduplicated
// product catalog. The first interaction seen for a product supplies its
// catalog entry.
func BuildMatrix(interactions []Interaction) (*Matrix, Catalog, error) {
	if len(interactions) == 0 {
		return nil, nil, ErrNoData
	}

	userIDs := make([]int64, 0, len(interactions))
	productIDs := make([]int64, 0, len(interactions))
	for i := range interactions {
		in := &interactions[i]
		if in.Quantity < 0 || math.IsNaN(in.Quantity) || math.IsInf(in.Quantity, 0) {
			return nil, nil, fmt.Errorf("invalid quantity %v for user %d product %d", in.Quantity, in.UserID, in.ProductID)
		}
		userIDs = append(userIDs, in.UserID)
		productIDs = append(productIDs, in.ProductID)
	}

	m := &Matrix{
		Users:    NewIndex(userIDs),
		Products: NewIndex(productIDs),
	}
	m.cells = make([]float64, m.Users.Len()*m.Products.Len())

	catalog := make(Catalog, m.Products.Len())
	for i := range interactions {
		in := &interactions[i]
		u, _ := m.Users.Position(in.UserID)
		p, _ := m.Products.Position(in.ProductID)
		m.cells[u*m.Products.Len()+p] += in.Quantity

		if _, seen := catalog[in.ProductID]; !seen {
			catalog[in.ProductID] = ItemFeatures{
				ProductID:    in.ProductID,
				Name:         in.ProductName,
				CategoryID:   in.CategoryID,
				CategoryName: in.CategoryName,
				BrandID:      in.BrandID,
				BrandName:    in.BrandName,
				Volume:       in.Volume,
				Strength:     in.Strength,
				Price:        in.Price,
			}
		}
	}

	return m, catalog, nil
}

// Rows returns the number of users.
func (m *Matrix) Rows() int {
	return m.Users.Len()
}

// Cols returns the number of products.
func (m *Matrix) Cols() int {
	return m.Products.Len()
}

// At returns the quantity at row u, column p.
func (m *Matrix) At(u, p int) float64 {
	return m.cells[u*m.Cols()+p]
}

// Row returns a copy of row u.
func (m *Matrix) Row(u int) []float64 {
	return slices.Clone(m.row(u))
}

// Column returns a copy of column p.
func (m *Matrix) Column(p int) []float64 {
	col := make([]float64, m.Rows())
	for u := range col {
		col[u] = m.At(u, p)
	}
	return col
}

// Quantity returns the lifetime quantity of productID bought by userID,
// or 0 when either id is unknown.
func (m *Matrix) Quantity(userID, productID int64) float64 {
	u, ok := m.Users.Position(userID)
	if !ok {
		return 0
	}
	p, ok := m.Products.Position(productID)
	if !ok {
		return 0
	}
	return m.At(u, p)
}

// ColumnSums returns the total quantity per product in column order.
func (m *Matrix) ColumnSums() []float64 {
	sums := make([]float64, m.Cols())
	for u := 0; u < m.Rows(); u++ {
		for p, v := range m.row(u) {
			sums[p] += v
		}
	}
	return sums
}

// row returns the backing slice of row u. Callers must not modify it.
func (m *Matrix) row(u int) []float64 {
	cols := m.Cols()
	return m.cells[u*cols : (u+1)*cols]
}

// transpose returns the product x user matrix backing slice.
func (m *Matrix) transpose() []float64 {
	rows, cols := m.Rows(), m.Cols()
	t := make([]float64, len(m.cells))
	for u := 0; u < rows; u++ {
		for p := 0; p < cols; p++ {
			t[p*rows+u] = m.cells[u*cols+p]
		}
	}
	return t
}
