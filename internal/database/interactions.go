// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/basketrec/internal/metrics"
	"github.com/tomtom215/basketrec/internal/recommend"
)

// paidInteractionsQuery returns one row per order line of every paid order,
// joined with product, category and brand metadata, oldest first. Numeric
// columns are cast so DECIMAL and INTEGER columns scan the same way on both
// drivers.
const paidInteractionsQuery = `
	SELECT
		o.user_id,
		oi.product_id,
		CAST(oi.quantity AS DOUBLE PRECISION),
		o.created_at,
		p.category_id,
		p.brand_id,
		CAST(p.volume AS DOUBLE PRECISION),
		CAST(p.strength AS DOUBLE PRECISION),
		CAST(p.price AS DOUBLE PRECISION),
		p.name,
		c.name,
		b.name
	FROM orders o
	JOIN order_items oi ON o.id = oi.order_id
	JOIN products p ON oi.product_id = p.id
	JOIN categories c ON p.category_id = c.id
	JOIN brands b ON p.brand_id = b.id
	WHERE o.status = 'paid'
	ORDER BY o.created_at, o.id, oi.product_id
`

var _ recommend.InteractionSource = (*DB)(nil)

// LoadPaidInteractions reads the full paid-order history.
func (db *DB) LoadPaidInteractions(ctx context.Context) ([]recommend.Interaction, error) {
	start := time.Now()
	interactions, err := db.loadPaidInteractions(ctx)
	metrics.RecordSourceLoad(db.driver, time.Since(start), len(interactions), err)
	return interactions, err
}

func (db *DB) loadPaidInteractions(ctx context.Context) ([]recommend.Interaction, error) {
	if db.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, db.queryTimeout)
		defer cancel()
	}

	rows, err := db.conn.QueryContext(ctx, paidInteractionsQuery)
	if err != nil {
		return nil, fmt.Errorf("query paid interactions: %w", err)
	}
	defer closeWithLog(rows, "paid interaction rows")

	var interactions []recommend.Interaction
	for rows.Next() {
		var (
			in       recommend.Interaction
			volume   sql.NullFloat64
			strength sql.NullFloat64
			price    sql.NullFloat64
		)

		if err := rows.Scan(
			&in.UserID,
			&in.ProductID,
			&in.Quantity,
			&in.OrderedAt,
			&in.CategoryID,
			&in.BrandID,
			&volume,
			&strength,
			&price,
			&in.ProductName,
			&in.CategoryName,
			&in.BrandName,
		); err != nil {
			return nil, fmt.Errorf("scan paid interaction: %w", err)
		}

		in.Volume = volume.Float64
		in.Strength = strength.Float64
		in.Price = price.Float64
		interactions = append(interactions, in)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate paid interactions: %w", err)
	}

	return interactions, nil
}
