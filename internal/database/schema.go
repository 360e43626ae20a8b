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

	"github.com/tomtom215/basketrec/internal/logging"
)

// schemaStatements create the subset of the shop schema the recommender
// reads. The statements are valid for both DuckDB and PostgreSQL.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id BIGINT PRIMARY KEY,
		name VARCHAR NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS brands (
		id BIGINT PRIMARY KEY,
		name VARCHAR NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id BIGINT PRIMARY KEY,
		name VARCHAR NOT NULL,
		category_id BIGINT NOT NULL REFERENCES categories(id),
		brand_id BIGINT NOT NULL REFERENCES brands(id),
		volume DECIMAL(6,3),
		strength DECIMAL(5,2),
		price DECIMAL(10,2) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id BIGINT PRIMARY KEY,
		user_id BIGINT NOT NULL,
		status VARCHAR NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		order_id BIGINT NOT NULL REFERENCES orders(id),
		product_id BIGINT NOT NULL REFERENCES products(id),
		quantity INTEGER NOT NULL,
		PRIMARY KEY (order_id, product_id)
	)`,
}

// CreateSchema creates the shop tables if they do not exist.
func (db *DB) CreateSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

type demoProduct struct {
	id, categoryID, brandID int64
	name                    string
	volume, strength        sql.NullFloat64
	price                   float64
}

type demoOrder struct {
	id, userID int64
	status     string
	createdAt  time.Time
	lines      map[int64]int // product id -> quantity
}

func some(v float64) sql.NullFloat64 { return sql.NullFloat64{Float64: v, Valid: true} }

func day(month time.Month, d int) time.Time {
	return time.Date(2026, month, d, 12, 0, 0, 0, time.UTC)
}

var (
	demoCategories = map[int64]string{1: "Wine", 2: "Beer", 3: "Whisky"}
	demoBrands     = map[int64]string{1: "Vina Sol", 2: "Baltika", 3: "Jameson", 4: "Hoegaarden"}

	demoProducts = []demoProduct{
		{101, 1, 1, "Vina Sol Blanco", some(0.75), some(11.5), 9.99},
		{102, 1, 1, "Vina Sol Tinto", some(0.75), some(13.0), 10.49},
		{201, 2, 2, "Baltika No. 7", some(0.5), some(5.4), 1.89},
		{202, 2, 4, "Hoegaarden White", some(0.33), some(4.9), 2.49},
		{203, 2, 2, "Baltika No. 9", some(0.5), some(8.0), 1.99},
		{301, 3, 3, "Jameson Original", some(0.7), some(40.0), 24.99},
		{302, 3, 3, "Jameson Black Barrel", some(0.7), some(40.0), 34.99},
		{303, 3, 3, "Jameson Miniature Set", sql.NullFloat64{}, sql.NullFloat64{}, 14.99},
	}

	demoOrders = []demoOrder{
		{1, 1, "paid", day(time.January, 5), map[int64]int{101: 2, 201: 6}},
		{2, 1, "paid", day(time.January, 20), map[int64]int{301: 1}},
		{3, 2, "paid", day(time.January, 7), map[int64]int{101: 1, 102: 1, 202: 4}},
		{4, 2, "pending", day(time.February, 1), map[int64]int{302: 1}},
		{5, 3, "paid", day(time.January, 10), map[int64]int{201: 12, 203: 6}},
		{6, 3, "cancelled", day(time.January, 11), map[int64]int{301: 3}},
		{7, 4, "paid", day(time.January, 12), map[int64]int{301: 1, 302: 1, 303: 2}},
		{8, 5, "paid", day(time.January, 15), map[int64]int{102: 2, 301: 1}},
		{9, 4, "paid", day(time.February, 3), map[int64]int{201: 1}},
	}
)

// SeedDemoData creates the schema and loads a small demo order history
// when the orders table is empty. It is a no-op on a populated database.
func (db *DB) SeedDemoData(ctx context.Context) error {
	if err := db.CreateSchema(ctx); err != nil {
		return err
	}

	var existing int64
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&existing); err != nil {
		return fmt.Errorf("count orders: %w", err)
	}
	if existing > 0 {
		logging.Debug().Int64("orders", existing).Msg("Orders present, skipping demo seed")
		return nil
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer rollbackQuietly(tx)

	for id, name := range demoCategories {
		if _, err := tx.ExecContext(ctx, `INSERT INTO categories (id, name) VALUES ($1, $2)`, id, name); err != nil {
			return fmt.Errorf("insert category %d: %w", id, err)
		}
	}
	for id, name := range demoBrands {
		if _, err := tx.ExecContext(ctx, `INSERT INTO brands (id, name) VALUES ($1, $2)`, id, name); err != nil {
			return fmt.Errorf("insert brand %d: %w", id, err)
		}
	}
	for _, p := range demoProducts {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO products (id, name, category_id, brand_id, volume, strength, price)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			p.id, p.name, p.categoryID, p.brandID, p.volume, p.strength, p.price,
		); err != nil {
			return fmt.Errorf("insert product %d: %w", p.id, err)
		}
	}
	lines := 0
	for _, o := range demoOrders {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO orders (id, user_id, status, created_at) VALUES ($1, $2, $3, $4)`,
			o.id, o.userID, o.status, o.createdAt,
		); err != nil {
			return fmt.Errorf("insert order %d: %w", o.id, err)
		}
		for productID, qty := range o.lines {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO order_items (order_id, product_id, quantity) VALUES ($1, $2, $3)`,
				o.id, productID, qty,
			); err != nil {
				return fmt.Errorf("insert order item %d/%d: %w", o.id, productID, err)
			}
			lines++
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed transaction: %w", err)
	}

	logging.Info().
		Int("products", len(demoProducts)).
		Int("orders", len(demoOrders)).
		Int("order_items", lines).
		Msg("Seeded demo order history")

	return nil
}
