// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

package database

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/tomtom215/basketrec/internal/recommend"
)

// demoPaidLines is the number of order lines in paid demo orders.
const demoPaidLines = 14

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestLoadPaidInteractions_Demo(t *testing.T) {
	db := setupTestDB(t, true)

	got, err := db.LoadPaidInteractions(context.Background())
	if err != nil {
		t.Fatalf("LoadPaidInteractions() error = %v", err)
	}
	if len(got) != demoPaidLines {
		t.Fatalf("len(interactions) = %d, want %d", len(got), demoPaidLines)
	}

	// Oldest paid order first.
	for i := 1; i < len(got); i++ {
		if got[i].OrderedAt.Before(got[i-1].OrderedAt) {
			t.Fatalf("interactions not ordered by order time at %d: %v before %v",
				i, got[i].OrderedAt, got[i-1].OrderedAt)
		}
	}
	if got[0].UserID != 1 {
		t.Errorf("first interaction user = %d, want 1", got[0].UserID)
	}

	for _, in := range got {
		// Order 4 (pending) and order 6 (cancelled) must not appear.
		if in.UserID == 2 && in.ProductID == 302 {
			t.Error("pending order line for user 2 / product 302 was loaded")
		}
		if in.UserID == 3 && in.ProductID == 301 {
			t.Error("cancelled order line for user 3 / product 301 was loaded")
		}
	}
}

func TestLoadPaidInteractions_Metadata(t *testing.T) {
	db := setupTestDB(t, true)

	got, err := db.LoadPaidInteractions(context.Background())
	if err != nil {
		t.Fatalf("LoadPaidInteractions() error = %v", err)
	}

	find := func(user, product int64) *recommend.Interaction {
		for i := range got {
			if got[i].UserID == user && got[i].ProductID == product {
				return &got[i]
			}
		}
		t.Fatalf("interaction user=%d product=%d not found", user, product)
		return nil
	}

	beer := find(3, 201)
	if beer.Quantity != 12 {
		t.Errorf("Quantity = %v, want 12", beer.Quantity)
	}
	if beer.CategoryID != 2 || beer.CategoryName != "Beer" {
		t.Errorf("category = %d/%q, want 2/Beer", beer.CategoryID, beer.CategoryName)
	}
	if beer.BrandID != 2 || beer.BrandName != "Baltika" {
		t.Errorf("brand = %d/%q, want 2/Baltika", beer.BrandID, beer.BrandName)
	}
	if beer.ProductName != "Baltika No. 7" {
		t.Errorf("ProductName = %q, want Baltika No. 7", beer.ProductName)
	}
	if !near(beer.Volume, 0.5) || !near(beer.Strength, 5.4) || !near(beer.Price, 1.89) {
		t.Errorf("volume/strength/price = %v/%v/%v, want 0.5/5.4/1.89", beer.Volume, beer.Strength, beer.Price)
	}

	// NULL volume and strength read as zero.
	set := find(4, 303)
	if set.Volume != 0 || set.Strength != 0 {
		t.Errorf("volume/strength = %v/%v, want 0/0 for NULL columns", set.Volume, set.Strength)
	}
	if !near(set.Price, 14.99) {
		t.Errorf("Price = %v, want 14.99", set.Price)
	}
}

func TestLoadPaidInteractions_EmptySchema(t *testing.T) {
	db := setupTestDB(t, false)
	if err := db.CreateSchema(context.Background()); err != nil {
		t.Fatalf("CreateSchema() error = %v", err)
	}

	got, err := db.LoadPaidInteractions(context.Background())
	if err != nil {
		t.Fatalf("LoadPaidInteractions() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len(interactions) = %d, want 0", len(got))
	}
}

func TestLoadPaidInteractions_MissingTables(t *testing.T) {
	db := setupTestDB(t, false)

	if _, err := db.LoadPaidInteractions(context.Background()); err == nil {
		t.Fatal("LoadPaidInteractions() error = nil, want error without schema")
	}
}

func TestLoadPaidInteractions_Cancelled(t *testing.T) {
	db := setupTestDB(t, true)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := db.LoadPaidInteractions(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("LoadPaidInteractions() error = %v, want context.Canceled", err)
	}
}

func TestSeedDemoData_Idempotent(t *testing.T) {
	db := setupTestDB(t, true)

	if err := db.SeedDemoData(context.Background()); err != nil {
		t.Fatalf("second SeedDemoData() error = %v", err)
	}

	var orders int
	if err := db.Conn().QueryRow(`SELECT COUNT(*) FROM orders`).Scan(&orders); err != nil {
		t.Fatalf("count orders: %v", err)
	}
	if orders != len(demoOrders) {
		t.Errorf("orders = %d, want %d", orders, len(demoOrders))
	}
}

func TestLoadPaidInteractions_BuildsSnapshot(t *testing.T) {
	db := setupTestDB(t, true)

	got, err := db.LoadPaidInteractions(context.Background())
	if err != nil {
		t.Fatalf("LoadPaidInteractions() error = %v", err)
	}

	snap, err := recommend.BuildSnapshot(context.Background(), got, 1)
	if err != nil {
		t.Fatalf("BuildSnapshot() error = %v", err)
	}
	if snap.UserCount() != 5 {
		t.Errorf("UserCount() = %d, want 5", snap.UserCount())
	}
	if snap.ProductCount() != 8 {
		t.Errorf("ProductCount() = %d, want 8", snap.ProductCount())
	}
	if top := snap.Popularity.Top(1); len(top) != 1 || top[0] != 201 {
		t.Errorf("Popularity.Top(1) = %v, want [201]", top)
	}
}
