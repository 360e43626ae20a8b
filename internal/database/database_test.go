// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomtom215/basketrec/internal/config"
)

// testDBSemaphore serializes DuckDB tests. Concurrent CGO calls from many
// parallel tests can hang under CI resource pressure, so each test holds the
// semaphore for its whole lifetime.
var testDBSemaphore = make(chan struct{}, 1)

// setupTestDB opens an in-memory DuckDB, optionally seeded, with timeout protection.
func setupTestDB(t *testing.T, seed bool) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() { <-testDBSemaphore })

	type result struct {
		db  *DB
		err error
	}
	resultCh := make(chan result, 1)
	go func() {
		db, err := NewDuckDB(&config.DuckDBConfig{Path: ":memory:", Threads: 1, SeedDemoData: seed}, 30*time.Second)
		resultCh <- result{db: db, err: err}
	}()

	select {
	case res := <-resultCh:
		if res.err != nil {
			t.Fatalf("Failed to create test database: %v", res.err)
		}
		t.Cleanup(func() { closeQuietly(res.db) })
		return res.db
	case <-time.After(120 * time.Second):
		t.Fatalf("Timeout: database creation took longer than 120s")
		return nil
	}
}

func TestNewDuckDB_Memory(t *testing.T) {
	db := setupTestDB(t, false)

	if db.Driver() != config.DriverDuckDB {
		t.Errorf("Driver() = %q, want %q", db.Driver(), config.DriverDuckDB)
	}
	if err := db.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
	if db.Conn() == nil {
		t.Error("Conn() = nil")
	}
}

func TestNewDuckDB_FileSeeded(t *testing.T) {
	testDBSemaphore <- struct{}{}
	t.Cleanup(func() { <-testDBSemaphore })

	path := filepath.Join(t.TempDir(), "nested", "shop.duckdb")
	cfg := &config.DuckDBConfig{Path: path, Threads: 1, SeedDemoData: true}

	db, err := NewDuckDB(cfg, time.Minute)
	if err != nil {
		t.Fatalf("NewDuckDB() error = %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// Reopen read-only; the seeded history must still be there.
	cfg.SeedDemoData = false
	db, err = NewDuckDB(cfg, time.Minute)
	if err != nil {
		t.Fatalf("NewDuckDB(read-only) error = %v", err)
	}
	defer closeQuietly(db)

	got, err := db.LoadPaidInteractions(context.Background())
	if err != nil {
		t.Fatalf("LoadPaidInteractions() error = %v", err)
	}
	if len(got) != demoPaidLines {
		t.Errorf("len(interactions) = %d, want %d", len(got), demoPaidLines)
	}
}

func TestNewDuckDB_MissingFileReadOnly(t *testing.T) {
	testDBSemaphore <- struct{}{}
	t.Cleanup(func() { <-testDBSemaphore })

	cfg := &config.DuckDBConfig{Path: filepath.Join(t.TempDir(), "absent.duckdb")}
	if db, err := NewDuckDB(cfg, time.Minute); err == nil {
		closeQuietly(db)
		t.Fatal("NewDuckDB() error = nil, want error for missing read-only file")
	}
}

func TestDB_CloseNil(t *testing.T) {
	t.Parallel()

	if err := (&DB{}).Close(); err != nil {
		t.Errorf("Close() on empty DB = %v, want nil", err)
	}
}
