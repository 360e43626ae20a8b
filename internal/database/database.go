// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	_ "github.com/lib/pq"

	"github.com/tomtom215/basketrec/internal/config"
	"github.com/tomtom215/basketrec/internal/logging"
)

const (
	// pingTimeout bounds the connectivity check when a database is opened.
	pingTimeout = 5 * time.Second

	// memoryPath opens an in-process DuckDB database.
	memoryPath = ":memory:"
)

// DB wraps a SQL connection to the shop's order history. The same query runs
// against PostgreSQL (lib/pq) and embedded DuckDB.
type DB struct {
	conn         *sql.DB
	driver       string
	queryTimeout time.Duration
}

// NewPostgres opens the shop database through lib/pq and verifies it is reachable.
func NewPostgres(cfg *config.PostgresConfig, queryTimeout time.Duration) (*DB, error) {
	conn, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxLifetime(time.Hour)

	db := &DB{conn: conn, driver: config.DriverPostgres, queryTimeout: queryTimeout}
	if err := db.ping(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to connect to postgres at %s:%d: %w", cfg.Host, cfg.Port, err)
	}

	logging.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Name).
		Msg("Connected to PostgreSQL order history")

	return db, nil
}

// NewDuckDB opens an embedded DuckDB database. With SeedDemoData set, the
// shop schema is created and a demo order history is loaded into an empty
// database. Without it, files are opened read-only so another process may
// own the writer lock.
func NewDuckDB(cfg *config.DuckDBConfig, queryTimeout time.Duration) (*DB, error) {
	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	path := cfg.Path
	accessMode := "read_only"
	if path == memoryPath || path == "" {
		path = ""
		accessMode = "read_write"
	} else if cfg.SeedDemoData {
		accessMode = "read_write"
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
			}
		}
	}

	connStr := fmt.Sprintf("%s?access_mode=%s&threads=%d", path, accessMode, threads)
	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}

	db := &DB{conn: conn, driver: config.DriverDuckDB, queryTimeout: queryTimeout}
	if err := db.ping(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to open duckdb at %q: %w", cfg.Path, err)
	}

	if cfg.SeedDemoData {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := db.SeedDemoData(ctx); err != nil {
			closeQuietly(conn)
			return nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	logging.Info().
		Str("path", cfg.Path).
		Str("access_mode", accessMode).
		Int("threads", threads).
		Msg("Opened DuckDB order history")

	return db, nil
}

func (db *DB) ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return db.conn.PingContext(ctx)
}

// Ping verifies the database connection is alive.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Conn returns the underlying SQL connection.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Driver returns the driver name (postgres or duckdb).
func (db *DB) Driver() string {
	return db.driver
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	return db.conn.Close()
}
