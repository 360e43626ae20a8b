// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

package config

import (
	"fmt"
	"net/url"
	"time"
)

// Source drivers supported for loading order history.
const (
	DriverPostgres = "postgres"
	DriverDuckDB   = "duckdb"
	DriverNeo4j    = "neo4j"
)

// Config holds all application configuration loaded from defaults, an
// optional config file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults for all settings
//  2. .env: Optional dotenv file exported into the process environment
//  3. Config File: Optional YAML config file (config.yaml)
//  4. Environment Variables: Override any setting
//
// Configuration Categories:
//
//  1. Order history source:
//     - Source: which store the engine reads paid orders from
//     - Postgres, DuckDB, Neo4j: per-store connection settings
//     - Breaker: circuit breaker around source reads
//
//  2. Engine:
//     - Recommend: rebuild schedule, build limits and query limits
//
//  3. Operations:
//     - Server: ops HTTP listener (health, readiness, metrics, rebuild trigger)
//     - Logging: Log levels and output formats
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	db, err := database.NewPostgres(&cfg.Postgres)
type Config struct {
	Source    SourceConfig    `koanf:"source"`
	Postgres  PostgresConfig  `koanf:"postgres"`
	DuckDB    DuckDBConfig    `koanf:"duckdb"`
	Neo4j     Neo4jConfig     `koanf:"neo4j"`
	Recommend RecommendConfig `koanf:"recommend"`
	Breaker   BreakerConfig   `koanf:"breaker"`
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// SourceConfig selects the order history store.
type SourceConfig struct {
	// Driver is one of postgres, duckdb or neo4j.
	Driver string `koanf:"driver" validate:"oneof=postgres duckdb neo4j"`

	// QueryTimeout bounds a single read of the order history.
	QueryTimeout time.Duration `koanf:"query_timeout" validate:"gt=0s"`
}

// PostgresConfig holds PostgreSQL connection settings.
// Environment variables use the DB_ prefix (DB_HOST, DB_PORT, DB_NAME,
// DB_USER, DB_PASSWORD, DB_SSLMODE).
type PostgresConfig struct {
	Host         string `koanf:"host"`
	Port         int    `koanf:"port" validate:"min=1,max=65535"`
	Name         string `koanf:"name"`
	User         string `koanf:"user"`
	Password     string `koanf:"password"`
	SSLMode      string `koanf:"sslmode" validate:"oneof=disable allow prefer require verify-ca verify-full"`
	MaxOpenConns int    `koanf:"max_open_conns" validate:"min=1"`
	MaxIdleConns int    `koanf:"max_idle_conns" validate:"min=0"`
}

// DSN returns a lib/pq connection URL.
func (c *PostgresConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.Name,
		RawQuery: url.Values{"sslmode": []string{c.SSLMode}}.Encode(),
	}
	return u.String()
}

// DuckDBConfig holds embedded DuckDB settings.
type DuckDBConfig struct {
	// Path is the database file, or ":memory:".
	Path string `koanf:"path"`

	// Threads is the number of DuckDB threads (0 = runtime.NumCPU()).
	Threads int `koanf:"threads" validate:"min=0"`

	// SeedDemoData creates the shop schema and loads a small demo order
	// history when the orders table is empty.
	SeedDemoData bool `koanf:"seed_demo_data"`
}

// Neo4jConfig holds Neo4j connection settings.
type Neo4jConfig struct {
	URI      string `koanf:"uri"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	Database string `koanf:"database"`
}

// RecommendConfig holds recommendation engine settings.
//
// Environment Variables:
//   - RECOMMEND_REBUILD_INTERVAL: Time between scheduled rebuilds (default: 1h, 0 disables)
//   - RECOMMEND_REBUILD_ON_STARTUP: Build a snapshot when the service starts (default: true)
//   - RECOMMEND_MIN_INTERACTIONS: Minimum order lines to publish a snapshot (default: 1)
//   - RECOMMEND_WORKERS: Similarity workers (default: 0 = NumCPU)
//   - RECOMMEND_BUILD_TIMEOUT: Maximum time for one rebuild (default: 10m)
//   - RECOMMEND_DEFAULT_N: Default result count (default: 5)
//   - RECOMMEND_MAX_N: Maximum result count (default: 100)
//   - RECOMMEND_MIN_REBUILD_GAP: Minimum spacing of on-demand rebuilds (default: 30s)
type RecommendConfig struct {
	RebuildInterval  time.Duration `koanf:"rebuild_interval" validate:"gte=0s"`
	RebuildOnStartup bool          `koanf:"rebuild_on_startup"`
	MinInteractions  int           `koanf:"min_interactions" validate:"min=1"`
	Workers          int           `koanf:"workers" validate:"min=0"`
	BuildTimeout     time.Duration `koanf:"build_timeout" validate:"gt=0s"`
	DefaultN         int           `koanf:"default_n" validate:"min=1"`
	MaxN             int           `koanf:"max_n" validate:"min=1"`
	MinRebuildGap    time.Duration `koanf:"min_rebuild_gap" validate:"gte=0s"`
}

// BreakerConfig configures the circuit breaker around order history reads.
type BreakerConfig struct {
	// MaxRequests is the number of trial reads allowed while half-open.
	MaxRequests uint32 `koanf:"max_requests" validate:"min=1"`

	// Interval is the closed-state period after which failure counts reset.
	Interval time.Duration `koanf:"interval" validate:"gte=0s"`

	// Timeout is how long the breaker stays open before going half-open.
	Timeout time.Duration `koanf:"timeout" validate:"gt=0s"`

	// FailureThreshold is the number of consecutive failures that opens the breaker.
	FailureThreshold uint32 `koanf:"failure_threshold" validate:"min=1"`
}

// ServerConfig holds the ops HTTP listener settings.
type ServerConfig struct {
	// Addr is the listen address. Empty disables the ops server.
	Addr         string        `koanf:"addr"`
	ReadTimeout  time.Duration `koanf:"read_timeout" validate:"gt=0s"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"gt=0s"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// Load reads configuration from defaults, config file and environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
