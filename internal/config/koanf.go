// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/basketrec/config.yaml",
	"/etc/basketrec/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DotEnvPathEnvVar is the environment variable that can override the .env file path.
const DotEnvPathEnvVar = "DOTENV_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Driver:       DriverPostgres,
			QueryTimeout: 2 * time.Minute,
		},
		Postgres: PostgresConfig{
			Host:         "localhost",
			Port:         5432,
			Name:         "alcohol_shop",
			User:         "postgres",
			Password:     "123",
			SSLMode:      "disable",
			MaxOpenConns: 10,
			MaxIdleConns: 3,
		},
		DuckDB: DuckDBConfig{
			Path:         "/data/basketrec.duckdb",
			Threads:      0,
			SeedDemoData: false,
		},
		Neo4j: Neo4jConfig{
			URI:      "neo4j://localhost:7687",
			Username: "neo4j",
			Password: "",
			Database: "neo4j",
		},
		Recommend: RecommendConfig{
			RebuildInterval:  time.Hour,
			RebuildOnStartup: true,
			MinInteractions:  1,
			Workers:          0, // 0 = use runtime.NumCPU()
			BuildTimeout:     10 * time.Minute,
			DefaultN:         5,
			MaxN:             100,
			MinRebuildGap:    30 * time.Second,
		},
		Breaker: BreakerConfig{
			MaxRequests:      1,
			Interval:         0, // never reset counts while closed
			Timeout:          time.Minute,
			FailureThreshold: 3,
		},
		Server: ServerConfig{
			Addr:         ":9090",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. .env: Optional dotenv file, exported without overriding the real environment
//  3. Config File: Optional YAML config file (if exists)
//  4. Environment Variables: Override any setting
func LoadWithKoanf() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadDotEnv exports variables from a .env file into the process environment.
// Variables already set in the environment are left untouched. A missing
// file is not an error.
func loadDotEnv() error {
	path := ".env"
	if p := os.Getenv(DotEnvPathEnvVar); p != "" {
		path = p
	}

	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envMappings maps environment variable names (lowercased) to koanf paths.
// Unmapped variables are ignored.
var envMappings = map[string]string{
	// Source selection
	"source_driver":        "source.driver",
	"source_query_timeout": "source.query_timeout",

	// PostgreSQL (same names as the shop's other services)
	"db_host":           "postgres.host",
	"db_port":           "postgres.port",
	"db_name":           "postgres.name",
	"db_user":           "postgres.user",
	"db_password":       "postgres.password",
	"db_sslmode":        "postgres.sslmode",
	"db_max_open_conns": "postgres.max_open_conns",
	"db_max_idle_conns": "postgres.max_idle_conns",

	// DuckDB
	"duckdb_path":           "duckdb.path",
	"duckdb_threads":        "duckdb.threads",
	"duckdb_seed_demo_data": "duckdb.seed_demo_data",

	// Neo4j
	"neo4j_uri":      "neo4j.uri",
	"neo4j_username": "neo4j.username",
	"neo4j_password": "neo4j.password",
	"neo4j_database": "neo4j.database",

	// Recommendation engine
	"recommend_rebuild_interval":   "recommend.rebuild_interval",
	"recommend_rebuild_on_startup": "recommend.rebuild_on_startup",
	"recommend_min_interactions":   "recommend.min_interactions",
	"recommend_workers":            "recommend.workers",
	"recommend_build_timeout":      "recommend.build_timeout",
	"recommend_default_n":          "recommend.default_n",
	"recommend_max_n":              "recommend.max_n",
	"recommend_min_rebuild_gap":    "recommend.min_rebuild_gap",

	// Circuit breaker
	"breaker_max_requests":      "breaker.max_requests",
	"breaker_interval":          "breaker.interval",
	"breaker_timeout":           "breaker.timeout",
	"breaker_failure_threshold": "breaker.failure_threshold",

	// Ops server
	"ops_addr":          "server.addr",
	"ops_read_timeout":  "server.read_timeout",
	"ops_write_timeout": "server.write_timeout",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - DB_HOST -> postgres.host
//   - DUCKDB_PATH -> duckdb.path
//   - RECOMMEND_REBUILD_INTERVAL -> recommend.rebuild_interval
//   - OPS_ADDR -> server.addr
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}

	// For unmapped keys, return empty string to skip them
	return ""
}
