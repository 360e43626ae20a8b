// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

package config

import (
	"fmt"

	"github.com/tomtom215/basketrec/internal/validation"
)

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// Validate checks that required configuration is present and valid.
// Field-level rules come from the validate struct tags; cross-field rules
// are checked afterwards.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}

	if err := c.validateSource(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateSource checks the settings of the selected driver only.
func (c *Config) validateSource() error {
	switch c.Source.Driver {
	case DriverPostgres:
		if c.Postgres.Host == "" {
			return fmt.Errorf("DB_HOST is required when SOURCE_DRIVER=postgres")
		}
		if c.Postgres.Name == "" {
			return fmt.Errorf("DB_NAME is required when SOURCE_DRIVER=postgres")
		}
		if c.Postgres.User == "" {
			return fmt.Errorf("DB_USER is required when SOURCE_DRIVER=postgres")
		}
		if c.Postgres.MaxIdleConns > c.Postgres.MaxOpenConns {
			return fmt.Errorf("DB_MAX_IDLE_CONNS (%d) must not exceed DB_MAX_OPEN_CONNS (%d)",
				c.Postgres.MaxIdleConns, c.Postgres.MaxOpenConns)
		}
	case DriverDuckDB:
		if c.DuckDB.Path == "" {
			return fmt.Errorf("DUCKDB_PATH is required when SOURCE_DRIVER=duckdb")
		}
	case DriverNeo4j:
		if err := validateNeo4jURI(c.Neo4j.URI); err != nil {
			return fmt.Errorf("NEO4J_URI is invalid: %w", err)
		}
		if c.Neo4j.Username == "" {
			return fmt.Errorf("NEO4J_USERNAME is required when SOURCE_DRIVER=neo4j")
		}
	}
	return nil
}

// validateRecommend validates cross-field engine limits.
func (c *Config) validateRecommend() error {
	if c.Recommend.MaxN < c.Recommend.DefaultN {
		return fmt.Errorf("RECOMMEND_MAX_N (%d) must be >= RECOMMEND_DEFAULT_N (%d)",
			c.Recommend.MaxN, c.Recommend.DefaultN)
	}
	return nil
}

// validateLogging validates the logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
