// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

/*
Package config provides centralized configuration management for Basketrec.

# Configuration Sources

Configuration is layered with koanf, later layers overriding earlier ones:
  - Built-in defaults (defaultConfig)
  - .env file in the working directory (or DOTENV_PATH), exported into the
    process environment without overriding variables that are already set
  - YAML config file (CONFIG_PATH, ./config.yaml, /etc/basketrec/config.yaml)
  - Environment variables mapped explicitly in envMappings

# Order History Sources

SOURCE_DRIVER selects where paid orders are read from:
  - postgres: the shop database (DB_HOST, DB_PORT, DB_NAME, DB_USER, DB_PASSWORD)
  - duckdb: an embedded database file (DUCKDB_PATH), optionally seeded with demo data
  - neo4j: a purchase graph (NEO4J_URI, NEO4J_USERNAME, NEO4J_PASSWORD)

# Validation

Validate runs the validate struct tags through the validation package and
then checks cross-field rules, such as connection settings of the selected
driver and MaxN >= DefaultN.
*/
package config
