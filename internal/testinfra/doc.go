// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

// Package testinfra starts Docker containers for integration tests with
// testcontainers-go. Everything here is behind the integration build tag:
//
//	go test -tags integration ./...
//
// # PostgreSQL
//
//	func TestPostgresSource(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    pg, err := testinfra.NewPostgresContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    testinfra.CleanupContainer(t, pg)
//
//	    db, err := database.NewPostgres(&pg.Config, time.Minute)
//	}
//
// # Neo4j
//
// NewNeo4jContainer starts a Neo4j 5 community server with authentication
// and returns a config.Neo4jConfig pointing at its bolt port.
package testinfra
