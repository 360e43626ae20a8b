// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

//go:build integration

package testinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/tomtom215/basketrec/internal/config"
)

const (
	// DefaultNeo4jImage is the Neo4j image used for integration tests.
	DefaultNeo4jImage = "neo4j:5-community"

	neo4jBoltPort = "7687/tcp"
	neo4jPassword = "basketrec-test"
)

// Neo4jContainer is a running Neo4j container.
type Neo4jContainer struct {
	testcontainers.Container
	Config config.Neo4jConfig
}

// NewNeo4jContainer starts Neo4j with authentication enabled and returns
// connection settings for it.
func NewNeo4jContainer(ctx context.Context) (*Neo4jContainer, error) {
	req := testcontainers.ContainerRequest{
		Image:        DefaultNeo4jImage,
		ExposedPorts: []string{neo4jBoltPort},
		Env: map[string]string{
			"NEO4J_AUTH": "neo4j/" + neo4jPassword,
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort(neo4jBoltPort),
			wait.ForLog("Started."),
		).WithStartupTimeout(120 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("create neo4j container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get container host: %w", err)
	}
	mapped, err := container.MappedPort(ctx, neo4jBoltPort)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get mapped port: %w", err)
	}

	return &Neo4jContainer{
		Container: container,
		Config: config.Neo4jConfig{
			URI:      fmt.Sprintf("neo4j://%s:%s", host, mapped.Port()),
			Username: "neo4j",
			Password: neo4jPassword,
			Database: "neo4j",
		},
	}, nil
}
