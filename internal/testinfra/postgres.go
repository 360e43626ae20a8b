// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

//go:build integration

package testinfra

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/tomtom215/basketrec/internal/config"
)

const (
	// DefaultPostgresImage is the PostgreSQL image used for integration tests.
	DefaultPostgresImage = "postgres:16-alpine"

	postgresPort     = "5432/tcp"
	postgresDB       = "alcohol_shop"
	postgresUser     = "postgres"
	postgresPassword = "postgres"
)

// PostgresContainer is a running PostgreSQL container.
type PostgresContainer struct {
	testcontainers.Container
	Config config.PostgresConfig
}

// NewPostgresContainer starts PostgreSQL and returns connection settings for it.
//
//	pg, err := testinfra.NewPostgresContainer(ctx)
//	testinfra.CleanupContainer(t, pg)
//	db, err := database.NewPostgres(&pg.Config, time.Minute)
func NewPostgresContainer(ctx context.Context) (*PostgresContainer, error) {
	req := testcontainers.ContainerRequest{
		Image:        DefaultPostgresImage,
		ExposedPorts: []string{postgresPort},
		Env: map[string]string{
			"POSTGRES_DB":       postgresDB,
			"POSTGRES_USER":     postgresUser,
			"POSTGRES_PASSWORD": postgresPassword,
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort(postgresPort),
			// The entrypoint restarts the server once after init; wait for the second start.
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		).WithStartupTimeout(90 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("create postgres container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get container host: %w", err)
	}
	mapped, err := container.MappedPort(ctx, postgresPort)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get mapped port: %w", err)
	}
	port, err := strconv.Atoi(mapped.Port())
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("parse mapped port %q: %w", mapped.Port(), err)
	}

	return &PostgresContainer{
		Container: container,
		Config: config.PostgresConfig{
			Host:         host,
			Port:         port,
			Name:         postgresDB,
			User:         postgresUser,
			Password:     postgresPassword,
			SSLMode:      "disable",
			MaxOpenConns: 4,
			MaxIdleConns: 1,
		},
	}, nil
}
