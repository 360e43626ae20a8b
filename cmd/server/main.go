// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/basketrec/internal/config"
	"github.com/tomtom215/basketrec/internal/logging"
	"github.com/tomtom215/basketrec/internal/metrics"
	"github.com/tomtom215/basketrec/internal/opsapi"
	"github.com/tomtom215/basketrec/internal/recommend"
	"github.com/tomtom215/basketrec/internal/source"
	"github.com/tomtom215/basketrec/internal/supervisor"
	"github.com/tomtom215/basketrec/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("driver", cfg.Source.Driver).
		Dur("rebuild_interval", cfg.Recommend.RebuildInterval).
		Str("ops_addr", cfg.Server.Addr).
		Msg("Starting basketrec")

	src, err := source.Open(cfg, logging.WithComponent("source"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open order history source")
	}
	defer func() {
		if err := src.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing order history source")
		}
	}()

	engine, err := recommend.NewEngine(cfg.Recommend.EngineConfig(), src, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}
	engine.SetObserver(metrics.EngineObserver{})

	tree, err := supervisor.NewSupervisorTree(
		logging.NewSlogLogger(logging.WithComponent("supervisor")),
		supervisor.DefaultTreeConfig(),
	)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	rebuilds := services.NewRebuildService(engine, services.RebuildServiceConfig{
		RebuildOnStartup: cfg.Recommend.RebuildOnStartup,
		RebuildInterval:  cfg.Recommend.RebuildInterval,
		MinRebuildGap:    cfg.Recommend.MinRebuildGap,
	}, logging.Logger())
	tree.AddEngineService(rebuilds)

	if cfg.Server.Addr != "" {
		server := &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           opsapi.NewHandler(engine, rebuilds).Router(),
			ReadTimeout:       cfg.Server.ReadTimeout,
			ReadHeaderTimeout: cfg.Server.ReadTimeout,
			WriteTimeout:      cfg.Server.WriteTimeout,
		}
		tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second, logging.Logger()))
	} else {
		logging.Info().Msg("Ops server disabled (OPS_ADDR is empty)")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go handleSignals(ctx, cancel, rebuilds)

	logging.Info().Msg("Starting supervisor tree")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, err := tree.UnstoppedServiceReport()
	if err != nil {
		logging.Warn().Err(err).Msg("Failed to collect unstopped service report")
	}
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("basketrec stopped")
}

// handleSignals cancels ctx on SIGINT or SIGTERM and queues a rebuild on SIGHUP.
func handleSignals(ctx context.Context, cancel context.CancelFunc, rebuilds *services.RebuildService) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	for {
		select {
		case <-ctx.Done():
			return
		case sig := <-sigCh:
			if sig == syscall.SIGHUP {
				sigCtx := logging.ContextWithRequestID(ctx, logging.GenerateRequestID())
				if err := rebuilds.Trigger(sigCtx, services.TriggerSignal); err != nil {
					logging.Warn().Err(err).Msg("SIGHUP rebuild not queued")
				} else {
					logging.Info().Msg("SIGHUP received, rebuild queued")
				}
				continue
			}
			logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
			cancel()
			return
		}
	}
}
