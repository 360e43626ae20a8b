// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/basketrec/internal/config"
	"github.com/tomtom215/basketrec/internal/logging"
	"github.com/tomtom215/basketrec/internal/metrics"
	"github.com/tomtom215/basketrec/internal/recommend"
	"github.com/tomtom215/basketrec/internal/source"
)

// report is the JSON output document.
type report struct {
	SnapshotVersion int64                      `json:"snapshot_version"`
	User            []recommend.Recommendation `json:"user_recommendations"`
	Similar         []recommend.Recommendation `json:"similar_items"`
	Popular         []recommend.Recommendation `json:"popular"`
	Category        []recommend.Recommendation `json:"category_popular"`
}

func run(ctx context.Context, cfg *config.Config, opts options, w io.Writer) error {
	logger := logging.WithComponent("cli")

	src, err := source.Open(cfg, logger)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer func() {
		if err := src.Close(); err != nil {
			logger.Warn().Err(err).Msg("close source")
		}
	}()

	engine, err := recommend.NewEngine(cfg.Recommend.EngineConfig(), src, logging.Logger())
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}
	engine.SetObserver(metrics.EngineObserver{})

	if err := engine.Rebuild(ctx); err != nil {
		return fmt.Errorf("build snapshot: %w", err)
	}

	n := opts.N
	if n == 0 {
		n = cfg.Recommend.DefaultN
	}

	rep := report{
		SnapshotVersion: engine.Snapshot().Version,
		User:            userRecommendations(engine, opts.UserID, n, logger),
	}

	recs, err := engine.SimilarItems(opts.ProductID, n)
	rep.Similar = orEmpty(recs, err, logger.With().Int64("product_id", opts.ProductID).Logger(), "similar items")

	recs, err = engine.Popular(n)
	rep.Popular = orEmpty(recs, err, logger, "popular")

	recs, err = engine.PopularInCategory(opts.CategoryID, n)
	rep.Category = orEmpty(recs, err, logger.With().Int64("category_id", opts.CategoryID).Logger(), "category popular")

	if opts.Format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	return writeText(w, &rep)
}

// userRecommendations falls back to the bestsellers, then to an empty list,
// when personal recommendations fail.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func userRecommendations(engine *recommend.Engine, userID int64, n int, logger zerolog.Logger) []recommend.Recommendation {
	recs, err := engine.RecommendForUser(userID, n)
	if err == nil {
		return recs
	}
	logger.Error().Err(err).Int64("user_id", userID).Msg("user recommendations failed, using popular")

	recs, err = engine.Popular(n)
	if err == nil {
		return recs
	}
	logger.Error().Err(err).Msg("popular fallback failed")
	return []recommend.Recommendation{}
}

// orEmpty logs a query error and replaces the result with an empty list.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func orEmpty(recs []recommend.Recommendation, err error, logger zerolog.Logger, what string) []recommend.Recommendation {
	if err != nil {
		logger.Error().Err(err).Msg(what + " failed")
		return []recommend.Recommendation{}
	}
	return recs
}

func writeText(w io.Writer, rep *report) error {
	sections := []struct {
		title string
		recs  []recommend.Recommendation
	}{
		{"Recommendations for user", rep.User},
		{"Similar products", rep.Similar},
		{"Popular products", rep.Popular},
		{"Popular in category", rep.Category},
	}

	for i, s := range sections {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s:\n", s.title); err != nil {
			return err
		}
		if len(s.recs) == 0 {
			if _, err := fmt.Fprintln(w, "  (none)"); err != nil {
				return err
			}
			continue
		}
		for _, r := range s.recs {
			if _, err := fmt.Fprintf(w, "  %s (%s, %s) - %.2f\n", r.Name, r.Category, r.Brand, r.Price); err != nil {
				return err
			}
		}
	}
	return nil
}
