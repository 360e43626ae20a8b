// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

// Package main is a one-shot command that builds a recommendation snapshot
// from the configured order history and prints recommendations for one user,
// products similar to one product, the overall bestsellers and the
// bestsellers of one category.
//
// The order history source is configured exactly like the server (config.yaml,
// .env and environment variables). For example, against the demo history:
//
//	SOURCE_DRIVER=duckdb DUCKDB_SEED_DEMO_DATA=true basketrec-recommend -user 1 -product 201 -category 2
//
// Output is plain text by default, or JSON with -format json.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/basketrec/internal/config"
	"github.com/tomtom215/basketrec/internal/logging"
	"github.com/tomtom215/basketrec/internal/validation"
)

// options are the command-line flags.
type options struct {
	UserID     int64  `validate:"gt=0"`
	ProductID  int64  `validate:"gt=0"`
	CategoryID int64  `validate:"gt=0"`
	N          int    `validate:"min=0"`
	Format     string `validate:"oneof=text json"`
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("basketrec-recommend", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Int64Var(&opts.UserID, "user", 1, "user id to recommend for")
	fs.Int64Var(&opts.ProductID, "product", 101, "product id to find similar products for")
	fs.Int64Var(&opts.CategoryID, "category", 1, "category id for category bestsellers")
	fs.IntVar(&opts.N, "n", 0, "number of results per list (0 = RECOMMEND_DEFAULT_N)")
	fs.StringVar(&opts.Format, "format", "text", "output format: text or json")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if verr := validation.ValidateStruct(&opts); verr != nil {
		return options{}, verr
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, opts, os.Stdout); err != nil {
		logging.Error().Err(err).Msg("recommend failed")
		stop()
		os.Exit(1)
	}
}
