// GameMatch - Player Community Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamematch

// Package main is the GameMatch batch runner.
//
// A run performs the whole matchmaking pipeline once and writes a JSON report
// to stdout. Logs go to stderr.
//
//  1. Configuration: defaults, config file and GAMEMATCH_* environment (Koanf v2)
//  2. Snapshot store: none, in-memory LRU or BadgerDB
//  3. Profiles: restored from the snapshot store or ingested from CSV via DuckDB
//  4. Graph: restored from the snapshot store or built from pairwise similarity
//  5. Communities: Louvain detection and influential members per community
//  6. Matches: same- and cross-community ranking for match.user_id, if set
//  7. Metrics: optional Prometheus textfile export
//
// # Example Usage
//
//	export GAMEMATCH_PLATFORM__NAME=steam
//	export GAMEMATCH_PLATFORM__DATA_DIR=/data/exports
//	export GAMEMATCH_INGEST__SAMPLE_SIZE=1000
//	export GAMEMATCH_MATCH__USER_ID=76561198000000000
//	./gamematch > report.json
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the run between units of work; no partial report
// is written.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/gamematch/internal/config"
	"github.com/tomtom215/gamematch/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.LoggingOptions())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	ctx = logging.ContextWithNewRunID(ctx)

	err = run(ctx, cfg, os.Stdout)
	stop()
	if closeErr := logging.Close(); closeErr != nil {
		logging.Warn().Err(closeErr).Msg("failed to close log file")
	}
	if err != nil {
		logging.Ctx(ctx).Fatal().Err(err).Msg("run failed")
	}
}
