// GameMatch - Player Community Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamematch

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/gamematch/internal/builder"
	"github.com/tomtom215/gamematch/internal/community"
	"github.com/tomtom215/gamematch/internal/config"
	"github.com/tomtom215/gamematch/internal/ingest"
	"github.com/tomtom215/gamematch/internal/logging"
	"github.com/tomtom215/gamematch/internal/match"
	"github.com/tomtom215/gamematch/internal/metrics"
	"github.com/tomtom215/gamematch/internal/profile"
	"github.com/tomtom215/gamematch/internal/snapshot"
)

// influencersPerCommunity caps the influential members listed per community.
const influencersPerCommunity = 3

// run executes the pipeline once and writes the report to out.
//
//nolint:gocyclo // sequential pipeline steps
func run(ctx context.Context, cfg *config.Config, out io.Writer) error {
	logger := logging.CtxWith(ctx).Str("component", "runner").Logger()

	warnings := cfg.Warnings()
	for _, w := range warnings {
		logger.Warn().Msg(w)
	}

	store, err := snapshot.Open(cfg.Snapshot, logger)
	if err != nil {
		return fmt.Errorf("failed to open snapshot store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error().Err(err).Msg("error closing snapshot store")
		}
	}()

	profiles, summary, err := loadProfiles(ctx, cfg, store, logger)
	if err != nil {
		return err
	}

	b, err := builder.New(cfg.Builder, cfg.Preferences, store, logger)
	if err != nil {
		return err
	}
	g, graphStats, err := b.Build(ctx, profiles)
	if err != nil {
		return fmt.Errorf("failed to build graph: %w", err)
	}

	detector, err := community.NewDetector(cfg.Community, logger)
	if err != nil {
		return err
	}
	res, err := detector.Detect(ctx, g)
	if err != nil {
		return fmt.Errorf("failed to detect communities: %w", err)
	}

	influencers, err := community.Influencers(g, res.Assignment, influencersPerCommunity)
	if err != nil {
		return fmt.Errorf("failed to rank influencers: %w", err)
	}

	report := &Report{
		RunID:       logging.RunIDFromContext(ctx),
		Platform:    cfg.Platform.Name,
		GeneratedAt: time.Now().UTC(),
		Profiles:    summary,
		Graph:       graphStats,
		Communities: summarize(res, influencers),
		Warnings:    warnings,
	}

	if cfg.Match.UserID != "" {
		profileStore, err := profile.NewMemoryStore(profiles)
		if err != nil {
			return err
		}
		ranker, err := match.NewRanker(g, profileStore, res.Assignment, b.Preferences(), cfg.Match, logger)
		if err != nil {
			return err
		}
		if report.Match, err = ranker.Rank(cfg.Match.UserID); err != nil {
			return fmt.Errorf("failed to rank matches: %w", err)
		}
	}

	if err := writeReport(out, report); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if cfg.Metrics.Textfile != "" {
		if err := metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			logger.Warn().Err(err).Str("path", cfg.Metrics.Textfile).Msg("metrics textfile not written")
		}
	}

	logger.Info().
		Int("profiles", len(profiles)).
		Int("communities", res.Count).
		Float64("modularity", res.Modularity).
		Msg("run complete")
	return nil
}

// loadProfiles restores processed profiles from the snapshot store or ingests
// them and saves them for the next run.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func loadProfiles(ctx context.Context, cfg *config.Config, store snapshot.Store, logger zerolog.Logger) ([]*profile.Profile, ProfileSummary, error) {
	key, err := ingest.SourceKey(cfg.Platform.Name, cfg.Platform.DataDir, cfg.Ingest)
	if err != nil {
		return nil, ProfileSummary{}, err
	}
	summary := ProfileSummary{SourceKey: key}

	cached, ok, err := snapshot.LoadProfiles(ctx, store, key)
	switch {
	case err != nil:
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ProfileSummary{}, ctxErr
		}
		logger.Warn().Err(err).Msg("profile snapshot unreadable, re-ingesting")
	case ok:
		logger.Info().Int("profiles", len(cached)).Msg("profiles restored from snapshot")
		summary.Count = len(cached)
		summary.FromCache = true
		return cached, summary, nil
	}

	loader, err := ingest.Open(cfg.Ingest, logger)
	if err != nil {
		return nil, ProfileSummary{}, err
	}
	defer func() {
		if err := loader.Close(); err != nil {
			logger.Error().Err(err).Msg("error closing ingest database")
		}
	}()

	profiles, _, err := loader.Load(ctx, cfg.Platform.Name, cfg.Platform.DataDir)
	if err != nil {
		return nil, ProfileSummary{}, fmt.Errorf("failed to ingest profiles: %w", err)
	}

	if err := snapshot.SaveProfiles(ctx, store, key, profiles); err != nil {
		logger.Warn().Err(err).Msg("profile snapshot not saved")
	}

	summary.Count = len(profiles)
	return profiles, summary, nil
}
