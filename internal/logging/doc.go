// GameMatch - Player Community Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamematch

// Package logging provides centralized zerolog-based structured logging for GameMatch.
//
// # Overview
//
// The package provides:
//   - A global zerolog logger configured once from the loaded configuration
//   - JSON output (default) or console output for interactive runs
//   - Run and correlation IDs carried through context.Context
//   - Component loggers derived with a "component" field
//
// Logs go to stderr by default; stdout is reserved for the batch report.
//
// # Log File
//
// Setting Config.File.Path also writes JSON lines to a size-rotated file
// (github.com/natefinch/lumberjack), whatever the primary format. Call
// Close before exit to flush it:
//
//	logging.Init(logging.Config{
//	    Level: "info",
//	    File:  logging.FileConfig{Path: "/var/log/gamematch/run.log", MaxSizeMB: 50, MaxBackups: 5},
//	})
//	defer logging.Close()
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:     cfg.Logging.Level,
//	    Format:    cfg.Logging.Format,
//	    Caller:    cfg.Logging.Caller,
//	    Timestamp: true,
//	})
//
//	ctx := logging.ContextWithNewRunID(context.Background())
//	logging.Ctx(ctx).Info().Str("platform", "steam").Msg("run started")
//
// # Component Loggers
//
// Components accept a zerolog.Logger in their constructor and derive their own
// child logger, so tests can pass zerolog.Nop() or a buffer-backed logger:
//
//	func NewBuilder(opts Options, logger zerolog.Logger) *Builder {
//	    return &Builder{logger: logger.With().Str("component", "builder").Logger()}
//	}
//
// # Log Levels
//
//   - trace: per-pair or per-vertex detail
//   - debug: per-level and per-stage progress
//   - info: stage completion (ingest, build, detect, rank)
//   - warn: degraded but continuing (iteration limit, snapshot store errors)
//   - error: a stage failed
//   - fatal: the run cannot continue
//
// # Best Practices
//
// Always terminate log chains with .Msg() or .Send(), and prefer structured
// fields to formatted messages:
//
//	logging.Info().Int("edges", n).Msg("graph built")  // Correct
//	logging.Info().Msgf("graph built with %d edges", n) // Avoid
//
// # Thread Safety
//
// The global logger is guarded by a RWMutex; Init and SetLogger may be
// called at any time. zerolog.Logger values are safe for concurrent use.
package logging
