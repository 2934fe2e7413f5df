// GameMatch - Player Community Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamematch

package logging

import (
	"github.com/natefinch/lumberjack"
)

// FileConfig configures the rotating log file.
type FileConfig struct {
	// Path of the active log file; empty disables file logging.
	Path string `koanf:"path"`

	// MaxSizeMB rotates the file once it reaches this size. 0 uses 100 MB.
	MaxSizeMB int `koanf:"max_size_mb" validate:"gte=0"`

	// MaxAgeDays removes rotated files older than this. 0 keeps them.
	MaxAgeDays int `koanf:"max_age_days" validate:"gte=0"`

	// MaxBackups caps the number of rotated files. 0 keeps them all.
	MaxBackups int `koanf:"max_backups" validate:"gte=0"`

	// Compress gzips rotated files.
	Compress bool `koanf:"compress"`
}

// rotating is the open log file, if any (guarded by mu).
var rotating *lumberjack.Logger

func newRotatingWriter(cfg FileConfig) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSizeMB, // megabytes
		MaxAge:     cfg.MaxAgeDays,
		MaxBackups: cfg.MaxBackups,
		Compress:   cfg.Compress,
	}
}

// closeRotating closes the open log file (must be called with mu held).
func closeRotating() {
	if rotating != nil {
		_ = rotating.Close()
		rotating = nil
	}
}

// Close flushes and closes the log file, if one is configured. Logging
// continues on the primary output.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if rotating == nil {
		return nil
	}
	err := rotating.Close()
	rotating = nil
	return err
}
