// GameMatch - Player Community Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamematch

package config

import (
	"fmt"
	"os"

	"github.com/tomtom215/gamematch/internal/builder"
	"github.com/tomtom215/gamematch/internal/community"
	"github.com/tomtom215/gamematch/internal/ingest"
	"github.com/tomtom215/gamematch/internal/logging"
	"github.com/tomtom215/gamematch/internal/match"
	"github.com/tomtom215/gamematch/internal/similarity"
	"github.com/tomtom215/gamematch/internal/snapshot"
	"github.com/tomtom215/gamematch/internal/validation"
)

// Config is the complete batch configuration.
type Config struct {
	Platform    PlatformConfig               `koanf:"platform"`
	Ingest      ingest.Options               `koanf:"ingest"`
	Preferences similarity.PreferenceWeights `koanf:"preferences"`
	Builder     builder.Options              `koanf:"builder"`
	Community   community.Config             `koanf:"community"`
	Snapshot    snapshot.Config              `koanf:"snapshot"`
	Match       match.Options                `koanf:"match"`
	Logging     LoggingConfig                `koanf:"logging"`
	Metrics     MetricsConfig                `koanf:"metrics"`
}

// PlatformConfig selects the platform export to read.
type PlatformConfig struct {
	// Name is the platform directory under DataDir.
	Name string `koanf:"name" validate:"required,oneof=steam xbox playstation"`

	// DataDir holds one directory per platform.
	DataDir string `koanf:"data_dir" validate:"required"`
}

// LoggingConfig mirrors logging.Config without the output writer.
type LoggingConfig struct {
	Level     string             `koanf:"level" validate:"oneof=trace debug info warn warning error fatal panic disabled"`
	Format    string             `koanf:"format" validate:"oneof=json console"`
	Caller    bool               `koanf:"caller"`
	Timestamp bool               `koanf:"timestamp"`
	File      logging.FileConfig `koanf:"file"`
}

// MetricsConfig controls the Prometheus textfile export.
type MetricsConfig struct {
	// Textfile is written in the node_exporter textfile format after a run.
	// Empty disables the export.
	Textfile string `koanf:"textfile"`
}

// Default returns the configuration used before any file or environment
// overrides.
func Default() *Config {
	return &Config{
		Platform: PlatformConfig{
			Name:    "steam",
			DataDir: "data",
		},
		Ingest:      ingest.DefaultOptions(),
		Preferences: similarity.DefaultPreferences(),
		Builder:     builder.DefaultOptions(),
		Community:   community.DefaultConfig(),
		Snapshot: snapshot.Config{
			Backend:  snapshot.BackendMemory,
			Capacity: 16,
		},
		Match: match.DefaultOptions(),
		Logging: LoggingConfig{
			Level:     "info",
			Format:    "json",
			Timestamp: true,
		},
	}
}

// Validate checks every section.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}
	if c.Snapshot.Backend == snapshot.BackendBadger && c.Snapshot.Path == c.Platform.DataDir {
		return fmt.Errorf("snapshot.path must not be the platform data directory")
	}
	return nil
}

// Warnings lists legal settings that are likely mistakes.
func (c *Config) Warnings() []string {
	var out []string
	if c.Preferences.Items == 0 && c.Preferences.Milestones == 0 {
		out = append(out, "both preference coefficients are 0: every edge weight will be 0 and every user a singleton community")
	}
	if c.Snapshot.Backend == snapshot.BackendNone && c.Ingest.SampleSize == 0 {
		out = append(out, "snapshot cache disabled: every run re-ingests and rebuilds the full graph")
	}
	return out
}

// LoggingOptions converts the section into logging.Config writing to stderr.
func (c *Config) LoggingOptions() logging.Config {
	return logging.Config{
		Level:     c.Logging.Level,
		Format:    c.Logging.Format,
		Caller:    c.Logging.Caller,
		Timestamp: c.Logging.Timestamp,
		Output:    os.Stderr,
		File:      c.Logging.File,
	}
}
