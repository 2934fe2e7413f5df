// GameMatch - Player Community Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamematch

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

// TestDefault verifies that Default returns valid, documented defaults
func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}

	if cfg.Preferences.Items != 1 || cfg.Preferences.Milestones != 1 {
		t.Errorf("Preferences = %+v, want 1/1", cfg.Preferences)
	}
	if !cfg.Builder.KeepZeroWeight {
		t.Error("Builder.KeepZeroWeight should default to true")
	}
	if cfg.Ingest.Seed != 1234 {
		t.Errorf("Ingest.Seed = %d, want 1234", cfg.Ingest.Seed)
	}
	if cfg.Community.Resolution != 1 || cfg.Community.MaxLevels != 32 {
		t.Errorf("Community = %+v", cfg.Community)
	}
	if cfg.Snapshot.Backend != "memory" {
		t.Errorf("Snapshot.Backend = %q, want memory", cfg.Snapshot.Backend)
	}
	if cfg.Match.Limit != 10 {
		t.Errorf("Match.Limit = %d, want 10", cfg.Match.Limit)
	}
}

func TestLoadFile_Defaults(t *testing.T) {
	cfg, err := LoadFile("")
	if err != nil {
		t.Fatalf("LoadFile(\"\") error = %v", err)
	}
	if cfg.Platform.Name != "steam" || cfg.Logging.Level != "info" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFile_YAML(t *testing.T) {
	path := writeConfigFile(t, `
platform:
  name: xbox
  data_dir: /srv/exports
ingest:
  require_library: true
  sample_size: 1000
preferences:
  items: 0.5
builder:
  keep_zero_weight: false
  workers: 4
community:
  resolution: 1.5
snapshot:
  backend: badger
  path: /srv/snapshots
  ttl: 24h
match:
  user_id: "181212"
  limit: 5
logging:
  level: debug
  format: console
metrics:
  textfile: /srv/metrics/gamematch.prom
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"platform.name", cfg.Platform.Name, "xbox"},
		{"platform.data_dir", cfg.Platform.DataDir, "/srv/exports"},
		{"ingest.require_library", cfg.Ingest.RequireLibrary, true},
		{"ingest.sample_size", cfg.Ingest.SampleSize, 1000},
		{"ingest.seed (default kept)", cfg.Ingest.Seed, int64(1234)},
		{"preferences.items", cfg.Preferences.Items, 0.5},
		{"preferences.milestones (default kept)", cfg.Preferences.Milestones, 1.0},
		{"builder.keep_zero_weight", cfg.Builder.KeepZeroWeight, false},
		{"builder.workers", cfg.Builder.Workers, 4},
		{"community.resolution", cfg.Community.Resolution, 1.5},
		{"community.max_passes (default kept)", cfg.Community.MaxPasses, 100},
		{"snapshot.backend", cfg.Snapshot.Backend, "badger"},
		{"snapshot.ttl", cfg.Snapshot.TTL, 24 * time.Hour},
		{"match.user_id", cfg.Match.UserID, "181212"},
		{"match.limit", cfg.Match.Limit, 5},
		{"logging.format", cfg.Logging.Format, "console"},
		{"metrics.textfile", cfg.Metrics.Textfile, "/srv/metrics/gamematch.prom"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestLoadFile_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
community:
  resolution: 1.5
match:
  limit: 5
`)
	t.Setenv("GAMEMATCH_COMMUNITY__RESOLUTION", "0.8")
	t.Setenv("GAMEMATCH_MATCH__USER_ID", "42")
	t.Setenv("GAMEMATCH_BUILDER__KEEP_ZERO_WEIGHT", "false")
	t.Setenv("GAMEMATCH_INGEST__SAMPLE_SIZE", "250")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Community.Resolution != 0.8 {
		t.Errorf("Community.Resolution = %v, want 0.8", cfg.Community.Resolution)
	}
	if cfg.Match.Limit != 5 {
		t.Errorf("Match.Limit = %d, want 5 from file", cfg.Match.Limit)
	}
	if cfg.Match.UserID != "42" {
		t.Errorf("Match.UserID = %q, want 42", cfg.Match.UserID)
	}
	if cfg.Builder.KeepZeroWeight {
		t.Error("Builder.KeepZeroWeight should be overridden to false")
	}
	if cfg.Ingest.SampleSize != 250 {
		t.Errorf("Ingest.SampleSize = %d, want 250", cfg.Ingest.SampleSize)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		field string
	}{
		{"unknown platform", "platform:\n  name: dreamcast\n", "Name"},
		{"negative coefficient", "preferences:\n  milestones: -1\n", "Milestones"},
		{"zero resolution", "community:\n  resolution: 0\n", "Resolution"},
		{"badger without path", "snapshot:\n  backend: badger\n", "Path"},
		{"unknown backend", "snapshot:\n  backend: redis\n", "Backend"},
		{"bad log level", "logging:\n  level: loud\n", "Level"},
		{"negative limit", "match:\n  limit: -3\n", "Limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeConfigFile(t, tt.yaml))
			if err == nil {
				t.Fatal("LoadFile() should fail")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q does not mention %s", err, tt.field)
			}
		})
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadFile() with a missing file should fail")
	}
}

func TestFindConfigFile(t *testing.T) {
	path := writeConfigFile(t, "platform:\n  name: steam\n")

	t.Setenv(ConfigPathEnvVar, path)
	if got := findConfigFile(); got != path {
		t.Errorf("findConfigFile() = %q, want %q", got, path)
	}

	t.Setenv(ConfigPathEnvVar, "/non/existent/config.yaml")
	if got := findConfigFile(); got == "/non/existent/config.yaml" {
		t.Error("findConfigFile() returned a path that does not exist")
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"GAMEMATCH_COMMUNITY__MAX_LEVELS", "community.max_levels"},
		{"GAMEMATCH_PLATFORM__DATA_DIR", "platform.data_dir"},
		{"GAMEMATCH_METRICS__TEXTFILE", "metrics.textfile"},
		{"GAMEMATCH_", ""},
	}
	for _, tt := range tests {
		if got := envTransformFunc(tt.in); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidate_CrossSection(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Snapshot.Backend = "badger"
	cfg.Snapshot.Path = cfg.Platform.DataDir
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject a snapshot path equal to the data directory")
	}
}

func TestWarnings(t *testing.T) {
	t.Parallel()

	cfg := Default()
	if w := cfg.Warnings(); len(w) != 0 {
		t.Errorf("Default().Warnings() = %v, want none", w)
	}

	cfg.Preferences.Items = 0
	cfg.Preferences.Milestones = 0
	cfg.Snapshot.Backend = "none"
	if w := cfg.Warnings(); len(w) != 2 {
		t.Errorf("Warnings() = %v, want 2 entries", w)
	}
}

func TestLoggingOptions(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Logging.Level = "debug"
	cfg.Logging.Caller = true
	cfg.Logging.File.Path = "/var/log/gamematch.log"
	cfg.Logging.File.MaxBackups = 3

	opts := cfg.LoggingOptions()
	if opts.Level != "debug" || !opts.Caller || opts.Format != "json" || opts.Output != os.Stderr {
		t.Errorf("LoggingOptions() = %+v", opts)
	}
	if opts.File.Path != "/var/log/gamematch.log" || opts.File.MaxBackups != 3 {
		t.Errorf("LoggingOptions().File = %+v", opts.File)
	}
}
