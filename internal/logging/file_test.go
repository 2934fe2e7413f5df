// GameMatch - Player Community Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamematch

package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileOutput(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "gamematch.log")

	Init(Config{
		Level:  "info",
		Format: "console",
		Output: &buf,
		File:   FileConfig{Path: path, MaxSizeMB: 1},
	})
	defer Init(DefaultConfig())

	Info().Str("component", "runner").Msg("run complete")
	if err := Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if !strings.Contains(buf.String(), "run complete") {
		t.Errorf("primary output missing message: %s", buf.String())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	// The file always receives JSON, whatever the console format
	if !strings.Contains(string(data), `"message":"run complete"`) {
		t.Errorf("log file missing JSON message: %s", data)
	}
}

func TestClose_WithoutFile(t *testing.T) {
	Init(DefaultConfig())
	if err := Close(); err != nil {
		t.Errorf("Close() without a log file error = %v", err)
	}
}
