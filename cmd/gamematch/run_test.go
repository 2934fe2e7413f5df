// GameMatch - Player Community Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamematch

package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/gamematch/internal/config"
	"github.com/tomtom215/gamematch/internal/ingest"
	"github.com/tomtom215/gamematch/internal/logging"
	"github.com/tomtom215/gamematch/internal/profile"
)

// writeExport creates two clearly separated groups of three players.
func writeExport(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	dir := filepath.Join(root, "steam")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		ingest.PlayersFile: "playerid,nickname,country\n1,ann,NO\n2,ben,NO\n3,cat,SE\n4,dan,JP\n5,eve,JP\n6,fay,KR\n",
		ingest.PurchasesFile: "playerid,library\n" +
			"1,\"[1, 2, 3]\"\n2,\"[1, 2, 3]\"\n3,\"[1, 2]\"\n" +
			"4,\"[7, 8, 9]\"\n5,\"[7, 8, 9]\"\n6,\"[8, 9]\"\n",
		ingest.HistoryFile: "playerid,achievementid\n1,1_1\n2,1_1\n3,1_1\n4,7_1\n5,7_1\n6,7_1\n",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Platform.DataDir = writeExport(t)
	return cfg
}

func testContext() context.Context {
	ctx := logging.ContextWithLogger(context.Background(), zerolog.Nop())
	return logging.ContextWithRunID(ctx, "test-run")
}

func runAndDecode(t *testing.T, cfg *config.Config) Report {
	t.Helper()

	var out bytes.Buffer
	if err := run(testContext(), cfg, &out); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	var report Report
	if err := json.Unmarshal(out.Bytes(), &report); err != nil {
		t.Fatalf("report is not valid JSON: %v\n%s", err, out.String())
	}
	return report
}

func TestRun(t *testing.T) {
	cfg := testConfig(t)
	cfg.Match.UserID = "1"

	report := runAndDecode(t, cfg)

	if report.RunID != "test-run" || report.Platform != "steam" {
		t.Errorf("run_id/platform = %q/%q", report.RunID, report.Platform)
	}
	if report.Profiles.Count != 6 || report.Profiles.FromCache {
		t.Errorf("profiles = %+v", report.Profiles)
	}
	if report.Graph.Vertices != 6 || report.Graph.Edges != 15 {
		t.Errorf("graph = %+v, want 6 vertices and 15 edges", report.Graph)
	}

	c := report.Communities
	if c.Count != 2 {
		t.Fatalf("communities = %d, want 2", c.Count)
	}
	total := 0
	for _, size := range c.Sizes {
		total += size
	}
	if total != 6 {
		t.Errorf("community sizes %v do not cover every profile", c.Sizes)
	}
	if c.Modularity <= 0 {
		t.Errorf("modularity = %f, want > 0", c.Modularity)
	}
	if len(c.Influencers) != 2 {
		t.Errorf("influencers for %d communities, want 2", len(c.Influencers))
	}

	m := report.Match
	if m == nil {
		t.Fatal("match section missing")
	}
	if len(m.SameCommunity) != 2 || m.SameCommunity[0].ID != "2" || m.SameCommunity[1].ID != "3" {
		t.Errorf("same community = %+v", m.SameCommunity)
	}
	if len(m.OtherCommunities) != 0 {
		t.Errorf("other communities = %+v, want none", m.OtherCommunities)
	}
	if m.SameCommunity[0].ItemSimilarity != 100 || m.SameCommunity[0].Nickname != "ben" {
		t.Errorf("best match = %+v", m.SameCommunity[0])
	}
}

func TestRun_BadgerSnapshotsAcrossRuns(t *testing.T) {
	cfg := testConfig(t)
	cfg.Snapshot.Backend = "badger"
	cfg.Snapshot.Path = filepath.Join(t.TempDir(), "snapshots")

	first := runAndDecode(t, cfg)
	if first.Profiles.FromCache || first.Graph.FromCache {
		t.Errorf("first run should not use snapshots: %+v / %+v", first.Profiles, first.Graph)
	}

	second := runAndDecode(t, cfg)
	if !second.Profiles.FromCache || !second.Graph.FromCache {
		t.Errorf("second run should restore snapshots: %+v / %+v", second.Profiles, second.Graph)
	}
	if second.Communities.Count != first.Communities.Count || second.Communities.Modularity != first.Communities.Modularity {
		t.Errorf("restored run differs: %+v vs %+v", second.Communities, first.Communities)
	}

	// A different coefficient must rebuild the graph from the cached profiles
	cfg.Preferences.Milestones = 0
	third := runAndDecode(t, cfg)
	if !third.Profiles.FromCache || third.Graph.FromCache {
		t.Errorf("changed preferences: profiles %+v, graph %+v", third.Profiles, third.Graph)
	}
}

func TestRun_Errors(t *testing.T) {
	t.Run("unknown match user", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Match.UserID = "404"
		err := run(testContext(), cfg, &bytes.Buffer{})
		if !errors.Is(err, profile.ErrProfileNotFound) {
			t.Errorf("run() error = %v, want ErrProfileNotFound", err)
		}
	})

	t.Run("missing export", func(t *testing.T) {
		cfg := config.Default()
		cfg.Platform.DataDir = t.TempDir()
		err := run(testContext(), cfg, &bytes.Buffer{})
		if !errors.Is(err, ingest.ErrMissingFile) {
			t.Errorf("run() error = %v, want ErrMissingFile", err)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(testContext())
		cancel()
		var out bytes.Buffer
		if err := run(ctx, testConfig(t), &out); !errors.Is(err, context.Canceled) {
			t.Errorf("run() error = %v, want context.Canceled", err)
		}
		if out.Len() != 0 {
			t.Error("cancelled run should not write a report")
		}
	})
}

func TestRun_MetricsTextfile(t *testing.T) {
	cfg := testConfig(t)
	cfg.Metrics.Textfile = filepath.Join(t.TempDir(), "gamematch.prom")

	runAndDecode(t, cfg)

	data, err := os.ReadFile(cfg.Metrics.Textfile)
	if err != nil {
		t.Fatalf("textfile not written: %v", err)
	}
	for _, name := range []string{"gamematch_graph_vertices", "gamematch_communities", "gamematch_ingest_profiles_total"} {
		if !strings.Contains(string(data), name) {
			t.Errorf("textfile missing %s", name)
		}
	}
}
