// GameMatch - Player Community Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamematch

package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

// histogramSnapshot returns the sample count and sum of a histogram.
func histogramSnapshot(t *testing.T, h prometheus.Histogram) (uint64, float64) {
	t.Helper()
	var m io_prometheus_client.Metric
	if err := h.Write(&m); err != nil {
		t.Fatalf("failed to write histogram: %v", err)
	}
	return m.GetHistogram().GetSampleCount(), m.GetHistogram().GetSampleSum()
}

// Collectors are process-global, so these tests compare deltas and do not run in parallel.

func TestRecordGraphBuild(t *testing.T) {
	durationsBefore, _ := histogramSnapshot(t, GraphBuildDuration)
	pairsBefore := testutil.ToFloat64(GraphPairsEvaluated)
	skippedBefore := testutil.ToFloat64(GraphEdgesSkipped)

	RecordGraphBuild(250*time.Millisecond, 100, 4000, 4950, 950)

	if got := testutil.ToFloat64(GraphPairsEvaluated) - pairsBefore; got != 4950 {
		t.Errorf("pairs evaluated delta = %v, want 4950", got)
	}
	if got := testutil.ToFloat64(GraphEdgesSkipped) - skippedBefore; got != 950 {
		t.Errorf("edges skipped delta = %v, want 950", got)
	}
	if got := testutil.ToFloat64(GraphVertices); got != 100 {
		t.Errorf("vertices gauge = %v, want 100", got)
	}
	if got := testutil.ToFloat64(GraphEdges); got != 4000 {
		t.Errorf("edges gauge = %v, want 4000", got)
	}
	if count, _ := histogramSnapshot(t, GraphBuildDuration); count-durationsBefore != 1 {
		t.Errorf("build duration samples delta = %d, want 1", count-durationsBefore)
	}
}

func TestRecordDetection(t *testing.T) {
	countBefore, sumBefore := histogramSnapshot(t, CommunityLevels)

	RecordDetection(30*time.Millisecond, 3, 0.42, 7)

	count, sum := histogramSnapshot(t, CommunityLevels)
	if count-countBefore != 1 || sum-sumBefore != 3 {
		t.Errorf("levels histogram delta = %d samples / %v sum, want 1 / 3", count-countBefore, sum-sumBefore)
	}

	if got := testutil.ToFloat64(CommunityModularity); got != 0.42 {
		t.Errorf("modularity gauge = %v, want 0.42", got)
	}
	if got := testutil.ToFloat64(Communities); got != 7 {
		t.Errorf("communities gauge = %v, want 7", got)
	}
}

func TestRecordSnapshotLookup(t *testing.T) {
	tests := []struct {
		name   string
		hit    bool
		err    error
		result string
	}{
		{name: "hit", hit: true, result: ResultHit},
		{name: "miss", hit: false, result: ResultMiss},
		{name: "error wins over hit", hit: true, err: errors.New("disk gone"), result: ResultError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := SnapshotCacheRequests.WithLabelValues("graph", tt.result)
			before := testutil.ToFloat64(counter)

			RecordSnapshotLookup("graph", tt.hit, tt.err)

			if got := testutil.ToFloat64(counter) - before; got != 1 {
				t.Errorf("%s counter delta = %v, want 1", tt.result, got)
			}
		})
	}
}

func TestRecordSnapshotSave(t *testing.T) {
	saved := SnapshotCacheRequests.WithLabelValues("profiles", ResultSaved)
	failed := SnapshotCacheRequests.WithLabelValues("profiles", ResultError)
	savedBefore, failedBefore := testutil.ToFloat64(saved), testutil.ToFloat64(failed)

	RecordSnapshotSave("profiles", nil)
	RecordSnapshotSave("profiles", errors.New("closed"))

	if got := testutil.ToFloat64(saved) - savedBefore; got != 1 {
		t.Errorf("saved delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(failed) - failedBefore; got != 1 {
		t.Errorf("error delta = %v, want 1", got)
	}
}

func TestRecordIngest(t *testing.T) {
	counter := IngestProfiles.WithLabelValues("steam")
	before := testutil.ToFloat64(counter)

	RecordIngest("steam", 1000, 2*time.Second)

	if got := testutil.ToFloat64(counter) - before; got != 1000 {
		t.Errorf("ingested profiles delta = %v, want 1000", got)
	}
}

func TestConcurrentMetricRecording(t *testing.T) {
	before := testutil.ToFloat64(GraphPairsEvaluated)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			RecordGraphBuild(time.Millisecond, 10, 45, 45, 0)
			RecordSnapshotLookup("graph", true, nil)
		}()
	}
	wg.Wait()

	if got := testutil.ToFloat64(GraphPairsEvaluated) - before; got != 20*45 {
		t.Errorf("pairs evaluated delta = %v, want %d", got, 20*45)
	}
}

func TestWriteTextfile(t *testing.T) {
	RecordDetection(time.Millisecond, 1, 0.1, 2)

	path := filepath.Join(t.TempDir(), "gamematch.prom")
	if err := WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "gamematch_communities 2") {
		t.Errorf("textfile missing gamematch_communities sample:\n%s", data)
	}
}
