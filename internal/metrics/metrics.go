// GameMatch - Player Community Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamematch

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Snapshot lookup results.
const (
	ResultHit   = "hit"
	ResultMiss  = "miss"
	ResultError = "error"
	ResultSaved = "saved"
)

var (
	// Graph Builder Metrics
	GraphBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gamematch_graph_build_duration_seconds",
			Help:    "Duration of similarity graph construction in seconds",
			Buckets: []float64{.01, .05, .1, .5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	GraphPairsEvaluated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gamematch_graph_pairs_evaluated_total",
			Help: "Total number of profile pairs scored by the graph builder",
		},
	)

	GraphEdgesSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gamematch_graph_edges_skipped_total",
			Help: "Total number of zero-weight pairs not inserted as edges",
		},
	)

	GraphVertices = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gamematch_graph_vertices",
			Help: "Number of vertices in the most recently built graph",
		},
	)

	GraphEdges = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gamematch_graph_edges",
			Help: "Number of edges in the most recently built graph",
		},
	)

	// Community Detection Metrics
	CommunityDetectDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gamematch_community_detect_duration_seconds",
			Help:    "Duration of Louvain community detection in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	CommunityLevels = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gamematch_community_levels",
			Help:    "Number of aggregation levels per detection run",
			Buckets: []float64{0, 1, 2, 3, 4, 5, 6, 8, 12, 16, 32},
		},
	)

	CommunityModularity = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gamematch_community_modularity",
			Help: "Modularity of the most recent partition",
		},
	)

	Communities = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gamematch_communities",
			Help: "Number of communities in the most recent partition",
		},
	)

	// Snapshot Cache Metrics
	SnapshotCacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gamematch_snapshot_cache_requests_total",
			Help: "Total number of snapshot cache operations",
		},
		[]string{"kind", "result"}, // kind: graph, profiles; result: hit, miss, error, saved
	)

	// Ingestion Metrics
	IngestProfiles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gamematch_ingest_profiles_total",
			Help: "Total number of profiles produced by ingestion",
		},
		[]string{"platform"},
	)

	IngestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gamematch_ingest_duration_seconds",
			Help:    "Duration of profile ingestion in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"platform"},
	)
)

// RecordGraphBuild records one completed graph construction.
func RecordGraphBuild(duration time.Duration, vertices, edges, pairs, skipped int) {
	GraphBuildDuration.Observe(duration.Seconds())
	GraphPairsEvaluated.Add(float64(pairs))
	GraphEdgesSkipped.Add(float64(skipped))
	GraphVertices.Set(float64(vertices))
	GraphEdges.Set(float64(edges))
}

// RecordDetection records one completed detection run.
func RecordDetection(duration time.Duration, levels int, modularity float64, communities int) {
	CommunityDetectDuration.Observe(duration.Seconds())
	CommunityLevels.Observe(float64(levels))
	CommunityModularity.Set(modularity)
	Communities.Set(float64(communities))
}

// RecordSnapshotLookup records a cache load for kind.
func RecordSnapshotLookup(kind string, hit bool, err error) {
	result := ResultMiss
	switch {
	case err != nil:
		result = ResultError
	case hit:
		result = ResultHit
	}
	SnapshotCacheRequests.WithLabelValues(kind, result).Inc()
}

// RecordSnapshotSave records a cache store for kind.
func RecordSnapshotSave(kind string, err error) {
	result := ResultSaved
	if err != nil {
		result = ResultError
	}
	SnapshotCacheRequests.WithLabelValues(kind, result).Inc()
}

// RecordIngest records one ingestion run for platform.
func RecordIngest(platform string, profiles int, duration time.Duration) {
	IngestProfiles.WithLabelValues(platform).Add(float64(profiles))
	IngestDuration.WithLabelValues(platform).Observe(duration.Seconds())
}

// WriteTextfile writes every registered collector to path in the Prometheus
// text format, for pickup by a node_exporter textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
