// GameMatch - Player Community Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamematch

/*
Package metrics provides Prometheus instrumentation for the matchmaking pipeline.

Collectors are registered with the default registry through promauto when the
package is loaded. Components call the Record* helpers rather than touching the
collectors directly.

# Available Metrics

Graph Builder:
  - gamematch_graph_build_duration_seconds: build time (histogram)
  - gamematch_graph_pairs_evaluated_total: scored profile pairs (counter)
  - gamematch_graph_edges_skipped_total: zero-weight pairs not inserted (counter)
  - gamematch_graph_vertices, gamematch_graph_edges: size of the last graph (gauges)

Community Detection:
  - gamematch_community_detect_duration_seconds: detection time (histogram)
  - gamematch_community_levels: aggregation levels per run (histogram)
  - gamematch_community_modularity: modularity of the last partition (gauge)
  - gamematch_communities: community count of the last partition (gauge)

Snapshot Cache:
  - gamematch_snapshot_cache_requests_total: loads and saves (counter)
    Labels: kind (graph, profiles), result (hit, miss, error, saved)

Ingestion:
  - gamematch_ingest_profiles_total: profiles produced (counter)
    Labels: platform
  - gamematch_ingest_duration_seconds: ingestion time (histogram)
    Labels: platform

# Export

The batch runner has no HTTP listener. When configured it calls WriteTextfile
at the end of a run so a node_exporter textfile collector can scrape the
values.
*/
package metrics
