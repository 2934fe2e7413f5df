// GameMatch - Player Community Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamematch

// Package builder turns a set of profiles into the weighted similarity graph.
//
// # Pairing Policy
//
// Every profile becomes one vertex, in input order. Every unordered pair of
// distinct profiles is scored once with similarity.Compare and inserted as one
// edge. Pairs whose weight is exactly zero are inserted only when
// Options.KeepZeroWeight is set (the default).
//
// # Complexity
//
// Scoring is O(n²) in the number of profiles and dominates the run time. It is
// split by row: row i scores i against every later profile, rows run on a
// bounded errgroup, and each row writes only its own result slice. Edges are
// inserted afterwards on the calling goroutine in (i, j) order, so the graph
// is identical for any worker count.
//
// # Caching
//
// A Builder holds an injected snapshot.Store. Before scoring it computes an
// xxhash fingerprint of the ordered profiles, the preference coefficients,
// and the zero-weight policy, and tries to restore a graph saved under that
// key. Cache errors are logged and never fail a build.
package builder
