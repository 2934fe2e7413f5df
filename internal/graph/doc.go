// GameMatch - Player Community Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamematch

// Package graph implements the undirected weighted user graph.
//
// # Representation
//
// Vertices live in an arena: each user identifier is mapped to a dense index
// assigned in insertion order, and each index owns an adjacency map from
// neighbour index to edge weight. Vertices never hold references to each
// other, so the structure has no ownership cycles and can be copied,
// exported, and rebuilt freely.
//
// # Invariants
//
//   - One vertex per identifier; the identifier stored at index i is the key
//     that maps to i.
//   - No self-loops: AddEdge(u, u, w) fails with ErrSelfLoop.
//   - Symmetry: if u lists v with weight w, v lists u with the same w. Both
//     sides are written by the same call.
//   - Weights are finite and non-negative.
//
// # Errors
//
// Every operation that names an identifier absent from the graph fails with
// ErrMissingVertex, whether it mutates (AddEdge, AdjustEdgeWeight) or only
// reads (AreAdjacent, Weight, Neighbors). Vertices are never created
// implicitly by an edge operation.
//
// # Persistence
//
// Export returns a Snapshot (vertex list plus one triple per undirected edge)
// and FromSnapshot rebuilds an identical graph from it. A snapshot that names
// an edge endpoint missing from its vertex list is rejected with
// ErrMalformedSnapshot. The package performs no I/O itself; see
// internal/snapshot for stores.
//
// # Thread Safety
//
// A Graph is not safe for concurrent mutation. Concurrent readers are safe
// once construction has finished.
package graph
