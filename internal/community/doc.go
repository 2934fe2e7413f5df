// GameMatch - Player Community Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamematch

// Package community partitions a weighted user graph into communities using
// the Louvain method.
//
// # Algorithm
//
// Detection alternates two phases until the partition stops changing:
//
//  1. Local moves. Every vertex starts in its own community. Vertices are
//     visited in a fixed order (graph insertion order at the first level) and
//     each is moved into the neighbouring community with the largest
//     modularity gain
//
//     gain(v, C) = k_v,in(C) - resolution * k_v * Σtot(C) / 2m
//
//     provided that gain exceeds the gain of staying put by more than
//     Config.MinGain. Passes repeat until a full pass moves nothing or
//     Config.MaxPasses is reached.
//  2. Aggregation. Each community becomes a vertex of a smaller graph. Edge
//     weights between communities are summed and intra-community weight is
//     folded into a self-loop, which keeps degrees and 2m unchanged but is
//     never a move candidate.
//
// The loop stops when a level produces no merge, or after Config.MaxLevels
// levels (Result.Converged is then false). Labels of the final level are
// composed back onto the original vertices and renumbered densely in order of
// first appearance.
//
// # Determinism
//
// For a given graph (including its insertion order) and Config the result is
// fully deterministic: ties between candidate communities go to the first one
// encountered in ascending neighbour order, and a vertex whose best move does
// not strictly beat staying stays.
//
// # Edge Weights
//
// Zero-weight edges carry no degree and never produce a positive gain, so the
// detector ignores them. Two vertices joined only by zero-weight edges are
// never merged.
//
// # Influential Members
//
// Influencers ranks the members of each community by intra-community
// strength, the sum of weights to neighbours with the same label.
package community
