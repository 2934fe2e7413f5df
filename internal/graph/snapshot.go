// GameMatch - Player Community Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamematch

package graph

import (
	"errors"
	"fmt"
)

// ErrMalformedSnapshot is returned when a snapshot cannot be rebuilt into a
// graph that satisfies the package invariants.
var ErrMalformedSnapshot = errors.New("malformed graph snapshot")

// Edge is one undirected edge of a snapshot.
type Edge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight"`
}

// Snapshot is the persisted shape of a graph: the vertex list in insertion
// order and one triple per undirected edge.
type Snapshot struct {
	Vertices []string `json:"vertices"`
	Edges    []Edge   `json:"edges"`
}

// Export returns the graph as a Snapshot. Edges are emitted once, from the
// lower-index endpoint, ordered by source index then target index.
func (g *Graph) Export() Snapshot {
	snap := Snapshot{
		Vertices: g.Vertices(),
		Edges:    make([]Edge, 0, g.edges),
	}
	for i := range g.ids {
		for _, n := range g.NeighborsAt(i) {
			if n.Index <= i {
				continue
			}
			snap.Edges = append(snap.Edges, Edge{
				Source: g.ids[i],
				Target: g.ids[n.Index],
				Weight: n.Weight,
			})
		}
	}
	return snap
}

// FromSnapshot rebuilds a graph from snap.
//
// Duplicate vertex ids, edges naming an unknown vertex, self-loops, invalid
// weights, and an edge listed twice with two different weights all fail with
// ErrMalformedSnapshot. Listing the same edge twice with the same weight (as
// a per-endpoint export would) is accepted.
func FromSnapshot(snap Snapshot) (*Graph, error) {
	g := NewWithCapacity(len(snap.Vertices))
	for _, id := range snap.Vertices {
		if g.HasVertex(id) {
			return nil, fmt.Errorf("%w: duplicate vertex %q", ErrMalformedSnapshot, id)
		}
		g.AddVertex(id)
	}

	for k, e := range snap.Edges {
		if prev, exists, err := g.Weight(e.Source, e.Target); err == nil && exists && prev != e.Weight {
			return nil, fmt.Errorf("%w: edge %d (%q-%q) listed with weights %v and %v",
				ErrMalformedSnapshot, k, e.Source, e.Target, prev, e.Weight)
		}
		if err := g.AddEdge(e.Source, e.Target, e.Weight); err != nil {
			return nil, fmt.Errorf("%w: edge %d: %w", ErrMalformedSnapshot, k, err)
		}
	}
	return g, nil
}
