// GameMatch - Player Community Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamematch

package graph

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	// ErrMissingVertex is returned when an operation references an identifier
	// that is not a vertex of the graph.
	ErrMissingVertex = errors.New("missing vertex")

	// ErrSelfLoop is returned when an edge would connect a vertex to itself.
	ErrSelfLoop = errors.New("self-loop not allowed")

	// ErrInvalidWeight is returned for negative, NaN, or infinite weights.
	ErrInvalidWeight = errors.New("invalid edge weight")

	// ErrEdgeNotFound is returned when adjusting an edge that does not exist.
	ErrEdgeNotFound = errors.New("edge not found")
)

// Neighbor is one entry of a vertex's adjacency view.
type Neighbor struct {
	ID     string  `json:"id"`
	Weight float64 `json:"weight"`
}

// IndexedNeighbor is an adjacency entry addressed by vertex index.
type IndexedNeighbor struct {
	Index  int
	Weight float64
}

// Graph is an undirected graph over string identifiers with non-negative
// real edge weights.
type Graph struct {
	ids   []string
	index map[string]int
	adj   []map[int]float64
	edges int
}

// New creates an empty graph.
func New() *Graph {
	return NewWithCapacity(0)
}

// NewWithCapacity creates an empty graph sized for n vertices.
func NewWithCapacity(n int) *Graph {
	return &Graph{
		ids:   make([]string, 0, n),
		index: make(map[string]int, n),
		adj:   make([]map[int]float64, 0, n),
	}
}

// AddVertex inserts id. Adding an existing id is a no-op.
func (g *Graph) AddVertex(id string) {
	if _, ok := g.index[id]; ok {
		return
	}
	g.index[id] = len(g.ids)
	g.ids = append(g.ids, id)
	g.adj = append(g.adj, make(map[int]float64))
}

// HasVertex reports whether id is a vertex.
func (g *Graph) HasVertex(id string) bool {
	_, ok := g.index[id]
	return ok
}

// lookup resolves both ids or returns ErrMissingVertex naming the first absent one.
func (g *Graph) lookup(id1, id2 string) (int, int, error) {
	i, ok := g.index[id1]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrMissingVertex, id1)
	}
	j, ok := g.index[id2]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrMissingVertex, id2)
	}
	return i, j, nil
}

func validWeight(w float64) bool {
	return w >= 0 && !math.IsInf(w, 1) && !math.IsNaN(w)
}

// AddEdge sets the weight between id1 and id2 on both endpoints, overwriting
// any previous weight. Both ids must already be vertices.
func (g *Graph) AddEdge(id1, id2 string, weight float64) error {
	i, j, err := g.lookup(id1, id2)
	if err != nil {
		return err
	}
	if i == j {
		return fmt.Errorf("%w: %q", ErrSelfLoop, id1)
	}
	if !validWeight(weight) {
		return fmt.Errorf("%w: %v between %q and %q", ErrInvalidWeight, weight, id1, id2)
	}
	g.setEdge(i, j, weight)
	return nil
}

func (g *Graph) setEdge(i, j int, weight float64) {
	if _, exists := g.adj[i][j]; !exists {
		g.edges++
	}
	g.adj[i][j] = weight
	g.adj[j][i] = weight
}

// AdjustEdgeWeight changes the weight of an existing edge in place.
// The vertex set is never changed. It fails with ErrEdgeNotFound when the
// two vertices are not adjacent.
func (g *Graph) AdjustEdgeWeight(id1, id2 string, weight float64) error {
	i, j, err := g.lookup(id1, id2)
	if err != nil {
		return err
	}
	if _, ok := g.adj[i][j]; !ok {
		return fmt.Errorf("%w: %q-%q", ErrEdgeNotFound, id1, id2)
	}
	if !validWeight(weight) {
		return fmt.Errorf("%w: %v between %q and %q", ErrInvalidWeight, weight, id1, id2)
	}
	g.setEdge(i, j, weight)
	return nil
}

// AreAdjacent reports whether each vertex lists the other as a neighbour.
func (g *Graph) AreAdjacent(id1, id2 string) (bool, error) {
	i, j, err := g.lookup(id1, id2)
	if err != nil {
		return false, err
	}
	_, forward := g.adj[i][j]
	_, backward := g.adj[j][i]
	return forward && backward, nil
}

// Weight returns the weight between id1 and id2 and whether the edge exists.
func (g *Graph) Weight(id1, id2 string) (float64, bool, error) {
	i, j, err := g.lookup(id1, id2)
	if err != nil {
		return 0, false, err
	}
	w, ok := g.adj[i][j]
	return w, ok, nil
}

// Vertices returns all identifiers in insertion order.
func (g *Graph) Vertices() []string {
	out := make([]string, len(g.ids))
	copy(out, g.ids)
	return out
}

// Neighbors returns the adjacency view of id ordered by neighbour insertion order.
func (g *Graph) Neighbors(id string) ([]Neighbor, error) {
	i, ok := g.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingVertex, id)
	}
	indexed := g.NeighborsAt(i)
	out := make([]Neighbor, len(indexed))
	for k, n := range indexed {
		out[k] = Neighbor{ID: g.ids[n.Index], Weight: n.Weight}
	}
	return out, nil
}

// Strength returns the sum of weights incident to id.
func (g *Graph) Strength(id string) (float64, error) {
	i, ok := g.index[id]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrMissingVertex, id)
	}
	var s float64
	for _, w := range g.adj[i] {
		s += w
	}
	return s, nil
}

// Len returns the number of vertices.
func (g *Graph) Len() int {
	return len(g.ids)
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	return g.edges
}

// TotalWeight returns the sum of all undirected edge weights, each counted once.
func (g *Graph) TotalWeight() float64 {
	var total float64
	for i := range g.adj {
		for j, w := range g.adj[i] {
			if i < j {
				total += w
			}
		}
	}
	return total
}

// IndexOf returns the arena index of id.
func (g *Graph) IndexOf(id string) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}

// IDAt returns the identifier stored at arena index i.
func (g *Graph) IDAt(i int) string {
	return g.ids[i]
}

// NeighborsAt returns the neighbours of arena index i sorted by index.
func (g *Graph) NeighborsAt(i int) []IndexedNeighbor {
	out := make([]IndexedNeighbor, 0, len(g.adj[i]))
	for j, w := range g.adj[i] {
		out = append(out, IndexedNeighbor{Index: j, Weight: w})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Index < out[b].Index })
	return out
}

// Equal reports whether both graphs have the same vertex set and, for every
// pair, the same adjacency and weight. Insertion order is ignored.
func (g *Graph) Equal(other *Graph) bool {
	if g.Len() != other.Len() || g.edges != other.edges {
		return false
	}
	for i, id := range g.ids {
		oi, ok := other.index[id]
		if !ok {
			return false
		}
		if len(g.adj[i]) != len(other.adj[oi]) {
			return false
		}
		for j, w := range g.adj[i] {
			oj, ok := other.index[g.ids[j]]
			if !ok {
				return false
			}
			ow, ok := other.adj[oi][oj]
			if !ok || ow != w {
				return false
			}
		}
	}
	return true
}
