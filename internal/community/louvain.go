// GameMatch - Player Community Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamematch

package community

import (
	"sort"

	"github.com/tomtom215/gamematch/internal/graph"
)

// arc is a directed half of an undirected edge between two level vertices.
type arc struct {
	to     int
	weight float64
}

// level is one layer of the Louvain hierarchy. Vertex i of a level stands for
// a set of original vertices; loops[i] is the weight already internal to it.
type level struct {
	arcs   [][]arc
	loops  []float64
	degree []float64
}

// baseLevel converts g into the first level. Arcs keep ascending index order.
func baseLevel(g *graph.Graph) *level {
	n := g.Len()
	lv := &level{
		arcs:   make([][]arc, n),
		loops:  make([]float64, n),
		degree: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		for _, nb := range g.NeighborsAt(i) {
			if nb.Weight == 0 {
				continue
			}
			lv.arcs[i] = append(lv.arcs[i], arc{to: nb.Index, weight: nb.Weight})
			lv.degree[i] += nb.Weight
		}
	}
	return lv
}

func (lv *level) size() int {
	return len(lv.degree)
}

// totalDegree returns 2m.
func (lv *level) totalDegree() float64 {
	var sum float64
	for _, k := range lv.degree {
		sum += k
	}
	return sum
}

// aggregate collapses every community of comm (labels 0..k-1) into one vertex.
func (lv *level) aggregate(comm []int, k int) *level {
	next := &level{
		arcs:   make([][]arc, k),
		loops:  make([]float64, k),
		degree: make([]float64, k),
	}
	between := make([]map[int]float64, k)

	for i, arcs := range lv.arcs {
		ci := comm[i]
		next.loops[ci] += lv.loops[i]
		next.degree[ci] += lv.degree[i]
		for _, a := range arcs {
			cj := comm[a.to]
			if ci == cj {
				// each internal edge is seen from both ends; count it once
				if i < a.to {
					next.loops[ci] += a.weight
				}
				continue
			}
			if between[ci] == nil {
				between[ci] = make(map[int]float64)
			}
			between[ci][cj] += a.weight
		}
	}

	for c, targets := range between {
		arcs := make([]arc, 0, len(targets))
		for to, w := range targets {
			arcs = append(arcs, arc{to: to, weight: w})
		}
		sort.Slice(arcs, func(a, b int) bool { return arcs[a].to < arcs[b].to })
		next.arcs[c] = arcs
	}
	return next
}

// partition is the mutable state of the local-move phase on one level.
type partition struct {
	lv         *level
	comm       []int
	tot        []float64
	m2         float64
	resolution float64
	minGain    float64

	// scratch, indexed by community; -1 marks "not a neighbour"
	linkWeight []float64
	candidates []int
}

func newPartition(lv *level, m2, resolution, minGain float64) *partition {
	n := lv.size()
	p := &partition{
		lv:         lv,
		comm:       make([]int, n),
		tot:        make([]float64, n),
		m2:         m2,
		resolution: resolution,
		minGain:    minGain,
		linkWeight: make([]float64, n),
		candidates: make([]int, 0, 16),
	}
	for i := 0; i < n; i++ {
		p.comm[i] = i
		p.tot[i] = lv.degree[i]
		p.linkWeight[i] = -1
	}
	return p
}

func (p *partition) gain(c int, ki float64) float64 {
	w := p.linkWeight[c]
	if w < 0 {
		w = 0
	}
	return w - p.resolution*ki*p.tot[c]/p.m2
}

// pass visits every vertex once and returns how many moved.
func (p *partition) pass() int {
	moved := 0
	for i := range p.comm {
		ci := p.comm[i]
		ki := p.lv.degree[i]

		p.candidates = p.candidates[:0]
		for _, a := range p.lv.arcs[i] {
			c := p.comm[a.to]
			if p.linkWeight[c] < 0 {
				p.linkWeight[c] = 0
				p.candidates = append(p.candidates, c)
			}
			p.linkWeight[c] += a.weight
		}

		p.tot[ci] -= ki
		best := ci
		bestGain := p.gain(ci, ki)
		for _, c := range p.candidates {
			if c == ci {
				continue
			}
			if g := p.gain(c, ki); g > bestGain+p.minGain {
				best, bestGain = c, g
			}
		}
		p.tot[best] += ki

		if best != ci {
			p.comm[i] = best
			moved++
		}

		for _, c := range p.candidates {
			p.linkWeight[c] = -1
		}
	}
	return moved
}

// modularity of the current partition of this level.
func (p *partition) modularity() float64 {
	return levelModularity(p.lv, p.comm, p.m2, p.resolution)
}

// levelModularity computes Q = Σ_c [ 2·in(c)/2m − γ·(tot(c)/2m)² ] where in(c)
// counts each internal edge and self-loop once.
func levelModularity(lv *level, comm []int, m2, resolution float64) float64 {
	if m2 == 0 {
		return 0
	}
	// labels are always < number of level vertices
	n := lv.size()
	internal := make([]float64, n)
	total := make([]float64, n)
	for i, arcs := range lv.arcs {
		c := comm[i]
		internal[c] += lv.loops[i]
		total[c] += lv.degree[i]
		for _, a := range arcs {
			if i < a.to && comm[a.to] == c {
				internal[c] += a.weight
			}
		}
	}

	var q float64
	for c, tot := range total {
		if tot == 0 && internal[c] == 0 {
			continue
		}
		share := tot / m2
		q += 2*internal[c]/m2 - resolution*share*share
	}
	return q
}

// renumber relabels comm densely (0..k-1) by first appearance.
func renumber(comm []int) ([]int, int) {
	mapping := make(map[int]int, len(comm))
	out := make([]int, len(comm))
	for i, c := range comm {
		label, ok := mapping[c]
		if !ok {
			label = len(mapping)
			mapping[c] = label
		}
		out[i] = label
	}
	return out, len(mapping)
}
