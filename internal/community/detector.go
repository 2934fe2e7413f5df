// GameMatch - Player Community Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamematch

package community

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/gamematch/internal/graph"
	"github.com/tomtom215/gamematch/internal/metrics"
	"github.com/tomtom215/gamematch/internal/validation"
)

// ErrIterationLimit reports that detection stopped at Config.MaxLevels while
// the partition was still changing. The partition found so far is returned.
var ErrIterationLimit = errors.New("community detection reached level limit")

// ErrUnassignedVertex is returned when a graph vertex has no community label.
var ErrUnassignedVertex = errors.New("vertex has no community")

// Config controls the detector.
type Config struct {
	// Resolution scales the null-model term; >1 favours smaller communities.
	Resolution float64 `koanf:"resolution" json:"resolution" validate:"finite,gt=0"`

	// MaxLevels bounds the number of aggregation levels.
	MaxLevels int `koanf:"max_levels" json:"max_levels" validate:"gte=1"`

	// MaxPasses bounds the local-move passes per level.
	MaxPasses int `koanf:"max_passes" json:"max_passes" validate:"gte=1"`

	// MinGain is how much a move must beat staying put by.
	MinGain float64 `koanf:"min_gain" json:"min_gain" validate:"finite,gte=0"`
}

// DefaultConfig returns the standard Louvain settings.
func DefaultConfig() Config {
	return Config{
		Resolution: 1.0,
		MaxLevels:  32,
		MaxPasses:  100,
		MinGain:    1e-12,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return fmt.Errorf("invalid community config: %w", verr)
	}
	return nil
}

// LevelStats describes one completed aggregation level.
type LevelStats struct {
	Level       int     `json:"level"`
	Vertices    int     `json:"vertices"`
	Communities int     `json:"communities"`
	Passes      int     `json:"passes"`
	Moves       int     `json:"moves"`
	Modularity  float64 `json:"modularity"`
}

// Result is the outcome of one detection run.
type Result struct {
	// Assignment maps every vertex id to a dense community label 0..Count-1.
	Assignment map[string]int `json:"assignment"`

	// Count is the number of communities.
	Count int `json:"communities"`

	// Modularity of the final partition on the input graph.
	Modularity float64 `json:"modularity"`

	// Levels holds one entry per level that merged at least one vertex.
	Levels []LevelStats `json:"levels"`

	// Converged is false when MaxLevels stopped a still-changing partition.
	Converged bool `json:"converged"`

	order []string
}

// Err returns ErrIterationLimit when the run did not converge.
func (r *Result) Err() error {
	if !r.Converged {
		return ErrIterationLimit
	}
	return nil
}

// Members returns the ids labelled community, in graph insertion order.
func (r *Result) Members(community int) []string {
	var out []string
	for _, id := range r.order {
		if r.Assignment[id] == community {
			out = append(out, id)
		}
	}
	return out
}

// Communities returns all communities indexed by label, members in graph
// insertion order.
func (r *Result) Communities() [][]string {
	out := make([][]string, r.Count)
	for _, id := range r.order {
		c := r.Assignment[id]
		out[c] = append(out[c], id)
	}
	return out
}

// Detector runs Louvain community detection.
// The graph is only read; a Detector may be used from several goroutines.
type Detector struct {
	cfg    Config
	logger zerolog.Logger
}

// NewDetector creates a detector after validating cfg.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewDetector(cfg Config, logger zerolog.Logger) (*Detector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Detector{
		cfg:    cfg,
		logger: logger.With().Str("component", "community").Logger(),
	}, nil
}

// Config returns the detector configuration.
func (d *Detector) Config() Config {
	return d.cfg
}

// Detect partitions g. Cancellation is checked between passes.
func (d *Detector) Detect(ctx context.Context, g *graph.Graph) (*Result, error) {
	start := time.Now()
	n := g.Len()
	result := &Result{
		Assignment: make(map[string]int, n),
		Converged:  true,
		order:      g.Vertices(),
	}
	if n == 0 {
		return result, nil
	}

	base := baseLevel(g)
	m2 := base.totalDegree()

	membership := make([]int, n)
	for i := range membership {
		membership[i] = i
	}

	// With no positive weight every vertex stays a singleton.
	if m2 > 0 {
		converged, err := d.optimize(ctx, base, m2, membership, result)
		if err != nil {
			return nil, err
		}
		result.Converged = converged
	}

	labels, count := renumber(membership)
	for i, id := range result.order {
		result.Assignment[id] = labels[i]
	}
	result.Count = count
	result.Modularity = levelModularity(base, labels, m2, d.cfg.Resolution)

	elapsed := time.Since(start)
	metrics.RecordDetection(elapsed, len(result.Levels), result.Modularity, count)

	event := d.logger.Info()
	if !result.Converged {
		event = d.logger.Warn().Err(ErrIterationLimit)
	}
	event.
		Int("vertices", n).
		Int("communities", count).
		Int("levels", len(result.Levels)).
		Float64("modularity", result.Modularity).
		Dur("duration", elapsed).
		Msg("community detection complete")

	return result, nil
}

// optimize runs the level loop, composing every level's labels into
// membership. It reports whether the partition stabilised within MaxLevels.
func (d *Detector) optimize(ctx context.Context, lv *level, m2 float64, membership []int, result *Result) (bool, error) {
	for depth := 0; depth < d.cfg.MaxLevels; depth++ {
		p := newPartition(lv, m2, d.cfg.Resolution, d.cfg.MinGain)

		passes, moves := 0, 0
		for passes < d.cfg.MaxPasses {
			if err := ctx.Err(); err != nil {
				return false, err
			}
			passes++
			moved := p.pass()
			moves += moved
			if moved == 0 {
				break
			}
		}

		comm, k := renumber(p.comm)
		if k == lv.size() {
			return true, nil
		}

		for v, c := range membership {
			membership[v] = comm[c]
		}

		stats := LevelStats{
			Level:       depth,
			Vertices:    lv.size(),
			Communities: k,
			Passes:      passes,
			Moves:       moves,
			Modularity:  p.modularity(),
		}
		result.Levels = append(result.Levels, stats)

		d.logger.Debug().
			Int("level", stats.Level).
			Int("vertices", stats.Vertices).
			Int("communities", stats.Communities).
			Int("passes", stats.Passes).
			Float64("modularity", stats.Modularity).
			Msg("level complete")

		lv = lv.aggregate(comm, k)
	}
	return false, nil
}

// Modularity returns the modularity of assignment on g at the given
// resolution. Every vertex of g must be assigned; labels may be arbitrary
// integers.
func Modularity(g *graph.Graph, assignment map[string]int, resolution float64) (float64, error) {
	comm, err := indexAssignment(g, assignment)
	if err != nil {
		return 0, err
	}
	dense, _ := renumber(comm)
	base := baseLevel(g)
	return levelModularity(base, dense, base.totalDegree(), resolution), nil
}

// indexAssignment lays assignment out by graph index.
func indexAssignment(g *graph.Graph, assignment map[string]int) ([]int, error) {
	comm := make([]int, g.Len())
	for i := range comm {
		id := g.IDAt(i)
		c, ok := assignment[id]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnassignedVertex, id)
		}
		comm[i] = c
	}
	return comm, nil
}
