// GameMatch - Player Community Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamematch

package builder

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/gamematch/internal/graph"
	"github.com/tomtom215/gamematch/internal/metrics"
	"github.com/tomtom215/gamematch/internal/profile"
	"github.com/tomtom215/gamematch/internal/similarity"
	"github.com/tomtom215/gamematch/internal/snapshot"
	"github.com/tomtom215/gamematch/internal/validation"
)

// Options controls graph construction.
type Options struct {
	// Workers bounds concurrent row scoring; 0 uses GOMAXPROCS.
	Workers int `koanf:"workers" json:"workers" validate:"gte=0"`

	// KeepZeroWeight inserts pairs whose weight is exactly zero.
	KeepZeroWeight bool `koanf:"keep_zero_weight" json:"keep_zero_weight"`
}

// DefaultOptions keeps zero-weight edges and uses every CPU.
func DefaultOptions() Options {
	return Options{Workers: 0, KeepZeroWeight: true}
}

// Stats describes one Build call.
type Stats struct {
	Vertices  int           `json:"vertices"`
	Edges     int           `json:"edges"`
	Pairs     int           `json:"pairs"`
	Skipped   int           `json:"skipped"`
	Duration  time.Duration `json:"duration"`
	CacheKey  string        `json:"cache_key"`
	FromCache bool          `json:"from_cache"`
}

// Builder builds similarity graphs. It is safe for concurrent use.
type Builder struct {
	opts   Options
	prefs  similarity.PreferenceWeights
	cache  snapshot.Store
	logger zerolog.Logger
}

// New creates a Builder. A nil cache disables caching.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(opts Options, prefs similarity.PreferenceWeights, cache snapshot.Store, logger zerolog.Logger) (*Builder, error) {
	if verr := validation.ValidateStruct(&opts); verr != nil {
		return nil, fmt.Errorf("invalid builder options: %w", verr)
	}
	if verr := validation.ValidateStruct(&prefs); verr != nil {
		return nil, fmt.Errorf("invalid preference weights: %w", verr)
	}
	if cache == nil {
		cache = snapshot.Nop{}
	}
	if opts.Workers == 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}

	return &Builder{
		opts:   opts,
		prefs:  prefs,
		cache:  cache,
		logger: logger.With().Str("component", "builder").Logger(),
	}, nil
}

// Preferences returns the coefficients used for scoring.
func (b *Builder) Preferences() similarity.PreferenceWeights {
	return b.prefs
}

// BuildStore builds the graph for every profile in s.
func (b *Builder) BuildStore(ctx context.Context, s profile.Store) (*graph.Graph, Stats, error) {
	return b.Build(ctx, s.All())
}

// Build returns the similarity graph for profiles. Empty or repeated ids fail
// before any scoring.
func (b *Builder) Build(ctx context.Context, profiles []*profile.Profile) (*graph.Graph, Stats, error) {
	start := time.Now()

	if err := checkIDs(profiles); err != nil {
		return nil, Stats{}, err
	}

	key := Fingerprint(profiles, b.prefs, b.opts.KeepZeroWeight)
	logger := b.logger.With().Str("cache_key", key).Int("profiles", len(profiles)).Logger()

	cached, ok, err := snapshot.LoadGraph(ctx, b.cache, key)
	switch {
	case err != nil:
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, Stats{}, ctxErr
		}
		logger.Warn().Err(err).Msg("graph snapshot unreadable, rebuilding")
	case ok:
		logger.Info().Msg("graph restored from snapshot")
		return cached, Stats{
			Vertices:  cached.Len(),
			Edges:     cached.EdgeCount(),
			Duration:  time.Since(start),
			CacheKey:  key,
			FromCache: true,
		}, nil
	}

	rows, err := b.score(ctx, profiles)
	if err != nil {
		return nil, Stats{}, err
	}

	g, stats, err := b.assemble(profiles, rows)
	if err != nil {
		return nil, Stats{}, err
	}
	stats.CacheKey = key
	stats.Duration = time.Since(start)

	metrics.RecordGraphBuild(stats.Duration, stats.Vertices, stats.Edges, stats.Pairs, stats.Skipped)
	logger.Info().
		Int("vertices", stats.Vertices).
		Int("edges", stats.Edges).
		Int("skipped", stats.Skipped).
		Int("workers", b.opts.Workers).
		Dur("duration", stats.Duration).
		Msg("graph built")

	if err := snapshot.SaveGraph(ctx, b.cache, key, g); err != nil {
		logger.Warn().Err(err).Msg("graph snapshot not saved")
	}

	return g, stats, nil
}

// score computes rows[i][k] = weight(profiles[i], profiles[i+1+k]).
func (b *Builder) score(ctx context.Context, profiles []*profile.Profile) ([][]float64, error) {
	n := len(profiles)
	rows := make([][]float64, n)

	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(b.opts.Workers)
	for i := 0; i < n; i++ {
		eg.Go(func() error {
			if err := egctx.Err(); err != nil {
				return err
			}
			row := make([]float64, n-i-1)
			for k := range row {
				row[k] = similarity.Weight(profiles[i], profiles[i+1+k], b.prefs)
			}
			rows[i] = row
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

// assemble inserts vertices and scored edges in a fixed order.
func (b *Builder) assemble(profiles []*profile.Profile, rows [][]float64) (*graph.Graph, Stats, error) {
	g := graph.NewWithCapacity(len(profiles))
	for _, p := range profiles {
		g.AddVertex(p.ID)
	}

	var stats Stats
	for i, row := range rows {
		for k, w := range row {
			stats.Pairs++
			if w == 0 && !b.opts.KeepZeroWeight {
				stats.Skipped++
				continue
			}
			if err := g.AddEdge(profiles[i].ID, profiles[i+1+k].ID, w); err != nil {
				return nil, Stats{}, fmt.Errorf("insert edge: %w", err)
			}
		}
	}

	stats.Vertices = g.Len()
	stats.Edges = g.EdgeCount()
	return g, stats, nil
}

func checkIDs(profiles []*profile.Profile) error {
	seen := make(map[string]struct{}, len(profiles))
	for _, p := range profiles {
		if p == nil || p.ID == "" {
			return profile.ErrEmptyID
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: %q", profile.ErrDuplicateProfile, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}
