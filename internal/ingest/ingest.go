// GameMatch - Player Community Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamematch

package ingest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2" // registers the duckdb driver
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/gamematch/internal/metrics"
	"github.com/tomtom215/gamematch/internal/profile"
	"github.com/tomtom215/gamematch/internal/validation"
)

// Source file names inside a platform directory.
const (
	PlayersFile   = "players.csv"
	PurchasesFile = "purchased_games.csv"
	HistoryFile   = "history.csv"
)

var (
	// ErrMissingFile is returned when a platform directory lacks a source file.
	ErrMissingFile = errors.New("missing source file")

	// ErrMissingColumn is returned when a source file lacks a required column.
	ErrMissingColumn = errors.New("missing column")

	// ErrMalformedLibrary is returned when a library cell is not an integer list.
	ErrMalformedLibrary = errors.New("malformed library")
)

// Options controls filtering and sampling.
type Options struct {
	// RequireLibrary keeps only players owning at least one item.
	RequireLibrary bool `koanf:"require_library" json:"require_library"`

	// RequireHistory keeps only players with at least one milestone.
	RequireHistory bool `koanf:"require_history" json:"require_history"`

	// SampleSize caps the number of players; 0 keeps everyone.
	SampleSize int `koanf:"sample_size" json:"sample_size" validate:"gte=0"`

	// Seed initialises the sampling generator.
	Seed int64 `koanf:"seed" json:"seed"`

	// Threads bounds DuckDB worker threads; 0 lets DuckDB decide.
	Threads int `koanf:"threads" json:"threads" validate:"gte=0"`
}

// DefaultOptions keeps every player and uses seed 1234.
func DefaultOptions() Options {
	return Options{Seed: 1234}
}

// Stats describes one Load call.
type Stats struct {
	Players     int           `json:"players"`
	WithLibrary int           `json:"with_library"`
	WithHistory int           `json:"with_history"`
	Filtered    int           `json:"filtered"`
	Profiles    int           `json:"profiles"`
	Duration    time.Duration `json:"duration"`
}

// Loader reads platform exports through DuckDB.
type Loader struct {
	db     *sql.DB
	opts   Options
	logger zerolog.Logger
}

// Open starts an in-memory DuckDB instance for ingestion.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Open(opts Options, logger zerolog.Logger) (*Loader, error) {
	if verr := validation.ValidateStruct(&opts); verr != nil {
		return nil, fmt.Errorf("invalid ingest options: %w", verr)
	}

	// Extensions are never needed for CSV reads
	connStr := ":memory:?autoinstall_known_extensions=false&autoload_known_extensions=false"
	if opts.Threads > 0 {
		connStr += "&threads=" + strconv.Itoa(opts.Threads)
	}

	db, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}

	return &Loader{
		db:     db,
		opts:   opts,
		logger: logger.With().Str("component", "ingest").Logger(),
	}, nil
}

// Close releases the DuckDB instance.
func (l *Loader) Close() error {
	return l.db.Close()
}

// Options returns the loader's filtering options.
func (l *Loader) Options() Options {
	return l.opts
}

// Load reads <dataDir>/<platform> and returns the filtered, sampled profiles
// ordered by player id.
func (l *Loader) Load(ctx context.Context, platform, dataDir string) ([]*profile.Profile, Stats, error) {
	start := time.Now()
	dir := filepath.Join(dataDir, platform)
	logger := l.logger.With().Str("platform", platform).Str("dir", dir).Logger()

	paths, err := sourcePaths(dir)
	if err != nil {
		return nil, Stats{}, err
	}

	players, err := l.readPlayers(ctx, paths[PlayersFile])
	if err != nil {
		return nil, Stats{}, err
	}
	if err := l.readPurchases(ctx, paths[PurchasesFile], players); err != nil {
		return nil, Stats{}, err
	}
	if err := l.readHistory(ctx, paths[HistoryFile], players); err != nil {
		return nil, Stats{}, err
	}

	var stats Stats
	all := make([]*profile.Profile, 0, len(players))
	for _, p := range players {
		all = append(all, p)
		if len(p.Items) > 0 {
			stats.WithLibrary++
		}
		if len(p.Milestones) > 0 {
			stats.WithHistory++
		}
	}
	stats.Players = len(all)
	sortByID(all)

	kept := filter(all, l.opts)
	stats.Filtered = len(all) - len(kept)
	kept = sample(kept, l.opts.SampleSize, l.opts.Seed)

	stats.Profiles = len(kept)
	stats.Duration = time.Since(start)

	metrics.RecordIngest(platform, stats.Profiles, stats.Duration)
	logger.Info().
		Int("players", stats.Players).
		Int("with_library", stats.WithLibrary).
		Int("with_history", stats.WithHistory).
		Int("filtered", stats.Filtered).
		Int("profiles", stats.Profiles).
		Dur("duration", stats.Duration).
		Msg("profiles ingested")

	return kept, stats, nil
}

func sourcePaths(dir string) (map[string]string, error) {
	paths := make(map[string]string, 3)
	for _, name := range []string{PlayersFile, PurchasesFile, HistoryFile} {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			return nil, fmt.Errorf("%w: %s", ErrMissingFile, path)
		}
		paths[name] = path
	}
	return paths, nil
}

// columns returns the lower-cased header of a CSV file as DuckDB detects it.
func (l *Loader) columns(ctx context.Context, path string) (map[string]bool, error) {
	rows, err := l.db.QueryContext(ctx, "SELECT * FROM "+csvSource(path)+" LIMIT 0")
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	defer closeQuietly(rows)

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", filepath.Base(path), err)
	}
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[strings.ToLower(n)] = true
	}
	return out, nil
}

func (l *Loader) require(ctx context.Context, path string, names ...string) (map[string]bool, error) {
	cols, err := l.columns(ctx, path)
	if err != nil {
		return nil, err
	}
	for _, n := range names {
		if !cols[n] {
			return nil, fmt.Errorf("%w: %s in %s", ErrMissingColumn, n, filepath.Base(path))
		}
	}
	return cols, nil
}

func (l *Loader) readPlayers(ctx context.Context, path string) (map[string]*profile.Profile, error) {
	cols, err := l.require(ctx, path, "playerid")
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT CAST(playerid AS VARCHAR), %s, %s FROM %s WHERE playerid IS NOT NULL`,
		optionalText(cols, "nickname"), optionalText(cols, "country"), csvSource(path))

	rows, err := l.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer closeQuietly(rows)

	players := make(map[string]*profile.Profile)
	for rows.Next() {
		var id, nickname, country string
		if err := rows.Scan(&id, &nickname, &country); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		if _, dup := players[id]; dup {
			l.logger.Debug().Str("player_id", id).Msg("duplicate player row ignored")
			continue
		}
		p := profile.New(id, nil, nil)
		p.Nickname = nickname
		p.Country = country
		players[id] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read players: %w", err)
	}
	return players, nil
}

func (l *Loader) readPurchases(ctx context.Context, path string, players map[string]*profile.Profile) error {
	if _, err := l.require(ctx, path, "playerid", "library"); err != nil {
		return err
	}

	query := fmt.Sprintf(`SELECT CAST(playerid AS VARCHAR), COALESCE(CAST(library AS VARCHAR), '') FROM %s WHERE playerid IS NOT NULL`,
		csvSource(path))

	rows, err := l.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to query purchases: %w", err)
	}
	defer closeQuietly(rows)

	unknown := 0
	for rows.Next() {
		var id, library string
		if err := rows.Scan(&id, &library); err != nil {
			return fmt.Errorf("failed to scan purchases: %w", err)
		}
		p, ok := players[id]
		if !ok {
			unknown++
			continue
		}
		items, err := parseLibrary(library)
		if err != nil {
			return fmt.Errorf("player %s: %w", id, err)
		}
		for _, item := range items {
			p.Items[item] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read purchases: %w", err)
	}
	if unknown > 0 {
		l.logger.Debug().Int("rows", unknown).Msg("purchases for unknown players ignored")
	}
	return nil
}

func (l *Loader) readHistory(ctx context.Context, path string, players map[string]*profile.Profile) error {
	if _, err := l.require(ctx, path, "playerid", "achievementid"); err != nil {
		return err
	}

	query := fmt.Sprintf(`SELECT DISTINCT CAST(playerid AS VARCHAR), CAST(achievementid AS VARCHAR) FROM %s
		WHERE playerid IS NOT NULL AND achievementid IS NOT NULL`, csvSource(path))

	rows, err := l.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to query history: %w", err)
	}
	defer closeQuietly(rows)

	for rows.Next() {
		var id, milestone string
		if err := rows.Scan(&id, &milestone); err != nil {
			return fmt.Errorf("failed to scan history: %w", err)
		}
		if p, ok := players[id]; ok {
			p.Milestones[milestone] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}
	return nil
}

// parseLibrary decodes a bracketed integer list. Blank cells are empty.
func parseLibrary(cell string) ([]int64, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil, nil
	}
	var items []int64
	if err := json.Unmarshal([]byte(cell), &items); err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrMalformedLibrary, truncate(cell, 40), err)
	}
	return items, nil
}

func filter(profiles []*profile.Profile, opts Options) []*profile.Profile {
	if !opts.RequireLibrary && !opts.RequireHistory {
		return profiles
	}
	out := make([]*profile.Profile, 0, len(profiles))
	for _, p := range profiles {
		if opts.RequireLibrary && len(p.Items) == 0 {
			continue
		}
		if opts.RequireHistory && len(p.Milestones) == 0 {
			continue
		}
		out = append(out, p)
	}
	return out
}

// sample draws n profiles uniformly with a seeded generator and returns them
// ordered by id. The input must already be ordered by id.
func sample(profiles []*profile.Profile, n int, seed int64) []*profile.Profile {
	if n <= 0 || n >= len(profiles) {
		return profiles
	}
	pool := make([]*profile.Profile, len(profiles))
	copy(pool, profiles)

	//nolint:gosec // G404: reproducible sampling, not security sensitive
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < n; i++ {
		j := i + rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	out := pool[:n]
	sortByID(out)
	return out
}

// sortByID orders numeric ids numerically and everything else lexically,
// numeric ids first.
func sortByID(profiles []*profile.Profile) {
	sort.Slice(profiles, func(i, j int) bool {
		return lessID(profiles[i].ID, profiles[j].ID)
	})
}

func lessID(a, b string) bool {
	na, errA := strconv.ParseInt(a, 10, 64)
	nb, errB := strconv.ParseInt(b, 10, 64)
	switch {
	case errA == nil && errB == nil:
		return na < nb
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}

// csvSource renders a read_csv_auto call for path.
func csvSource(path string) string {
	return "read_csv_auto(" + quoteLiteral(path) + ", header=true)"
}

func optionalText(cols map[string]bool, name string) string {
	if !cols[name] {
		return "''"
	}
	return "COALESCE(CAST(" + name + " AS VARCHAR), '')"
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}
