// GameMatch - Player Community Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamematch

package match

import (
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/tomtom215/gamematch/internal/community"
	"github.com/tomtom215/gamematch/internal/graph"
	"github.com/tomtom215/gamematch/internal/profile"
	"github.com/tomtom215/gamematch/internal/similarity"
	"github.com/tomtom215/gamematch/internal/validation"
)

// Options controls ranking.
type Options struct {
	// UserID selects the user to rank for. The batch runner skips ranking
	// when it is empty.
	UserID string `koanf:"user_id" json:"user_id"`

	// Limit caps each list; 0 keeps every candidate.
	Limit int `koanf:"limit" json:"limit" validate:"gte=0"`

	// MinWeight excludes candidates whose weight is not above it.
	MinWeight float64 `koanf:"min_weight" json:"min_weight" validate:"finite,gte=0"`
}

// DefaultOptions returns ten matches per list and drops zero-weight pairs.
func DefaultOptions() Options {
	return Options{Limit: 10}
}

// Match is one ranked candidate.
type Match struct {
	ID        string  `json:"id"`
	Nickname  string  `json:"nickname,omitempty"`
	Country   string  `json:"country,omitempty"`
	Community int     `json:"community"`
	Weight    float64 `json:"weight"`

	// ItemSimilarity is the owned-item overlap as a whole percentage.
	ItemSimilarity int `json:"item_similarity"`

	// MilestoneSimilarity is the milestone overlap as a whole percentage.
	MilestoneSimilarity int `json:"milestone_similarity"`

	Items      int `json:"items"`
	Milestones int `json:"milestones"`
}

// Report is the ranking for one user.
type Report struct {
	User             string  `json:"user"`
	Community        int     `json:"community"`
	CommunitySize    int     `json:"community_size"`
	Candidates       int     `json:"candidates"`
	SameCommunity    []Match `json:"same_community"`
	OtherCommunities []Match `json:"other_communities"`
}

// Ranker ranks matches over one detection result.
type Ranker struct {
	graph      *graph.Graph
	store      profile.Store
	assignment map[string]int
	sizes      map[int]int
	prefs      similarity.PreferenceWeights
	opts       Options
	logger     zerolog.Logger
}

// NewRanker creates a Ranker. prefs must be the coefficients the graph was
// built with so that the reported percentages agree with the edge weights.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRanker(g *graph.Graph, store profile.Store, assignment map[string]int, prefs similarity.PreferenceWeights, opts Options, logger zerolog.Logger) (*Ranker, error) {
	if verr := validation.ValidateStruct(&opts); verr != nil {
		return nil, fmt.Errorf("invalid match options: %w", verr)
	}

	sizes := make(map[int]int)
	for _, c := range assignment {
		sizes[c]++
	}

	return &Ranker{
		graph:      g,
		store:      store,
		assignment: assignment,
		sizes:      sizes,
		prefs:      prefs,
		opts:       opts,
		logger:     logger.With().Str("component", "match").Logger(),
	}, nil
}

// Rank returns the same-community and cross-community matches for userID.
func (r *Ranker) Rank(userID string) (*Report, error) {
	user, err := r.store.Get(userID)
	if err != nil {
		return nil, err
	}
	own, ok := r.assignment[userID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", community.ErrUnassignedVertex, userID)
	}
	neighbors, err := r.graph.Neighbors(userID)
	if err != nil {
		return nil, err
	}

	report := &Report{
		User:             userID,
		Community:        own,
		CommunitySize:    r.sizes[own],
		SameCommunity:    []Match{},
		OtherCommunities: []Match{},
	}

	for _, nb := range neighbors {
		if nb.Weight <= r.opts.MinWeight {
			continue
		}
		other, err := r.store.Get(nb.ID)
		if err != nil {
			return nil, err
		}
		c, ok := r.assignment[nb.ID]
		if !ok {
			return nil, fmt.Errorf("%w: %q", community.ErrUnassignedVertex, nb.ID)
		}

		m := newMatch(user, other, c, nb.Weight, r.prefs)
		report.Candidates++
		if c == own {
			report.SameCommunity = append(report.SameCommunity, m)
		} else {
			report.OtherCommunities = append(report.OtherCommunities, m)
		}
	}

	report.SameCommunity = r.top(report.SameCommunity)
	report.OtherCommunities = r.top(report.OtherCommunities)

	r.logger.Debug().
		Str("user_id", userID).
		Int("community", own).
		Int("candidates", report.Candidates).
		Int("same", len(report.SameCommunity)).
		Int("other", len(report.OtherCommunities)).
		Msg("matches ranked")

	return report, nil
}

func (r *Ranker) top(matches []Match) []Match {
	sortMatches(matches)
	if r.opts.Limit > 0 && len(matches) > r.opts.Limit {
		matches = matches[:r.opts.Limit]
	}
	return matches
}

func newMatch(user, other *profile.Profile, c int, weight float64, prefs similarity.PreferenceWeights) Match {
	bd := similarity.Compare(user, other, prefs)
	return Match{
		ID:                  other.ID,
		Nickname:            other.Nickname,
		Country:             other.Country,
		Community:           c,
		Weight:              weight,
		ItemSimilarity:      percent(bd.ItemSimilarity),
		MilestoneSimilarity: percent(bd.MilestoneSimilarity),
		Items:               len(other.Items),
		Milestones:          len(other.Milestones),
	}
}

// sortMatches orders by weight descending, then id ascending.
func sortMatches(matches []Match) {
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Weight != matches[j].Weight {
			return matches[i].Weight > matches[j].Weight
		}
		return matches[i].ID < matches[j].ID
	})
}

func percent(ratio float64) int {
	return int(math.Round(ratio * 100))
}
