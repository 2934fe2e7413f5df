// GameMatch - Player Community Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamematch

package community

import (
	"sort"

	"github.com/tomtom215/gamematch/internal/graph"
)

// Influencer is a community member scored by its ties inside the community.
type Influencer struct {
	ID        string  `json:"id"`
	Community int     `json:"community"`
	Strength  float64 `json:"strength"`
	Ties      int     `json:"ties"`
}

// Influencers ranks the members of every community by intra-community
// strength, highest first, ties by id. limit caps each community's list;
// limit <= 0 keeps every member. The result is indexed by the labels found in
// assignment.
func Influencers(g *graph.Graph, assignment map[string]int, limit int) (map[int][]Influencer, error) {
	comm, err := indexAssignment(g, assignment)
	if err != nil {
		return nil, err
	}

	out := make(map[int][]Influencer)
	for i, c := range comm {
		inf := Influencer{ID: g.IDAt(i), Community: c}
		for _, nb := range g.NeighborsAt(i) {
			if comm[nb.Index] != c || nb.Weight == 0 {
				continue
			}
			inf.Strength += nb.Weight
			inf.Ties++
		}
		out[c] = append(out[c], inf)
	}

	for c, members := range out {
		sort.Slice(members, func(a, b int) bool {
			if members[a].Strength != members[b].Strength {
				return members[a].Strength > members[b].Strength
			}
			return members[a].ID < members[b].ID
		})
		if limit > 0 && len(members) > limit {
			out[c] = members[:limit]
		}
	}
	return out, nil
}
