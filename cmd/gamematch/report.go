// GameMatch - Player Community Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamematch

package main

import (
	"io"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/gamematch/internal/builder"
	"github.com/tomtom215/gamematch/internal/community"
	"github.com/tomtom215/gamematch/internal/match"
)

// Report is the document written to stdout.
type Report struct {
	RunID       string           `json:"run_id"`
	Platform    string           `json:"platform"`
	GeneratedAt time.Time        `json:"generated_at"`
	Profiles    ProfileSummary   `json:"profiles"`
	Graph       builder.Stats    `json:"graph"`
	Communities CommunitySummary `json:"communities"`
	Match       *match.Report    `json:"match,omitempty"`
	Warnings    []string         `json:"warnings,omitempty"`
}

// ProfileSummary describes where the profiles came from.
type ProfileSummary struct {
	Count     int    `json:"count"`
	FromCache bool   `json:"from_cache"`
	SourceKey string `json:"source_key"`
}

// CommunitySummary is the detection outcome.
type CommunitySummary struct {
	Count       int                            `json:"count"`
	Modularity  float64                        `json:"modularity"`
	Converged   bool                           `json:"converged"`
	Sizes       []int                          `json:"sizes"`
	Levels      []community.LevelStats         `json:"levels"`
	Influencers map[int][]community.Influencer `json:"influencers"`
}

func summarize(res *community.Result, influencers map[int][]community.Influencer) CommunitySummary {
	members := res.Communities()
	sizes := make([]int, len(members))
	for i, m := range members {
		sizes[i] = len(m)
	}
	return CommunitySummary{
		Count:       res.Count,
		Modularity:  res.Modularity,
		Converged:   res.Converged,
		Sizes:       sizes,
		Levels:      res.Levels,
		Influencers: influencers,
	}
}

func writeReport(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
