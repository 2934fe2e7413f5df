// GameMatch - Player Community Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamematch

package snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/gamematch/internal/graph"
	"github.com/tomtom215/gamematch/internal/metrics"
	"github.com/tomtom215/gamematch/internal/profile"
)

// Snapshot kinds, also used as metric labels.
const (
	KindGraph    = "graph"
	KindProfiles = "profiles"
)

// envelopeVersion is bumped whenever a payload layout changes. Entries with a
// different version are treated as misses.
const envelopeVersion = 1

type envelope struct {
	Version   int             `json:"version"`
	Kind      string          `json:"kind"`
	CreatedAt time.Time       `json:"created_at"`
	Payload   json.RawMessage `json:"payload"`
}

func save(ctx context.Context, s Store, kind, key string, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s snapshot: %w", kind, err)
	}
	data, err := json.Marshal(envelope{
		Version:   envelopeVersion,
		Kind:      kind,
		CreatedAt: time.Now().UTC(),
		Payload:   raw,
	})
	if err != nil {
		return fmt.Errorf("marshal %s envelope: %w", kind, err)
	}

	err = s.Save(ctx, kind+":"+key, data)
	metrics.RecordSnapshotSave(kind, err)
	return err
}

// load decodes the payload stored under key into out. A missing entry, or one
// written with another envelope version or kind, reports false.
func load(ctx context.Context, s Store, kind, key string, out interface{}) (bool, error) {
	data, ok, err := s.Load(ctx, kind+":"+key)
	if err != nil || !ok {
		metrics.RecordSnapshotLookup(kind, false, err)
		return false, err
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		metrics.RecordSnapshotLookup(kind, false, err)
		return false, fmt.Errorf("decode %s envelope: %w", kind, err)
	}
	if env.Version != envelopeVersion || env.Kind != kind {
		metrics.RecordSnapshotLookup(kind, false, nil)
		return false, nil
	}
	if err := json.Unmarshal(env.Payload, out); err != nil {
		metrics.RecordSnapshotLookup(kind, false, err)
		return false, fmt.Errorf("decode %s payload: %w", kind, err)
	}

	metrics.RecordSnapshotLookup(kind, true, nil)
	return true, nil
}

// SaveGraph stores g under key.
func SaveGraph(ctx context.Context, s Store, key string, g *graph.Graph) error {
	return save(ctx, s, KindGraph, key, g.Export())
}

// LoadGraph restores the graph stored under key. A stored snapshot that does
// not rebuild cleanly fails with graph.ErrMalformedSnapshot.
func LoadGraph(ctx context.Context, s Store, key string) (*graph.Graph, bool, error) {
	var snap graph.Snapshot
	ok, err := load(ctx, s, KindGraph, key, &snap)
	if err != nil || !ok {
		return nil, false, err
	}
	g, err := graph.FromSnapshot(snap)
	if err != nil {
		return nil, false, err
	}
	return g, true, nil
}

// SaveProfiles stores profiles under key, preserving order.
func SaveProfiles(ctx context.Context, s Store, key string, profiles []*profile.Profile) error {
	return save(ctx, s, KindProfiles, key, profile.Records(profiles))
}

// LoadProfiles restores the profiles stored under key.
func LoadProfiles(ctx context.Context, s Store, key string) ([]*profile.Profile, bool, error) {
	var records []profile.Record
	ok, err := load(ctx, s, KindProfiles, key, &records)
	if err != nil || !ok {
		return nil, false, err
	}
	return profile.FromRecords(records), true, nil
}
