// GameMatch - Player Community Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamematch

package snapshot

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/gamematch/internal/graph"
	"github.com/tomtom215/gamematch/internal/profile"
)

func sampleGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	for _, id := range []string{"1", "2", "3"} {
		g.AddVertex(id)
	}
	if err := g.AddEdge("1", "2", 1.5); err != nil {
		t.Fatal(err)
	}
	if err := g.AddEdge("2", "3", 0); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestGraphSnapshot_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryStore(8, 0)
	g := sampleGraph(t)

	if _, ok, err := LoadGraph(ctx, s, "k"); ok || err != nil {
		t.Fatalf("LoadGraph() on empty store = %v, %v", ok, err)
	}
	if err := SaveGraph(ctx, s, "k", g); err != nil {
		t.Fatalf("SaveGraph() error = %v", err)
	}

	restored, ok, err := LoadGraph(ctx, s, "k")
	if err != nil || !ok {
		t.Fatalf("LoadGraph() = %v, %v", ok, err)
	}
	if !g.Equal(restored) {
		t.Error("restored graph differs from saved graph")
	}
	if !reflect.DeepEqual(restored.Vertices(), g.Vertices()) {
		t.Errorf("vertex order %v, want %v", restored.Vertices(), g.Vertices())
	}
}

func TestProfilesSnapshot_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryStore(8, 0)

	p1 := profile.New("76561197960265729", profile.NewItemSet(10, 20), profile.NewMilestoneSet("10_1"))
	p1.Nickname = "alice"
	p2 := profile.New("76561197960265730", nil, nil)
	in := []*profile.Profile{p1, p2}

	if err := SaveProfiles(ctx, s, "steam", in); err != nil {
		t.Fatalf("SaveProfiles() error = %v", err)
	}
	out, ok, err := LoadProfiles(ctx, s, "steam")
	if err != nil || !ok {
		t.Fatalf("LoadProfiles() = %v, %v", ok, err)
	}
	if !reflect.DeepEqual(out, in) {
		t.Errorf("LoadProfiles() = %+v, want %+v", out, in)
	}
}

func TestLoad_KindsDoNotCollide(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryStore(8, 0)

	if err := SaveGraph(ctx, s, "same", sampleGraph(t)); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := LoadProfiles(ctx, s, "same"); ok || err != nil {
		t.Errorf("LoadProfiles() read a graph entry: ok %v, err %v", ok, err)
	}
}

func TestLoad_VersionMismatchIsMiss(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryStore(8, 0)

	data, _ := json.Marshal(envelope{Version: envelopeVersion + 1, Kind: KindGraph, Payload: json.RawMessage(`{}`)})
	_ = s.Save(ctx, KindGraph+":k", data)

	if _, ok, err := LoadGraph(ctx, s, "k"); ok || err != nil {
		t.Errorf("LoadGraph() with foreign version = %v, %v; want miss", ok, err)
	}
}

func TestLoadGraph_Malformed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryStore(8, 0)

	payload := `{"vertices":["a"],"edges":[{"source":"a","target":"ghost","weight":1}]}`
	data, _ := json.Marshal(envelope{Version: envelopeVersion, Kind: KindGraph, Payload: json.RawMessage(payload)})
	_ = s.Save(ctx, KindGraph+":bad", data)

	if _, _, err := LoadGraph(ctx, s, "bad"); !errors.Is(err, graph.ErrMalformedSnapshot) {
		t.Errorf("LoadGraph() error = %v, want ErrMalformedSnapshot", err)
	}

	_ = s.Save(ctx, KindGraph+":garbage", []byte("not json"))
	if _, _, err := LoadGraph(ctx, s, "garbage"); err == nil {
		t.Error("LoadGraph() of undecodable bytes should fail")
	}
}

func TestOpen(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
		want    interface{}
	}{
		{name: "none", cfg: Config{Backend: BackendNone}, want: Nop{}},
		{name: "memory", cfg: Config{Backend: BackendMemory, Capacity: 4}, want: &MemoryStore{}},
		{name: "badger without path", cfg: Config{Backend: BackendBadger}, wantErr: true},
		{name: "unknown backend", cfg: Config{Backend: "redis"}, wantErr: true},
		{name: "negative capacity", cfg: Config{Backend: BackendMemory, Capacity: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, err := Open(tt.cfg, zerolog.Nop())
			if tt.wantErr {
				if err == nil {
					t.Error("Open() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			defer s.Close()
			if reflect.TypeOf(s) != reflect.TypeOf(tt.want) {
				t.Errorf("Open() = %T, want %T", s, tt.want)
			}
		})
	}

	t.Run("badger", func(t *testing.T) {
		t.Parallel()
		s, err := Open(Config{Backend: BackendBadger, Path: t.TempDir()}, zerolog.Nop())
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		defer s.Close()
		if _, ok := s.(*BadgerStore); !ok {
			t.Errorf("Open() = %T, want *BadgerStore", s)
		}
	})
}

func TestNop(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	var s Store = Nop{}
	if err := SaveGraph(ctx, s, "k", sampleGraph(t)); err != nil {
		t.Fatalf("SaveGraph() error = %v", err)
	}
	if _, ok, err := LoadGraph(ctx, s, "k"); ok || err != nil {
		t.Errorf("Nop LoadGraph() = %v, %v; want miss", ok, err)
	}
}
