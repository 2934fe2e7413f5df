// GameMatch - Player Community Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamematch

// Package snapshot provides the cache that persists derived data (processed
// profiles and similarity graphs) between runs.
//
// A Store is a plain key/value capability with Load and Save. Callers decide
// the keys; the graph builder derives them from a fingerprint of its inputs so
// that a changed input never reads a stale entry. Typed helpers (LoadGraph,
// SaveGraph, LoadProfiles, SaveProfiles) wrap values in a versioned JSON
// envelope.
//
// Backends:
//   - none: Nop, every Load misses and Save discards
//   - memory: MemoryStore, a bounded LRU with optional TTL
//   - badger: BadgerStore, durable on-disk storage with optional TTL
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/gamematch/internal/validation"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("snapshot store closed")

// Store loads and saves opaque snapshot bytes by key.
type Store interface {
	// Load returns the stored bytes and true, or nil and false on a miss.
	Load(ctx context.Context, key string) ([]byte, bool, error)

	// Save stores data under key, replacing any previous value.
	Save(ctx context.Context, key string, data []byte) error

	// Close releases the backend. Further calls fail with ErrClosed.
	Close() error
}

// Backend names.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendBadger = "badger"
)

// Config selects and sizes a backend.
type Config struct {
	Backend  string        `koanf:"backend" validate:"oneof=none memory badger"`
	Path     string        `koanf:"path" validate:"required_if=Backend badger"`
	TTL      time.Duration `koanf:"ttl" validate:"gte=0"`
	Capacity int           `koanf:"capacity" validate:"gte=0"`
}

// Open creates the backend described by cfg.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Open(cfg Config, logger zerolog.Logger) (Store, error) {
	if verr := validation.ValidateStruct(&cfg); verr != nil {
		return nil, fmt.Errorf("invalid snapshot config: %w", verr)
	}

	switch cfg.Backend {
	case BackendNone:
		return Nop{}, nil
	case BackendMemory:
		return NewMemoryStore(cfg.Capacity, cfg.TTL), nil
	case BackendBadger:
		return OpenBadger(BadgerConfig{Path: cfg.Path, TTL: cfg.TTL}, logger)
	default:
		return nil, fmt.Errorf("unknown snapshot backend %q", cfg.Backend)
	}
}

// Nop is a Store that never holds anything.
type Nop struct{}

// Load always misses.
func (Nop) Load(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Save discards data.
func (Nop) Save(context.Context, string, []byte) error { return nil }

// Close is a no-op.
func (Nop) Close() error { return nil }
