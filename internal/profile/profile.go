// GameMatch - Player Community Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamematch

// Package profile defines the per-user data consumed by similarity scoring and
// graph construction: a stable identifier, the set of owned items, and the set
// of earned milestones.
//
// Profiles are treated as immutable once loaded for a graph-build pass. Callers
// that need to change a profile create a new one and rebuild.
package profile

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrProfileNotFound is returned when a lookup references an unknown user.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrDuplicateProfile is returned when two profiles share an identifier.
	ErrDuplicateProfile = errors.New("duplicate profile id")

	// ErrEmptyID is returned when a profile has no identifier.
	ErrEmptyID = errors.New("profile id is empty")
)

// ItemSet is a set of owned item identifiers.
type ItemSet map[int64]struct{}

// MilestoneSet is a set of earned milestone identifiers.
type MilestoneSet map[string]struct{}

// NewItemSet builds an ItemSet from a list of ids. Duplicates collapse.
func NewItemSet(ids ...int64) ItemSet {
	s := make(ItemSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// NewMilestoneSet builds a MilestoneSet from a list of ids. Duplicates collapse.
func NewMilestoneSet(ids ...string) MilestoneSet {
	s := make(MilestoneSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Sorted returns the item ids in ascending order.
func (s ItemSet) Sorted() []int64 {
	out := make([]int64, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Sorted returns the milestone ids in ascending order.
func (s MilestoneSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Profile is one user's owned items and milestones on a platform.
type Profile struct {
	// ID is the platform-scoped user identifier.
	ID string `json:"id"`

	// Nickname is the display name, if known.
	Nickname string `json:"nickname,omitempty"`

	// Country is the self-reported country, if known.
	Country string `json:"country,omitempty"`

	// Items holds the owned item ids (the game library).
	Items ItemSet `json:"-"`

	// Milestones holds the earned milestone ids (achievements).
	Milestones MilestoneSet `json:"-"`
}

// New creates a profile with the given identifier and sets.
// Nil sets are replaced by empty ones.
func New(id string, items ItemSet, milestones MilestoneSet) *Profile {
	if items == nil {
		items = ItemSet{}
	}
	if milestones == nil {
		milestones = MilestoneSet{}
	}
	return &Profile{ID: id, Items: items, Milestones: milestones}
}

// Record is the serializable form of a Profile with sorted set members.
type Record struct {
	ID         string   `json:"id"`
	Nickname   string   `json:"nickname,omitempty"`
	Country    string   `json:"country,omitempty"`
	Items      []int64  `json:"items"`
	Milestones []string `json:"milestones"`
}

// Record converts the profile to its serializable form.
func (p *Profile) Record() Record {
	return Record{
		ID:         p.ID,
		Nickname:   p.Nickname,
		Country:    p.Country,
		Items:      p.Items.Sorted(),
		Milestones: p.Milestones.Sorted(),
	}
}

// FromRecord rebuilds a Profile from its serializable form.
//
//nolint:gocritic // hugeParam: Record passed by value for immutability
func FromRecord(r Record) *Profile {
	p := New(r.ID, NewItemSet(r.Items...), NewMilestoneSet(r.Milestones...))
	p.Nickname = r.Nickname
	p.Country = r.Country
	return p
}

// Store provides read access to loaded profiles.
type Store interface {
	// Get returns the profile for id or ErrProfileNotFound.
	Get(id string) (*Profile, error)

	// All returns every profile in a stable order.
	All() []*Profile

	// Len returns the number of profiles.
	Len() int
}

// MemoryStore is an in-memory Store preserving insertion order.
// It is safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	order []*Profile
	byID  map[string]*Profile
}

// NewMemoryStore creates a store from the given profiles.
// It fails on an empty or repeated identifier.
func NewMemoryStore(profiles []*Profile) (*MemoryStore, error) {
	s := &MemoryStore{
		order: make([]*Profile, 0, len(profiles)),
		byID:  make(map[string]*Profile, len(profiles)),
	}
	for _, p := range profiles {
		if err := s.add(p); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *MemoryStore) add(p *Profile) error {
	if p == nil || p.ID == "" {
		return ErrEmptyID
	}
	if _, exists := s.byID[p.ID]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateProfile, p.ID)
	}
	s.byID[p.ID] = p
	s.order = append(s.order, p)
	return nil
}

// Get returns the profile for id.
func (s *MemoryStore) Get(id string) (*Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrProfileNotFound, id)
	}
	return p, nil
}

// All returns the profiles in insertion order. The slice is a copy.
func (s *MemoryStore) All() []*Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Profile, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of profiles.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Records converts profiles to their serializable form, preserving order.
func Records(profiles []*Profile) []Record {
	out := make([]Record, len(profiles))
	for i, p := range profiles {
		out[i] = p.Record()
	}
	return out
}

// FromRecords rebuilds profiles from their serializable form.
func FromRecords(records []Record) []*Profile {
	out := make([]*Profile, len(records))
	for i := range records {
		out[i] = FromRecord(records[i])
	}
	return out
}
