// GameMatch - Player Community Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamematch

package snapshot

import (
	"context"
	"sync"
	"time"
)

// DefaultMemoryCapacity is used when a MemoryStore is created with capacity <= 0.
const DefaultMemoryCapacity = 64

type memoryEntry struct {
	key       string
	value     []byte
	prev      *memoryEntry
	next      *memoryEntry
	expiresAt time.Time // zero means no expiry
}

// MemoryStore is a thread-safe LRU Store with optional TTL.
//
// Values are copied on Save and Load, so callers may reuse their buffers.
// Expired entries are removed lazily on access.
type MemoryStore struct {
	mu sync.Mutex

	capacity int
	ttl      time.Duration
	closed   bool

	items map[string]*memoryEntry

	// head.next is the most recently used, tail.prev the least
	head *memoryEntry
	tail *memoryEntry

	hits   int64
	misses int64
}

// NewMemoryStore creates a MemoryStore holding at most capacity entries.
// ttl <= 0 disables expiry.
func NewMemoryStore(capacity int, ttl time.Duration) *MemoryStore {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}

	s := &MemoryStore{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*memoryEntry, capacity),
		head:     &memoryEntry{},
		tail:     &memoryEntry{},
	}
	s.head.next = s.tail
	s.tail.prev = s.head

	return s
}

// Load implements Store.
func (s *MemoryStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, false, ErrClosed
	}

	entry, exists := s.items[key]
	if !exists {
		s.misses++
		return nil, false, nil
	}
	if s.expired(entry, time.Now()) {
		s.removeEntry(entry)
		s.misses++
		return nil, false, nil
	}

	s.moveToFront(entry)
	s.hits++
	return cloneBytes(entry.value), true, nil
}

// Save implements Store. The least recently used entry is evicted when the
// store is full.
func (s *MemoryStore) Save(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	var expiresAt time.Time
	if s.ttl > 0 {
		expiresAt = time.Now().Add(s.ttl)
	}

	if entry, exists := s.items[key]; exists {
		entry.value = cloneBytes(data)
		entry.expiresAt = expiresAt
		s.moveToFront(entry)
		return nil
	}

	entry := &memoryEntry{
		key:       key,
		value:     cloneBytes(data),
		expiresAt: expiresAt,
	}
	s.addToFront(entry)
	s.items[key] = entry

	for len(s.items) > s.capacity {
		s.evictOldest()
	}
	return nil
}

// Close drops every entry.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.items = nil
	s.head.next = s.tail
	s.tail.prev = s.head
	return nil
}

// Len returns the number of entries, including expired ones not yet removed.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Stats returns hit/miss statistics.
func (s *MemoryStore) Stats() (hits, misses int64, size int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits, s.misses, len(s.items)
}

// Internal methods (must be called with lock held)

func (s *MemoryStore) expired(entry *memoryEntry, now time.Time) bool {
	return !entry.expiresAt.IsZero() && now.After(entry.expiresAt)
}

func (s *MemoryStore) addToFront(entry *memoryEntry) {
	entry.prev = s.head
	entry.next = s.head.next
	s.head.next.prev = entry
	s.head.next = entry
}

func (s *MemoryStore) moveToFront(entry *memoryEntry) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	s.addToFront(entry)
}

func (s *MemoryStore) removeEntry(entry *memoryEntry) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	delete(s.items, entry.key)
}

func (s *MemoryStore) evictOldest() {
	oldest := s.tail.prev
	if oldest == s.head {
		return
	}
	s.removeEntry(oldest)
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
