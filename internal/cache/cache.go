// Package cache provides an in-memory read-through cache with tag-based bulk
// invalidation. Every entry belongs to exactly one tag; invalidating a tag
// atomically orphans all of its entries without enumerating keys.
package cache

import (
	"fmt"
	"sync"
	"time"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// Store is a concurrency-safe tagged cache. Each tag carries a version that
// is folded into the storage key of its entries; Invalidate bumps the version
// in one atomic step, so readers either see a tag's entries in full or not at
// all. Orphaned and expired entries are dropped lazily.
type Store struct {
	mu       sync.RWMutex
	entries  map[string]entry
	versions map[string]uint64

	now func() time.Time
}

// New creates an empty Store
func New() *Store {
	return &Store{
		entries:  make(map[string]entry),
		versions: make(map[string]uint64),
		now:      time.Now,
	}
}

// Get returns the cached value under (tag, key) if present and not expired.
func (s *Store) Get(tag, key string) (any, bool) {
	s.mu.RLock()
	storageKey := s.storageKey(tag, key)
	e, ok := s.entries[storageKey]
	s.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if s.now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.entries, storageKey)
		s.mu.Unlock()
		return nil, false
	}

	return e.value, true
}

// Set stores value under (tag, key) with the given time-to-live.
func (s *Store) Set(tag, key string, value any, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[s.storageKey(tag, key)] = entry{
		value:     value,
		expiresAt: s.now().Add(ttl),
	}
	s.sweepLocked()
}

// Remember returns the cached value under (tag, key), computing and storing
// it with fill on a miss. Concurrent misses on the same key may fill more
// than once; the last write wins.
func (s *Store) Remember(tag, key string, ttl time.Duration, fill func() (any, error)) (any, error) {
	if v, ok := s.Get(tag, key); ok {
		return v, nil
	}

	v, err := fill()
	if err != nil {
		return nil, err
	}

	s.Set(tag, key, v, ttl)
	return v, nil
}

// Invalidate evicts every entry stored under the given tag by bumping the
// tag's version. Entries written under the old version become unreachable
// immediately and are reclaimed by the lazy sweep.
func (s *Store) Invalidate(tag string) {
	s.mu.Lock()
	s.versions[tag]++
	s.mu.Unlock()
}

// Len returns the number of live (reachable, unexpired) entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()
	return len(s.entries)
}

// storageKey folds the tag's current version into the key. Callers must hold
// at least a read lock.
func (s *Store) storageKey(tag, key string) string {
	return fmt.Sprintf("%s@%d:%s", tag, s.versions[tag], key)
}

// sweepLocked drops expired entries. Callers must hold the write lock.
func (s *Store) sweepLocked() {
	now := s.now()
	for k, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, k)
		}
	}
}
