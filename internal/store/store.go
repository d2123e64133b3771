// Package store holds the process-scoped collection of entries. The store
// owns entry identity and status transitions; everything else treats entries
// as plain data.
package store

import (
	"errors"
	"sync"

	"github.com/karstegg/martha-assistant-system/pkg/types"
)

// ErrNotFound is returned when a requested entry does not exist.
var ErrNotFound = errors.New("entry not found")

// EntryStore is an in-memory ordered collection of entries. Writes are
// mutex-serialized so concurrent extraction completions append one at a
// time, preserving completion order.
type EntryStore struct {
	mu      sync.RWMutex
	entries []types.Entry // creation order, oldest first
	byID    map[string]int
	bySlug  map[string]struct{}
}

// NewEntryStore creates an empty entry store.
func NewEntryStore() *EntryStore {
	return &EntryStore{
		byID:   make(map[string]int),
		bySlug: make(map[string]struct{}),
	}
}

// Append adds an entry to the store. The entry is copied in; existing
// entries are never mutated. Appending a duplicate id or slug is a caller
// bug and returns an error rather than clobbering the original.
func (s *EntryStore) Append(entry types.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[entry.ID]; exists {
		return errors.New("duplicate entry id: " + entry.ID)
	}
	if _, exists := s.bySlug[entry.Slug]; exists {
		return errors.New("duplicate entry slug: " + entry.Slug)
	}

	s.byID[entry.ID] = len(s.entries)
	s.bySlug[entry.Slug] = struct{}{}
	s.entries = append(s.entries, entry)
	return nil
}

// Get retrieves an entry by id. Returns ErrNotFound if it does not exist.
func (s *EntryStore) Get(id string) (types.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.byID[id]
	if !ok {
		return types.Entry{}, ErrNotFound
	}
	return s.entries[idx], nil
}

// All returns every entry, most recently created first. The returned slice
// is a copy; mutating it does not affect the store.
func (s *EntryStore) All() []types.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Entry, len(s.entries))
	for i, e := range s.entries {
		out[len(s.entries)-1-i] = e
	}
	return out
}

// Open returns entries with status open or in-progress in creation order
// (oldest first), the stable base ordering the triage sorter works from.
func (s *EntryStore) Open() []types.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []types.Entry
	for _, e := range s.entries {
		if e.Status.IsActionable() {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of stored entries.
func (s *EntryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// SlugExists reports whether any stored entry already uses the slug.
func (s *EntryStore) SlugExists(slug string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.bySlug[slug]
	return ok
}

// UpdateStatus transitions an entry's status. Unknown ids and invalid
// transitions are silent no-ops, never errors: a stale id from a refreshed
// view must not break the pipeline. The entry's id, slug, and createdAt are
// never altered.
func (s *EntryStore) UpdateStatus(id string, next types.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.byID[id]
	if !ok {
		return
	}
	if !types.IsValidStatusTransition(s.entries[idx].Status, next) {
		return
	}
	s.entries[idx].Status = next
}
