// Package history keeps the bounded list of committed colours and reads and
// writes it as a JSON palette file.
package history

import (
	"sync"

	"github.com/timvw/cpick/internal/colorspace"
)

// Capacity is the maximum number of entries kept. Committing beyond it
// evicts the oldest entry.
const Capacity = 50

// Entry is one committed colour. Entries are never modified after commit.
type Entry struct {
	Value  string
	Hex    string
	Values colorspace.Set
}

// PaletteEntry is the persisted form of an Entry.
type PaletteEntry struct {
	Hex    string         `json:"hex"`
	Values colorspace.Set `json:"values"`
}

// Store holds entries newest first.
type Store struct {
	mu      sync.RWMutex
	entries []Entry
}

func NewStore() *Store {
	return &Store{}
}

// Commit inserts at the head and evicts the tail beyond Capacity.
func (s *Store) Commit(value, hex string, values colorspace.Set) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commitLocked(Entry{Value: value, Hex: hex, Values: values})
}

func (s *Store) commitLocked(e Entry) {
	s.entries = append(s.entries, Entry{})
	copy(s.entries[1:], s.entries)
	s.entries[0] = e
	if len(s.entries) > Capacity {
		s.entries[Capacity] = Entry{}
		s.entries = s.entries[:Capacity]
	}
}

// Delete removes the entry at i. It reports false, and changes nothing, when
// i is out of range.
func (s *Store) Delete(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.entries) {
		return false
	}
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	return true
}

// Clear empties the store. Callers confirm with the user first.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Entries returns a copy, newest first.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Entry(nil), s.entries...)
}

// Export snapshots the store in display order for saving.
func (s *Store) Export() []PaletteEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]PaletteEntry, len(s.entries))
	for i, e := range s.entries {
		out[i] = PaletteEntry{Hex: e.Hex, Values: e.Values}
	}
	return out
}

// Import commits entries last-to-first so that entries[0] ends up at the
// head, preserving the order Export produced. Existing entries stay behind
// the imported ones, subject to Capacity.
func (s *Store) Import(entries []PaletteEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(entries) - 1; i >= 0; i-- {
		pe := entries[i]
		value := pe.Values.Get(colorspace.KindHex)
		if value == "" {
			value = pe.Hex
		}
		s.commitLocked(Entry{Value: value, Hex: pe.Hex, Values: pe.Values})
	}
}
