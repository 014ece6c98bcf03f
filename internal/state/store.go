// Package state persists the opaque per-panel state slot.
//
// A surface may stash a JSON object with setState and read it back with
// getState after a reload. The slot is keyed by panel kind so it survives
// instance teardown: a fresh panel of the same kind sees the prior state.
// The host never interprets the contents.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store caches state slots in memory and mirrors them to disk.
type Store struct {
	slots sync.Map // kind -> map[string]interface{}
	dir   string
}

// NewStore creates a store rooted at dir. The directory is created lazily
// on first write.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Set replaces the state slot for a panel kind. The map is copied, so the
// caller mutating it afterwards cannot reach into the cache.
func (s *Store) Set(kind string, state map[string]interface{}) error {
	state = copySlot(state)

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal state for %s: %w", kind, err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create state dir: %w", err)
	}
	if err := os.WriteFile(s.slotPath(kind), data, 0o644); err != nil {
		return fmt.Errorf("failed to write state for %s: %w", kind, err)
	}

	s.slots.Store(kind, state)
	return nil
}

// Get returns the state slot for a panel kind. An absent slot yields an
// empty object, never an error. The returned map is a copy; mutating it
// does not affect the stored state.
func (s *Store) Get(kind string) (map[string]interface{}, error) {
	if cached, ok := s.slots.Load(kind); ok {
		return copySlot(cached.(map[string]interface{})), nil
	}

	data, err := os.ReadFile(s.slotPath(kind))
	if os.IsNotExist(err) {
		return map[string]interface{}{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state for %s: %w", kind, err)
	}

	var state map[string]interface{}
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state for %s: %w", kind, err)
	}

	s.slots.Store(kind, state)
	return copySlot(state), nil
}

// Delete drops the state slot for a panel kind.
func (s *Store) Delete(kind string) error {
	s.slots.Delete(kind)

	err := os.Remove(s.slotPath(kind))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete state for %s: %w", kind, err)
	}
	return nil
}

func (s *Store) slotPath(kind string) string {
	return filepath.Join(s.dir, kind+".state")
}

// copySlot shallow-copies a state slot. Top-level mutations cannot corrupt
// the cache; nested values are opaque to the host and never mutated by it.
func copySlot(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
