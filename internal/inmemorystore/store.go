// Package inmemorystore provides an ephemeral, thread-safe, in-memory
// implementation of the unitstore.Store interface.
//
// A store is created fresh for each generation pass. Workers call Put
// concurrently while the pass runs, and the writer reads the sorted unit
// list once the pass completes.
package inmemorystore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/vk/textembed/internal/engine"
	"github.com/vk/textembed/internal/unitstore"
)

// Store keeps units in a sync.Map keyed by engine.SourceKey. Keys are
// independent and written once, which is the access pattern sync.Map is
// built for.
type Store struct {
	units sync.Map // Key: engine.SourceKey, Value: *engine.Unit
}

// New creates a new, empty in-memory unit store.
func New() unitstore.Store {
	return &Store{}
}

// Put stores unit unless its key is already taken.
func (s *Store) Put(ctx context.Context, unit *engine.Unit) error {
	key := unit.Key()
	existing, loaded := s.units.LoadOrStore(key, unit)
	if loaded {
		prev := existing.(*engine.Unit)
		return fmt.Errorf("%w: %s from %s conflicts with %s", unitstore.ErrDuplicateKey, key, unit.RelativePath, prev.RelativePath)
	}
	return nil
}

// Get retrieves the unit stored under key.
func (s *Store) Get(ctx context.Context, key engine.SourceKey) (*engine.Unit, error) {
	v, ok := s.units.Load(key)
	if !ok {
		return nil, nil
	}
	return v.(*engine.Unit), nil
}

// Units returns a snapshot of the stored units sorted by hint name.
func (s *Store) Units(ctx context.Context) ([]*engine.Unit, error) {
	var units []*engine.Unit
	s.units.Range(func(_, v any) bool {
		units = append(units, v.(*engine.Unit))
		return true
	})
	sort.Slice(units, func(i, j int) bool {
		return units[i].HintName() < units[j].HintName()
	})
	return units, nil
}
