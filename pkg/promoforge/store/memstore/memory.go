// Package memstore is an in-memory store.Store for tests.
package memstore

import (
	"context"
	"sync"

	"github.com/cognicore/promoforge/pkg/promoforge/store"
)

// Store is an in-memory implementation of store.Store.
type Store struct {
	mu        sync.RWMutex
	found     []store.Found
	generated []store.Generated
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// InsertFound appends found records, assigning IDs when missing.
func (s *Store) InsertFound(ctx context.Context, recs []store.Found) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range recs {
		if r.ID == "" {
			r.ID = store.NewID()
		}
		s.found = append(s.found, r)
	}
	return nil
}

// ListFound returns all found records in insertion order.
func (s *Store) ListFound(ctx context.Context) ([]store.Found, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.Found, len(s.found))
	copy(out, s.found)
	return out, nil
}

// InsertGenerated appends generated records, assigning IDs when missing.
func (s *Store) InsertGenerated(ctx context.Context, recs []store.Generated) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range recs {
		if r.ID == "" {
			r.ID = store.NewID()
		}
		s.generated = append(s.generated, r)
	}
	return nil
}

// ListGenerated returns all generated records in insertion order.
func (s *Store) ListGenerated(ctx context.Context) ([]store.Generated, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.Generated, len(s.generated))
	copy(out, s.generated)
	return out, nil
}
