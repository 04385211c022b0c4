// Package memory provides an in-memory store.Store used for tests and
// single-process deployments that do not need durability.
package memory

import (
	"context"
	"sync"

	"github.com/xraph/bullion"
	"github.com/xraph/bullion/store"
)

// compile-time interface check
var _ store.Store = (*Store)(nil)

type Store struct {
	mu       sync.RWMutex
	payloads map[store.Collection][]byte
	saves    map[store.Collection]int
}

func New() *Store {
	return &Store{
		payloads: make(map[store.Collection][]byte),
		saves:    make(map[store.Collection]int),
	}
}

func (s *Store) Load(_ context.Context, c store.Collection) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.payloads[c]
	if !ok {
		return nil, bullion.ErrNotFound
	}
	out := make([]byte, len(p))
	copy(out, p)
	return out, nil
}

func (s *Store) Save(_ context.Context, c store.Collection, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := make([]byte, len(payload))
	copy(p, payload)
	s.payloads[c] = p
	s.saves[c]++
	return nil
}

// Saves reports how many times c has been written.
func (s *Store) Saves(c store.Collection) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves[c]
}

func (s *Store) Migrate(_ context.Context) error {
	return nil // No migration needed for memory store
}

func (s *Store) Ping(_ context.Context) error {
	return nil // Always available
}

func (s *Store) Close() error {
	return nil // Nothing to close
}
