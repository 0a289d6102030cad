// Package memory provides an in-memory storage.Store for tests and
// throwaway sessions.
package memory

import (
	"context"
	"sync"

	"github.com/TheOriginalKDC/Bill-Keeper/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store keeps values in a map. The zero value is ready to use.
type Store struct {
	mu     sync.Mutex
	values map[string][]byte

	// PutErr, when set, is returned by every Put without storing anything.
	PutErr error
}

// New returns an empty Store.
func New() *Store {
	return &Store{}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.values[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *Store) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.PutErr != nil {
		return s.PutErr
	}
	if s.values == nil {
		s.values = make(map[string][]byte)
	}
	s.values[key] = append([]byte(nil), value...)
	return nil
}

func (s *Store) Close() error {
	return nil
}
