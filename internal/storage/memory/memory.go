// Package memory provides an in-process implementation of storage.KV intended for
// tests and ephemeral runs. Nothing survives the process.
package memory

import (
	"context"
	"sync"

	"github.com/mmynk/gameochtend/internal/storage"
)

var _ storage.KV = (*Store)(nil)

// Store is a map guarded by a RWMutex. Values are copied on the way in and out.
type Store struct {
	mu     sync.RWMutex
	values map[string][]byte
	closed bool
}

// New creates an empty Store.
func New() *Store {
	return &Store{values: map[string][]byte{}}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, false, storage.ErrStoreClosed
	}
	v, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	return clone(v), true, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return storage.ErrStoreClosed
	}
	s.values[key] = clone(value)
	return nil
}

func (s *Store) Update(_ context.Context, key string, fn storage.UpdateFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return storage.ErrStoreClosed
	}
	current, found := s.values[key]
	next, err := fn(clone(current), found)
	if err != nil {
		return err
	}
	s.values[key] = clone(next)
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return storage.ErrStoreClosed
	}
	delete(s.values, key)
	return nil
}

// Close drops all values.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.values = nil
	return nil
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
