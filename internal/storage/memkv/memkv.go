// Package memkv is an in-memory storage.KV.
package memkv

import (
	"context"
	"sync"
)

// Store holds values in a map.
type Store struct {
	mu     sync.RWMutex
	values map[string]string

	// Error injection for testing
	GetErr error
	SetErr error
}

// New returns an empty Store.
func New() *Store {
	return &Store{values: make(map[string]string)}
}

// Get implements storage.KV.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if s.GetErr != nil {
		return "", false, s.GetErr
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

// Set implements storage.KV.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if s.SetErr != nil {
		return s.SetErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Close implements storage.KV.
func (s *Store) Close() error { return nil }
