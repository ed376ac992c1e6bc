package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/MrSnakeDoc/index/internal/store"
)

// Store keeps settings in process memory. Used for ephemeral runs and tests.
type Store struct {
	mu        sync.RWMutex
	values    map[string][]byte // key -> JSON blob
	lastWrite time.Time
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		values: make(map[string][]byte),
	}
}

// Get returns a copy of the stored value
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Set stores a copy of value under key
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := make([]byte, len(value))
	copy(v, value)
	s.values[key] = v
	s.lastWrite = time.Now()
	return nil
}

// Delete removes a key. Missing keys are not an error.
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	s.lastWrite = time.Now()
	return nil
}

// Keys returns all keys in sorted order
func (s *Store) Keys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Count returns the number of stored keys
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.values)
}

// LastWrite returns the time of the last mutation
func (s *Store) LastWrite() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lastWrite
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() error { return nil }
