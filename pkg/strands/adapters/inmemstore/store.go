// Package inmemstore provides an in-memory ObjectStore for tests and
// ephemeral agents.
package inmemstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/cagataycali/strands-go/pkg/strands/ports"
)

// Store is a map-backed object store. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// Verify interface compliance at compile time.
var _ ports.ObjectStore = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{objects: make(map[string][]byte)}
}

// Put writes an object, overwriting any existing value.
func (s *Store) Put(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	s.objects[key] = stored

	return nil
}

// Get reads an object; a missing key reports found=false.
func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.objects[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(data))
	copy(out, data)

	return out, true, nil
}

// Exists reports whether the key holds an object.
func (s *Store) Exists(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.objects[key]

	return ok, nil
}

// Delete removes an object; deleting a missing key is a no-op.
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.objects, key)

	return nil
}

// List returns the keys under prefix in lexicographic order.
func (s *Store) List(_ context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []string
	for key := range s.objects {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	return keys, nil
}

// Len returns the number of stored objects.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.objects)
}
