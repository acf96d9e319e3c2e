package tooling

import "sync"

// State is a thread-safe keyed state bag owned by an agent and shared with
// context-declaring tools. Values must be JSON-serializable when session
// persistence is enabled.
type State struct {
	mu   sync.RWMutex
	data map[string]any
}

// NewState creates an empty state bag.
func NewState() *State {
	return &State{data: make(map[string]any)}
}

// NewStateFrom creates a state bag seeded with the given values.
func NewStateFrom(values map[string]any) *State {
	state := NewState()
	for k, v := range values {
		state.data[k] = v
	}

	return state
}

// Set stores a value under key.
func (s *State) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
}

// Get returns the value stored under key, or nil.
func (s *State) Get(key string) any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.data[key]
}

// Delete removes the value stored under key.
func (s *State) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
}

// Snapshot returns a shallow copy of the state contents.
func (s *State) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]any, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}

	return out
}

// Replace swaps the state contents for the given values.
func (s *State) Replace(values map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[string]any, len(values))
	for k, v := range values {
		s.data[k] = v
	}
}
