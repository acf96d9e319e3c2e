package hooking

import (
	"context"
	"fmt"
	"sync"
)

// Callback handles one lifecycle event. A callback that receives a
// suspension signal from Event.Interrupt must return it unchanged.
type Callback func(ctx context.Context, event Event) error

// Provider registers a set of related callbacks on a registry. Agents
// accept providers at construction time.
type Provider interface {
	RegisterHooks(registry *Registry)
}

// Registry maps event kinds to ordered callback lists. Dispatch is
// single-threaded and synchronous: callbacks fire in registration order,
// and a suspension or error stops the remaining callbacks for that event
// round.
type Registry struct {
	mu        sync.RWMutex
	callbacks map[Kind][]Callback
}

// NewRegistry creates an empty hook registry.
func NewRegistry() *Registry {
	return &Registry{callbacks: make(map[Kind][]Callback)}
}

// Add registers a callback for an event kind.
func (r *Registry) Add(kind Kind, callback Callback) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.callbacks[kind] = append(r.callbacks[kind], callback)
}

// AddProvider lets a provider register its callbacks.
func (r *Registry) AddProvider(provider Provider) {
	provider.RegisterHooks(r)
}

// On registers a typed callback, deriving the event kind from the type
// parameter.
func On[E Event](r *Registry, callback func(ctx context.Context, event E) error) {
	var zero E
	r.Add(zero.Kind(), func(ctx context.Context, event Event) error {
		typed, ok := event.(E)
		if !ok {
			return nil
		}

		return callback(ctx, typed)
	})
}

// Emit dispatches the event to its registered callbacks in order. The
// event is mutated in place and returned for chaining. A callback error
// (including a suspension signal) stops the remaining callbacks; side
// effects already committed by earlier callbacks stand.
func (r *Registry) Emit(ctx context.Context, event Event) (Event, error) {
	r.mu.RLock()
	callbacks := r.callbacks[event.Kind()]
	r.mu.RUnlock()

	for _, callback := range callbacks {
		if err := ctx.Err(); err != nil {
			return event, err
		}
		if err := callback(ctx, event); err != nil {
			return event, fmt.Errorf("hook callback for %s: %w", event.Kind(), err)
		}
	}

	return event, nil
}
