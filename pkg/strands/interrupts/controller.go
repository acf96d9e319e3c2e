package interrupts

import (
	"errors"
	"sync"

	"github.com/cagataycali/strands-go/pkg/stranderrs"
)

// Controller tracks interrupts raised during one agent turn. Raising is
// keyed by (scope token, interrupt name) so that replaying the recorded
// dispatch step after resume hands the stored response back to the exact
// call site that suspended.
type Controller struct {
	mu       sync.Mutex
	pending  []pendingEntry
	resolved map[string]any
}

type pendingEntry struct {
	interrupt Interrupt
	key       string
}

// NewController creates an empty interrupt controller.
func NewController() *Controller {
	return &Controller{
		resolved: make(map[string]any),
	}
}

// Scope returns an interrupt scope bound to a dispatch-step token. The
// token must be stable across suspension and replay (for example
// "afterToolCall/<toolUseId>") so that a replayed raise finds its
// resolved response.
func (c *Controller) Scope(token string) *Scope {
	return &Scope{controller: c, token: token}
}

// Pending returns the interrupts awaiting responses, in raise order.
func (c *Controller) Pending() []Interrupt {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Interrupt, len(c.pending))
	for i, entry := range c.pending {
		out[i] = entry.interrupt
	}

	return out
}

// HasPending reports whether any interrupt awaits a response.
func (c *Controller) HasPending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.pending) > 0
}

// Resolve matches each response to a pending interrupt by id. A response
// whose id matches no pending interrupt is an error; resuming with a stale
// id must not silently no-op. Matched interrupts move to the resolved set
// and are consumed one-shot by the replayed raise.
func (c *Controller) Resolve(responses []Response) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, response := range responses {
		idx := -1
		for i, entry := range c.pending {
			if entry.interrupt.ID == response.InterruptID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return stranderrs.NewInterruptError(
				stranderrs.ErrCodeUnmatchedResponse,
				"no pending interrupt matches response id",
				response.InterruptID,
			)
		}

		entry := c.pending[idx]
		c.resolved[entry.key] = response.Response
		c.pending = append(c.pending[:idx], c.pending[idx+1:]...)
	}

	return nil
}

func (c *Controller) raise(token, name string, fields map[string]any) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := token + "\x00" + name
	if response, ok := c.resolved[key]; ok {
		delete(c.resolved, key)

		return response, nil
	}

	// Replaying before resolution reuses the pending entry so an
	// interrupt is never duplicated for the same call site.
	for _, entry := range c.pending {
		if entry.key == key {
			return nil, &SuspendError{Interrupt: entry.interrupt}
		}
	}

	intr := newInterrupt(name, fields)
	c.pending = append(c.pending, pendingEntry{interrupt: intr, key: key})

	return nil, &SuspendError{Interrupt: intr}
}

// Scope is the raise capability handed to hook events for one dispatch
// step.
type Scope struct {
	controller *Controller
	token      string
}

// Interrupt raises a suspension for this scope, or, when the controller
// already holds a response for it, consumes and returns that response.
// On the raising path the returned error is a *SuspendError which the
// caller must propagate so the event loop can freeze the turn.
func (s *Scope) Interrupt(name string, fields map[string]any) (any, error) {
	if s == nil || s.controller == nil {
		return nil, errors.New("interrupt raised outside an agent turn")
	}

	return s.controller.raise(s.token, name, fields)
}

// AsSuspend extracts a SuspendError from an error chain.
func AsSuspend(err error) (*SuspendError, bool) {
	var suspend *SuspendError
	if errors.As(err, &suspend) {
		return suspend, true
	}

	return nil, false
}
