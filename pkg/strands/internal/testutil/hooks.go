package testutil

import (
	"context"
	"sync"

	"github.com/cagataycali/strands-go/pkg/strands/hooking"
)

// CaptureHooks records every emitted event kind in order. Register it as a
// hook provider to assert on dispatch ordering.
type CaptureHooks struct {
	mu    sync.Mutex
	kinds []hooking.Kind
}

// Verify interface compliance at compile time.
var _ hooking.Provider = (*CaptureHooks)(nil)

// RegisterHooks implements hooking.Provider.
func (c *CaptureHooks) RegisterHooks(registry *hooking.Registry) {
	record := func(_ context.Context, event hooking.Event) error {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.kinds = append(c.kinds, event.Kind())

		return nil
	}
	for _, kind := range []hooking.Kind{
		hooking.KindAgentInitialized,
		hooking.KindBeforeModelCall,
		hooking.KindAfterModelCall,
		hooking.KindBeforeToolCall,
		hooking.KindAfterToolCall,
		hooking.KindMessageAdded,
	} {
		registry.Add(kind, record)
	}
}

// Kinds returns the recorded event kinds in emission order.
func (c *CaptureHooks) Kinds() []hooking.Kind {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]hooking.Kind, len(c.kinds))
	copy(out, c.kinds)

	return out
}

// Count returns how many events of the given kind were observed.
func (c *CaptureHooks) Count(kind hooking.Kind) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, k := range c.kinds {
		if k == kind {
			n++
		}
	}

	return n
}
