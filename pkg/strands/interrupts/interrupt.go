// Package interrupts implements the suspend/resume controller for the agent
// event loop. A hook raises an interrupt during tool or model dispatch; the
// controller freezes the pending state, surfaces the interrupts to the
// caller, and resumes the recorded dispatch step once matching responses
// are supplied.
package interrupts

import (
	"github.com/google/uuid"
)

// Interrupt is a named, externally-resolvable suspension point raised by a
// hook. It stays pending until the caller supplies a response matching its
// id, and is consumed exactly once on resume.
type Interrupt struct {
	// ID is generated at raise time and uniquely identifies the
	// suspension for resume matching.
	ID string `json:"id"`

	// Name is the hook-chosen interrupt name, e.g. "tool_failure_review".
	Name string `json:"name"`

	// Reason is an optional human-readable explanation.
	Reason string `json:"reason,omitempty"`

	// Fields carries any extra values the hook attached at raise time.
	Fields map[string]any `json:"fields,omitempty"`
}

func newInterrupt(name string, fields map[string]any) Interrupt {
	intr := Interrupt{
		ID:   uuid.NewString(),
		Name: name,
	}
	if len(fields) > 0 {
		intr.Fields = make(map[string]any, len(fields))
		for k, v := range fields {
			intr.Fields[k] = v
		}
		if reason, ok := intr.Fields["reason"].(string); ok {
			intr.Reason = reason
			delete(intr.Fields, "reason")
		}
		if len(intr.Fields) == 0 {
			intr.Fields = nil
		}
	}

	return intr
}

// SuspendError is the suspension signal raised when a hook interrupts. It
// unwinds hook and tool dispatch up to the event loop, which records the
// pending state and returns control to the caller. Hook callbacks must
// propagate it unchanged.
type SuspendError struct {
	Interrupt Interrupt
}

// Error implements the error interface.
func (e *SuspendError) Error() string {
	return "interrupt raised: " + e.Interrupt.Name + " (" + e.Interrupt.ID + ")"
}
