// Package hooking provides the typed lifecycle event bus for the agent
// event loop. External code registers callbacks for a closed set of event
// kinds; callbacks observe and mutate event payloads in place, and may
// raise an interrupt that suspends the turn.
package hooking

import (
	"github.com/cagataycali/strands-go/pkg/strands/interrupts"
	"github.com/cagataycali/strands-go/pkg/strands/messages"
	"github.com/cagataycali/strands-go/pkg/strands/tooling"
)

// Kind identifies a lifecycle event type.
type Kind string

const (
	// KindAgentInitialized fires once when an agent finishes construction.
	KindAgentInitialized Kind = "AgentInitialized"

	// KindBeforeModelCall fires before each model invocation.
	KindBeforeModelCall Kind = "BeforeModelCall"

	// KindAfterModelCall fires after each model invocation.
	KindAfterModelCall Kind = "AfterModelCall"

	// KindBeforeToolCall fires before each tool invocation.
	KindBeforeToolCall Kind = "BeforeToolCall"

	// KindAfterToolCall fires after each tool invocation, before the
	// result is appended to history.
	KindAfterToolCall Kind = "AfterToolCall"

	// KindMessageAdded fires when a message is appended to history.
	KindMessageAdded Kind = "MessageAdded"
)

// Event is the closed union of lifecycle events.
type Event interface {
	Kind() Kind
}

// interruptible is embedded by events whose callbacks may suspend the turn.
type interruptible struct {
	scope *interrupts.Scope
}

// Interrupt raises a named suspension for the current dispatch step, or
// returns the caller-supplied response when the turn is being resumed.
// The returned error, when non-nil, is the suspension signal and must be
// propagated unchanged by the callback.
func (e *interruptible) Interrupt(name string, fields map[string]any) (any, error) {
	return e.scope.Interrupt(name, fields)
}

// AgentInitializedEvent fires once after agent construction and session
// restore.
type AgentInitializedEvent struct {
	// AgentName is the owning agent's name.
	AgentName string
}

// Kind implements Event.
func (*AgentInitializedEvent) Kind() Kind { return KindAgentInitialized }

// BeforeModelCallEvent fires before the model adapter is invoked.
type BeforeModelCallEvent struct {
	interruptible

	// History is the message history about to be sent. Read-only.
	History []messages.Message
}

// Kind implements Event.
func (*BeforeModelCallEvent) Kind() Kind { return KindBeforeModelCall }

// NewBeforeModelCallEvent builds the event for one model call.
func NewBeforeModelCallEvent(history []messages.Message, scope *interrupts.Scope) *BeforeModelCallEvent {
	return &BeforeModelCallEvent{interruptible: interruptible{scope: scope}, History: history}
}

// AfterModelCallEvent fires after the model adapter returns.
type AfterModelCallEvent struct {
	interruptible

	// StopReason is the model-reported stop reason. Read-only.
	StopReason messages.StopReason

	// Message is the model response. Handlers may rewrite its content
	// in place before it is appended to history.
	Message *messages.Message
}

// Kind implements Event.
func (*AfterModelCallEvent) Kind() Kind { return KindAfterModelCall }

// NewAfterModelCallEvent builds the event for one model response.
func NewAfterModelCallEvent(stopReason messages.StopReason, message *messages.Message, scope *interrupts.Scope) *AfterModelCallEvent {
	return &AfterModelCallEvent{
		interruptible: interruptible{scope: scope},
		StopReason:    stopReason,
		Message:       message,
	}
}

// BeforeToolCallEvent fires before a tool is invoked.
type BeforeToolCallEvent struct {
	interruptible

	// ToolUse is the model-issued invocation request. Read-only.
	ToolUse messages.ToolUseBlock

	// Spec is the declared spec of the tool about to run; zero when
	// the tool is unknown. Read-only.
	Spec tooling.Spec
}

// Kind implements Event.
func (*BeforeToolCallEvent) Kind() Kind { return KindBeforeToolCall }

// NewBeforeToolCallEvent builds the event for one tool invocation.
func NewBeforeToolCallEvent(use messages.ToolUseBlock, spec tooling.Spec, scope *interrupts.Scope) *BeforeToolCallEvent {
	return &BeforeToolCallEvent{
		interruptible: interruptible{scope: scope},
		ToolUse:       use,
		Spec:          spec,
	}
}

// AfterToolCallEvent fires after a tool executed, before its result is
// appended to history.
type AfterToolCallEvent struct {
	interruptible

	// ToolUse is the invocation the result belongs to. Read-only.
	ToolUse messages.ToolUseBlock

	// Result is the mutation target: handlers may rewrite its content
	// or status in place (for example to redact output, or to branch on
	// a resume response), and the rewritten result is what reaches
	// history.
	Result *messages.ToolResultBlock
}

// Kind implements Event.
func (*AfterToolCallEvent) Kind() Kind { return KindAfterToolCall }

// NewAfterToolCallEvent builds the event for one tool result.
func NewAfterToolCallEvent(use messages.ToolUseBlock, result *messages.ToolResultBlock, scope *interrupts.Scope) *AfterToolCallEvent {
	return &AfterToolCallEvent{
		interruptible: interruptible{scope: scope},
		ToolUse:       use,
		Result:        result,
	}
}

// MessageAddedEvent fires when a message is appended to history.
type MessageAddedEvent struct {
	// Message is the appended message. Read-only.
	Message *messages.Message
}

// Kind implements Event.
func (*MessageAddedEvent) Kind() Kind { return KindMessageAdded }
