// Package tooling implements the tool registry and invoker: resolving a
// model-issued tool use to a callable, validating its input against the
// declared JSON schema, executing it, and normalizing the outcome into a
// structured tool result.
package tooling

import "context"

// Spec declares a tool: its unique name, description, JSON-schema-shaped
// input contract, and invocation flags.
type Spec struct {
	// Name uniquely identifies the tool within an agent.
	Name string `json:"name"`

	// Description tells the model what the tool does.
	Description string `json:"description"`

	// InputSchema is the JSON-schema contract validated at invocation
	// time. A nil schema accepts any input.
	InputSchema map[string]any `json:"inputSchema,omitempty"`

	// ReturnDirect terminates the event loop immediately after this
	// tool executes: the tool result becomes the final message and the
	// model is not consulted again that turn.
	ReturnDirect bool `json:"returnDirect,omitempty"`

	// Context requests injection of a ToolContext exposing the owning
	// agent and its mutable state. Injection applies identically to
	// loop-driven and direct invocations.
	Context bool `json:"context,omitempty"`
}

// Handler is a plain tool body. The returned value is wrapped into a
// success tool result unless it already is one.
type Handler func(ctx context.Context, input map[string]any) (any, error)

// ContextHandler is a tool body that additionally receives the execution
// context. Tools built from one implicitly declare Spec.Context.
type ContextHandler func(ctx context.Context, input map[string]any, tc *ToolContext) (any, error)

// Tool pairs a spec with its callable.
type Tool struct {
	Spec           Spec
	handler        Handler
	contextHandler ContextHandler
}

// NewTool builds a tool from a plain handler.
func NewTool(spec Spec, handler Handler) Tool {
	return Tool{Spec: spec, handler: handler}
}

// NewContextTool builds a tool whose body receives the execution context.
func NewContextTool(spec Spec, handler ContextHandler) Tool {
	spec.Context = true

	return Tool{Spec: spec, contextHandler: handler}
}

func (t Tool) call(ctx context.Context, input map[string]any, tc *ToolContext) (any, error) {
	if t.contextHandler != nil {
		return t.contextHandler(ctx, input, tc)
	}

	return t.handler(ctx, input)
}

// ToolContext is the execution context injected into context-declaring
// tools. It exposes the owning agent's identity and mutable state.
type ToolContext struct {
	// ToolUseID is the id of the invocation, empty for direct calls
	// made outside a model turn.
	ToolUseID string

	// AgentName is the owning agent's name.
	AgentName string

	// State is the owning agent's mutable state bag. Writes are
	// visible to the agent and persist through session sync.
	State *State
}
