// Package ports defines the interfaces the Strands core consumes and
// exposes: the model adapter, the object-store backend, the session
// repository contract, and the tool provider. Concrete implementations
// live under adapters.
package ports

import (
	"context"

	"github.com/cagataycali/strands-go/pkg/strands/messages"
	"github.com/cagataycali/strands-go/pkg/strands/tooling"
)

// ModelRequest carries one model invocation: the full message history plus
// the declared tool specs.
type ModelRequest struct {
	// SystemPrompt is the agent's system prompt, empty when unset.
	SystemPrompt string

	// Messages is the conversation history in order.
	Messages []messages.Message

	// ToolSpecs declares the tools the model may request.
	ToolSpecs []tooling.Spec
}

// ModelResponse is the model's reply for one invocation.
type ModelResponse struct {
	// StopReason reports why generation ended.
	StopReason messages.StopReason

	// Message is the assistant message, possibly carrying tool-use
	// blocks when StopReason indicates tool use.
	Message messages.Message
}

// Model is the adapter contract for a language model provider. Failures
// are fatal to the event loop: the core applies no retry policy, that
// belongs to the adapter.
type Model interface {
	Generate(ctx context.Context, request ModelRequest) (ModelResponse, error)
}
