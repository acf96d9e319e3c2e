// Package options provides agent configuration types.
// This package defines pure configuration; the agent package consumes it.
package options

import (
	"log/slog"

	"github.com/cagataycali/strands-go/pkg/strands/hooking"
	"github.com/cagataycali/strands-go/pkg/strands/ports"
	"github.com/cagataycali/strands-go/pkg/strands/session"
	"github.com/cagataycali/strands-go/pkg/strands/tooling"
	"github.com/cagataycali/strands-go/pkg/stranderrs"
)

const (
	// DefaultAgentName is used when no name is configured.
	DefaultAgentName = "Strands Agents"

	// DefaultAgentID identifies the agent inside a session when no id is
	// configured.
	DefaultAgentID = "default"

	// DefaultMaxCycles bounds the model round trips per invocation.
	DefaultMaxCycles = 10
)

// AgentOptions configures an agent.
type AgentOptions struct {
	// === Identity ===

	// Name is the human-facing agent name, exposed to context tools.
	Name string

	// AgentID identifies the agent inside a session. Defaults to
	// "default" so a single-agent session needs no configuration.
	AgentID string

	// === Domain Settings ===

	// SystemPrompt is prepended to every model request.
	SystemPrompt string

	// Model generates assistant responses. Required.
	Model ports.Model

	// Tools are registered at construction time.
	Tools []tooling.Tool

	// ToolProviders contribute additional tools, listed at construction.
	ToolProviders []ports.ToolProvider

	// Hooks subscribe callbacks to lifecycle events.
	Hooks []hooking.Provider

	// State seeds the agent's mutable state bag.
	State map[string]any

	// MaxCycles limits model round trips per invocation (optional).
	MaxCycles int

	// === Session Management ===

	// SessionManager enables persistence: history restore on
	// construction, write-through on every appended message.
	SessionManager *session.Manager

	// === Infrastructure Settings ===

	// Logger receives structured logs; nil disables logging.
	Logger *slog.Logger

	// MCPServers configures MCP server connections whose tools are
	// registered alongside Tools.
	MCPServers map[string]MCPServerConfig
}

// Normalize fills defaults and validates required fields.
func (o *AgentOptions) Normalize() error {
	if o.Model == nil {
		return stranderrs.NewConfigError(
			stranderrs.ErrCodeMissingModel, "a model is required", nil,
		)
	}
	if o.Name == "" {
		o.Name = DefaultAgentName
	}
	if o.AgentID == "" {
		o.AgentID = DefaultAgentID
	}
	if o.MaxCycles <= 0 {
		o.MaxCycles = DefaultMaxCycles
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}

	return nil
}
