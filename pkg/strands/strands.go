package strands

import (
	"context"

	"github.com/cagataycali/strands-go/pkg/strands/agent"
	"github.com/cagataycali/strands-go/pkg/strands/hooking"
	"github.com/cagataycali/strands-go/pkg/strands/interrupts"
	"github.com/cagataycali/strands-go/pkg/strands/messages"
	"github.com/cagataycali/strands-go/pkg/strands/options"
	"github.com/cagataycali/strands-go/pkg/strands/session"
	"github.com/cagataycali/strands-go/pkg/strands/tooling"
)

// Aliases for the types callers touch most, so simple programs import only
// this package.
type (
	// Agent is the event loop orchestrator.
	Agent = agent.Agent

	// AgentOptions configures an agent.
	AgentOptions = options.AgentOptions

	// Result is the outcome of one agent invocation.
	Result = agent.Result

	// Message is one conversation turn.
	Message = messages.Message

	// ContentBlock is the tagged content union inside a message.
	ContentBlock = messages.ContentBlock

	// StopReason reports why a turn ended.
	StopReason = messages.StopReason

	// Tool pairs a spec with its callable.
	Tool = tooling.Tool

	// ToolSpec declares a tool.
	ToolSpec = tooling.Spec

	// ToolContext is the execution context injected into context tools.
	ToolContext = tooling.ToolContext

	// Interrupt is a pending suspension awaiting a response.
	Interrupt = interrupts.Interrupt

	// InterruptResponse resolves one pending interrupt on resume.
	InterruptResponse = interrupts.Response

	// ResponseEnvelope is the wire shape of one resume entry.
	ResponseEnvelope = interrupts.ResponseEnvelope

	// HookRegistry maps event kinds to ordered callbacks.
	HookRegistry = hooking.Registry

	// HookProvider registers related callbacks on an agent's registry.
	HookProvider = hooking.Provider

	// SessionManager binds a session repository to one session id.
	SessionManager = session.Manager
)

// Re-exported stop reasons.
const (
	StopEndTurn   = messages.StopEndTurn
	StopToolUse   = messages.StopToolUse
	StopMaxTokens = messages.StopMaxTokens
	StopInterrupt = messages.StopInterrupt
)

// Re-exported constructors.
var (
	// NewTool builds a tool from a plain handler.
	NewTool = tooling.NewTool

	// NewContextTool builds a tool whose body receives the execution
	// context.
	NewContextTool = tooling.NewContextTool

	// NewUserMessage builds a user message from text.
	NewUserMessage = messages.NewUserMessage

	// NewSessionManager creates a session manager, creating the session
	// record when absent.
	NewSessionManager = session.NewManager

	// NewSessionRepository creates a session repository over an object
	// store.
	NewSessionRepository = session.NewRepository
)

// New constructs an agent from options. Configured MCP servers are
// connected first and their tools registered alongside the static tool
// list; a connection failure tears down the servers connected so far.
func New(ctx context.Context, opts AgentOptions) (*Agent, error) {
	providers, err := initializeMCPProviders(ctx, opts.MCPServers)
	if err != nil {
		return nil, err
	}
	opts.ToolProviders = append(opts.ToolProviders, providers...)

	a, err := agent.New(ctx, opts)
	if err != nil {
		for _, provider := range providers {
			_ = provider.Close()
		}

		return nil, err
	}

	return a, nil
}
