// Package agent implements the event loop orchestrator: one agent turn
// interleaves model calls with tool dispatch, firing lifecycle hooks around
// each step, until the turn ends or a hook suspends it with an interrupt.
package agent

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/cagataycali/strands-go/pkg/strands/hooking"
	"github.com/cagataycali/strands-go/pkg/strands/messages"
	"github.com/cagataycali/strands-go/pkg/strands/options"
	"github.com/cagataycali/strands-go/pkg/strands/ports"
	"github.com/cagataycali/strands-go/pkg/strands/session"
	"github.com/cagataycali/strands-go/pkg/strands/tooling"
)

// Agent is a declared model + tools + hooks combination driving a
// conversational event loop. One agent processes one turn at a time;
// Invoke and Resume serialize on an internal lock.
type Agent struct {
	name         string
	agentID      string
	systemPrompt string
	model        ports.Model
	registry     *tooling.Registry
	invoker      *tooling.Invoker
	hooks        *hooking.Registry
	state        *tooling.State
	sessions     *session.Manager
	logger       *slog.Logger
	maxCycles    int

	mu        sync.Mutex
	history   []messages.Message
	nextIndex int
	suspended *turn
}

// New constructs an agent: registers tools and tool providers, wires hook
// providers, restores session state when a session manager is configured,
// and fires the AgentInitialized event.
func New(ctx context.Context, opts options.AgentOptions) (*Agent, error) {
	if err := opts.Normalize(); err != nil {
		return nil, err
	}

	registry := tooling.NewRegistry()
	if err := registry.RegisterAll(opts.Tools); err != nil {
		return nil, err
	}
	for _, provider := range opts.ToolProviders {
		provided, err := provider.ListTools(ctx)
		if err != nil {
			return nil, err
		}
		if err := registry.RegisterAll(provided); err != nil {
			return nil, err
		}
	}

	hooks := hooking.NewRegistry()
	for _, provider := range opts.Hooks {
		hooks.AddProvider(provider)
	}

	a := &Agent{
		name:         opts.Name,
		agentID:      opts.AgentID,
		systemPrompt: opts.SystemPrompt,
		model:        opts.Model,
		registry:     registry,
		invoker:      tooling.NewInvoker(registry, opts.Logger),
		hooks:        hooks,
		state:        tooling.NewStateFrom(opts.State),
		sessions:     opts.SessionManager,
		logger:       opts.Logger,
		maxCycles:    opts.MaxCycles,
	}

	if a.sessions != nil {
		restored, err := a.sessions.InitializeAgent(ctx, a.agentID, a.state.Snapshot())
		if err != nil {
			return nil, err
		}
		if restored.State != nil {
			a.state.Replace(restored.State)
		}
		a.history = restored.History
		a.nextIndex = len(restored.History)
	}

	if _, err := hooks.Emit(ctx, &hooking.AgentInitializedEvent{AgentName: a.name}); err != nil {
		return nil, err
	}

	return a, nil
}

// Name returns the agent name.
func (a *Agent) Name() string {
	return a.name
}

// AgentID returns the agent's session identity.
func (a *Agent) AgentID() string {
	return a.agentID
}

// State returns the agent's mutable state bag, shared with context tools.
func (a *Agent) State() *tooling.State {
	return a.state
}

// ToolNames returns the registered tool names in registration order.
func (a *Agent) ToolNames() []string {
	return a.registry.Names()
}

// History returns a copy of the conversation history.
func (a *Agent) History() []messages.Message {
	a.mu.Lock()
	defer a.mu.Unlock()

	return messages.CloneMessages(a.history)
}

// Suspended reports whether a turn is frozen awaiting interrupt responses.
func (a *Agent) Suspended() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.suspended != nil
}

// CallTool invokes a registered tool directly, outside any model turn. The
// tool context is injected exactly as the event loop would inject it, so a
// direct call behaves identically to a loop-driven one.
func (a *Agent) CallTool(ctx context.Context, name string, input map[string]any) messages.ToolResultBlock {
	use := messages.ToolUseBlock{
		ToolUseID: "tooluse_" + uuid.NewString(),
		Name:      name,
		Input:     input,
	}

	return a.invoker.Invoke(ctx, use, a.toolContext())
}

func (a *Agent) toolContext() *tooling.ToolContext {
	return &tooling.ToolContext{AgentName: a.name, State: a.state}
}

// appendMessage commits a message to history, writes it through to the
// session when one is configured, and fires MessageAdded.
func (a *Agent) appendMessage(ctx context.Context, message messages.Message) error {
	if a.sessions != nil {
		if err := a.sessions.AppendMessage(ctx, a.agentID, a.nextIndex, message); err != nil {
			return err
		}
	}
	a.history = append(a.history, message)
	a.nextIndex++

	_, err := a.hooks.Emit(ctx, &hooking.MessageAddedEvent{Message: &a.history[len(a.history)-1]})

	return err
}

// syncSession writes the agent's live state through to its session record.
func (a *Agent) syncSession(ctx context.Context) error {
	if a.sessions == nil {
		return nil
	}

	return a.sessions.SyncAgent(ctx, a.agentID, a.state.Snapshot())
}
