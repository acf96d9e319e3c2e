package session

import (
	"context"

	"github.com/cagataycali/strands-go/pkg/strands/messages"
)

// Manager binds a repository to one current session id and provides the
// write-through helpers the agent uses: restore on construction, append
// on message add, sync on state change. A single manager can be pointed
// at different sessions over its lifetime via SetSessionID.
type Manager struct {
	repo      *Repository
	sessionID string
}

// NewManager creates a manager for the given session, creating the
// session record when it does not exist yet.
func NewManager(ctx context.Context, sessionID string, repo *Repository) (*Manager, error) {
	if err := validateID("session_id", sessionID); err != nil {
		return nil, err
	}

	existing, err := repo.ReadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		if err := repo.CreateSession(ctx, NewSession(sessionID, SessionTypeAgent)); err != nil {
			return nil, err
		}
	}

	return &Manager{repo: repo, sessionID: sessionID}, nil
}

// SessionID returns the current session id.
func (m *Manager) SessionID() string {
	return m.sessionID
}

// SetSessionID points the manager at a different session. The new id is
// validated before it replaces the current one.
func (m *Manager) SetSessionID(sessionID string) error {
	if err := validateID("session_id", sessionID); err != nil {
		return err
	}
	m.sessionID = sessionID

	return nil
}

// Repository exposes the underlying repository.
func (m *Manager) Repository() *Repository {
	return m.repo
}

// RestoredAgent is the outcome of restoring an agent from the session:
// its persisted state and message history, if any.
type RestoredAgent struct {
	// State is the persisted agent state, nil for a fresh agent.
	State map[string]any

	// History is the persisted conversation in message id order.
	History []messages.Message
}

// InitializeAgent restores an agent from the session, creating its record
// when absent. For an existing agent the persisted history and state are
// returned so the live agent can adopt them.
func (m *Manager) InitializeAgent(ctx context.Context, agentID string, state map[string]any) (RestoredAgent, error) {
	existing, err := m.repo.ReadAgent(ctx, m.sessionID, agentID)
	if err != nil {
		return RestoredAgent{}, err
	}
	if existing == nil {
		agent := NewSessionAgent(agentID, state)

		return RestoredAgent{}, m.repo.CreateAgent(ctx, m.sessionID, agent)
	}

	records, err := m.repo.ListMessages(ctx, m.sessionID, agentID, ListOptions{})
	if err != nil {
		return RestoredAgent{}, err
	}
	history := make([]messages.Message, len(records))
	for i, record := range records {
		history[i] = record.Message
	}

	return RestoredAgent{State: existing.State, History: history}, nil
}

// AppendMessage persists one conversation turn at the given index.
func (m *Manager) AppendMessage(ctx context.Context, agentID string, index int, message messages.Message) error {
	return m.repo.CreateMessage(ctx, m.sessionID, agentID, NewSessionMessage(message, index))
}

// RewriteMessage overwrites a previously appended turn, used when a tool
// result is finalized after an interrupt resume.
func (m *Manager) RewriteMessage(ctx context.Context, agentID string, index int, message messages.Message) error {
	record := NewSessionMessage(message, index)

	return m.repo.UpdateMessage(ctx, m.sessionID, agentID, record)
}

// SyncAgent writes the agent's live state through to its session record.
func (m *Manager) SyncAgent(ctx context.Context, agentID string, state map[string]any) error {
	existing, err := m.repo.ReadAgent(ctx, m.sessionID, agentID)
	if err != nil {
		return err
	}

	agent := SessionAgent{AgentID: agentID, State: state}
	if existing != nil {
		agent.ConversationManagerState = existing.ConversationManagerState
		agent.CreatedAt = existing.CreatedAt
	}

	return m.repo.UpdateAgent(ctx, m.sessionID, agent)
}
