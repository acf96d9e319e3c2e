// Package session implements durable persistence of session, agent,
// message, and multi-agent state behind a generic key/object backend.
// Identifier validation is a security boundary: every id is checked for
// path-separator injection before any backend I/O.
package session

import (
	"time"

	"github.com/cagataycali/strands-go/pkg/strands/messages"
)

// SessionType distinguishes persisted session flavors.
type SessionType string

const (
	// SessionTypeAgent marks a single-agent session.
	SessionTypeAgent SessionType = "AGENT"
)

// Session is the durable record of a conversation's identity.
type Session struct {
	SessionID   string      `json:"session_id"`
	SessionType SessionType `json:"session_type"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// NewSession builds a session record with creation timestamps set.
func NewSession(sessionID string, sessionType SessionType) Session {
	now := time.Now().UTC()

	return Session{
		SessionID:   sessionID,
		SessionType: sessionType,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// SessionAgent is the durable projection of an agent: its id, state bag,
// and conversation manager bookkeeping. The in-memory agent owns the live
// copy and writes through on mutation.
type SessionAgent struct {
	AgentID                  string         `json:"agent_id"`
	State                    map[string]any `json:"state"`
	ConversationManagerState map[string]any `json:"conversation_manager_state,omitempty"`
	CreatedAt                time.Time      `json:"created_at"`
	UpdatedAt                time.Time      `json:"updated_at"`
}

// NewSessionAgent builds an agent record with creation timestamps set.
func NewSessionAgent(agentID string, state map[string]any) SessionAgent {
	now := time.Now().UTC()

	return SessionAgent{
		AgentID:   agentID,
		State:     state,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SessionMessage is one persisted conversation turn. MessageID is a
// monotonically increasing non-negative integer assigned by the caller.
type SessionMessage struct {
	MessageID     int               `json:"message_id"`
	Message       messages.Message  `json:"message"`
	RedactMessage *messages.Message `json:"redact_message,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// NewSessionMessage builds a message record for the given index.
func NewSessionMessage(message messages.Message, index int) SessionMessage {
	now := time.Now().UTC()

	return SessionMessage{
		MessageID: index,
		Message:   message,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// MultiAgent is the opaque persisted state of a swarm or workflow
// aggregate, keyed by session id plus multi-agent id.
type MultiAgent struct {
	ID    string         `json:"id"`
	State map[string]any `json:"state,omitempty"`
}
