package session

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cagataycali/strands-go/pkg/stranderrs"
)

const (
	sessionObject    = "session.json"
	agentObject      = "agent.json"
	multiAgentObject = "multi_agent.json"
	messageFilePref  = "message_"
	messageFileSuf   = ".json"
)

// validateID rejects identifiers that could escape their key namespace.
// This runs before any backend I/O; it is a security boundary against key
// injection, not input hygiene.
func validateID(field, id string) error {
	if id == "" {
		return stranderrs.NewValidationError(
			stranderrs.ErrCodeInvalidIdentifier,
			fmt.Sprintf("%s=%q | id cannot be empty", field, id),
			field, id,
		)
	}
	if strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return stranderrs.NewValidationError(
			stranderrs.ErrCodeInvalidIdentifier,
			fmt.Sprintf("%s=%q | id cannot contain path separators", field, id),
			field, id,
		)
	}

	return nil
}

// validateMessageIndex rejects message ids that are not non-negative
// integers.
func validateMessageIndex(index int) error {
	if index < 0 {
		return stranderrs.NewValidationError(
			stranderrs.ErrCodeInvalidMessageIndex,
			fmt.Sprintf("message_id=<%d> | message id must be a non-negative integer", index),
			"message_id", index,
		)
	}

	return nil
}

func (r *Repository) sessionPrefix(sessionID string) (string, error) {
	if err := validateID("session_id", sessionID); err != nil {
		return "", err
	}

	return fmt.Sprintf("%ssessions/%s/", r.prefix, sessionID), nil
}

func (r *Repository) sessionKey(sessionID string) (string, error) {
	prefix, err := r.sessionPrefix(sessionID)
	if err != nil {
		return "", err
	}

	return prefix + sessionObject, nil
}

func (r *Repository) agentPrefix(sessionID, agentID string) (string, error) {
	sessionPrefix, err := r.sessionPrefix(sessionID)
	if err != nil {
		return "", err
	}
	if err := validateID("agent_id", agentID); err != nil {
		return "", err
	}

	return fmt.Sprintf("%sagents/%s/", sessionPrefix, agentID), nil
}

func (r *Repository) agentKey(sessionID, agentID string) (string, error) {
	prefix, err := r.agentPrefix(sessionID, agentID)
	if err != nil {
		return "", err
	}

	return prefix + agentObject, nil
}

func (r *Repository) messagesPrefix(sessionID, agentID string) (string, error) {
	agentPrefix, err := r.agentPrefix(sessionID, agentID)
	if err != nil {
		return "", err
	}

	return agentPrefix + "messages/", nil
}

func (r *Repository) messageKey(sessionID, agentID string, index int) (string, error) {
	messagesPrefix, err := r.messagesPrefix(sessionID, agentID)
	if err != nil {
		return "", err
	}
	if err := validateMessageIndex(index); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s%s%d%s", messagesPrefix, messageFilePref, index, messageFileSuf), nil
}

func (r *Repository) multiAgentPrefix(sessionID, multiAgentID string) (string, error) {
	sessionPrefix, err := r.sessionPrefix(sessionID)
	if err != nil {
		return "", err
	}
	if err := validateID("multi_agent_id", multiAgentID); err != nil {
		return "", err
	}

	return fmt.Sprintf("%smulti_agents/%s/", sessionPrefix, multiAgentID), nil
}

func (r *Repository) multiAgentKey(sessionID, multiAgentID string) (string, error) {
	prefix, err := r.multiAgentPrefix(sessionID, multiAgentID)
	if err != nil {
		return "", err
	}

	return prefix + multiAgentObject, nil
}

// parseMessageIndex extracts the numeric index from a message object key.
// Keys that do not match the message naming pattern are skipped by the
// lister.
func parseMessageIndex(key string) (int, bool) {
	name := key
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if !strings.HasPrefix(name, messageFilePref) || !strings.HasSuffix(name, messageFileSuf) {
		return 0, false
	}
	raw := strings.TrimSuffix(strings.TrimPrefix(name, messageFilePref), messageFileSuf)
	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 {
		return 0, false
	}

	return index, true
}
