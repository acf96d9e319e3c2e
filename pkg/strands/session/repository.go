package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cagataycali/strands-go/pkg/strands/ports"
	"github.com/cagataycali/strands-go/pkg/stranderrs"
)

const defaultFetchConcurrency = 8

// Repository persists sessions, agents, messages, and multi-agent blobs
// to an object store under the hierarchical layout
// sessions/<session_id>/agents/<agent_id>/messages/message_<id>.json.
// Reads of missing records return nil; creates of existing records
// conflict; updates of missing records fail with a distinct error.
type Repository struct {
	store            ports.ObjectStore
	prefix           string
	logger           *slog.Logger
	fetchConcurrency int
}

// Option configures a Repository.
type Option func(*Repository)

// WithPrefix prepends a key prefix to every object, e.g. "prod/".
func WithPrefix(prefix string) Option {
	return func(r *Repository) { r.prefix = prefix }
}

// WithLogger sets the repository logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Repository) { r.logger = logger }
}

// WithFetchConcurrency bounds the parallel message fetch for ListMessages.
func WithFetchConcurrency(n int) Option {
	return func(r *Repository) { r.fetchConcurrency = n }
}

// NewRepository creates a repository over the given object store.
func NewRepository(store ports.ObjectStore, opts ...Option) *Repository {
	r := &Repository{
		store:            store,
		logger:           slog.New(slog.DiscardHandler),
		fetchConcurrency: defaultFetchConcurrency,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.fetchConcurrency < 1 {
		r.fetchConcurrency = 1
	}

	return r
}

func (r *Repository) putJSON(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return stranderrs.NewSessionError(
			stranderrs.ErrCodeStorageFailure, "marshal record", err,
		)
	}
	if err := r.store.Put(ctx, key, data); err != nil {
		return stranderrs.NewSessionError(
			stranderrs.ErrCodeStorageFailure, "write object", err,
		)
	}

	return nil
}

func (r *Repository) getJSON(ctx context.Context, key string, out any) (bool, error) {
	data, found, err := r.store.Get(ctx, key)
	if err != nil {
		return false, stranderrs.NewSessionError(
			stranderrs.ErrCodeStorageFailure, "read object", err,
		)
	}
	if !found {
		return false, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, stranderrs.NewSessionError(
			stranderrs.ErrCodeStorageFailure, "decode record", err,
		)
	}

	return true, nil
}

// CreateSession persists a new session. Creating an existing session is a
// conflict, never a silent overwrite.
func (r *Repository) CreateSession(ctx context.Context, sess Session) error {
	key, err := r.sessionKey(sess.SessionID)
	if err != nil {
		return err
	}

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return stranderrs.NewSessionError(
			stranderrs.ErrCodeStorageFailure, "check session", err,
		)
	}
	if exists {
		return stranderrs.NewSessionError(
			stranderrs.ErrCodeSessionConflict, "session already exists", nil,
		).WithSessionID(sess.SessionID)
	}

	r.logger.Debug("creating session", "session_id", sess.SessionID)

	return r.putJSON(ctx, key, sess)
}

// ReadSession returns the session record, or nil when it does not exist.
func (r *Repository) ReadSession(ctx context.Context, sessionID string) (*Session, error) {
	key, err := r.sessionKey(sessionID)
	if err != nil {
		return nil, err
	}

	var sess Session
	found, err := r.getJSON(ctx, key, &sess)
	if err != nil || !found {
		return nil, err
	}

	return &sess, nil
}

// DeleteSession removes the session and everything stored beneath it.
func (r *Repository) DeleteSession(ctx context.Context, sessionID string) error {
	prefix, err := r.sessionPrefix(sessionID)
	if err != nil {
		return err
	}

	keys, err := r.store.List(ctx, prefix)
	if err != nil {
		return stranderrs.NewSessionError(
			stranderrs.ErrCodeStorageFailure, "list session objects", err,
		)
	}
	for _, key := range keys {
		if err := r.store.Delete(ctx, key); err != nil {
			return stranderrs.NewSessionError(
				stranderrs.ErrCodeStorageFailure, "delete object", err,
			)
		}
	}

	return nil
}

// CreateAgent persists a new agent record under the session.
func (r *Repository) CreateAgent(ctx context.Context, sessionID string, agent SessionAgent) error {
	key, err := r.agentKey(sessionID, agent.AgentID)
	if err != nil {
		return err
	}

	return r.putJSON(ctx, key, agent)
}

// ReadAgent returns the agent record, or nil when it does not exist.
func (r *Repository) ReadAgent(ctx context.Context, sessionID, agentID string) (*SessionAgent, error) {
	key, err := r.agentKey(sessionID, agentID)
	if err != nil {
		return nil, err
	}

	var agent SessionAgent
	found, err := r.getJSON(ctx, key, &agent)
	if err != nil || !found {
		return nil, err
	}

	return &agent, nil
}

// UpdateAgent overwrites an existing agent record. Updating a missing
// agent fails with a not-found-for-update error, distinguishable from the
// nil result of reading a missing agent.
func (r *Repository) UpdateAgent(ctx context.Context, sessionID string, agent SessionAgent) error {
	key, err := r.agentKey(sessionID, agent.AgentID)
	if err != nil {
		return err
	}

	existing, err := r.ReadAgent(ctx, sessionID, agent.AgentID)
	if err != nil {
		return err
	}
	if existing == nil {
		return stranderrs.NewSessionError(
			stranderrs.ErrCodeNotFoundForUpdate, "agent does not exist to update", nil,
		).WithSessionID(sessionID).WithAgentID(agent.AgentID)
	}

	agent.CreatedAt = existing.CreatedAt
	agent.UpdatedAt = time.Now().UTC()

	return r.putJSON(ctx, key, agent)
}

// CreateMessage persists one conversation turn under the agent.
func (r *Repository) CreateMessage(ctx context.Context, sessionID, agentID string, message SessionMessage) error {
	key, err := r.messageKey(sessionID, agentID, message.MessageID)
	if err != nil {
		return err
	}

	return r.putJSON(ctx, key, message)
}

// ReadMessage returns one message record, or nil when it does not exist.
func (r *Repository) ReadMessage(ctx context.Context, sessionID, agentID string, index int) (*SessionMessage, error) {
	key, err := r.messageKey(sessionID, agentID, index)
	if err != nil {
		return nil, err
	}

	var message SessionMessage
	found, err := r.getJSON(ctx, key, &message)
	if err != nil || !found {
		return nil, err
	}

	return &message, nil
}

// UpdateMessage overwrites an existing message record, failing with a
// not-found-for-update error when it does not exist.
func (r *Repository) UpdateMessage(ctx context.Context, sessionID, agentID string, message SessionMessage) error {
	key, err := r.messageKey(sessionID, agentID, message.MessageID)
	if err != nil {
		return err
	}

	existing, err := r.ReadMessage(ctx, sessionID, agentID, message.MessageID)
	if err != nil {
		return err
	}
	if existing == nil {
		return stranderrs.NewSessionError(
			stranderrs.ErrCodeNotFoundForUpdate, "message does not exist to update", nil,
		).WithSessionID(sessionID).WithAgentID(agentID)
	}

	message.CreatedAt = existing.CreatedAt
	message.UpdatedAt = time.Now().UTC()

	return r.putJSON(ctx, key, message)
}

// ListOptions windows a message listing.
type ListOptions struct {
	// Limit bounds the number of messages returned; zero means all.
	Limit int

	// Offset skips that many messages from the start of the ascending
	// order.
	Offset int
}

// ListMessages returns the agent's messages in ascending message id order.
// Objects are fetched in parallel for throughput, and the original index
// order is restored before returning: ordering is a correctness
// invariant, not an optimization side effect.
func (r *Repository) ListMessages(ctx context.Context, sessionID, agentID string, opts ListOptions) ([]SessionMessage, error) {
	prefix, err := r.messagesPrefix(sessionID, agentID)
	if err != nil {
		return nil, err
	}

	keys, err := r.store.List(ctx, prefix)
	if err != nil {
		return nil, stranderrs.NewSessionError(
			stranderrs.ErrCodeStorageFailure, "list messages", err,
		)
	}

	type indexedKey struct {
		index int
		key   string
	}
	indexed := make([]indexedKey, 0, len(keys))
	for _, key := range keys {
		if index, ok := parseMessageIndex(key); ok {
			indexed = append(indexed, indexedKey{index: index, key: key})
		}
	}
	// Lexicographic key order interleaves message_10 before message_2;
	// sort numerically.
	sort.Slice(indexed, func(i, j int) bool { return indexed[i].index < indexed[j].index })

	if opts.Offset > 0 {
		if opts.Offset >= len(indexed) {
			return []SessionMessage{}, nil
		}
		indexed = indexed[opts.Offset:]
	}
	if opts.Limit > 0 && opts.Limit < len(indexed) {
		indexed = indexed[:opts.Limit]
	}

	out := make([]SessionMessage, len(indexed))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(r.fetchConcurrency)
	for i, entry := range indexed {
		group.Go(func() error {
			var message SessionMessage
			found, err := r.getJSON(groupCtx, entry.key, &message)
			if err != nil {
				return err
			}
			if !found {
				return stranderrs.NewSessionError(
					stranderrs.ErrCodeStorageFailure, "message disappeared during listing", nil,
				).WithSessionID(sessionID).WithAgentID(agentID)
			}
			out[i] = message

			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// CreateMultiAgent persists a new multi-agent aggregate blob. Creating an
// existing aggregate is a conflict.
func (r *Repository) CreateMultiAgent(ctx context.Context, sessionID string, multiAgent MultiAgent) error {
	key, err := r.multiAgentKey(sessionID, multiAgent.ID)
	if err != nil {
		return err
	}

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return stranderrs.NewSessionError(
			stranderrs.ErrCodeStorageFailure, "check multi-agent", err,
		)
	}
	if exists {
		return stranderrs.NewSessionError(
			stranderrs.ErrCodeSessionConflict, "multi-agent already exists", nil,
		).WithSessionID(sessionID)
	}

	return r.putJSON(ctx, key, multiAgent)
}

// ReadMultiAgent returns the aggregate blob, or nil when it does not
// exist.
func (r *Repository) ReadMultiAgent(ctx context.Context, sessionID, multiAgentID string) (*MultiAgent, error) {
	key, err := r.multiAgentKey(sessionID, multiAgentID)
	if err != nil {
		return nil, err
	}

	var multiAgent MultiAgent
	found, err := r.getJSON(ctx, key, &multiAgent)
	if err != nil || !found {
		return nil, err
	}

	return &multiAgent, nil
}

// UpdateMultiAgent overwrites an existing aggregate blob, failing with a
// not-found-for-update error when it does not exist.
func (r *Repository) UpdateMultiAgent(ctx context.Context, sessionID string, multiAgent MultiAgent) error {
	key, err := r.multiAgentKey(sessionID, multiAgent.ID)
	if err != nil {
		return err
	}

	existing, err := r.ReadMultiAgent(ctx, sessionID, multiAgent.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return stranderrs.NewSessionError(
			stranderrs.ErrCodeNotFoundForUpdate, "multi-agent does not exist to update", nil,
		).WithSessionID(sessionID)
	}

	return r.putJSON(ctx, key, multiAgent)
}
