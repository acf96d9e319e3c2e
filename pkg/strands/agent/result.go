package agent

import (
	"encoding/json"

	"github.com/cagataycali/strands-go/pkg/strands/interrupts"
	"github.com/cagataycali/strands-go/pkg/strands/messages"
	"github.com/cagataycali/strands-go/pkg/stranderrs"
)

// resultTypeTag marks serialized results so that foreign payloads are
// rejected on deserialization.
const resultTypeTag = "agent_result"

// Result is the outcome of one agent invocation: terminal when StopReason
// is end_turn, max_tokens, or tool_use; suspended when it is interrupt.
// Interrupts is non-empty exactly when StopReason is interrupt.
type Result struct {
	// StopReason reports why the turn ended.
	StopReason messages.StopReason `json:"stop_reason"`

	// Message is the final message of the turn: the assistant message on
	// normal completion, the tool-result message on a return-direct
	// short circuit.
	Message messages.Message `json:"message"`

	// Metrics holds the invocation's accumulated statistics. Not
	// preserved by serialization.
	Metrics *EventLoopMetrics `json:"-"`

	// State is a snapshot of the agent's state bag at turn end. Not
	// preserved by serialization.
	State map[string]any `json:"-"`

	// StructuredOutput optionally carries a typed payload extracted from
	// the final message.
	StructuredOutput any `json:"-"`

	// Interrupts lists the suspensions awaiting responses, in raise
	// order.
	Interrupts []interrupts.Interrupt `json:"interrupts,omitempty"`
}

// String concatenates the text blocks of the final message, one per line.
func (r *Result) String() string {
	return r.Message.TextContent()
}

// ToolExecutions returns per-tool call counts for the invocation.
func (r *Result) ToolExecutions() map[string]int {
	if r.Metrics == nil {
		return nil
	}

	out := make(map[string]int, len(r.Metrics.ToolMetrics))
	for name, metric := range r.Metrics.ToolMetrics {
		out[name] = metric.CallCount
	}

	return out
}

// ToolInputs returns the most recent input per invoked tool.
func (r *Result) ToolInputs() map[string]map[string]any {
	if r.Metrics == nil {
		return nil
	}

	out := make(map[string]map[string]any, len(r.Metrics.ToolMetrics))
	for name, metric := range r.Metrics.ToolMetrics {
		out[name] = metric.LastUse.Input
	}

	return out
}

// ToDict serializes the result to a plain map with a type envelope.
// Metrics and state are ephemeral and deliberately omitted.
func (r *Result) ToDict() (map[string]any, error) {
	message, err := toPlain(r.Message)
	if err != nil {
		return nil, stranderrs.NewValidationError(
			stranderrs.ErrCodeInvalidFormat, "serialize result message", "message", nil,
		)
	}

	return map[string]any{
		"type":        resultTypeTag,
		"stop_reason": string(r.StopReason),
		"message":     message,
	}, nil
}

// ResultFromDict reconstructs a result from its ToDict form. Message and
// stop reason round-trip exactly; metrics come back as a fresh default and
// state resets to empty.
func ResultFromDict(data map[string]any) (*Result, error) {
	tag, _ := data["type"].(string)
	if tag != resultTypeTag {
		return nil, stranderrs.NewValidationError(
			stranderrs.ErrCodeInvalidFormat, "not an agent result payload", "type", tag,
		)
	}

	stopReason, ok := data["stop_reason"].(string)
	if !ok {
		return nil, stranderrs.NewValidationError(
			stranderrs.ErrCodeInvalidFormat, "missing stop_reason", "stop_reason", data["stop_reason"],
		)
	}

	var message messages.Message
	if raw, ok := data["message"]; ok {
		if err := fromPlain(raw, &message); err != nil {
			return nil, stranderrs.NewValidationError(
				stranderrs.ErrCodeInvalidFormat, "malformed result message", "message", nil,
			)
		}
	}

	return &Result{
		StopReason: messages.StopReason(stopReason),
		Message:    message,
		Metrics:    NewEventLoopMetrics(),
		State:      map[string]any{},
	}, nil
}

func toPlain(value any) (any, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}

	return out, nil
}

func fromPlain(value any, out any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, out)
}
