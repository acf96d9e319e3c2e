// Package testutil provides shared test doubles: a deterministic scripted
// model adapter and message builders used across package tests.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/cagataycali/strands-go/pkg/strands/messages"
	"github.com/cagataycali/strands-go/pkg/strands/ports"
)

// Step configures one model turn in a scripted sequence.
type Step struct {
	Response ports.ModelResponse
	Err      error
}

// ScriptedModel is a deterministic model adapter for loop tests. Each
// Generate call consumes the next step; running past the script fails the
// call.
type ScriptedModel struct {
	mu       sync.Mutex
	index    int
	steps    []Step
	Requests []ports.ModelRequest
}

// Verify interface compliance at compile time.
var _ ports.Model = (*ScriptedModel)(nil)

// NewScriptedModel creates a model that replays the given steps in order.
func NewScriptedModel(steps ...Step) *ScriptedModel {
	cloned := make([]Step, len(steps))
	copy(cloned, steps)

	return &ScriptedModel{steps: cloned}
}

// Generate implements ports.Model.
func (m *ScriptedModel) Generate(_ context.Context, request ports.ModelRequest) (ports.ModelResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Requests = append(m.Requests, request)
	if m.index >= len(m.steps) {
		return ports.ModelResponse{}, fmt.Errorf("script exhausted at step %d", m.index+1)
	}
	current := m.steps[m.index]
	m.index++
	if current.Err != nil {
		return ports.ModelResponse{}, current.Err
	}

	response := current.Response
	response.Message = response.Message.Clone()
	if response.Message.Role == "" {
		response.Message.Role = messages.RoleAssistant
	}
	if response.StopReason == "" {
		response.StopReason = messages.StopEndTurn
	}

	return response, nil
}

// Calls reports how many steps have been consumed.
func (m *ScriptedModel) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.index
}

// TextResponse builds a terminal end_turn step with one text block.
func TextResponse(text string) Step {
	return Step{Response: ports.ModelResponse{
		StopReason: messages.StopEndTurn,
		Message: messages.Message{
			Role:    messages.RoleAssistant,
			Content: []messages.ContentBlock{{Text: &text}},
		},
	}}
}

// ToolUseResponse builds a tool_use step requesting the given invocations.
func ToolUseResponse(uses ...messages.ToolUseBlock) Step {
	content := make([]messages.ContentBlock, len(uses))
	for i := range uses {
		use := uses[i]
		content[i] = messages.ContentBlock{ToolUse: &use}
	}

	return Step{Response: ports.ModelResponse{
		StopReason: messages.StopToolUse,
		Message: messages.Message{
			Role:    messages.RoleAssistant,
			Content: content,
		},
	}}
}
