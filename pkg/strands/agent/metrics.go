package agent

import (
	"time"

	"github.com/cagataycali/strands-go/pkg/strands/messages"
	"github.com/cagataycali/strands-go/pkg/strands/tooling"
)

// ToolMetrics accumulates per-tool execution statistics over one turn.
type ToolMetrics struct {
	// Spec is the declared spec of the measured tool.
	Spec tooling.Spec `json:"spec"`

	// LastUse is the most recent invocation request for this tool.
	LastUse messages.ToolUseBlock `json:"lastUse"`

	// CallCount counts invocations, successful or not.
	CallCount int `json:"callCount"`

	// SuccessCount counts invocations that produced a success result.
	SuccessCount int `json:"successCount"`

	// ErrorCount counts invocations that produced an error result.
	ErrorCount int `json:"errorCount"`

	// TotalDuration is the summed wall time spent in the tool body.
	TotalDuration time.Duration `json:"totalDuration"`
}

// EventLoopMetrics accumulates statistics over one agent invocation.
type EventLoopMetrics struct {
	// Cycles counts model round trips.
	Cycles int `json:"cycles"`

	// TotalDuration is the wall time of the whole invocation.
	TotalDuration time.Duration `json:"totalDuration"`

	// ToolMetrics holds per-tool statistics keyed by tool name.
	ToolMetrics map[string]*ToolMetrics `json:"toolMetrics"`
}

// NewEventLoopMetrics creates zeroed metrics.
func NewEventLoopMetrics() *EventLoopMetrics {
	return &EventLoopMetrics{ToolMetrics: make(map[string]*ToolMetrics)}
}

func (m *EventLoopMetrics) recordToolCall(spec tooling.Spec, use messages.ToolUseBlock, success bool, duration time.Duration) {
	entry, ok := m.ToolMetrics[use.Name]
	if !ok {
		entry = &ToolMetrics{Spec: spec}
		m.ToolMetrics[use.Name] = entry
	}

	entry.LastUse = use
	entry.CallCount++
	if success {
		entry.SuccessCount++
	} else {
		entry.ErrorCount++
	}
	entry.TotalDuration += duration
}
