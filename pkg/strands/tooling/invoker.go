package tooling

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cagataycali/strands-go/pkg/strands/messages"
)

// Invoker executes tool-use requests against a registry and normalizes
// every outcome into a structured tool result. Lookup failures, schema
// violations, handler errors, and handler panics all surface as
// error-status results; they never terminate the event loop.
type Invoker struct {
	registry *Registry
	logger   *slog.Logger
}

// NewInvoker creates an invoker over the given registry. A nil logger
// disables logging.
func NewInvoker(registry *Registry, logger *slog.Logger) *Invoker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Invoker{registry: registry, logger: logger}
}

// Invoke resolves, validates, and executes one tool use. The tool context
// is injected into tools that declare it, whether the invocation is driven
// by the model loop or made directly by calling code.
func (inv *Invoker) Invoke(ctx context.Context, use messages.ToolUseBlock, tc *ToolContext) messages.ToolResultBlock {
	tool, ok := inv.registry.Get(use.Name)
	if !ok {
		inv.logger.Warn("unknown tool requested", "tool", use.Name, "tool_use_id", use.ToolUseID)

		return errorResult(use.ToolUseID, fmt.Sprintf("Unknown tool: %s", use.Name))
	}

	if err := inv.registry.ValidateInput(use.Name, use.Input); err != nil {
		inv.logger.Warn("tool input rejected", "tool", use.Name, "error", err)

		return errorResult(use.ToolUseID, err.Error())
	}

	if tc != nil {
		tc.ToolUseID = use.ToolUseID
	}

	value, err := inv.execute(ctx, tool, use.Input, tc)
	if err != nil {
		inv.logger.Warn("tool execution failed", "tool", use.Name, "error", err)

		return errorResult(use.ToolUseID, err.Error())
	}

	return normalizeResult(use.ToolUseID, value)
}

// execute runs the tool body, converting panics into errors so that a
// misbehaving tool cannot take down the orchestrator.
func (inv *Invoker) execute(ctx context.Context, tool Tool, input map[string]any, tc *ToolContext) (value any, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("tool panicked: %v", recovered)
		}
	}()

	return tool.call(ctx, input, tc)
}

func errorResult(toolUseID, message string) messages.ToolResultBlock {
	return messages.ToolResultBlock{
		ToolUseID: toolUseID,
		Status:    messages.ToolResultError,
		Content:   []messages.ToolResultContent{{Text: message}},
	}
}

// normalizeResult wraps a raw handler return value into a success result.
// An already-structured ToolResultBlock passes through, with the tool use
// id filled in when the handler left it empty.
func normalizeResult(toolUseID string, value any) messages.ToolResultBlock {
	switch v := value.(type) {
	case messages.ToolResultBlock:
		return adoptResult(toolUseID, v)
	case *messages.ToolResultBlock:
		if v != nil {
			return adoptResult(toolUseID, *v)
		}
	case []messages.ToolResultContent:
		return messages.ToolResultBlock{
			ToolUseID: toolUseID,
			Status:    messages.ToolResultSuccess,
			Content:   v,
		}
	case nil:
		return messages.ToolResultBlock{
			ToolUseID: toolUseID,
			Status:    messages.ToolResultSuccess,
			Content:   []messages.ToolResultContent{{Text: ""}},
		}
	}

	return messages.ToolResultBlock{
		ToolUseID: toolUseID,
		Status:    messages.ToolResultSuccess,
		Content:   []messages.ToolResultContent{{Text: fmt.Sprint(value)}},
	}
}

func adoptResult(toolUseID string, result messages.ToolResultBlock) messages.ToolResultBlock {
	if result.ToolUseID == "" {
		result.ToolUseID = toolUseID
	}
	if result.Status == "" {
		result.Status = messages.ToolResultSuccess
	}

	return result
}
