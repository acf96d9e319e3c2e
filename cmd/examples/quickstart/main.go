// Package main demonstrates basic usage of the Strands agent SDK: a tool
// declared with a JSON-schema input contract, driven by the event loop.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/cagataycali/strands-go/pkg/strands"
	"github.com/cagataycali/strands-go/pkg/strands/messages"
	"github.com/cagataycali/strands-go/pkg/strands/ports"
)

// demoModel is a stand-in model adapter: it requests the calculator once,
// then answers with the tool's output. A real application plugs in a
// provider adapter here.
type demoModel struct {
	asked bool
}

func (m *demoModel) Generate(_ context.Context, request ports.ModelRequest) (ports.ModelResponse, error) {
	if !m.asked {
		m.asked = true
		use := messages.ToolUseBlock{
			ToolUseID: "tooluse_1",
			Name:      "add",
			Input:     map[string]any{"a": float64(2), "b": float64(40)},
		}

		return ports.ModelResponse{
			StopReason: messages.StopToolUse,
			Message: messages.Message{
				Role:    messages.RoleAssistant,
				Content: []messages.ContentBlock{{ToolUse: &use}},
			},
		}, nil
	}

	last := request.Messages[len(request.Messages)-1]
	answer := "The answer is: " + last.Content[0].ToolResult.Content[0].Text

	return ports.ModelResponse{
		StopReason: messages.StopEndTurn,
		Message: messages.Message{
			Role:    messages.RoleAssistant,
			Content: []messages.ContentBlock{{Text: &answer}},
		},
	}, nil
}

func main() {
	add := strands.NewTool(strands.ToolSpec{
		Name:        "add",
		Description: "Adds two numbers.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"a": map[string]any{"type": "number"},
				"b": map[string]any{"type": "number"},
			},
			"required": []any{"a", "b"},
		},
	}, func(_ context.Context, input map[string]any) (any, error) {
		return input["a"].(float64) + input["b"].(float64), nil
	})

	ctx := context.Background()
	agent, err := strands.New(ctx, strands.AgentOptions{
		Name:         "calculator-agent",
		SystemPrompt: "You are a helpful assistant.",
		Model:        &demoModel{},
		Tools:        []strands.Tool{add},
	})
	if err != nil {
		log.Fatalf("create agent: %v", err)
	}

	result, err := agent.Invoke(ctx, "What is 2 + 40?")
	if err != nil {
		log.Fatalf("invoke: %v", err)
	}

	fmt.Printf("stop reason: %s\n", result.StopReason)
	fmt.Print(result.String())
	fmt.Printf("tool executions: %v\n", result.ToolExecutions())
}
