// Package main demonstrates a return-direct tool: its result ends the
// turn immediately, without a second model consultation.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/cagataycali/strands-go/pkg/strands"
	"github.com/cagataycali/strands-go/pkg/strands/messages"
	"github.com/cagataycali/strands-go/pkg/strands/ports"
)

type routerModel struct{}

func (routerModel) Generate(_ context.Context, _ ports.ModelRequest) (ports.ModelResponse, error) {
	use := messages.ToolUseBlock{
		ToolUseID: "tooluse_lookup",
		Name:      "lookup_order",
		Input:     map[string]any{"order_id": "A-1001"},
	}

	return ports.ModelResponse{
		StopReason: messages.StopToolUse,
		Message: messages.Message{
			Role:    messages.RoleAssistant,
			Content: []messages.ContentBlock{{ToolUse: &use}},
		},
	}, nil
}

func main() {
	lookup := strands.NewTool(strands.ToolSpec{
		Name:         "lookup_order",
		Description:  "Returns the raw order record.",
		ReturnDirect: true,
	}, func(_ context.Context, input map[string]any) (any, error) {
		return fmt.Sprintf("order %v: shipped", input["order_id"]), nil
	})

	ctx := context.Background()
	agent, err := strands.New(ctx, strands.AgentOptions{
		Model: routerModel{},
		Tools: []strands.Tool{lookup},
	})
	if err != nil {
		log.Fatalf("create agent: %v", err)
	}

	result, err := agent.Invoke(ctx, "Where is order A-1001?")
	if err != nil {
		log.Fatalf("invoke: %v", err)
	}

	// The loop stops with tool_use; the tool result is the final message.
	fmt.Printf("stop reason: %s\n", result.StopReason)
	fmt.Printf("final message: %s\n", result.Message.Content[0].ToolResult.Content[0].Text)
}
