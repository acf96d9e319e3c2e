// Package main demonstrates MCP integration: an in-process MCP server's
// tools are registered on the agent alongside locally declared tools.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/cagataycali/strands-go/pkg/strands"
	"github.com/cagataycali/strands-go/pkg/strands/messages"
	"github.com/cagataycali/strands-go/pkg/strands/options"
	"github.com/cagataycali/strands-go/pkg/strands/ports"
)

type demoModel struct {
	asked bool
}

func (m *demoModel) Generate(_ context.Context, request ports.ModelRequest) (ports.ModelResponse, error) {
	if !m.asked {
		m.asked = true
		use := messages.ToolUseBlock{
			ToolUseID: "tooluse_greet",
			Name:      "greet",
			Input:     map[string]any{"name": "strands"},
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
	reply := last.Content[0].ToolResult.Content[0].Text

	return ports.ModelResponse{
		StopReason: messages.StopEndTurn,
		Message: messages.Message{
			Role:    messages.RoleAssistant,
			Content: []messages.ContentBlock{{Text: &reply}},
		},
	}, nil
}

func newGreeterServer() *mcpserver.MCPServer {
	server := mcpserver.NewMCPServer("greeter", "0.1.0")
	server.AddTool(
		mcp.NewTool("greet",
			mcp.WithDescription("Greets someone by name."),
			mcp.WithString("name", mcp.Required()),
		),
		func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			name := request.GetString("name", "world")

			return mcp.NewToolResultText("Hello, " + name + "!"), nil
		},
	)

	return server
}

func main() {
	ctx := context.Background()

	agent, err := strands.New(ctx, strands.AgentOptions{
		Model: &demoModel{},
		MCPServers: map[string]options.MCPServerConfig{
			"greeter": &options.SDKServerConfig{
				Name:     "greeter",
				Instance: newGreeterServer(),
			},
		},
	})
	if err != nil {
		log.Fatalf("create agent: %v", err)
	}

	fmt.Printf("registered tools: %v\n", agent.ToolNames())

	result, err := agent.Invoke(ctx, "Say hi to strands.")
	if err != nil {
		log.Fatalf("invoke: %v", err)
	}
	fmt.Print(result.String())
}
