package mcptools

import (
	"context"
	"encoding/json"

	mcpclient "github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/cagataycali/strands-go/pkg/strands/messages"
	"github.com/cagataycali/strands-go/pkg/strands/ports"
	"github.com/cagataycali/strands-go/pkg/strands/tooling"
	"github.com/cagataycali/strands-go/pkg/stranderrs"
)

// InProcessProvider exposes the tools of an in-process MCP server. The
// server runs in the same process and is reached through direct method
// invocation rather than a wire transport.
type InProcessProvider struct {
	name   string
	client *mcpclient.Client
}

// Verify interface compliance at compile time.
var _ ports.ToolProvider = (*InProcessProvider)(nil)

// NewInProcessProvider connects to the given server instance.
func NewInProcessProvider(ctx context.Context, name string, server *mcpserver.MCPServer) (*InProcessProvider, error) {
	client, err := mcpclient.NewInProcessClient(server)
	if err != nil {
		return nil, stranderrs.NewToolError(
			stranderrs.ErrCodeToolExecFailed, "create in-process MCP client", err, name,
		)
	}
	if err := client.Start(ctx); err != nil {
		return nil, stranderrs.NewToolError(
			stranderrs.ErrCodeToolExecFailed, "start in-process MCP client", err, name,
		)
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: "strands-go", Version: "0.1.0"}
	if _, err := client.Initialize(ctx, initReq); err != nil {
		_ = client.Close()

		return nil, stranderrs.NewToolError(
			stranderrs.ErrCodeToolExecFailed, "initialize in-process MCP client", err, name,
		)
	}

	return &InProcessProvider{name: name, client: client}, nil
}

// Name returns the server identifier.
func (p *InProcessProvider) Name() string {
	return p.name
}

// ListTools queries the server's tool list and converts each entry into
// a registry tool.
func (p *InProcessProvider) ListTools(ctx context.Context) ([]tooling.Tool, error) {
	listed, err := p.client.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, stranderrs.NewToolError(
			stranderrs.ErrCodeToolExecFailed, "list MCP tools", err, p.name,
		)
	}

	tools := make([]tooling.Tool, 0, len(listed.Tools))
	for _, entry := range listed.Tools {
		schema, err := schemaToMap(entry.InputSchema)
		if err != nil {
			return nil, stranderrs.NewToolError(
				stranderrs.ErrCodeToolSchemaInvalid, "convert MCP tool schema", err, entry.Name,
			)
		}

		tools = append(tools, tooling.NewTool(tooling.Spec{
			Name:        entry.Name,
			Description: entry.Description,
			InputSchema: schema,
		}, p.callHandler(entry.Name)))
	}

	return tools, nil
}

// Close shuts the client down.
func (p *InProcessProvider) Close() error {
	if p.client == nil {
		return nil
	}

	return p.client.Close()
}

func (p *InProcessProvider) callHandler(toolName string) tooling.Handler {
	return func(ctx context.Context, input map[string]any) (any, error) {
		req := mcp.CallToolRequest{}
		req.Params.Name = toolName
		req.Params.Arguments = input

		result, err := p.client.CallTool(ctx, req)
		if err != nil {
			return nil, stranderrs.NewToolError(
				stranderrs.ErrCodeToolExecFailed, "call MCP tool", err, toolName,
			)
		}

		block := messages.ToolResultBlock{
			Status:  messages.ToolResultSuccess,
			Content: convertInProcessContent(result.Content),
		}
		if result.IsError {
			block.Status = messages.ToolResultError
		}

		return block, nil
	}
}

func convertInProcessContent(content []mcp.Content) []messages.ToolResultContent {
	out := make([]messages.ToolResultContent, 0, len(content))
	for _, block := range content {
		if text, ok := mcp.AsTextContent(block); ok {
			out = append(out, messages.ToolResultContent{Text: text.Text})

			continue
		}

		data, err := json.Marshal(block)
		if err != nil {
			continue
		}
		var shape any
		if err := json.Unmarshal(data, &shape); err != nil {
			continue
		}
		out = append(out, messages.ToolResultContent{JSON: shape})
	}

	return out
}
