// Package mcptools bridges MCP servers into the tool registry. Each
// provider wraps one connected client session and exposes the server's
// tools as ordinary registry tools whose handlers forward the call over
// the session.
package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/cagataycali/strands-go/pkg/strands/messages"
	"github.com/cagataycali/strands-go/pkg/strands/ports"
	"github.com/cagataycali/strands-go/pkg/strands/tooling"
	"github.com/cagataycali/strands-go/pkg/stranderrs"
)

// Provider exposes the tools of one MCP server as registry tools.
type Provider struct {
	name    string
	session *mcpsdk.ClientSession
}

// Verify interface compliance at compile time.
var _ ports.ToolProvider = (*Provider)(nil)

// New wraps an already-connected session.
func New(name string, session *mcpsdk.ClientSession) *Provider {
	return &Provider{name: name, session: session}
}

// Connect dials an MCP server over the given transport and wraps the
// resulting session.
func Connect(ctx context.Context, name string, transport mcpsdk.Transport) (*Provider, error) {
	client := mcpsdk.NewClient(
		&mcpsdk.Implementation{
			Name:    "strands-go",
			Version: "0.1.0",
		},
		nil,
	)

	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return nil, fmt.Errorf("connect to MCP server %q: %w", name, err)
	}

	return New(name, session), nil
}

// NewStdioProvider launches an MCP server subprocess and connects over
// its stdin/stdout.
func NewStdioProvider(ctx context.Context, name, command string, args []string, env map[string]string) (*Provider, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	for key, value := range env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", key, value))
	}

	return Connect(ctx, name, &mcpsdk.CommandTransport{Command: cmd})
}

// NewStreamableProvider connects to an MCP server over the streamable
// HTTP transport. SSE endpoints use the same transport.
func NewStreamableProvider(ctx context.Context, name, endpoint string) (*Provider, error) {
	return Connect(ctx, name, &mcpsdk.StreamableClientTransport{Endpoint: endpoint})
}

// Name returns the server identifier.
func (p *Provider) Name() string {
	return p.name
}

// ListTools queries the server's tool list and converts each entry into
// a registry tool that forwards invocations over the session.
func (p *Provider) ListTools(ctx context.Context) ([]tooling.Tool, error) {
	listed, err := p.session.ListTools(ctx, &mcpsdk.ListToolsParams{})
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

// Close terminates the session.
func (p *Provider) Close() error {
	if p.session == nil {
		return nil
	}

	return p.session.Close()
}

// callHandler builds the registry handler for one remote tool. Protocol
// errors surface as handler errors; a result the server flags as an
// error becomes an error-status tool result.
func (p *Provider) callHandler(toolName string) tooling.Handler {
	return func(ctx context.Context, input map[string]any) (any, error) {
		result, err := p.session.CallTool(ctx, &mcpsdk.CallToolParams{
			Name:      toolName,
			Arguments: input,
		})
		if err != nil {
			return nil, stranderrs.NewToolError(
				stranderrs.ErrCodeToolExecFailed, "call MCP tool", err, toolName,
			)
		}

		block := messages.ToolResultBlock{
			Status:  messages.ToolResultSuccess,
			Content: convertContent(result.Content),
		}
		if result.IsError {
			block.Status = messages.ToolResultError
		}

		return block, nil
	}
}

// schemaToMap converts the SDK's schema type into the plain map shape the
// registry validates against.
func schemaToMap(schema any) (map[string]any, error) {
	if schema == nil {
		return nil, nil
	}

	data, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// convertContent maps MCP content blocks to tool result content. Text
// passes through; anything else is carried as its JSON shape.
func convertContent(content []mcpsdk.Content) []messages.ToolResultContent {
	out := make([]messages.ToolResultContent, 0, len(content))
	for _, block := range content {
		if text, ok := block.(*mcpsdk.TextContent); ok {
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
