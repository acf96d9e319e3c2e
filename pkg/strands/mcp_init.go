package strands

import (
	"context"
	"fmt"

	"github.com/cagataycali/strands-go/pkg/strands/adapters/mcptools"
	"github.com/cagataycali/strands-go/pkg/strands/options"
	"github.com/cagataycali/strands-go/pkg/strands/ports"
)

// initializeMCPProviders connects every configured MCP server and returns
// the resulting tool providers. On failure the already-connected servers
// are closed.
func initializeMCPProviders(
	ctx context.Context,
	configs map[string]options.MCPServerConfig,
) ([]ports.ToolProvider, error) {
	if len(configs) == 0 {
		return nil, nil
	}

	providers := make([]ports.ToolProvider, 0, len(configs))
	for name, cfg := range configs {
		provider, err := initializeMCPProvider(ctx, name, cfg)
		if err != nil {
			for _, connected := range providers {
				_ = connected.Close()
			}

			return nil, fmt.Errorf("failed to initialize MCP server %q: %w", name, err)
		}
		providers = append(providers, provider)
	}

	return providers, nil
}

// initializeMCPProvider connects one MCP server.
func initializeMCPProvider(
	ctx context.Context,
	name string,
	cfg options.MCPServerConfig,
) (ports.ToolProvider, error) {
	switch config := cfg.(type) {
	case *options.StdioServerConfig:
		return mcptools.NewStdioProvider(ctx, name, config.Command, config.Args, config.Env)

	case *options.HTTPServerConfig:
		return mcptools.NewStreamableProvider(ctx, name, config.URL)

	case *options.SSEServerConfig:
		// SSE endpoints speak the same streamable transport as HTTP.
		return mcptools.NewStreamableProvider(ctx, name, config.URL)

	case *options.SDKServerConfig:
		return mcptools.NewInProcessProvider(ctx, name, config.Instance)

	default:
		return nil, fmt.Errorf("unknown MCP server config type: %T", cfg)
	}
}
