package ports

import (
	"context"

	"github.com/cagataycali/strands-go/pkg/strands/tooling"
)

// ToolProvider exposes a set of callable tools discovered from an external
// source, such as an MCP server. Providers are consulted once at agent
// construction; the discovered tools join the agent's registry.
type ToolProvider interface {
	// Name returns the provider identifier for logging and routing.
	Name() string

	// ListTools returns the provider's tools with their JSON schemas.
	ListTools(ctx context.Context) ([]tooling.Tool, error)

	// Close releases the provider's resources.
	Close() error
}
