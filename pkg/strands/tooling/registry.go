package tooling

import (
	"sync"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/cagataycali/strands-go/pkg/stranderrs"
)

// Registry holds an agent's tools, keyed by name and ordered by
// registration. Input schemas are compiled once at registration so that
// invocation-time validation is cheap.
type Registry struct {
	mu    sync.RWMutex
	order []string
	tools map[string]*registeredTool
}

type registeredTool struct {
	tool   Tool
	schema *jsonschema.Resolved
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]*registeredTool)}
}

// Register adds a tool, compiling its input schema. Duplicate names and
// uncompilable schemas are rejected.
func (r *Registry) Register(tool Tool) error {
	if tool.Spec.Name == "" {
		return stranderrs.NewToolError(
			stranderrs.ErrCodeToolSchemaInvalid,
			"tool name is required", nil, "",
		)
	}

	resolved, err := compileSchema(tool.Spec.InputSchema)
	if err != nil {
		return stranderrs.NewToolError(
			stranderrs.ErrCodeToolSchemaInvalid,
			"input schema does not compile", err, tool.Spec.Name,
		)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[tool.Spec.Name]; exists {
		return stranderrs.NewToolError(
			stranderrs.ErrCodeToolDuplicate,
			"tool already registered", nil, tool.Spec.Name,
		)
	}
	r.tools[tool.Spec.Name] = &registeredTool{tool: tool, schema: resolved}
	r.order = append(r.order, tool.Spec.Name)

	return nil
}

// RegisterAll registers a list of tools, stopping on the first failure.
func (r *Registry) RegisterAll(tools []Tool) error {
	for _, tool := range tools {
		if err := r.Register(tool); err != nil {
			return err
		}
	}

	return nil
}

// Get returns the tool registered under name.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.tools[name]
	if !ok {
		return Tool{}, false
	}

	return entry.tool, true
}

// Specs returns the registered tool specs in registration order. These are
// the specs handed to the model adapter on every turn.
func (r *Registry) Specs() []Spec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	specs := make([]Spec, 0, len(r.order))
	for _, name := range r.order {
		specs = append(specs, r.tools[name].tool.Spec)
	}

	return specs
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.order))
	copy(out, r.order)

	return out
}

// ValidateInput checks input against the named tool's compiled schema.
func (r *Registry) ValidateInput(name string, input map[string]any) error {
	r.mu.RLock()
	entry, ok := r.tools[name]
	r.mu.RUnlock()

	if !ok {
		return stranderrs.NewToolError(
			stranderrs.ErrCodeToolNotFound,
			"tool not registered", nil, name,
		)
	}
	if entry.schema == nil {
		return nil
	}
	if err := entry.schema.Validate(normalizeInput(input)); err != nil {
		return stranderrs.NewToolError(
			stranderrs.ErrCodeToolInputInvalid,
			"input does not match schema", err, name,
		)
	}

	return nil
}
