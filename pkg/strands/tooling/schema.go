package tooling

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// compileSchema turns a JSON-schema-shaped map into a resolved schema
// ready for validation. A nil map yields a nil resolved schema, which
// accepts any input.
func compileSchema(raw map[string]any) (*jsonschema.Resolved, error) {
	if raw == nil {
		return nil, nil
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	var schema jsonschema.Schema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}

	resolved, err := schema.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("resolve schema: %w", err)
	}

	return resolved, nil
}

// normalizeInput round-trips tool input through JSON so that validation
// sees the same value shapes (float64 numbers, map[string]any objects) the
// wire decoder would produce.
func normalizeInput(input map[string]any) any {
	if input == nil {
		return map[string]any{}
	}

	data, err := json.Marshal(input)
	if err != nil {
		return input
	}
	var normalized any
	if err := json.Unmarshal(data, &normalized); err != nil {
		return input
	}

	return normalized
}
