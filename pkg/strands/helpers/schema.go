// Package helpers provides conveniences for declaring tools, such as
// deriving JSON-schema input contracts from Go structs.
package helpers

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// SchemaFor derives the JSON-schema input contract for a tool from a Go
// struct type. Field names follow json tags; jsonschema struct tags refine
// descriptions and constraints.
func SchemaFor[T any]() (map[string]any, error) {
	reflector := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}

	var zero T
	schema := reflector.Reflect(&zero)

	data, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	// The reflector emits metadata keys the validator has no use for.
	delete(out, "$schema")
	delete(out, "$id")

	return out, nil
}

// MustSchemaFor is SchemaFor for static tool declarations; it panics when
// reflection fails.
func MustSchemaFor[T any]() map[string]any {
	schema, err := SchemaFor[T]()
	if err != nil {
		panic(err)
	}

	return schema
}
