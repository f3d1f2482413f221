package questionnaire

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const definitionSchemaURL = "schema://questionnaire.json"

var definitionSchema = map[string]any{
	"type":     "object",
	"required": []any{"title", "questions"},
	"properties": map[string]any{
		"title": map[string]any{"type": "string"},
		"questions": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []any{"name", "text", "average_group", "type", "value_min", "value_max"},
				"properties": map[string]any{
					"name":          map[string]any{"type": "string", "minLength": 1},
					"text":          map[string]any{"type": "string"},
					"average_group": map[string]any{"type": "string", "minLength": 1},
					"type":          map[string]any{"enum": []any{TypeRange}},
					"value_min":     map[string]any{"type": "integer"},
					"value_max":     map[string]any{"type": "integer"},
				},
			},
		},
	},
}

var compileDefinitionSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	defBytes, err := json.Marshal(definitionSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var def any
	if err := json.Unmarshal(defBytes, &def); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(definitionSchemaURL, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(definitionSchemaURL)
})

func validateDefinition(data []byte) error {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	schema, err := compileDefinitionSchema()
	if err != nil {
		return fmt.Errorf("compile questionnaire schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
