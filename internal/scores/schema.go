package scores

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const documentSchemaURL = "schema://score-document.json"

// documentSchema describes {"group": [["YYYYMMDD", score], ...], ...}.
var documentSchema = map[string]any{
	"type": "object",
	"additionalProperties": map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "array",
			"prefixItems": []any{
				map[string]any{"type": "string", "pattern": "^[0-9]{8}$"},
				map[string]any{"type": "integer"},
			},
			"minItems": 2,
			"maxItems": 2,
		},
	},
}

var compileDocumentSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	// The compiler wants decoded JSON values, not Go literals.
	defBytes, err := json.Marshal(documentSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var def any
	if err := json.Unmarshal(defBytes, &def); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(documentSchemaURL, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(documentSchemaURL)
})

func validateDocument(data []byte) error {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	schema, err := compileDocumentSchema()
	if err != nil {
		return fmt.Errorf("compile document schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
