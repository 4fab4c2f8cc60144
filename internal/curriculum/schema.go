package curriculum

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// skillsSchema describes the shape of skills.json: an ordered list of
// categories, each with an ordered list of named skills.
var skillsSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"category": map[string]any{"type": "string", "minLength": 1},
			"skills": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name": map[string]any{"type": "string", "minLength": 1},
					},
					"required": []any{"name"},
				},
			},
		},
		"required": []any{"category", "skills"},
	},
}

// materialSchema describes a learning-material document. Exercises must
// carry a stable id and code; the ground-truth explanation and concept
// list are optional.
var materialSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"topic": map[string]any{"type": "string", "minLength": 1},
		"theory": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"overview": map[string]any{"type": "string"},
			},
			"required": []any{"overview"},
		},
		"practice_examples": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"examples": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"id":                 map[string]any{"type": "string", "minLength": 1},
							"code":               map[string]any{"type": "string"},
							"description":        map[string]any{"type": "string"},
							"hidden_explanation": map[string]any{"type": "string"},
							"expected_concepts": map[string]any{
								"type":  "array",
								"items": map[string]any{"type": "string"},
							},
						},
						"required": []any{"id", "code"},
					},
				},
			},
			"required": []any{"examples"},
		},
	},
	"required": []any{"topic", "theory", "practice_examples"},
}

// schemaCache caches compiled document schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// validateDocument checks raw JSON against one of the embedded document
// schemas before it is decoded into typed structs.
func validateDocument(name string, definition map[string]any, raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := compiledSchema(name, definition)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", name, err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// compiledSchema returns a cached compiled schema or compiles and caches it.
func compiledSchema(name string, definition map[string]any) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The jsonschema library expects a parsed JSON value, not raw bytes.
	defBytes, err := json.Marshal(definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(name, compiled)
	return compiled, nil
}
