package strategy

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/edusprint/quizengine/internal/question"
)

// contentSchemas declares the JSON Schema for each type-specific content
// payload. Types absent from the map accept any (or no) content.
var contentSchemas = map[question.TypeTag]string{
	question.TypeTrueFalse: `{
		"type": "object",
		"required": ["statement"],
		"properties": {
			"statement": {
				"type": "object",
				"required": ["en", "hu"],
				"properties": {
					"en": {"type": "string", "minLength": 1},
					"hu": {"type": "string", "minLength": 1}
				}
			}
		}
	}`,
	question.TypeRelationAnalysis: `{
		"type": "object",
		"required": ["statement", "reason"],
		"properties": {
			"statement": {
				"type": "object",
				"required": ["en", "hu"],
				"properties": {
					"en": {"type": "string", "minLength": 1},
					"hu": {"type": "string", "minLength": 1}
				}
			},
			"reason": {
				"type": "object",
				"required": ["en", "hu"],
				"properties": {
					"en": {"type": "string", "minLength": 1},
					"hu": {"type": "string", "minLength": 1}
				}
			}
		}
	}`,
}

// schemaCache caches compiled content schemas by type tag.
var schemaCache sync.Map // map[question.TypeTag]*jsonschema.Schema

// validateContent checks a question's content payload against the
// per-type schema. Returns nil when the type declares no schema.
func validateContent(tag question.TypeTag, content json.RawMessage) *Issue {
	raw, ok := contentSchemas[tag]
	if !ok {
		return nil
	}

	if len(content) == 0 {
		return &Issue{Field: "content", Message: "is required"}
	}

	var parsed any
	if err := json.Unmarshal(content, &parsed); err != nil {
		return &Issue{Field: "content", Message: fmt.Sprintf("invalid JSON: %v", err)}
	}

	compiled, err := compiledContentSchema(tag, raw)
	if err != nil {
		return &Issue{Field: "content", Message: fmt.Sprintf("schema compile failed: %v", err)}
	}

	if err := compiled.Validate(parsed); err != nil {
		return &Issue{Field: "content", Message: err.Error()}
	}
	return nil
}

// compiledContentSchema returns a cached compiled schema or compiles and
// caches it. The jsonschema library expects a parsed JSON value, not raw
// bytes.
func compiledContentSchema(tag question.TypeTag, raw string) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(tag); ok {
		return cached.(*jsonschema.Schema), nil
	}

	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://content/%s.json", tag)
	if err := c.AddResource(schemaURL, parsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(tag, compiled)
	return compiled, nil
}
