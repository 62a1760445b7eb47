package llm

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// validateResponse strips code fences from raw and validates the result
// against the given Schema. It returns the cleaned content. A nil schema
// skips validation but still strips fences. Failures are reported as
// *ErrInvalidResponse.
func validateResponse(schema *Schema, raw json.RawMessage) (json.RawMessage, error) {
	cleaned := StripFences(raw)
	if schema == nil {
		return cleaned, nil
	}

	var parsed any
	if err := json.Unmarshal(cleaned, &parsed); err != nil {
		return cleaned, &ErrInvalidResponse{
			Content: cleaned,
			Err:     fmt.Errorf("invalid JSON: %w", err),
		}
	}

	compiled, err := getCompiledSchema(schema)
	if err != nil {
		return cleaned, &ErrInvalidResponse{
			Content: cleaned,
			Err:     fmt.Errorf("compile schema %q: %w", schema.Name, err),
		}
	}

	if err := compiled.Validate(parsed); err != nil {
		return cleaned, &ErrInvalidResponse{
			Content: cleaned,
			Err:     fmt.Errorf("schema validation failed: %w", err),
		}
	}

	return cleaned, nil
}

// getCompiledSchema returns a cached compiled schema or compiles and caches it.
func getCompiledSchema(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The jsonschema library expects a parsed JSON value, not raw bytes.
	// Round-trip the definition through encoding/json to get a clean
	// any representation.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}
