package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-object",
		Description: "A test object",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":  map[string]any{"type": "string"},
				"grade": map[string]any{"type": "integer", "minimum": 1, "maximum": 12},
				"topic": map[string]any{"type": "string", "enum": []any{"language", "math"}},
			},
			"required": []any{"name", "grade"},
		},
	}
}

func TestValidateResponse_ValidJSON(t *testing.T) {
	raw := json.RawMessage(`{"name":"Alice","grade":5,"topic":"math"}`)
	cleaned, err := validateResponse(testSchema(), raw)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if string(cleaned) != string(raw) {
		t.Errorf("content changed: %q", cleaned)
	}
}

func TestValidateResponse_FencedJSON(t *testing.T) {
	raw := json.RawMessage("```json\n{\"name\":\"Bob\",\"grade\":8}\n```")
	cleaned, err := validateResponse(testSchema(), raw)
	if err != nil {
		t.Fatalf("expected fenced JSON to validate, got: %v", err)
	}
	if string(cleaned) != `{"name":"Bob","grade":8}` {
		t.Errorf("cleaned = %q, want fences stripped", cleaned)
	}
}

func TestValidateResponse_MissingRequired(t *testing.T) {
	raw := json.RawMessage(`{"name":"Charlie"}`)
	_, err := validateResponse(testSchema(), raw)
	if err == nil {
		t.Fatal("expected error for missing required field")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_WrongType(t *testing.T) {
	raw := json.RawMessage(`{"name":"Dave","grade":"five"}`)
	_, err := validateResponse(testSchema(), raw)
	if err == nil {
		t.Fatal("expected error for wrong type")
	}
}

func TestValidateResponse_InvalidEnum(t *testing.T) {
	raw := json.RawMessage(`{"name":"Eve","grade":9,"topic":"history"}`)
	_, err := validateResponse(testSchema(), raw)
	if err == nil {
		t.Fatal("expected error for invalid enum value")
	}
}

func TestValidateResponse_MalformedJSON(t *testing.T) {
	raw := json.RawMessage(`{not json}`)
	_, err := validateResponse(testSchema(), raw)
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_NilSchemaStillStrips(t *testing.T) {
	raw := json.RawMessage("```\n{\"anything\":\"goes\"}\n```")
	cleaned, err := validateResponse(nil, raw)
	if err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
	if string(cleaned) != `{"anything":"goes"}` {
		t.Errorf("cleaned = %q, want fences stripped", cleaned)
	}
}

func TestValidateResponse_ArraySchema(t *testing.T) {
	schema := &Schema{
		Name:        "test-array",
		Description: "Array test",
		Definition: map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"question": map[string]any{"type": "string"},
				},
			},
		},
	}

	valid := json.RawMessage(`[{"question":"What is 2+2?"},{"question":"Pick the noun."}]`)
	if _, err := validateResponse(schema, valid); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	invalid := json.RawMessage(`{"question":"not an array"}`)
	if _, err := validateResponse(schema, invalid); err == nil {
		t.Fatal("expected error for non-array payload")
	}
}
