package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func verdictSchema() *Schema {
	return &Schema{
		Name:        "test-verdict",
		Description: "answer verdict",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"is_correct": map[string]any{"type": "boolean"},
				"feedback":   map[string]any{"type": "string"},
			},
			"required":             []any{"is_correct", "feedback"},
			"additionalProperties": false,
		},
	}
}

func TestValidateResponse_Valid(t *testing.T) {
	raw := json.RawMessage(`{"is_correct": true, "feedback": "well reasoned"}`)
	if err := validateResponse(verdictSchema(), raw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateResponse_MissingRequiredField(t *testing.T) {
	raw := json.RawMessage(`{"is_correct": true}`)
	err := validateResponse(verdictSchema(), raw)
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got %T", err)
	}
}

func TestValidateResponse_MalformedJSON(t *testing.T) {
	raw := json.RawMessage(`{"is_correct":`)
	err := validateResponse(verdictSchema(), raw)
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got %T", err)
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not even json`)); err != nil {
		t.Fatalf("nil schema must not validate: %v", err)
	}
}
