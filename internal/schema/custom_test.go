package schema

import (
	"errors"
	"testing"
)

func TestCompileCustomSchemaNil(t *testing.T) {
	custom, err := CompileCustomSchema(nil)
	if err != nil {
		t.Fatalf("CompileCustomSchema: %v", err)
	}
	if custom != nil {
		t.Fatalf("expected nil schema for empty definition")
	}
	// A nil schema validates everything.
	if err := custom.Validate(map[string]any{"anything": 1}); err != nil {
		t.Fatalf("nil schema Validate: %v", err)
	}
}

func TestCompileCustomSchemaFieldsShorthand(t *testing.T) {
	custom, err := CompileCustomSchema(map[string]any{
		"fields": []any{
			map[string]any{"name": "teaser", "type": "string"},
			map[string]any{"name": "reading_time", "type": "integer", "required": true},
		},
	})
	if err != nil {
		t.Fatalf("CompileCustomSchema: %v", err)
	}
	if custom == nil {
		t.Fatalf("expected compiled schema")
	}

	if err := custom.Validate(map[string]any{
		"teaser":       "short intro",
		"reading_time": 4,
	}); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	err = custom.Validate(map[string]any{"teaser": 12, "reading_time": 4})
	if !errors.Is(err, ErrInvalidFieldType) {
		t.Fatalf("expected ErrInvalidFieldType for mistyped custom field, got %v", err)
	}

	var custErr *CustomSchemaError
	if !errors.As(err, &custErr) || len(custErr.Issues) == 0 {
		t.Fatalf("expected issues on custom schema error, got %#v", err)
	}
}

func TestCompileCustomSchemaJSONSchemaPassthrough(t *testing.T) {
	custom, err := CompileCustomSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"series": map[string]any{"type": "string"},
		},
	})
	if err != nil {
		t.Fatalf("CompileCustomSchema: %v", err)
	}

	if err := custom.Validate(map[string]any{"series": "distributed systems"}); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if err := custom.Validate(map[string]any{"series": true}); !errors.Is(err, ErrInvalidFieldType) {
		t.Fatalf("expected ErrInvalidFieldType, got %v", err)
	}
}

func TestValidatorWithCustomSchema(t *testing.T) {
	custom, err := CompileCustomSchema(map[string]any{
		"fields": []any{
			map[string]any{"name": "teaser", "type": "string"},
		},
	})
	if err != nil {
		t.Fatalf("CompileCustomSchema: %v", err)
	}

	validator := NewValidator(WithCustomSchema(custom))

	// Recognized keys are not subject to the custom schema.
	if _, err := validator.Validate(postDocument(map[string]any{
		"layout": "post",
		"title":  "Hello",
		"teaser": "an intro",
	})); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	_, err = validator.Validate(postDocument(map[string]any{
		"layout": "post",
		"title":  "Hello",
		"teaser": 42,
	}))
	if !errors.Is(err, ErrInvalidFieldType) {
		t.Fatalf("expected custom field type error, got %v", err)
	}
}
