package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrCustomSchemaInvalid reports a site-defined schema that cannot be compiled.
var ErrCustomSchemaInvalid = errors.New("schema: custom schema invalid")

// Issue captures a single custom-schema validation failure.
type Issue struct {
	Location string
	Message  string
}

// CustomSchemaError surfaces custom-field violations with schema-aware
// context. It unwraps to ErrInvalidFieldType: a custom-schema failure is a
// present key whose value does not match its declared shape.
type CustomSchemaError struct {
	Issues []Issue
	Cause  error
}

func (e *CustomSchemaError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrInvalidFieldType.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return fmt.Sprintf("%s: %s", ErrInvalidFieldType.Error(), strings.Join(parts, "; "))
}

func (e *CustomSchemaError) Unwrap() error {
	return ErrInvalidFieldType
}

// CustomSchema is a compiled site-defined schema applied over the custom
// portion of a document's front matter.
type CustomSchema struct {
	compiled *jsonschema.Schema
}

// CompileCustomSchema normalizes and compiles a schema definition. A nil or
// empty definition yields a nil schema, which validates everything.
func CompileCustomSchema(definition map[string]any) (*CustomSchema, error) {
	normalized := normalizeDefinition(definition)
	if normalized == nil {
		return nil, nil
	}
	compiled, err := compileSchema(normalized)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCustomSchemaInvalid, err)
	}
	return &CustomSchema{compiled: compiled}, nil
}

// Validate checks the custom front matter fields against the compiled schema.
func (s *CustomSchema) Validate(fields map[string]any) error {
	if s == nil || s.compiled == nil {
		return nil
	}
	if fields == nil {
		fields = map[string]any{}
	}
	if err := s.compiled.Validate(fields); err != nil {
		return &CustomSchemaError{
			Issues: collectIssues(err),
			Cause:  err,
		}
	}
	return nil
}

// normalizeDefinition converts a schema definition into a JSON schema. Hosts
// can either supply JSON schema directly or the shorthand "fields" list form.
func normalizeDefinition(definition map[string]any) map[string]any {
	if len(definition) == 0 {
		return nil
	}
	if isJSONSchema(definition) {
		return definition
	}
	fields, ok := definition["fields"]
	if !ok {
		return nil
	}
	properties, required := normalizeFields(fields)
	if len(properties) == 0 {
		return nil
	}
	normalized := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		normalized["required"] = required
	}
	return normalized
}

func isJSONSchema(definition map[string]any) bool {
	for _, marker := range []string{"$schema", "type", "properties", "oneOf", "anyOf", "allOf"} {
		if _, ok := definition[marker]; ok {
			return true
		}
	}
	return false
}

func normalizeFields(fields any) (map[string]any, []string) {
	properties := make(map[string]any)
	required := make([]string, 0)

	entries, ok := fields.([]any)
	if !ok {
		return properties, required
	}

	for _, entry := range entries {
		field, ok := entry.(map[string]any)
		if !ok {
			if name, ok := entry.(string); ok {
				field = map[string]any{"name": name}
			} else {
				continue
			}
		}
		name, _ := field["name"].(string)
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if fieldType, ok := field["type"].(string); ok && normalizeJSONType(fieldType) != "" {
			properties[name] = map[string]any{"type": normalizeJSONType(fieldType)}
		} else {
			properties[name] = map[string]any{}
		}
		if flag, ok := field["required"].(bool); ok && flag {
			required = append(required, name)
		}
	}

	return properties, required
}

func normalizeJSONType(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "string", "number", "integer", "boolean", "object", "array", "null":
		return strings.ToLower(strings.TrimSpace(value))
	default:
		return ""
	}
}

func compileSchema(schema map[string]any) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("schema.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile("schema.json")
}

func collectIssues(err error) []Issue {
	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) || validationErr == nil {
		return []Issue{{Message: err.Error()}}
	}

	issues := []Issue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(validationErr)
	return issues
}
