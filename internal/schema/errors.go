package schema

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingField     = errors.New("schema: required field missing")
	ErrInvalidFieldType = errors.New("schema: field value has invalid type")
	ErrDocumentRequired = errors.New("schema: document is required")
	ErrKindUnknown      = errors.New("schema: unknown document kind")
)

// MissingFieldError captures an absent (or empty) required front matter key.
type MissingFieldError struct {
	Key string
}

func (e *MissingFieldError) Error() string {
	if e == nil || strings.TrimSpace(e.Key) == "" {
		return ErrMissingField.Error()
	}
	return fmt.Sprintf("%s: key=%s", ErrMissingField.Error(), e.Key)
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}

// InvalidFieldTypeError captures a present key whose value cannot be coerced
// to its declared type.
type InvalidFieldTypeError struct {
	Key      string
	Expected string
}

func (e *InvalidFieldTypeError) Error() string {
	if e == nil {
		return ErrInvalidFieldType.Error()
	}
	key := strings.TrimSpace(e.Key)
	expected := strings.TrimSpace(e.Expected)
	switch {
	case key != "" && expected != "":
		return fmt.Sprintf("%s: key=%s expected=%s", ErrInvalidFieldType.Error(), key, expected)
	case key != "":
		return fmt.Sprintf("%s: key=%s", ErrInvalidFieldType.Error(), key)
	default:
		return ErrInvalidFieldType.Error()
	}
}

func (e *InvalidFieldTypeError) Unwrap() error {
	return ErrInvalidFieldType
}
