package schema

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	slug "github.com/goliatone/go-slug"

	"sitelint/internal/identity"
	"sitelint/internal/logging"
	"sitelint/pkg/interfaces"
)

// Recognized front matter keys. Anything outside this set belongs to the
// optional site-defined custom schema.
const (
	keyLayout     = "layout"
	keyTitle      = "title"
	keyAuthor     = "author"
	keyCategories = "categories"
	keyImage      = "image"
	keyFeatured   = "featured"
	keyHidden     = "hidden"
	keyComments   = "comments"
	keyPermalink  = "permalink"
)

// Option configures a Validator.
type Option func(*Validator)

// WithLogger injects the logger used for validation diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithCustomSchema applies a site-defined schema over the custom (unrecognized)
// portion of the front matter.
func WithCustomSchema(custom *CustomSchema) Option {
	return func(v *Validator) {
		v.custom = custom
	}
}

// Validator checks a parsed document against the declared field schema for
// its kind and produces the typed record the index accepts. It has no side
// effects and is safe for concurrent use.
type Validator struct {
	logger interfaces.Logger
	custom *CustomSchema
}

// NewValidator constructs a Validator.
func NewValidator(opts ...Option) *Validator {
	v := &Validator{
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

var _ interfaces.Validator = (*Validator)(nil)

// Validate coerces and checks the document's metadata. On success it returns
// an immutable Record; on failure, a MissingFieldError or
// InvalidFieldTypeError naming the offending key.
func (v *Validator) Validate(doc *interfaces.Document) (*interfaces.Record, error) {
	if doc == nil {
		return nil, ErrDocumentRequired
	}
	switch doc.Kind {
	case interfaces.KindPost, interfaces.KindPage:
	default:
		return nil, ErrKindUnknown
	}

	rec := &interfaces.Record{
		ID:   doc.ID,
		UID:  identity.DocumentUUID(doc.ID),
		Kind: doc.Kind,
		Date: doc.Date,
	}

	var err error
	if rec.Layout, _, err = stringField(doc.Meta, keyLayout); err != nil {
		return nil, err
	}
	if rec.Title, _, err = stringField(doc.Meta, keyTitle); err != nil {
		return nil, err
	}
	if rec.Author, _, err = stringField(doc.Meta, keyAuthor); err != nil {
		return nil, err
	}
	if rec.Image, _, err = stringField(doc.Meta, keyImage); err != nil {
		return nil, err
	}
	if rec.Permalink, _, err = stringField(doc.Meta, keyPermalink); err != nil {
		return nil, err
	}
	if rec.Featured, err = boolField(doc.Meta, keyFeatured); err != nil {
		return nil, err
	}
	if rec.Hidden, err = boolField(doc.Meta, keyHidden); err != nil {
		return nil, err
	}
	if rec.Comments, err = boolPointerField(doc.Meta, keyComments); err != nil {
		return nil, err
	}
	if rec.Categories, err = sequenceField(doc.Meta, keyCategories); err != nil {
		return nil, err
	}
	rec.CategoryKeys = normalizeKeys(rec.Categories)

	if err := v.validateRequired(rec); err != nil {
		return nil, err
	}

	if v.custom != nil {
		if err := v.custom.Validate(customFields(doc.Meta)); err != nil {
			return nil, err
		}
	}

	logging.WithDocumentContext(v.logger, rec.ID, doc.Path, string(rec.Kind)).
		Debug("schema.validate.ok")

	return rec, nil
}

// validateRequired applies the per-kind presence rules. Both kinds require a
// non-empty layout and title; everything else is optional.
func (v *Validator) validateRequired(rec *interfaces.Record) error {
	err := validation.ValidateStruct(rec,
		validation.Field(&rec.Layout, validation.Required),
		validation.Field(&rec.Title, validation.Required),
	)
	if err == nil {
		return nil
	}

	if fields, ok := err.(validation.Errors); ok {
		for _, key := range []string{"Layout", "Title"} {
			if fields[key] != nil {
				return &MissingFieldError{Key: strings.ToLower(key)}
			}
		}
	}
	return err
}

// NormalizeKey produces the lookup key used by the index for category and
// author groupings.
func NormalizeKey(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	normalized, err := slug.Normalize(trimmed)
	if err != nil || normalized == "" {
		return strings.ToLower(trimmed)
	}
	return normalized
}

func normalizeKeys(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	keys := make([]string, len(values))
	for i, value := range values {
		keys[i] = NormalizeKey(value)
	}
	return keys
}

func stringField(meta map[string]any, key string) (string, bool, error) {
	raw, ok := meta[key]
	if !ok || raw == nil {
		return "", false, nil
	}
	value, ok := raw.(string)
	if !ok {
		return "", true, &InvalidFieldTypeError{Key: key, Expected: "string"}
	}
	return strings.TrimSpace(value), true, nil
}

// boolField requires a literal true/false. A quoted "true" decodes as a
// string and is rejected rather than coerced.
func boolField(meta map[string]any, key string) (bool, error) {
	raw, ok := meta[key]
	if !ok || raw == nil {
		return false, nil
	}
	value, ok := raw.(bool)
	if !ok {
		return false, &InvalidFieldTypeError{Key: key, Expected: "boolean"}
	}
	return value, nil
}

func boolPointerField(meta map[string]any, key string) (*bool, error) {
	raw, ok := meta[key]
	if !ok || raw == nil {
		return nil, nil
	}
	value, ok := raw.(bool)
	if !ok {
		return nil, &InvalidFieldTypeError{Key: key, Expected: "boolean"}
	}
	return &value, nil
}

// sequenceField accepts the inline bracketed notation, which decodes as a
// sequence of scalars. An empty sequence is legal and means "no values",
// never a type error. Blank entries are dropped.
func sequenceField(meta map[string]any, key string) ([]string, error) {
	raw, ok := meta[key]
	if !ok || raw == nil {
		return nil, nil
	}

	var items []any
	switch typed := raw.(type) {
	case []any:
		items = typed
	case []string:
		items = make([]any, len(typed))
		for i, value := range typed {
			items[i] = value
		}
	default:
		return nil, &InvalidFieldTypeError{Key: key, Expected: "sequence of strings"}
	}

	values := make([]string, 0, len(items))
	for _, item := range items {
		value, ok := item.(string)
		if !ok {
			return nil, &InvalidFieldTypeError{Key: key, Expected: "sequence of strings"}
		}
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	if len(values) == 0 {
		return nil, nil
	}
	return values, nil
}

// customFields strips the recognized keys, leaving only the site-specific
// portion of the metadata for the custom schema.
func customFields(meta map[string]any) map[string]any {
	known := map[string]struct{}{
		keyLayout: {}, keyTitle: {}, keyAuthor: {}, keyCategories: {},
		keyImage: {}, keyFeatured: {}, keyHidden: {}, keyComments: {},
		keyPermalink: {},
	}
	custom := map[string]any{}
	for key, value := range meta {
		if _, ok := known[key]; ok {
			continue
		}
		custom[key] = value
	}
	return custom
}
