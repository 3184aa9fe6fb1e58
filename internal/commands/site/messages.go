package site

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CheckDirectoryCommand requests a full collection run over a content tree:
// discover markdown sources, parse front matter, validate against the schema,
// and populate the index, reporting every per-document failure.
type CheckDirectoryCommand struct {
	Directory string `json:"directory"`
}

// Type returns the message type identifier.
func (c CheckDirectoryCommand) Type() string {
	return "sitelint.collection.check_directory"
}

// Validate implements message validation.
func (c CheckDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Directory, validation.Required),
	)
}

// ListQuery selects which view of the index a list command renders.
type ListQuery string

const (
	// QueryChronological lists dated documents oldest first, undated after.
	QueryChronological ListQuery = "chronological"
	// QueryCategory lists documents grouped under a category key.
	QueryCategory ListQuery = "category"
	// QueryAuthor lists documents grouped under an author key.
	QueryAuthor ListQuery = "author"
)

// ListDocumentsCommand renders one view of an already-populated index.
type ListDocumentsCommand struct {
	Query ListQuery `json:"query"`
	// Key is the category or author lookup key. Ignored for the
	// chronological query.
	Key string `json:"key,omitempty"`
}

// Type returns the message type identifier.
func (c ListDocumentsCommand) Type() string {
	return "sitelint.collection.list_documents"
}

// Validate implements message validation.
func (c ListDocumentsCommand) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Query, validation.Required, validation.In(
			QueryChronological,
			QueryCategory,
			QueryAuthor,
		)),
		validation.Field(&c.Key, validation.When(
			c.Query == QueryCategory || c.Query == QueryAuthor,
			validation.Required,
		)),
	)
}
