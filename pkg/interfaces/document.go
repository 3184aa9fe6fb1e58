package interfaces

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DocumentKind classifies a document and determines which front matter
// fields are required during validation.
type DocumentKind string

const (
	KindPost DocumentKind = "post"
	KindPage DocumentKind = "page"
)

// Document represents a raw markdown file after the front matter block has
// been split from the body. Metadata stays untyped at this stage; the schema
// validator decides field types because the parser cannot know a field's
// intended shape without the schema.
type Document struct {
	// ID is the document identifier: the slash-separated path relative to
	// the content root, without the markdown extension.
	ID string
	// Path is the original file path relative to the content root.
	Path string
	Kind DocumentKind
	// Meta holds the decoded front matter mapping exactly as written.
	Meta map[string]any
	Body []byte
	// Date is extracted from the identifier (YYYY-MM-DD filename prefix)
	// and is zero for documents whose identifier carries no date.
	Date         time.Time
	LastModified time.Time
	// Checksum stores a SHA-256 digest of the original file content so
	// repeated runs can detect unchanged documents cheaply.
	Checksum []byte
}

// Dated reports whether the document identifier embeds a date.
func (d *Document) Dated() bool {
	return d != nil && !d.Date.IsZero()
}

// Record is the validated, typed projection of a document's metadata. It is
// the only shape the collection index accepts; a Record exists if and only if
// schema validation succeeded for the originating document.
type Record struct {
	ID  string
	UID uuid.UUID

	Kind   DocumentKind
	Layout string
	Title  string

	Author string
	// Categories preserves the category labels as written.
	Categories []string
	// CategoryKeys holds the slug-normalized lookup keys, index-aligned
	// with Categories.
	CategoryKeys []string
	Image        string
	Permalink    string
	Featured     bool
	Hidden       bool
	// Comments is nil when the front matter does not set the key.
	Comments *bool

	Date time.Time
}

// Dated reports whether the record's identifier embeds a date.
func (r Record) Dated() bool {
	return !r.Date.IsZero()
}

// Index exposes the lookup surface of the collection index. Implementations
// must apply upsert semantics: a Put with an existing identifier replaces the
// prior entry everywhere instead of duplicating it.
type Index interface {
	Put(rec Record)
	ByCategory(key string) []Record
	ByAuthor(key string) []Record
	Chronological() []Record
	Len() int
	Empty() bool
}

// Validator turns a parsed document into a validated record or one of the
// schema failure errors (missing field, invalid field type).
type Validator interface {
	Validate(doc *Document) (*Record, error)
}

// Scanner drives the parse, validate, index pipeline across a content tree.
// Failures are per document and never abort the remaining collection.
type Scanner interface {
	Scan(ctx context.Context, dir string) (*ScanReport, error)
}

// ScanOutcome captures the terminal state of a single document within a run.
type ScanOutcome struct {
	ID   string
	Path string
	Kind DocumentKind
	Err  error
}

// ScanReport aggregates per-document outcomes for a scan run. It is defined
// here so command handlers and CLI surfaces can share the contract without
// importing the scanner implementation.
type ScanReport struct {
	RunID      uuid.UUID
	Indexed    []ScanOutcome
	Failed     []ScanOutcome
	Duplicates []ScanOutcome
}

// HasFailures reports whether any document failed parsing or validation.
// Duplicate identifiers are warnings and do not count as failures.
func (r *ScanReport) HasFailures() bool {
	return r != nil && len(r.Failed) > 0
}
