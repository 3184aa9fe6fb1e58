package frontmatter

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"sitelint/pkg/interfaces"
)

// ErrMalformedFrontMatter is the sentinel for structural parse failures: a
// missing opening marker, a missing closing marker, or a line inside the
// block that does not decode as key/value metadata.
var ErrMalformedFrontMatter = errors.New("frontmatter: malformed front matter")

// MalformedFrontMatterError carries the document path alongside the decode
// failure so per-document reports can name the offending file.
type MalformedFrontMatterError struct {
	Path  string
	Cause error
}

func (e *MalformedFrontMatterError) Error() string {
	if e == nil {
		return ErrMalformedFrontMatter.Error()
	}
	if strings.TrimSpace(e.Path) == "" {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", ErrMalformedFrontMatter.Error(), e.Cause)
		}
		return ErrMalformedFrontMatter.Error()
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", ErrMalformedFrontMatter.Error(), e.Path, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrMalformedFrontMatter.Error(), e.Path)
}

func (e *MalformedFrontMatterError) Unwrap() error {
	return ErrMalformedFrontMatter
}

// Parse splits the leading delimited metadata block from the body and decodes
// it into an untyped mapping. Field typing is deliberately deferred to the
// schema validator, which knows each field's declared shape. The body is
// returned as-is, including any leading blank lines after the closing marker.
func Parse(source []byte) (map[string]any, []byte, error) {
	var meta map[string]any

	body, err := frontmatter.MustParse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, nil, &MalformedFrontMatterError{Cause: err}
	}
	if meta == nil {
		meta = map[string]any{}
	}
	return meta, body, nil
}

// BuildDocument assembles an interfaces.Document from the supplied file path,
// raw content, and modification time. The identifier, kind, and embedded date
// all derive from the path, never from the metadata.
func BuildDocument(filePath string, source []byte, modified time.Time) (*interfaces.Document, error) {
	meta, body, err := Parse(source)
	if err != nil {
		var malformed *MalformedFrontMatterError
		if errors.As(err, &malformed) {
			malformed.Path = filePath
		}
		return nil, err
	}

	sum := sha256.Sum256(source)

	return &interfaces.Document{
		ID:           Identifier(filePath),
		Path:         filePath,
		Kind:         DetectKind(filePath),
		Meta:         meta,
		Body:         body,
		Date:         IdentifierDate(filePath),
		LastModified: modified,
		Checksum:     sum[:],
	}, nil
}

var datedName = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})-`)

// Identifier derives the document identifier from a slash-separated file
// path: the path without its markdown extension.
func Identifier(filePath string) string {
	clean := path.Clean(strings.TrimSpace(filePath))
	ext := path.Ext(clean)
	if isMarkdownExt(ext) {
		return strings.TrimSuffix(clean, ext)
	}
	return clean
}

// DetectKind classifies a document from its path: files under a _posts
// directory or carrying a YYYY-MM-DD filename prefix are posts, everything
// else is a page.
func DetectKind(filePath string) interfaces.DocumentKind {
	clean := path.Clean(filePath)
	for _, segment := range strings.Split(clean, "/") {
		if segment == "_posts" {
			return interfaces.KindPost
		}
	}
	if datedName.MatchString(path.Base(clean)) {
		return interfaces.KindPost
	}
	return interfaces.KindPage
}

// IdentifierDate extracts the date embedded in the document identifier. The
// zero time is returned when the filename carries no date prefix.
func IdentifierDate(filePath string) time.Time {
	match := datedName.FindStringSubmatch(path.Base(path.Clean(filePath)))
	if match == nil {
		return time.Time{}
	}
	parsed, err := time.Parse("2006-01-02", match[1])
	if err != nil {
		return time.Time{}
	}
	return parsed
}

func isMarkdownExt(ext string) bool {
	switch strings.ToLower(ext) {
	case ".md", ".markdown":
		return true
	}
	return false
}
