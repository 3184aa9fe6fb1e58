package collection

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"sitelint/internal/frontmatter"
	"sitelint/internal/index"
	"sitelint/internal/schema"
	"sitelint/pkg/interfaces"
)

// ErrorKind buckets per-document failures for the aggregate summary.
type ErrorKind string

const (
	ErrorKindMalformedFrontMatter ErrorKind = "malformed_front_matter"
	ErrorKindMissingField         ErrorKind = "missing_field"
	ErrorKindInvalidFieldType     ErrorKind = "invalid_field_type"
	ErrorKindDuplicateIdentifier  ErrorKind = "duplicate_identifier"
	ErrorKindOther                ErrorKind = "other"
)

// Classify maps a per-document error onto its taxonomy bucket.
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, frontmatter.ErrMalformedFrontMatter):
		return ErrorKindMalformedFrontMatter
	case errors.Is(err, schema.ErrMissingField):
		return ErrorKindMissingField
	case errors.Is(err, schema.ErrInvalidFieldType):
		return ErrorKindInvalidFieldType
	case errors.Is(err, index.ErrDuplicateIdentifier):
		return ErrorKindDuplicateIdentifier
	default:
		return ErrorKindOther
	}
}

// Summarize counts report failures per error kind. Duplicate warnings are
// included under their own kind so callers can surface them without treating
// them as failures.
func Summarize(report *interfaces.ScanReport) map[ErrorKind]int {
	counts := map[ErrorKind]int{}
	if report == nil {
		return counts
	}
	for _, outcome := range report.Failed {
		counts[Classify(outcome.Err)]++
	}
	for range report.Duplicates {
		counts[ErrorKindDuplicateIdentifier]++
	}
	return counts
}

// WriteReport prints the human-readable run report: every failed document
// with its error kind, duplicate warnings, and the aggregate summary. The
// layout is stable so the output is scriptable.
func WriteReport(w io.Writer, report *interfaces.ScanReport) {
	if report == nil {
		return
	}

	for _, outcome := range report.Failed {
		fmt.Fprintf(w, "FAIL  %-24s %s: %v\n", Classify(outcome.Err), outcome.Path, outcome.Err)
	}
	for _, outcome := range report.Duplicates {
		fmt.Fprintf(w, "WARN  %-24s %s: %v\n", ErrorKindDuplicateIdentifier, outcome.ID, outcome.Err)
	}

	counts := Summarize(report)
	kinds := make([]string, 0, len(counts))
	for kind := range counts {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)

	fmt.Fprintf(w, "indexed %d, failed %d", len(report.Indexed), len(report.Failed))
	for _, kind := range kinds {
		fmt.Fprintf(w, ", %s %d", kind, counts[ErrorKind(kind)])
	}
	fmt.Fprintln(w)
}
