package site

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"sitelint/internal/schema"
	"sitelint/pkg/interfaces"
)

type stubScanner struct {
	report *interfaces.ScanReport
	err    error
	dir    string
}

func (s *stubScanner) Scan(_ context.Context, dir string) (*interfaces.ScanReport, error) {
	s.dir = dir
	return s.report, s.err
}

type stubIndex struct {
	chronological []interfaces.Record
	byCategory    map[string][]interfaces.Record
	byAuthor      map[string][]interfaces.Record
}

func (s *stubIndex) Put(interfaces.Record) {}
func (s *stubIndex) ByCategory(key string) []interfaces.Record {
	return s.byCategory[key]
}
func (s *stubIndex) ByAuthor(key string) []interfaces.Record {
	return s.byAuthor[key]
}
func (s *stubIndex) Chronological() []interfaces.Record { return s.chronological }
func (s *stubIndex) Len() int                           { return len(s.chronological) }
func (s *stubIndex) Empty() bool                        { return len(s.chronological) == 0 }

func TestCheckDirectoryHandlerSuccess(t *testing.T) {
	scanner := &stubScanner{report: &interfaces.ScanReport{
		Indexed: []interfaces.ScanOutcome{{Path: "about.md"}},
	}}

	var out strings.Builder
	handler := NewCheckDirectoryHandler(scanner, &out)

	err := handler.Execute(context.Background(), CheckDirectoryCommand{Directory: "."})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if scanner.dir != "." {
		t.Fatalf("directory not forwarded, got %q", scanner.dir)
	}
	if !strings.Contains(out.String(), "indexed 1, failed 0") {
		t.Fatalf("expected report output, got %q", out.String())
	}
}

func TestCheckDirectoryHandlerFailures(t *testing.T) {
	scanner := &stubScanner{report: &interfaces.ScanReport{
		Indexed: []interfaces.ScanOutcome{{Path: "about.md"}},
		Failed: []interfaces.ScanOutcome{
			{Path: "a.md", Err: &schema.MissingFieldError{Key: "title"}},
		},
	}}

	var out strings.Builder
	handler := NewCheckDirectoryHandler(scanner, &out)

	err := handler.Execute(context.Background(), CheckDirectoryCommand{Directory: "."})
	if !errors.Is(err, ErrCheckFailed) {
		t.Fatalf("expected ErrCheckFailed, got %v", err)
	}
	if !strings.Contains(out.String(), "FAIL") {
		t.Fatalf("expected failure line in report, got %q", out.String())
	}
}

func TestCheckDirectoryHandlerValidatesMessage(t *testing.T) {
	scanner := &stubScanner{report: &interfaces.ScanReport{}}
	handler := NewCheckDirectoryHandler(scanner, &strings.Builder{})

	err := handler.Execute(context.Background(), CheckDirectoryCommand{})
	if err == nil {
		t.Fatalf("expected validation error for empty directory")
	}
	if scanner.dir != "" {
		t.Fatalf("scan must not run for an invalid message")
	}
}

func TestListDocumentsHandlerChronological(t *testing.T) {
	idx := &stubIndex{chronological: []interfaces.Record{
		{ID: "_posts/2024-01-01-a", Kind: interfaces.KindPost, Title: "A", Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "about", Kind: interfaces.KindPage, Title: "About"},
	}}

	var out strings.Builder
	handler := NewListDocumentsHandler(idx, &out)

	err := handler.Execute(context.Background(), ListDocumentsCommand{Query: QueryChronological})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	listing := out.String()
	if !strings.Contains(listing, "2024-01-01") || !strings.Contains(listing, "about") {
		t.Fatalf("unexpected listing: %q", listing)
	}
	if !strings.Contains(listing, "2 document(s)") {
		t.Fatalf("expected count line, got %q", listing)
	}
}

func TestListDocumentsHandlerByCategory(t *testing.T) {
	idx := &stubIndex{byCategory: map[string][]interfaces.Record{
		"go": {{ID: "_posts/2024-01-01-a", Kind: interfaces.KindPost, Title: "A"}},
	}}

	var out strings.Builder
	handler := NewListDocumentsHandler(idx, &out)

	err := handler.Execute(context.Background(), ListDocumentsCommand{Query: QueryCategory, Key: "go"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(out.String(), "_posts/2024-01-01-a") {
		t.Fatalf("expected category listing, got %q", out.String())
	}
}

func TestListDocumentsHandlerRequiresKey(t *testing.T) {
	handler := NewListDocumentsHandler(&stubIndex{}, &strings.Builder{})

	if err := handler.Execute(context.Background(), ListDocumentsCommand{Query: QueryCategory}); err == nil {
		t.Fatalf("expected validation error for missing key")
	}
	if err := handler.Execute(context.Background(), ListDocumentsCommand{Query: "bogus"}); err == nil {
		t.Fatalf("expected validation error for unknown query")
	}
}
