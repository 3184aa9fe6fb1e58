package index

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

func TestCollectorAppliesRecords(t *testing.T) {
	idx := New()
	collector := NewCollector(idx)

	collector.Accept(record("_posts/2024-01-01-a", "2024-01-01", "jane", "go"), "_posts/2024-01-01-a.md")
	collector.Accept(record("about", "", "jane"), "about.md")

	duplicates := collector.Close()
	if len(duplicates) != 0 {
		t.Fatalf("unexpected duplicates: %#v", duplicates)
	}
	if idx.Len() != 2 {
		t.Fatalf("expected 2 indexed records, got %d", idx.Len())
	}
}

func TestCollectorConcurrentProducers(t *testing.T) {
	idx := New()
	collector := NewCollector(idx)

	var wg sync.WaitGroup
	for worker := 0; worker < 8; worker++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				id := fmt.Sprintf("docs/w%d-%d", worker, i)
				collector.Accept(record(id, "", "jane"), id+".md")
			}
		}(worker)
	}
	wg.Wait()

	if duplicates := collector.Close(); len(duplicates) != 0 {
		t.Fatalf("unexpected duplicates: %#v", duplicates)
	}
	if idx.Len() != 200 {
		t.Fatalf("expected 200 records, got %d", idx.Len())
	}
}

func TestCollectorReportsDuplicates(t *testing.T) {
	idx := New()
	collector := NewCollector(idx)

	collector.Accept(record("hello", "", "jane", "go"), "hello.md")
	collector.Accept(record("hello", "", "sam", "rust"), "hello.markdown")

	duplicates := collector.Close()
	if len(duplicates) != 1 {
		t.Fatalf("expected one duplicate warning, got %d", len(duplicates))
	}

	dup := duplicates[0]
	if !errors.Is(dup, ErrDuplicateIdentifier) {
		t.Fatalf("duplicate must unwrap to sentinel, got %v", dup)
	}
	if dup.ID != "hello" || len(dup.Paths) != 2 {
		t.Fatalf("unexpected duplicate detail: %#v", dup)
	}

	// Last seen wins.
	if idx.Len() != 1 {
		t.Fatalf("duplicate must not duplicate entries, len=%d", idx.Len())
	}
	rec, ok := idx.Get("hello")
	if !ok || rec.Author != "sam" {
		t.Fatalf("expected last record to win, got %#v", rec)
	}
}
