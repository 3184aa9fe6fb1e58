package index

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"sitelint/pkg/interfaces"
)

// ErrDuplicateIdentifier marks two documents resolving to the same identifier
// within one run. It is a warning: the index applies last-seen-wins.
var ErrDuplicateIdentifier = errors.New("index: duplicate document identifier")

// DuplicateIdentifierError names the colliding identifier and paths.
type DuplicateIdentifierError struct {
	ID    string
	Paths []string
}

func (e *DuplicateIdentifierError) Error() string {
	if e == nil {
		return ErrDuplicateIdentifier.Error()
	}
	if len(e.Paths) > 0 {
		return fmt.Sprintf("%s: id=%s paths=%s", ErrDuplicateIdentifier.Error(), e.ID, strings.Join(e.Paths, ","))
	}
	return fmt.Sprintf("%s: id=%s", ErrDuplicateIdentifier.Error(), e.ID)
}

func (e *DuplicateIdentifierError) Unwrap() error {
	return ErrDuplicateIdentifier
}

// Entry pairs a validated record with the path it was loaded from so
// duplicate warnings can name both files.
type Entry struct {
	Record interfaces.Record
	Path   string
}

// Collector is the single writer in front of an Index. Parse and validate
// workers are independent, so they emit validated records over a channel and
// one goroutine applies them, avoiding fine-grained locking around the
// groupings.
type Collector struct {
	idx *Index

	ch   chan Entry
	done chan struct{}

	mu         sync.Mutex
	seen       map[string][]string
	duplicates []*DuplicateIdentifierError
}

// NewCollector starts the collecting goroutine over the supplied index.
func NewCollector(idx *Index) *Collector {
	c := &Collector{
		idx:  idx,
		ch:   make(chan Entry),
		done: make(chan struct{}),
		seen: map[string][]string{},
	}
	go c.run()
	return c
}

// Accept queues a validated record for insertion.
func (c *Collector) Accept(rec interfaces.Record, path string) {
	c.ch <- Entry{Record: rec, Path: path}
}

// Close stops the collector, waits for pending inserts, and returns the
// duplicate-identifier warnings observed during the run.
func (c *Collector) Close() []*DuplicateIdentifierError {
	close(c.ch)
	<-c.done

	c.mu.Lock()
	defer c.mu.Unlock()
	duplicates := make([]*DuplicateIdentifierError, len(c.duplicates))
	copy(duplicates, c.duplicates)
	return duplicates
}

func (c *Collector) run() {
	defer close(c.done)
	for entry := range c.ch {
		c.apply(entry)
	}
}

func (c *Collector) apply(entry Entry) {
	id := entry.Record.ID

	c.mu.Lock()
	paths := append(c.seen[id], entry.Path)
	c.seen[id] = paths
	if len(paths) > 1 {
		c.duplicates = append(c.duplicates, &DuplicateIdentifierError{
			ID:    id,
			Paths: append([]string(nil), paths...),
		})
	}
	c.mu.Unlock()

	// Last seen wins: Put upserts by identifier.
	c.idx.Put(entry.Record)
}
