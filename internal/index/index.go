package index

import (
	"sort"
	"sync"

	"sitelint/internal/schema"
	"sitelint/pkg/interfaces"
)

// Index is the in-memory aggregate over validated records: by category, by
// author, and a chronological ordering derived from the identifier-embedded
// date. Reads are safe for concurrent use; writes are expected to come from a
// single writer (see Collector) but are locked regardless.
//
// Once the first record is accepted the index stays populated: there is no
// delete operation, only upsert-by-identifier.
type Index struct {
	mu sync.RWMutex

	entries map[string]interfaces.Record
	// byCategory and byAuthor hold identifiers in insertion order so
	// category listings reflect the order documents were accepted.
	byCategory map[string][]string
	byAuthor   map[string][]string
}

// New constructs an empty index.
func New() *Index {
	return &Index{
		entries:    map[string]interfaces.Record{},
		byCategory: map[string][]string{},
		byAuthor:   map[string][]string{},
	}
}

var _ interfaces.Index = (*Index)(nil)

// Put upserts a record by identifier. A repeated identifier replaces the
// prior entry everywhere: the old groupings are unlinked before the new
// record is inserted, so the index never holds two entries for one document.
func (i *Index) Put(rec interfaces.Record) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if _, ok := i.entries[rec.ID]; ok {
		i.unlink(rec.ID)
	}

	i.entries[rec.ID] = rec

	for _, key := range rec.CategoryKeys {
		if key == "" {
			continue
		}
		i.byCategory[key] = append(i.byCategory[key], rec.ID)
	}
	if key := schema.NormalizeKey(rec.Author); key != "" {
		i.byAuthor[key] = append(i.byAuthor[key], rec.ID)
	}
}

// ByCategory returns every record listing the category, in insertion order.
// The key is normalized, so "JavaScript" and "javascript" address the same
// grouping.
func (i *Index) ByCategory(key string) []interfaces.Record {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.collect(i.byCategory[schema.NormalizeKey(key)])
}

// ByAuthor returns every record by the author, in insertion order.
func (i *Index) ByAuthor(key string) []interfaces.Record {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.collect(i.byAuthor[schema.NormalizeKey(key)])
}

// Chronological returns the full sequence ordered by the identifier-embedded
// date, oldest first, ties broken by identifier lexical order. Records whose
// identifier carries no date follow the dated ones, in identifier order.
func (i *Index) Chronological() []interfaces.Record {
	i.mu.RLock()
	defer i.mu.RUnlock()

	records := make([]interfaces.Record, 0, len(i.entries))
	for _, rec := range i.entries {
		records = append(records, rec)
	}

	sort.Slice(records, func(a, b int) bool {
		ra, rb := records[a], records[b]
		switch {
		case ra.Dated() && !rb.Dated():
			return true
		case !ra.Dated() && rb.Dated():
			return false
		case ra.Dated() && !ra.Date.Equal(rb.Date):
			return ra.Date.Before(rb.Date)
		default:
			return ra.ID < rb.ID
		}
	})

	return records
}

// Get returns the record for an identifier when present.
func (i *Index) Get(id string) (interfaces.Record, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	rec, ok := i.entries[id]
	return rec, ok
}

// Len reports the number of indexed documents.
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.entries)
}

// Empty reports whether the index has accepted any document yet.
func (i *Index) Empty() bool {
	return i.Len() == 0
}

// unlink removes an identifier from every grouping. Callers must hold the
// write lock.
func (i *Index) unlink(id string) {
	for key, ids := range i.byCategory {
		if filtered := remove(ids, id); len(filtered) != len(ids) {
			if len(filtered) == 0 {
				delete(i.byCategory, key)
			} else {
				i.byCategory[key] = filtered
			}
		}
	}
	for key, ids := range i.byAuthor {
		if filtered := remove(ids, id); len(filtered) != len(ids) {
			if len(filtered) == 0 {
				delete(i.byAuthor, key)
			} else {
				i.byAuthor[key] = filtered
			}
		}
	}
}

// collect resolves identifiers to records. Callers must hold at least the
// read lock.
func (i *Index) collect(ids []string) []interfaces.Record {
	if len(ids) == 0 {
		return nil
	}
	records := make([]interfaces.Record, 0, len(ids))
	for _, id := range ids {
		if rec, ok := i.entries[id]; ok {
			records = append(records, rec)
		}
	}
	return records
}

func remove(ids []string, id string) []string {
	filtered := ids[:0:0]
	for _, candidate := range ids {
		if candidate != id {
			filtered = append(filtered, candidate)
		}
	}
	return filtered
}
