package collection

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	"sitelint/internal/frontmatter"
	"sitelint/internal/index"
	"sitelint/internal/logging"
	"sitelint/pkg/interfaces"
)

// ErrLoaderRequired and friends guard scanner construction.
var (
	ErrLoaderRequired    = errors.New("collection: loader is required")
	ErrValidatorRequired = errors.New("collection: validator is required")
	ErrIndexRequired     = errors.New("collection: index is required")
)

const defaultWorkers = 4

// ScannerOption configures a Scanner.
type ScannerOption func(*Scanner)

// WithLogger injects the logger used for scan diagnostics.
func WithLogger(logger interfaces.Logger) ScannerOption {
	return func(s *Scanner) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithWorkers bounds the parse/validate worker pool. Values below one fall
// back to the default.
func WithWorkers(workers int) ScannerOption {
	return func(s *Scanner) {
		if workers > 0 {
			s.workers = workers
		}
	}
}

// Scanner drives the pipeline across a content tree: discover sources, parse
// and validate each document on independent workers, and hand validated
// records to a single collector in front of the index. Document failures are
// recorded per document and never abort the rest of the collection.
type Scanner struct {
	loader    *frontmatter.Loader
	validator interfaces.Validator
	idx       *index.Index
	logger    interfaces.Logger
	workers   int
}

// NewScanner constructs a Scanner.
func NewScanner(loader *frontmatter.Loader, validator interfaces.Validator, idx *index.Index, opts ...ScannerOption) (*Scanner, error) {
	if loader == nil {
		return nil, ErrLoaderRequired
	}
	if validator == nil {
		return nil, ErrValidatorRequired
	}
	if idx == nil {
		return nil, ErrIndexRequired
	}

	s := &Scanner{
		loader:    loader,
		validator: validator,
		idx:       idx,
		logger:    logging.NoOp(),
		workers:   defaultWorkers,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

var _ interfaces.Scanner = (*Scanner)(nil)

// Index exposes the aggregate the scanner populates.
func (s *Scanner) Index() *index.Index {
	return s.idx
}

// Scan processes every matching document under dir. The returned report
// lists per-document outcomes and duplicate warnings; the error return is
// reserved for infrastructure failures (unreadable tree, cancelled context).
func (s *Scanner) Scan(ctx context.Context, dir string) (*interfaces.ScanReport, error) {
	sources, err := s.loader.Discover(ctx, dir)
	if err != nil {
		return nil, err
	}

	report := &interfaces.ScanReport{RunID: uuid.New()}
	logger := logging.WithFields(s.logger, map[string]any{
		"run_id":    report.RunID,
		"directory": dir,
	})
	logger.Debug("collection.scan.start", "documents", len(sources))

	collector := index.NewCollector(s.idx)

	jobs := make(chan *frontmatter.Source)
	outcomes := make(chan interfaces.ScanOutcome)

	var wg sync.WaitGroup
	for range s.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for source := range jobs {
				outcomes <- s.process(source, collector)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, source := range sources {
			select {
			case <-ctx.Done():
				return
			case jobs <- source:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	for outcome := range outcomes {
		if outcome.Err != nil {
			report.Failed = append(report.Failed, outcome)
			continue
		}
		report.Indexed = append(report.Indexed, outcome)
	}

	for _, dup := range collector.Close() {
		report.Duplicates = append(report.Duplicates, interfaces.ScanOutcome{
			ID:  dup.ID,
			Err: dup,
		})
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sortOutcomes(report.Indexed)
	sortOutcomes(report.Failed)

	logger.Info("collection.scan.completed",
		"indexed_count", len(report.Indexed),
		"failed_count", len(report.Failed),
		"duplicate_count", len(report.Duplicates),
	)

	return report, nil
}

func (s *Scanner) process(source *frontmatter.Source, collector *index.Collector) interfaces.ScanOutcome {
	outcome := interfaces.ScanOutcome{Path: source.Path}

	doc, err := frontmatter.BuildDocument(source.Path, source.Data, source.ModTime)
	if err != nil {
		outcome.ID = frontmatter.Identifier(source.Path)
		outcome.Err = err
		logging.WithDocumentContext(s.logger, outcome.ID, source.Path, "").
			Warn("collection.document.malformed", "error", err)
		return outcome
	}

	outcome.ID = doc.ID
	outcome.Kind = doc.Kind

	rec, err := s.validator.Validate(doc)
	if err != nil {
		outcome.Err = err
		logging.WithDocumentContext(s.logger, doc.ID, doc.Path, string(doc.Kind)).
			Warn("collection.document.invalid", "error", err)
		return outcome
	}

	collector.Accept(*rec, source.Path)
	return outcome
}

func sortOutcomes(outcomes []interfaces.ScanOutcome) {
	sort.Slice(outcomes, func(i, j int) bool {
		return outcomes[i].Path < outcomes[j].Path
	})
}
