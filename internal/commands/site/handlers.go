package site

import (
	"context"
	"errors"
	"fmt"
	"io"

	"sitelint/internal/collection"
	"sitelint/internal/commands"
	"sitelint/pkg/interfaces"
)

// ErrCheckFailed signals that the run completed but at least one document
// failed parsing or validation. Callers use it to pick a non-zero exit code
// without treating the run itself as broken.
var ErrCheckFailed = errors.New("site: collection check reported failures")

// NewCheckDirectoryHandler builds the handler for CheckDirectoryCommand. The
// report is written to out; the handler returns ErrCheckFailed when any
// document failed so the CLI can map the result onto its exit code.
func NewCheckDirectoryHandler(scanner interfaces.Scanner, out io.Writer, opts ...commands.HandlerOption[CheckDirectoryCommand]) *commands.Handler[CheckDirectoryCommand] {
	return commands.NewHandler(func(ctx context.Context, msg CheckDirectoryCommand) error {
		report, err := scanner.Scan(ctx, msg.Directory)
		if err != nil {
			return err
		}

		collection.WriteReport(out, report)

		if report.HasFailures() {
			return fmt.Errorf("%w: %d of %d documents failed",
				ErrCheckFailed, len(report.Failed), len(report.Failed)+len(report.Indexed))
		}
		return nil
	}, opts...)
}

// NewListDocumentsHandler builds the handler for ListDocumentsCommand,
// rendering the requested index view to out.
func NewListDocumentsHandler(idx interfaces.Index, out io.Writer, opts ...commands.HandlerOption[ListDocumentsCommand]) *commands.Handler[ListDocumentsCommand] {
	return commands.NewHandler(func(ctx context.Context, msg ListDocumentsCommand) error {
		var records []interfaces.Record
		switch msg.Query {
		case QueryChronological:
			records = idx.Chronological()
		case QueryCategory:
			records = idx.ByCategory(msg.Key)
		case QueryAuthor:
			records = idx.ByAuthor(msg.Key)
		default:
			return fmt.Errorf("site: unsupported list query %q", msg.Query)
		}

		writeRecords(out, records)
		return nil
	}, opts...)
}

func writeRecords(w io.Writer, records []interfaces.Record) {
	for _, rec := range records {
		date := "          "
		if rec.Dated() {
			date = rec.Date.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s  %-4s  %-40s %s\n", date, rec.Kind, rec.ID, rec.Title)
	}
	fmt.Fprintf(w, "%d document(s)\n", len(records))
}
