package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nao1215/sitegrep/internal/model"
)

// Lines of the plain result listing.
const (
	resultsHeader = "Search results:"
	noResults     = "No results found."
)

// SimpleWriter prints matching URLs:
//
//	Search results:
//	- https://example.com/a
//	- https://example.com/b
//
// or "No results found." when nothing matched.
type SimpleWriter struct {
	baseWriter

	// seedHeader prints "Results for <seed>" before each report.
	seedHeader bool

	// verbose appends crawl statistics.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithSeedHeader prints the seed above each listing. Useful when several
// seeds are reported together.
func WithSeedHeader(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.seedHeader = show
	}
}

// WithVerbose appends visited, indexed and failed counts after the listing.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter writing to output.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write prints one report.
func (w *SimpleWriter) Write(report *model.SearchReport) (int, error) {
	var sb strings.Builder

	if w.seedHeader {
		fmt.Fprintf(&sb, "Results for %s\n", report.Seed)
	}

	if report.HasResults() {
		sb.WriteString(resultsHeader + "\n")
		for _, u := range report.Results {
			fmt.Fprintf(&sb, "- %s\n", u)
		}
	} else {
		sb.WriteString(noResults + "\n")
	}

	if w.verbose {
		fmt.Fprintf(&sb, "(visited %d, indexed %d, failed %d in %s)\n",
			report.VisitedCount, report.IndexedCount, report.FailedCount(), report.Elapsed.Round(time.Millisecond))
	}
	if report.Interrupted {
		sb.WriteString("(crawl interrupted, results are partial)\n")
	}

	return io.WriteString(w.output, sb.String())
}

// WriteAll prints reports one after another, separated by a blank line.
func (w *SimpleWriter) WriteAll(reports []*model.SearchReport) (int, error) {
	var total int
	for i, r := range reports {
		if i > 0 {
			n, err := io.WriteString(w.output, "\n")
			total += n
			if err != nil {
				return total, err
			}
		}
		n, err := w.Write(r)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
