package report

import (
	"fmt"
	"io"
	"sync"
)

// FailureWriter writes one line per failed fetch:
//
//	Error crawling <url>: <error message>
//
// It implements crawler.FailureReporter and may be shared by concurrent
// sessions.
type FailureWriter struct {
	mu     sync.Mutex
	output io.Writer
	count  int
}

// NewFailureWriter creates a FailureWriter writing to output.
func NewFailureWriter(output io.Writer) *FailureWriter {
	return &FailureWriter{output: output}
}

// ReportFailure writes the failure line for url.
func (w *FailureWriter) ReportFailure(url string, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.count++
	fmt.Fprintf(w.output, "Error crawling %s: %v\n", url, err)
}

// Count returns the number of failures written.
func (w *FailureWriter) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}
