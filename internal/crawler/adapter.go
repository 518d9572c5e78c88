package crawler

import "context"

// Fetcher retrieves the body of a page.
// Implementations return an error for transport failures; what counts as a
// failure beyond that (HTTP status codes, content types) is up to them.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Document is what an Extractor pulls out of a page body.
type Document struct {
	// Links are raw link targets in document order. They may be relative,
	// absolute, protocol-relative, fragment-only or empty.
	Links []string

	// Text is the visible text of the page with formatting discarded.
	Text string
}

// Extractor turns a page body into text and outbound links.
type Extractor interface {
	Extract(body string) (*Document, error)
}

// FailureReporter receives one call per URL whose fetch failed.
type FailureReporter interface {
	ReportFailure(url string, err error)
}

// FailureReporterFunc adapts a function to FailureReporter.
type FailureReporterFunc func(url string, err error)

// ReportFailure calls f(url, err).
func (f FailureReporterFunc) ReportFailure(url string, err error) {
	f(url, err)
}

// discardReporter drops failure reports. Used when no reporter is set.
type discardReporter struct{}

func (discardReporter) ReportFailure(string, error) {}
