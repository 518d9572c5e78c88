package model

import "time"

// Failure is a URL that could not be fetched, as it appears in reports.
type Failure struct {
	// URL is the URL that failed.
	URL string `json:"url"`

	// Error is the error message reported for it.
	Error string `json:"error"`
}

// SearchReport is the outcome of one crawl-and-search session.
// Report writers render it; the session package fills it in.
type SearchReport struct {
	// SessionID identifies the session in logs and JSON output.
	SessionID string `json:"session_id"`

	// Seed is the URL the crawl started from.
	Seed string `json:"seed"`

	// Scope is the prefix every followed link had to start with.
	Scope string `json:"scope"`

	// Keyword is the query that was run against the index.
	Keyword string `json:"keyword"`

	// Results are the matching URLs in index order.
	Results []string `json:"results"`

	// VisitedCount is the number of URLs dispatched for fetching.
	VisitedCount int `json:"visited"`

	// IndexedCount is the number of URLs in the index.
	IndexedCount int `json:"indexed"`

	// Failures lists every URL whose fetch failed, in dispatch order.
	Failures []Failure `json:"failures,omitempty"`

	// StartedAt is when the crawl began.
	StartedAt time.Time `json:"started_at"`

	// Elapsed is how long crawl plus search took.
	Elapsed time.Duration `json:"elapsed_ns"`

	// Interrupted is true when the crawl was cancelled before the frontier
	// was exhausted. Results then cover the partial index.
	Interrupted bool `json:"interrupted,omitempty"`

	// Error holds a session-level error (store failure, cancellation).
	Error string `json:"error,omitempty"`
}

// NewSearchReport creates an empty report for the given session.
func NewSearchReport(sessionID, seed, keyword string) *SearchReport {
	return &SearchReport{
		SessionID: sessionID,
		Seed:      seed,
		Scope:     seed,
		Keyword:   keyword,
		Results:   make([]string, 0),
		Failures:  make([]Failure, 0),
		StartedAt: time.Now(),
	}
}

// HasResults reports whether the search matched at least one page.
func (r *SearchReport) HasResults() bool {
	return len(r.Results) > 0
}

// FailedCount returns the number of failed fetches.
func (r *SearchReport) FailedCount() int {
	return len(r.Failures)
}

// AddFailure records a failed URL.
func (r *SearchReport) AddFailure(url, message string) {
	r.Failures = append(r.Failures, Failure{URL: url, Error: message})
}
