package crawler

import "fmt"

// FetchError is recorded for a URL that could not be fetched or extracted.
// Its message is the underlying error's message, so failure reports read
// "Error crawling <url>: <cause>".
type FetchError struct {
	// URL is the URL being crawled.
	URL string

	// Err is the adapter or store error.
	Err error
}

// Error returns the underlying error message.
func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("failed to crawl %s", e.URL)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *FetchError) Unwrap() error {
	return e.Err
}
