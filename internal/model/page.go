package model

// PageStatus is the terminal state of a dispatched URL.
type PageStatus int

const (
	// PageIndexed means the fetch succeeded and the page text is in the index.
	PageIndexed PageStatus = iota

	// PageFailed means the fetch or the extraction failed. The URL stays
	// visited but is absent from the index.
	PageFailed
)

// String returns the lower-case name of the status.
func (s PageStatus) String() string {
	switch s {
	case PageIndexed:
		return "indexed"
	case PageFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText lets PageStatus appear as a string in JSON reports.
func (s PageStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// PageResult records what happened to one URL the crawler dispatched.
// The page text itself lives only in the index store.
type PageResult struct {
	// URL is the exact key used in the visited set and the index.
	URL string `json:"url"`

	// Status tells whether the page was indexed or failed.
	Status PageStatus `json:"status"`

	// Err is the fetch or extraction error. Only set for failed pages.
	Err error `json:"-"`

	// ErrorMessage is Err.Error(), kept for serialization.
	ErrorMessage string `json:"error,omitempty"`
}

// NewIndexedResult creates the result for a successfully indexed page.
func NewIndexedResult(url string) PageResult {
	return PageResult{
		URL:    url,
		Status: PageIndexed,
	}
}

// NewFailedResult creates the result for a page whose fetch failed.
func NewFailedResult(url string, err error) PageResult {
	r := PageResult{
		URL:    url,
		Status: PageFailed,
		Err:    err,
	}
	if err != nil {
		r.ErrorMessage = err.Error()
	}
	return r
}

// OK reports whether the page was indexed.
func (r PageResult) OK() bool {
	return r.Status == PageIndexed
}
