package crawler

import (
	"net/url"
	"strings"
)

// resolver joins link targets onto a fixed base URL.
type resolver struct {
	base *url.URL
	err  error
}

// newResolver parses base once for all links of a session.
func newResolver(base string) *resolver {
	u, err := url.Parse(base)
	return &resolver{base: u, err: err}
}

// Resolve returns link made absolute against the base, following the usual
// URL reference rules: "/about", "page2", "//host/x", "?q=1" and "#frag"
// all resolve relative to the base.
func (r *resolver) Resolve(link string) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	ref, err := url.Parse(link)
	if err != nil {
		return "", err
	}
	return r.base.ResolveReference(ref).String(), nil
}

// InScope reports whether resolved lies inside scope.
//
// This is a plain string prefix test. It does not compare hosts, so
// "https://example.com.evil.com" is in scope "https://example.com", and
// "https://example.com/blog-old" is in scope "https://example.com/blog".
func InScope(resolved, scope string) bool {
	return strings.HasPrefix(resolved, scope)
}
