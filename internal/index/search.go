package index

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Matcher tests page text for a keyword, ignoring case.
// A Matcher is not safe for concurrent use; create one per search.
type Matcher struct {
	caser   cases.Caser
	keyword string
}

// NewMatcher creates a Matcher for keyword.
func NewMatcher(keyword string) *Matcher {
	caser := cases.Lower(language.Und)
	return &Matcher{
		caser:   caser,
		keyword: caser.String(keyword),
	}
}

// Match reports whether text contains the keyword. The empty keyword
// matches every text, including the empty one.
func (m *Matcher) Match(text string) bool {
	if m.keyword == "" {
		return true
	}
	return strings.Contains(m.caser.String(text), m.keyword)
}

// Search returns the URLs of every page in s whose text contains keyword,
// case-insensitively, in insertion order. The result is never nil.
func Search(ctx context.Context, s Store, keyword string) ([]string, error) {
	m := NewMatcher(keyword)
	results := make([]string, 0)
	err := s.Each(ctx, func(url, text string) bool {
		if m.Match(text) {
			results = append(results, url)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}
