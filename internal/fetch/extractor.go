package fetch

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/nao1215/sitegrep/internal/crawler"
)

// HTMLExtractor extracts text and links from HTML. It implements
// crawler.Extractor and is safe for concurrent use.
type HTMLExtractor struct{}

// NewHTMLExtractor returns an HTMLExtractor.
func NewHTMLExtractor() *HTMLExtractor {
	return &HTMLExtractor{}
}

// hiddenElements never render as page text.
const hiddenElements = "script, style, noscript, template"

// Extract parses body, which need not be well-formed. Links holds the href
// of every <a> element in document order; anchors without href contribute
// an empty string. Text is the concatenation of the visible text nodes;
// script, style, noscript and template content is left out.
func (e *HTMLExtractor) Extract(body string) (*crawler.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	anchors := doc.Find("a")
	links := make([]string, 0, anchors.Length())
	anchors.Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		links = append(links, href)
	})

	doc.Find(hiddenElements).Remove()

	return &crawler.Document{
		Links: links,
		Text:  doc.Text(),
	}, nil
}
