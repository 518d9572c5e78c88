// Package report renders search reports and failure lines.
//
// Writers:
//   - SimpleWriter: the plain "Search results:" listing for terminals
//   - JSONWriter: the whole SearchReport for tool integration
//   - MarkdownWriter: a GitHub Flavored Markdown summary
//   - FailureWriter: one "Error crawling <url>: <error>" line per failed
//     fetch, written while the crawl runs
//
// Report data lives in the model package; this package only formats it.
package report
