// Package index stores the text extracted from crawled pages, keyed by URL,
// and answers keyword lookups over it.
//
// Two backends implement Store:
//   - MemoryStore keeps everything in a map and is the default.
//   - SQLiteStore keeps page text in a scratch SQLite database
//     (modernc.org/sqlite) so very large crawls do not have to hold all text
//     on the Go heap. The database is wiped when opened; nothing survives
//     from one run to the next.
//
// Both backends iterate in insertion order, so search results come back in
// the order pages were indexed.
//
// Matching is a case-insensitive substring test. Lower-casing uses
// golang.org/x/text/cases so that non-ASCII text folds the same way on
// both sides of the comparison.
package index
