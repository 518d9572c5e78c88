// Package crawler walks a website from a seed URL and indexes the text of
// every page it can reach inside a scope prefix.
//
// # Architecture
//
// The Engine owns one crawl session: the visited set, the per-URL results
// and the index store. It talks to the network only through two adapters,
// Fetcher and Extractor, and reports failed fetches to a FailureReporter.
//
// Traversal is depth-first over an explicit frontier stack rather than
// recursion, so very deep sites cannot exhaust the goroutine stack. Links
// are pushed in reverse document order, which makes the visiting order
// identical to a recursive walk: each link's subtree is explored before its
// next sibling.
//
// # Invariants
//
//   - A URL is marked visited before it is fetched, and never fetched twice
//     in one session, so cyclic link graphs terminate.
//   - A URL is in the index only if its fetch succeeded. Failed URLs stay in
//     the visited set.
//   - A discovered link is followed only if its resolved form starts with
//     the scope string.
//
// # Scope
//
// The scope test is a literal string prefix comparison, not a same-origin
// check. With scope "https://example.com" the URL
// "https://example.com.evil.com/" is considered in scope. This matches the
// behaviour the tool has always had; see InScope.
//
// # Usage
//
//	engine := crawler.NewEngine(fetcher, extractor,
//	    crawler.WithFailureReporter(report.NewFailureWriter(os.Stdout)),
//	)
//	if err := engine.Crawl(ctx, "https://example.com"); err != nil {
//	    // only context cancellation ends up here
//	}
//	urls, err := engine.Search(ctx, "keyword")
package crawler
