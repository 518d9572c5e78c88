// Package fetch implements the crawler adapters that talk to the network
// and parse HTML.
//
// HTTPFetcher downloads pages over net/http, optionally through a SOCKS5
// proxy, applying per-site cookies and headers from the .sitegrep config
// file. Bodies are capped in size and decoded to UTF-8 using the charset
// declared in the Content-Type header or the document itself.
//
// HTMLExtractor parses a body with goquery and returns the page text and
// the href of every anchor, in document order.
//
// # Status codes
//
// HTTP error statuses are not fetch failures: a 404 page is indexed like
// any other page. Only transport errors (DNS, connection, TLS, timeout,
// too many redirects) fail a fetch.
package fetch
