package crawler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/nao1215/sitegrep/internal/index"
	"github.com/nao1215/sitegrep/internal/metrics"
	"github.com/nao1215/sitegrep/internal/model"
)

// Engine crawls one site and indexes the pages it reaches.
// Its visited set and index belong to a single crawl session; create a new
// Engine per session.
type Engine struct {
	// fetcher retrieves page bodies.
	fetcher Fetcher

	// extractor turns bodies into text and links.
	extractor Extractor

	// reporter receives failed fetches.
	reporter FailureReporter

	// store holds the text of indexed pages.
	store index.Store

	// metrics is optional; a nil collector records nothing.
	metrics *metrics.Collector

	// logger is used for per-URL debug output.
	logger *slog.Logger

	// mu guards visited, order and results so accessors can be called
	// from other goroutines while a crawl runs.
	mu sync.Mutex

	// visited holds every URL dispatched for fetching.
	visited map[string]struct{}

	// order is visited in dispatch order.
	order []string

	// results has one entry per dispatched URL, in dispatch order.
	results []model.PageResult
}

// Option configures an Engine.
type Option func(*Engine)

// WithFailureReporter sets the sink for failed fetches.
func WithFailureReporter(r FailureReporter) Option {
	return func(e *Engine) {
		if r != nil {
			e.reporter = r
		}
	}
}

// WithStore sets the index store. The default is an index.MemoryStore.
func WithStore(s index.Store) Option {
	return func(e *Engine) {
		if s != nil {
			e.store = s
		}
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMetrics records fetch counts and timings in c.
func WithMetrics(c *metrics.Collector) Option {
	return func(e *Engine) {
		e.metrics = c
	}
}

// NewEngine creates an Engine with an empty visited set and index.
func NewEngine(fetcher Fetcher, extractor Extractor, opts ...Option) *Engine {
	e := &Engine{
		fetcher:   fetcher,
		extractor: extractor,
		reporter:  discardReporter{},
		visited:   make(map[string]struct{}),
		order:     make([]string, 0),
		results:   make([]model.PageResult, 0),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.store == nil {
		e.store = index.NewMemoryStore()
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}

	return e
}

// Crawl crawls rawURL using rawURL itself as the scope.
// See CrawlWithScope.
func (e *Engine) Crawl(ctx context.Context, rawURL string) error {
	return e.CrawlWithScope(ctx, rawURL, "")
}

// CrawlWithScope crawls rawURL and every page reachable from it whose URL
// starts with scope. An empty scope means rawURL.
//
// Links are resolved against the scope string, not against the page they
// were found on. Failed fetches are reported and skipped; they never make
// CrawlWithScope fail. The only error returned is ctx.Err() when the
// context is cancelled before the frontier is exhausted.
//
// A URL already visited by an earlier call is not fetched again.
func (e *Engine) CrawlWithScope(ctx context.Context, rawURL, scope string) error {
	if scope == "" {
		scope = rawURL
	}
	res := newResolver(scope)
	if res.err != nil {
		e.logger.Debug("scope is not a valid URL, links will not be followed",
			"scope", scope,
			"error", res.err,
		)
	}

	f := newFrontier(rawURL)
	for !f.empty() {
		if err := ctx.Err(); err != nil {
			return err
		}
		target := f.pop()
		if !e.reserve(target) {
			continue
		}

		doc, ok := e.visit(ctx, target)
		if !ok {
			continue
		}
		f.pushChildren(e.expand(res, scope, target, doc.Links))
	}
	return nil
}

// reserve marks url visited. It returns false if url was already visited.
func (e *Engine) reserve(url string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.visited[url]; ok {
		return false
	}
	e.visited[url] = struct{}{}
	e.order = append(e.order, url)
	return true
}

// visit fetches, extracts and indexes one URL.
func (e *Engine) visit(ctx context.Context, url string) (*Document, bool) {
	e.logger.Debug("fetching page", "url", url)
	start := time.Now()

	body, err := e.fetcher.Fetch(ctx, url)
	if err != nil {
		e.fail(ctx, url, err, time.Since(start))
		return nil, false
	}

	doc, err := e.extractor.Extract(body)
	if err != nil {
		e.fail(ctx, url, err, time.Since(start))
		return nil, false
	}

	if err := e.store.Put(ctx, url, doc.Text); err != nil {
		e.fail(ctx, url, err, time.Since(start))
		return nil, false
	}

	e.record(model.NewIndexedResult(url))
	e.metrics.ObserveFetch(metrics.OutcomeIndexed, time.Since(start))
	e.logger.Debug("indexed page",
		"url", url,
		"links", len(doc.Links),
		"textBytes", len(doc.Text),
	)

	return doc, true
}

// fail records and reports a failed URL. A failure caused by ctx being
// cancelled is only logged: the page was cut short, not broken.
func (e *Engine) fail(ctx context.Context, url string, cause error, elapsed time.Duration) {
	if ctx.Err() != nil {
		e.logger.Debug("page abandoned on cancellation", "url", url, "error", cause)
		return
	}
	err := &FetchError{URL: url, Err: cause}
	e.record(model.NewFailedResult(url, err))
	e.metrics.ObserveFetch(metrics.OutcomeFailed, elapsed)
	e.logger.Warn("failed to crawl page", "url", url, "error", cause)
	e.reporter.ReportFailure(url, err)
}

// record appends a result.
func (e *Engine) record(r model.PageResult) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.results = append(e.results, r)
}

// expand resolves the links of one page and returns those to follow, in
// document order.
func (e *Engine) expand(res *resolver, scope, from string, links []string) []string {
	next := make([]string, 0, len(links))
	for _, link := range links {
		if link == "" {
			continue
		}

		resolved, err := res.Resolve(link)
		if err != nil {
			e.logger.Debug("skipping unresolvable link",
				"page", from,
				"link", link,
				"error", err,
			)
			continue
		}

		if !InScope(resolved, scope) {
			e.metrics.IncOutOfScope()
			e.logger.Debug("skipping link outside scope",
				"page", from,
				"link", resolved,
				"scope", scope,
			)
			continue
		}

		// Visited URLs would be skipped when popped anyway; dropping them
		// here keeps the frontier small on densely linked sites.
		if e.IsVisited(resolved) {
			continue
		}
		next = append(next, resolved)
	}
	return next
}

// Search returns the indexed URLs whose text contains keyword, ignoring
// case, in the order they were indexed. It does not modify the engine and
// may be called during or after a crawl.
func (e *Engine) Search(ctx context.Context, keyword string) ([]string, error) {
	return index.Search(ctx, e.store, keyword)
}

// IsVisited reports whether url has been dispatched for fetching.
func (e *Engine) IsVisited(url string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.visited[url]
	return ok
}

// Visited returns every dispatched URL in dispatch order.
func (e *Engine) Visited() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}

// Results returns one result per dispatched URL, in dispatch order. A URL
// whose fetch was interrupted by cancellation is visited but has no result.
func (e *Engine) Results() []model.PageResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]model.PageResult, len(e.results))
	copy(out, e.results)
	return out
}

// Index returns the store holding indexed page text.
func (e *Engine) Index() index.Store {
	return e.store
}

// Stats returns current crawl statistics.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := Stats{Visited: len(e.order)}
	for _, r := range e.results {
		if r.OK() {
			s.Indexed++
		} else {
			s.Failed++
		}
	}
	return s
}

// Stats contains crawl statistics.
type Stats struct {
	// Visited is the number of URLs dispatched for fetching.
	Visited int

	// Indexed is the number of pages stored in the index.
	Indexed int

	// Failed is the number of URLs whose fetch failed.
	Failed int
}
