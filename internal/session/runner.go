package session

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/nao1215/sitegrep/internal/config"
	"github.com/nao1215/sitegrep/internal/crawler"
	"github.com/nao1215/sitegrep/internal/fetch"
	"github.com/nao1215/sitegrep/internal/metrics"
)

// FetcherFactory returns a new Fetcher for one session.
type FetcherFactory func(logger *slog.Logger) (crawler.Fetcher, error)

// Runner creates sessions that share configuration and reporting sinks.
type Runner struct {
	cfg        *config.Config
	reporter   crawler.FailureReporter
	metrics    *metrics.Collector
	logger     *slog.Logger
	newFetcher FetcherFactory
	extractor  crawler.Extractor
}

// Option configures a Runner.
type Option func(*Runner)

// WithFailureReporter receives every failed fetch of every session.
func WithFailureReporter(r crawler.FailureReporter) Option {
	return func(rn *Runner) {
		rn.reporter = r
	}
}

// WithMetrics records crawl and search metrics.
func WithMetrics(c *metrics.Collector) Option {
	return func(rn *Runner) {
		rn.metrics = c
	}
}

// WithLogger sets the logger. Sessions add a "crawl" attribute with their id.
func WithLogger(logger *slog.Logger) Option {
	return func(rn *Runner) {
		if logger != nil {
			rn.logger = logger
		}
	}
}

// WithFetcherFactory replaces the HTTP fetcher built from the config.
func WithFetcherFactory(f FetcherFactory) Option {
	return func(rn *Runner) {
		if f != nil {
			rn.newFetcher = f
		}
	}
}

// WithExtractor replaces the HTML extractor.
func WithExtractor(e crawler.Extractor) Option {
	return func(rn *Runner) {
		if e != nil {
			rn.extractor = e
		}
	}
}

// NewRunner creates a Runner for cfg.
func NewRunner(cfg *config.Config, opts ...Option) *Runner {
	r := &Runner{
		cfg:       cfg,
		logger:    slog.Default(),
		extractor: fetch.NewHTMLExtractor(),
	}
	r.newFetcher = r.httpFetcher

	for _, opt := range opts {
		opt(r)
	}
	return r
}

// httpFetcher builds the default fetcher from the config.
func (r *Runner) httpFetcher(logger *slog.Logger) (crawler.Fetcher, error) {
	return fetch.NewHTTPFetcher(
		fetch.WithTimeout(r.cfg.Timeout),
		fetch.WithUserAgent(r.cfg.UserAgent),
		fetch.WithMaxBodySize(r.cfg.EffectiveMaxBodySize()),
		fetch.WithProxy(r.cfg.ProxyAddress),
		fetch.WithSiteConfig(r.cfg.SiteConfigs),
		fetch.WithLogger(logger),
	)
}

// NewSession creates a session for seed.
func (r *Runner) NewSession(seed string) *Session {
	id := uuid.NewString()
	return &Session{
		ID:      id,
		Seed:    seed,
		Keyword: r.cfg.Keyword,
		runner:  r,
		logger:  r.logger.With("crawl", id, "seed", seed),
	}
}
