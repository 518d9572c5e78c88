package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/nao1215/sitegrep/internal/config"
	"github.com/nao1215/sitegrep/internal/crawler"
	"github.com/nao1215/sitegrep/internal/index"
	"github.com/nao1215/sitegrep/internal/model"
)

// Session is one crawl of one seed followed by one search.
type Session struct {
	// ID is a random UUID identifying the session in logs and reports.
	ID string

	// Seed is the start URL and the crawl scope.
	Seed string

	// Keyword is the search query.
	Keyword string

	runner *Runner
	logger *slog.Logger
}

// Run crawls the seed, searches the index and returns the report.
//
// The report is always non-nil. The returned error is non-nil when the
// session could not be set up (invalid proxy, unusable database
// directory) or when ctx was cancelled; in the latter case the report
// holds the partial results.
func (s *Session) Run(ctx context.Context) (*model.SearchReport, error) {
	report := model.NewSearchReport(s.ID, s.Seed, s.Keyword)
	defer func() {
		report.Elapsed = time.Since(report.StartedAt)
	}()

	fetcher, err := s.runner.newFetcher(s.logger)
	if err != nil {
		report.Error = err.Error()
		return report, fmt.Errorf("failed to create fetcher: %w", err)
	}

	store, release, err := s.openStore(ctx)
	if err != nil {
		report.Error = err.Error()
		return report, err
	}
	defer release()

	engine := crawler.NewEngine(fetcher, s.runner.extractor,
		crawler.WithStore(store),
		crawler.WithFailureReporter(s.runner.reporter),
		crawler.WithMetrics(s.runner.metrics),
		crawler.WithLogger(s.logger),
	)

	s.logger.Debug("crawl started")
	crawlErr := engine.Crawl(ctx, s.Seed)
	if crawlErr != nil {
		report.Interrupted = true
		report.Error = crawlErr.Error()
		s.logger.Warn("crawl interrupted", "error", crawlErr)
	}

	// Search even after cancellation so the partial index is reported.
	results, err := engine.Search(context.WithoutCancel(ctx), s.Keyword)
	if err != nil {
		report.Error = err.Error()
		return report, fmt.Errorf("failed to search index: %w", err)
	}
	report.Results = results
	s.runner.metrics.ObserveSearch(len(results))

	fillStats(report, engine)
	s.logger.Debug("crawl finished",
		"visited", report.VisitedCount,
		"indexed", report.IndexedCount,
		"failed", report.FailedCount(),
		"matches", len(results),
	)

	return report, crawlErr
}

// fillStats copies counts and failures from the engine into report.
func fillStats(report *model.SearchReport, engine *crawler.Engine) {
	stats := engine.Stats()
	report.VisitedCount = stats.Visited
	report.IndexedCount = stats.Indexed
	for _, r := range engine.Results() {
		if !r.OK() {
			report.AddFailure(r.URL, r.ErrorMessage)
		}
	}
}

// openStore opens the index store for this session. The returned release
// function closes the store and removes any files it created.
func (s *Session) openStore(ctx context.Context) (index.Store, func(), error) {
	cfg := s.runner.cfg

	if cfg.Store != config.StoreSQLite {
		store := index.NewMemoryStore()
		return store, func() { s.closeStore(store) }, nil
	}

	dir := ""
	if cfg.DBDir != "" {
		dir = filepath.Join(cfg.DBDir, s.ID)
	}
	store, err := index.OpenSQLite(ctx, dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open index database: %w", err)
	}
	s.logger.Debug("index database opened", "path", store.Path())

	return store, func() {
		s.closeStore(store)
		if dir == "" {
			return
		}
		if err := os.RemoveAll(dir); err != nil {
			s.logger.Warn("failed to remove index database", "path", dir, "error", err)
		}
	}, nil
}

func (s *Session) closeStore(store index.Store) {
	if n, err := store.Len(context.Background()); err == nil {
		s.runner.metrics.ReleaseIndex(n)
	}
	if err := store.Close(); err != nil && !errors.Is(err, index.ErrStoreClosed) {
		s.logger.Warn("failed to close index store", "error", err)
	}
}
