package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/sitegrep/internal/config"
	"github.com/nao1215/sitegrep/internal/model"
	"golang.org/x/sync/errgroup"
)

// Batch runs one session per seed with bounded concurrency.
type Batch struct {
	runner      *Runner
	concurrency int
	logger      *slog.Logger
}

// BatchOption configures a Batch.
type BatchOption func(*Batch)

// WithConcurrency sets the number of sessions run at once.
// Values < 1 are ignored.
func WithConcurrency(n int) BatchOption {
	return func(b *Batch) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithBatchLogger sets the logger for batch progress.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *Batch) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBatch creates a Batch running sessions from runner.
func NewBatch(runner *Runner, opts ...BatchOption) *Batch {
	b := &Batch{
		runner:      runner,
		concurrency: config.DefaultBatchSize,
		logger:      runner.logger,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run crawls every seed and returns one report per seed, in seed order.
// A failing session does not stop the others; its report carries the
// error. The returned error is ctx.Err() if the batch was cancelled.
func (b *Batch) Run(ctx context.Context, seeds []string) ([]*model.SearchReport, error) {
	reports := make([]*model.SearchReport, len(seeds))
	err := b.RunWithCallback(ctx, seeds, func(r *model.SearchReport, i int) {
		reports[i] = r
	})
	return reports, err
}

// RunWithCallback is Run, calling callback as each session finishes.
// callback may be called concurrently, once per seed index.
func (b *Batch) RunWithCallback(
	ctx context.Context,
	seeds []string,
	callback func(report *model.SearchReport, index int),
) error {
	b.logger.Debug("starting batch",
		"seeds", len(seeds),
		"concurrency", b.concurrency,
	)
	start := time.Now()

	var g errgroup.Group
	g.SetLimit(b.concurrency)

	for i, seed := range seeds {
		g.Go(func() error {
			s := b.runner.NewSession(seed)

			if err := ctx.Err(); err != nil {
				report := model.NewSearchReport(s.ID, seed, s.Keyword)
				report.Interrupted = true
				report.Error = err.Error()
				callback(report, i)
				return nil
			}

			report, err := s.Run(ctx)
			if err != nil {
				b.logger.Warn("session failed",
					"seed", seed,
					"error", err,
				)
			}
			callback(report, i)
			return nil
		})
	}

	_ = g.Wait() //nolint:errcheck // sessions record their errors in reports

	b.logger.Debug("batch complete",
		"seeds", len(seeds),
		"elapsed", time.Since(start),
	)
	return ctx.Err()
}
