// Package session runs crawl-and-search sessions.
//
// A Session crawls one seed with the seed as its scope, searches the
// resulting index for one keyword and returns a model.SearchReport. Every
// session owns a fresh engine, fetcher (and cookie jar) and index store;
// nothing is shared between sessions except the failure reporter, the
// metrics collector and the logger, all of which are safe for concurrent
// use.
//
// A Batch runs several sessions concurrently with errgroup, bounded by
// the configured batch size. Pages within one session are still fetched
// one at a time.
//
// # Usage
//
//	runner := session.NewRunner(cfg,
//	    session.WithFailureReporter(report.NewFailureWriter(os.Stdout)),
//	    session.WithLogger(logger),
//	)
//	reports, err := session.NewBatch(runner, session.WithConcurrency(cfg.BatchSize)).
//	    Run(ctx, cfg.Seeds)
package session
