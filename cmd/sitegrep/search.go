package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/nao1215/sitegrep/internal/config"
	"github.com/nao1215/sitegrep/internal/fetch"
	"github.com/nao1215/sitegrep/internal/log"
	"github.com/nao1215/sitegrep/internal/metrics"
	"github.com/nao1215/sitegrep/internal/model"
	"github.com/nao1215/sitegrep/internal/report"
	"github.com/nao1215/sitegrep/internal/session"
	"github.com/spf13/cobra"
)

// NewSearchCmd creates the search command.
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <keyword> <seed-url>...",
		Short: "Crawl seed URLs and list pages containing a keyword",
		Long: `Search crawls each seed URL and prints the pages whose text contains the
keyword, ignoring case.

Only links whose absolute URL starts with the seed are followed. Every page
is fetched at most once. Pages that fail to load are reported as
"Error crawling <url>: <reason>" and the crawl continues.

Several seeds are crawled as independent sessions, --batch at a time.

Examples:
  # Search a documentation site
  sitegrep search install https://docs.example.com/

  # Two sites, JSON output written to a file
  sitegrep search -j -o out/result.json tutorial https://a.example/ https://b.example/

  # Through a SOCKS5 proxy, with the index kept in SQLite
  sitegrep search --proxy socks5://127.0.0.1:1080 --store sqlite keyword https://example.com/`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSearchCmd,
	}

	// Fetch flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each request")
	cmd.Flags().String("user-agent", config.DefaultUserAgent,
		"User-Agent header sent with each request")
	cmd.Flags().Int64("max-body-size", config.DefaultMaxBodySize,
		"Maximum bytes read from one response")
	cmd.Flags().String("proxy", "",
		"SOCKS5 proxy address (host:port or socks5://[user:pass@]host:port)")

	// Index flags
	cmd.Flags().String("store", config.StoreMemory,
		"Index backend: memory or sqlite")
	cmd.Flags().String("db-dir", config.XDGCacheDir(),
		"Directory for sqlite index databases (empty means in-memory sqlite)")

	// Batch flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of seeds crawled concurrently")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .sitegrep in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("tee", false,
		"With --output, also print the report to stdout")
	cmd.Flags().String("metrics-file", "",
		"Write Prometheus metrics in textfile format to this path")

	return cmd
}

func runSearchCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := fetch.ValidateProxyAddress(cfg.ProxyAddress); err != nil {
		return err
	}

	logger := newLogger(cfg, cmd.ErrOrStderr())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runSearch(ctx, cfg, logger, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// getLogFormat retrieves the persistent log-format flag.
func getLogFormat(cmd *cobra.Command) string {
	format, err := cmd.Flags().GetString("log-format")
	if err != nil {
		format, err = cmd.Root().PersistentFlags().GetString("log-format")
		if err != nil {
			return config.LogFormatText
		}
	}
	return format
}

// newLogger creates the logger selected by --log-format.
func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	if cfg.LogFormat == config.LogFormatJSON {
		return log.NewJSONLogger(w, cfg.Verbose)
	}
	return log.NewLogger(w, cfg.Verbose)
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.UserAgent, err = cmd.Flags().GetString("user-agent")
	if err != nil {
		return nil, err
	}

	cfg.MaxBodySize, err = cmd.Flags().GetInt64("max-body-size")
	if err != nil {
		return nil, err
	}

	cfg.ProxyAddress, err = cmd.Flags().GetString("proxy")
	if err != nil {
		return nil, err
	}

	cfg.Store, err = cmd.Flags().GetString("store")
	if err != nil {
		return nil, err
	}

	cfg.DBDir, err = cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// An explicit --config path must exist. Without one, a missing file
	// just means no per-site settings.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		cfg.SiteConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	case cfg.ConfigFilePath != "":
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	default:
		cfg.SiteConfigs = &config.File{
			Sites: make(map[string]config.SiteConfig),
		}
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.TeeReport, err = cmd.Flags().GetBool("tee")
	if err != nil {
		return nil, err
	}

	cfg.MetricsFile, err = cmd.Flags().GetString("metrics-file")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)
	cfg.LogFormat = getLogFormat(cmd)

	cfg.Keyword = args[0]
	cfg.Seeds = args[1:]

	return cfg, nil
}

// runSearch crawls every seed, writes the reports and the metrics file.
func runSearch(ctx context.Context, cfg *config.Config, logger *slog.Logger, stdout, stderr io.Writer) error {
	output, closeOutput, err := openOutput(cfg.ReportFile, stdout)
	if err != nil {
		return err
	}
	defer closeOutput()

	var collector *metrics.Collector
	if cfg.MetricsFile != "" {
		collector = metrics.New()
	}

	failures := report.NewFailureWriter(failureOutput(cfg, stdout, stderr))
	runner := session.NewRunner(cfg,
		session.WithFailureReporter(failures),
		session.WithMetrics(collector),
		session.WithLogger(logger),
	)
	batch := session.NewBatch(runner,
		session.WithConcurrency(cfg.BatchSize),
		session.WithBatchLogger(logger),
	)

	startTime := time.Now()
	reports, runErr := batch.Run(ctx, cfg.Seeds)
	logger.Debug("search finished",
		"seeds", len(cfg.Seeds),
		"failures", failures.Count(),
		"elapsed", time.Since(startTime).Round(time.Millisecond))
	if runErr != nil {
		logger.Warn("search interrupted, reporting partial results", "error", runErr)
	}

	writer := newReportWriter(cfg, output)
	if cfg.TeeReport {
		writer = report.NewMultiWriter(writer, newReportWriter(cfg, stdout))
	}
	if err := writeReports(writer, reports); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if collector != nil {
		if err := collector.WriteTextfile(cfg.MetricsFile); err != nil {
			return fmt.Errorf("failed to write metrics file: %w", err)
		}
	}

	return setupError(reports)
}

// failureOutput returns where "Error crawling" lines go. They share
// stdout with the plain report, and move to stderr whenever stdout carries
// a machine-readable report or the report goes to a file.
func failureOutput(cfg *config.Config, stdout, stderr io.Writer) io.Writer {
	if cfg.JSONReport || cfg.MarkdownReport || cfg.ReportFile != "" {
		return stderr
	}
	return stdout
}

// openOutput opens the report destination. Empty path means stdout.
func openOutput(path string, stdout io.Writer) (io.Writer, func(), error) {
	if path == "" {
		return stdout, func() {}, nil
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Reports may quote page URLs with credentials in them.
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600) //nolint:gosec // path comes from the user
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// newReportWriter selects the report format.
func newReportWriter(cfg *config.Config, output io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output)
	default:
		return report.NewSimpleWriter(output,
			report.WithSeedHeader(len(cfg.Seeds) > 1),
			report.WithVerbose(cfg.Verbose))
	}
}

func writeReports(w report.Writer, reports []*model.SearchReport) error {
	var err error
	if len(reports) == 1 {
		_, err = w.Write(reports[0])
	} else {
		_, err = w.WriteAll(reports)
	}
	return err
}

// setupError returns an error when no session could even start, so the
// process exits non-zero. Per-page failures never count.
func setupError(reports []*model.SearchReport) error {
	errs := make([]error, 0, len(reports))
	for _, r := range reports {
		if r.Error == "" || r.Interrupted {
			return nil
		}
		errs = append(errs, fmt.Errorf("%s: %s", r.Seed, r.Error))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("no seed could be searched: %w", errors.Join(errs...))
}
