package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is used for XDG directory names.
	AppName = "sitegrep"

	// DefaultTimeout bounds one HTTP request, including reading the body.
	DefaultTimeout = 30 * time.Second

	// DefaultBatchSize is the number of seeds crawled concurrently.
	// Each seed is an independent session; pages within a session are
	// still fetched one at a time.
	DefaultBatchSize = 4

	// DefaultUserAgent identifies sitegrep in HTTP requests.
	DefaultUserAgent = "sitegrep/1.0 (+https://github.com/nao1215/sitegrep)"

	// DefaultMaxBodySize caps the bytes read from one response.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB
)

// Index store kinds.
const (
	// StoreMemory keeps page text in a map. It is the default.
	StoreMemory = "memory"

	// StoreSQLite keeps page text in a scratch SQLite database under DBDir.
	// The database is recreated for every session.
	StoreSQLite = "sqlite"
)

// Log output formats.
const (
	// LogFormatText writes logfmt-style key=value lines. It is the default.
	LogFormatText = "text"

	// LogFormatJSON writes one JSON object per log record.
	LogFormatJSON = "json"
)

// Config holds all options for one sitegrep run.
// It is populated from CLI flags and passed down explicitly.
type Config struct {
	// Seeds are the start URLs. Each seed is crawled in its own session
	// with the seed itself as the scope.
	Seeds []string

	// Keyword is searched for, ignoring case, once crawling finishes.
	Keyword string

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration

	// UserAgent is sent with every request unless a site overrides it.
	UserAgent string

	// MaxBodySize is the maximum number of response bytes read per page.
	// Longer bodies are truncated. Zero means DefaultMaxBodySize.
	MaxBodySize int64

	// ProxyAddress routes requests through a SOCKS5 proxy when set.
	// Accepts "host:port" or "socks5://[user:pass@]host:port".
	ProxyAddress string

	// Store selects the index backend: StoreMemory or StoreSQLite.
	Store string

	// DBDir is where StoreSQLite databases are created.
	// Defaults to the XDG cache directory.
	DBDir string

	// BatchSize is the number of seeds crawled concurrently.
	BatchSize int

	// JSONReport writes the report as JSON.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport writes the report as Markdown.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile writes the report to a file instead of stdout.
	ReportFile string

	// TeeReport also prints the report to stdout when ReportFile is set.
	TeeReport bool

	// MetricsFile writes Prometheus metrics in textfile format after the
	// run when set.
	MetricsFile string

	// Verbose enables debug logging.
	Verbose bool

	// LogFormat is LogFormatText or LogFormatJSON.
	LogFormat string

	// ConfigFilePath is the --config value. Empty means search the default
	// locations.
	ConfigFilePath string

	// SiteConfigs holds the loaded .sitegrep file, or nil.
	SiteConfigs *File
}

// NewConfig returns a Config with default values.
func NewConfig() *Config {
	return &Config{
		Timeout:     DefaultTimeout,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
		Store:       StoreMemory,
		DBDir:       XDGCacheDir(),
		BatchSize:   DefaultBatchSize,
		LogFormat:   LogFormatText,
	}
}

// XDGConfigDir returns the sitegrep directory under XDG_CONFIG_HOME.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGCacheDir returns the sitegrep directory under XDG_CACHE_HOME.
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// EffectiveMaxBodySize returns MaxBodySize, or DefaultMaxBodySize if unset.
func (c *Config) EffectiveMaxBodySize() int64 {
	if c.MaxBodySize <= 0 {
		return DefaultMaxBodySize
	}
	return c.MaxBodySize
}

// Validate returns the first problem found in c.
func (c *Config) Validate() error {
	if len(c.Seeds) == 0 {
		return ErrNoSeed
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	switch c.Store {
	case StoreMemory, StoreSQLite:
	default:
		return ErrInvalidStore
	}
	switch c.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return ErrInvalidLogFormat
	}
	if c.TeeReport && c.ReportFile == "" {
		return ErrTeeWithoutOutput
	}
	return nil
}
