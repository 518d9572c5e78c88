package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/nao1215/sitegrep/internal/config"
	"golang.org/x/net/html/charset"
)

// HTTPFetcher fetches pages over HTTP. It implements crawler.Fetcher.
// One HTTPFetcher keeps one cookie jar, so it should serve a single crawl
// session.
type HTTPFetcher struct {
	client      *http.Client
	maxBodySize int64
	logger      *slog.Logger

	timeout      time.Duration
	userAgent    string
	proxyAddress string
	sites        *config.File
	transport    http.RoundTripper
}

// FetcherOption configures an HTTPFetcher.
type FetcherOption func(*HTTPFetcher)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *HTTPFetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the default User-Agent.
func WithUserAgent(ua string) FetcherOption {
	return func(f *HTTPFetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize caps the bytes read per response. Values <= 0 select
// config.DefaultMaxBodySize.
func WithMaxBodySize(n int64) FetcherOption {
	return func(f *HTTPFetcher) {
		f.maxBodySize = n
	}
}

// WithProxy routes requests through a SOCKS5 proxy.
func WithProxy(address string) FetcherOption {
	return func(f *HTTPFetcher) {
		f.proxyAddress = address
	}
}

// WithSiteConfig applies per-host cookies, headers and User-Agents.
func WithSiteConfig(sites *config.File) FetcherOption {
	return func(f *HTTPFetcher) {
		f.sites = sites
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) FetcherOption {
	return func(f *HTTPFetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithTransport replaces the base transport. The proxy option is ignored
// when a transport is given.
func WithTransport(rt http.RoundTripper) FetcherOption {
	return func(f *HTTPFetcher) {
		f.transport = rt
	}
}

// NewHTTPFetcher creates an HTTPFetcher. It fails only for an invalid
// proxy address.
func NewHTTPFetcher(opts ...FetcherOption) (*HTTPFetcher, error) {
	f := &HTTPFetcher{
		timeout:     config.DefaultTimeout,
		userAgent:   config.DefaultUserAgent,
		maxBodySize: config.DefaultMaxBodySize,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.maxBodySize <= 0 {
		f.maxBodySize = config.DefaultMaxBodySize
	}

	base := f.transport
	if base == nil {
		t, err := newTransport(f.proxyAddress)
		if err != nil {
			return nil, err
		}
		base = t
	}

	jar, _ := cookiejar.New(nil) //nolint:errcheck // cookiejar.New only fails with invalid options

	f.client = &http.Client{
		Transport: &siteTransport{
			base:      base,
			sites:     f.sites,
			userAgent: f.userAgent,
		},
		Timeout:       f.timeout,
		Jar:           jar,
		CheckRedirect: checkRedirect,
	}
	return f, nil
}

// Fetch returns the body of rawURL decoded to UTF-8.
// Transport errors are returned as is so their message can be reported
// verbatim. Error statuses such as 404 or 500 return the error page body.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		f.logger.Debug("page returned error status",
			"url", rawURL,
			"status", resp.StatusCode,
		)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	return decodeBody(data, resp.Header.Get("Content-Type")), nil
}

// decodeBody converts data to UTF-8 using the charset from contentType,
// a BOM or a <meta> tag, in the order the HTML standard specifies.
func decodeBody(data []byte, contentType string) string {
	enc, name, _ := charset.DetermineEncoding(data, contentType)
	if name == "utf-8" {
		return string(bytes.ToValidUTF8(data, []byte("\uFFFD")))
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}
