package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestNewConfig pins the defaults so changes to them are deliberate.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.BatchSize != 4 {
		t.Errorf("BatchSize = %d, want 4", cfg.BatchSize)
	}
	if cfg.MaxBodySize != 5*1024*1024 {
		t.Errorf("MaxBodySize = %d, want 5MB", cfg.MaxBodySize)
	}
	if cfg.Store != StoreMemory {
		t.Errorf("Store = %q, want %q", cfg.Store, StoreMemory)
	}
	if cfg.LogFormat != LogFormatText {
		t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, LogFormatText)
	}
	if cfg.UserAgent != DefaultUserAgent {
		t.Errorf("UserAgent = %q", cfg.UserAgent)
	}
	if cfg.DBDir != XDGCacheDir() {
		t.Errorf("DBDir = %q, want %q", cfg.DBDir, XDGCacheDir())
	}
	if cfg.ProxyAddress != "" {
		t.Errorf("ProxyAddress = %q, want empty", cfg.ProxyAddress)
	}
	if cfg.JSONReport || cfg.MarkdownReport || cfg.Verbose {
		t.Error("expected report flags and verbose to be off")
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	validConfig := func() *Config {
		cfg := NewConfig()
		cfg.Seeds = []string{"https://example.com"}
		return cfg
	}

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{name: "valid config", modify: func(*Config) {}},
		{name: "no seeds", modify: func(c *Config) { c.Seeds = nil }, wantErr: ErrNoSeed},
		{name: "zero timeout", modify: func(c *Config) { c.Timeout = 0 }, wantErr: ErrInvalidTimeout},
		{name: "negative timeout", modify: func(c *Config) { c.Timeout = -time.Second }, wantErr: ErrInvalidTimeout},
		{name: "zero batch size", modify: func(c *Config) { c.BatchSize = 0 }, wantErr: ErrInvalidBatchSize},
		{
			name:    "json and markdown",
			modify:  func(c *Config) { c.JSONReport, c.MarkdownReport = true, true },
			wantErr: ErrConflictingReportFormats,
		},
		{name: "json only", modify: func(c *Config) { c.JSONReport = true }},
		{name: "negative body size", modify: func(c *Config) { c.MaxBodySize = -1 }, wantErr: ErrInvalidMaxBodySize},
		{name: "zero body size", modify: func(c *Config) { c.MaxBodySize = 0 }},
		{name: "sqlite store", modify: func(c *Config) { c.Store = StoreSQLite }},
		{name: "unknown store", modify: func(c *Config) { c.Store = "redis" }, wantErr: ErrInvalidStore},
		{name: "empty store", modify: func(c *Config) { c.Store = "" }, wantErr: ErrInvalidStore},
		{name: "empty seed string is allowed", modify: func(c *Config) { c.Seeds = []string{""} }},
		{name: "json log format", modify: func(c *Config) { c.LogFormat = LogFormatJSON }},
		{name: "unknown log format", modify: func(c *Config) { c.LogFormat = "xml" }, wantErr: ErrInvalidLogFormat},
		{name: "tee with output", modify: func(c *Config) { c.TeeReport = true; c.ReportFile = "out.txt" }},
		{name: "tee without output", modify: func(c *Config) { c.TeeReport = true }, wantErr: ErrTeeWithoutOutput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.modify(cfg)
			err := cfg.Validate()

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEffectiveMaxBodySize(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	cfg.MaxBodySize = 0
	if got := cfg.EffectiveMaxBodySize(); got != DefaultMaxBodySize {
		t.Errorf("got %d, want default", got)
	}
	cfg.MaxBodySize = 1024
	if got := cfg.EffectiveMaxBodySize(); got != 1024 {
		t.Errorf("got %d, want 1024", got)
	}
}

func TestFileGetSiteConfig(t *testing.T) {
	t.Parallel()

	cf := &File{
		Defaults: SiteConfig{
			Cookie:    "lang=en",
			UserAgent: "default-agent",
			Headers:   map[string]string{"Accept-Language": "en", "X-Team": "docs"},
		},
		Sites: map[string]SiteConfig{
			"example.com": {
				Cookie:  "sid=abc",
				Headers: map[string]string{"X-Team": "search"},
			},
			"Intranet.Local:8080": {
				UserAgent: "intranet-agent",
			},
		},
	}

	t.Run("site overrides defaults", func(t *testing.T) {
		t.Parallel()

		got := cf.GetSiteConfig("example.com")
		if got.Cookie != "sid=abc" {
			t.Errorf("Cookie = %q", got.Cookie)
		}
		if got.UserAgent != "default-agent" {
			t.Errorf("UserAgent = %q", got.UserAgent)
		}
		if got.Headers["X-Team"] != "search" || got.Headers["Accept-Language"] != "en" {
			t.Errorf("Headers = %v", got.Headers)
		}
	})

	t.Run("merging does not modify defaults", func(t *testing.T) {
		t.Parallel()

		_ = cf.GetSiteConfig("example.com")
		if cf.Defaults.Headers["X-Team"] != "docs" {
			t.Errorf("defaults modified: %v", cf.Defaults.Headers)
		}
	})

	t.Run("unknown host gets defaults", func(t *testing.T) {
		t.Parallel()

		got := cf.GetSiteConfig("other.org")
		if got.Cookie != "lang=en" || got.UserAgent != "default-agent" {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("host match ignores case", func(t *testing.T) {
		t.Parallel()

		got := cf.GetSiteConfig("intranet.local:8080")
		if got.UserAgent != "intranet-agent" {
			t.Errorf("UserAgent = %q", got.UserAgent)
		}
	})

	t.Run("lookup by URL", func(t *testing.T) {
		t.Parallel()

		got := cf.SiteConfigForURL("https://example.com/docs/intro")
		if got.Cookie != "sid=abc" {
			t.Errorf("Cookie = %q", got.Cookie)
		}
		bad := cf.SiteConfigForURL("http://[::1")
		if bad.Cookie != "lang=en" {
			t.Errorf("unparseable URL should get defaults, got %+v", bad)
		}
	})

	t.Run("nil file", func(t *testing.T) {
		t.Parallel()

		var nilFile *File
		got := nilFile.GetSiteConfig("example.com")
		if got.Cookie != "" || got.Headers != nil {
			t.Errorf("expected zero SiteConfig, got %+v", got)
		}
	})
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadConfigFile(filepath.Join(t.TempDir(), ".sitegrep"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("expected ErrConfigNotFound, got %v", err)
		}
		if cfg != nil {
			t.Error("expected nil config")
		}
	})

	t.Run("valid YAML", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".sitegrep")
		content := `defaults:
  userAgent: "my-agent/1.0"
sites:
  docs.example.com:
    cookie: "sid=xyz"
    headers:
      Authorization: "Token abc"
`
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cfg, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Defaults.UserAgent != "my-agent/1.0" {
			t.Errorf("default userAgent = %q", cfg.Defaults.UserAgent)
		}
		site, ok := cfg.Sites["docs.example.com"]
		if !ok {
			t.Fatal("expected docs.example.com in sites")
		}
		if site.Cookie != "sid=xyz" || site.Headers["Authorization"] != "Token abc" {
			t.Errorf("site = %+v", site)
		}
	})

	t.Run("invalid YAML", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".sitegrep")
		if err := os.WriteFile(path, []byte("invalid: yaml: content: [}"), 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		_, err := LoadConfigFile(path)
		if err == nil {
			t.Fatal("expected error for invalid YAML")
		}
		if !strings.Contains(err.Error(), "failed to parse config file") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("empty sites initialized", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".sitegrep")
		if err := os.WriteFile(path, []byte("defaults:\n  cookie: a=b\n"), 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cfg, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Sites == nil {
			t.Error("expected Sites map to be initialized")
		}
	})
}

func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit path", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(path, []byte("defaults: {}"), 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if got := FindConfigFile(path); got != path {
			t.Errorf("FindConfigFile = %q, want %q", got, path)
		}
	})

	t.Run("missing explicit path does not fall back", func(t *testing.T) {
		t.Parallel()

		if got := FindConfigFile(filepath.Join(t.TempDir(), "missing.yaml")); got != "" {
			t.Errorf("FindConfigFile = %q, want empty", got)
		}
	})

	t.Run("directory is not a config file", func(t *testing.T) {
		t.Parallel()

		if got := FindConfigFile(t.TempDir()); got != "" {
			t.Errorf("FindConfigFile = %q, want empty", got)
		}
	})
}

func TestXDGDirs(t *testing.T) {
	t.Parallel()

	for name, dir := range map[string]string{
		"config": XDGConfigDir(),
		"cache":  XDGCacheDir(),
	} {
		if dir == "" {
			t.Errorf("%s dir is empty", name)
		}
		if filepath.Base(dir) != AppName {
			t.Errorf("%s dir %q does not end in %s", name, dir, AppName)
		}
	}
}
