package config

import (
	"maps"
	"net/url"
	"strings"
)

// SiteConfig customizes requests to one host.
type SiteConfig struct {
	// Cookie is sent as the Cookie header.
	// Format: "name=value" or "name1=value1; name2=value2".
	Cookie string `yaml:"cookie,omitempty"`

	// Headers are added to every request.
	Headers map[string]string `yaml:"headers,omitempty"`

	// UserAgent overrides Config.UserAgent.
	UserAgent string `yaml:"userAgent,omitempty"`
}

// File is the structure of the .sitegrep configuration file.
type File struct {
	// Sites maps a host ("example.com" or "example.com:8080") to its
	// configuration.
	Sites map[string]SiteConfig `yaml:"sites,omitempty"`

	// Defaults apply to every host unless overridden in Sites.
	Defaults SiteConfig `yaml:"defaults,omitempty"`
}

// GetSiteConfig returns the configuration for host, merged over Defaults.
// Host matching ignores case. Site headers are added to the default
// headers, replacing those with the same name.
func (cf *File) GetSiteConfig(host string) SiteConfig {
	if cf == nil {
		return SiteConfig{}
	}

	result := cf.Defaults
	result.Headers = maps.Clone(cf.Defaults.Headers)

	site, ok := cf.lookup(host)
	if !ok {
		return result
	}

	if site.Cookie != "" {
		result.Cookie = site.Cookie
	}
	if site.UserAgent != "" {
		result.UserAgent = site.UserAgent
	}
	if len(site.Headers) > 0 {
		if result.Headers == nil {
			result.Headers = make(map[string]string, len(site.Headers))
		}
		maps.Copy(result.Headers, site.Headers)
	}
	return result
}

// SiteConfigForURL returns the configuration for the host of rawURL.
// Unparseable URLs get the defaults.
func (cf *File) SiteConfigForURL(rawURL string) SiteConfig {
	u, err := url.Parse(rawURL)
	if err != nil {
		return cf.GetSiteConfig("")
	}
	return cf.GetSiteConfig(u.Host)
}

func (cf *File) lookup(host string) (SiteConfig, bool) {
	if site, ok := cf.Sites[host]; ok {
		return site, true
	}
	lower := strings.ToLower(host)
	for k, site := range cf.Sites {
		if strings.ToLower(k) == lower {
			return site, true
		}
	}
	return SiteConfig{}, false
}
