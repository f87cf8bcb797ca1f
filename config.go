package agencia

import (
	"strings"
	"time"
)

// SiteConfig holds all configuration for an agencia site.
type SiteConfig struct {
	Name        string // Site name (default "4FTech")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for the feed and page heads
	Author      string // Author name for the feed

	Addr          string // Listen address (default ":3000")
	ContentDir    string // Blog content root (default "content")
	UploadDir     string // Image upload directory (default "public/uploads/blogs/images")
	UploadURLPath string // URL prefix uploads are served under (default "/uploads/blogs/images")

	// AdminEmails is the authorized-email allow-list consumed by the
	// access gate. Matching is case-insensitive. This is the single
	// source of truth; nothing else carries its own copy.
	AdminEmails []string

	SessionSecret string // Required: session cookie encryption secret
	CookieSecure  bool   // Set true for HTTPS

	AnalyticsEnabled      bool   // Enable page-view analytics
	AnalyticsDatabasePath string // Analytics SQLite path (default "data/analytics.db")

	PostCacheTTL time.Duration // Post cache TTL (default 5min)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "4FTech"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content"
	}
	if c.UploadDir == "" {
		c.UploadDir = "public/uploads/blogs/images"
	}
	if c.UploadURLPath == "" {
		c.UploadURLPath = "/uploads/blogs/images"
	}
	if c.AnalyticsDatabasePath == "" {
		c.AnalyticsDatabasePath = "data/analytics.db"
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
}

// emailSet lowers and indexes the allow-list for membership tests.
func emailSet(emails []string) map[string]bool {
	set := make(map[string]bool, len(emails))
	for _, e := range emails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			set[e] = true
		}
	}
	return set
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes before the server
// starts. This is the extension point where the host wires its identity
// provider callback, which should end by calling SetSessionEmail.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}
