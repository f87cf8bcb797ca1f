// Package agencia is a marketing-agency site server: public pages, a
// file-backed blog with a generated metadata index, and an
// email-allow-listed admin area for managing posts and uploaded images.
// Authentication is delegated to an external identity provider; this
// package only consumes the verified email claim it leaves in the
// session.
package agencia

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/4ftech/agencia/analytics"
)

// App is the central application. It wires together the content store,
// upload store, cache, access gate and handlers.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Content *ContentStore
	Uploads *UploadStore
	Cache   *PostCache

	authorizedEmails map[string]bool
	uploadLimiter    *uploadLimiter
	analyticsStore   *analytics.Store
	customRoutes     []func(*App)
	staticDir        string
}

// New creates an App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		staticDir: "public",
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Start initializes stores, middleware and routes, then serves.
func (a *App) Start() error {
	if err := a.setup(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// setup wires everything short of listening.
func (a *App) setup() error {
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("agencia: SessionSecret is required")
	}
	if len(a.Config.AdminEmails) == 0 {
		return fmt.Errorf("agencia: AdminEmails is required")
	}
	a.authorizedEmails = emailSet(a.Config.AdminEmails)

	content, err := NewContentStore(a.Config.ContentDir)
	if err != nil {
		return fmt.Errorf("agencia: init content store: %w", err)
	}
	a.Content = content
	a.Uploads = NewUploadStore(a.Config.UploadDir, a.Config.UploadURLPath)
	a.Cache = NewPostCache(content, a.Config.PostCacheTTL)
	a.uploadLimiter = newUploadLimiter(20, time.Minute)

	if a.Config.AnalyticsEnabled {
		store, err := analytics.NewStore(a.Config.AnalyticsDatabasePath)
		if err != nil {
			return fmt.Errorf("agencia: init analytics: %w", err)
		}
		a.analyticsStore = store
	}

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.Static(a.Config.UploadURLPath, a.Config.UploadDir)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	e.GET("/", a.handleHome)
	e.GET("/blog", a.handleBlogIndex)
	e.GET("/blog/:slug", a.handleBlogPost)
	e.GET("/login", a.handleLogin)
	e.GET("/access-denied", a.handleAccessDenied)

	// Admin UI — everything under /admin and /api/admin sits behind the
	// access gate middleware.
	e.GET("/admin", a.handleAdminDashboard)

	api := e.Group("/api/admin")
	api.GET("/posts", a.handleListPosts)
	api.POST("/posts", a.handleCreatePost)
	api.GET("/posts/:slug", a.handleGetPost)
	api.PUT("/posts/:slug", a.handleUpdatePost)
	api.DELETE("/posts/:slug", a.handleDeletePost)
	api.GET("/uploads", a.handleListUploads)
	api.POST("/uploads", a.handleUploadImage)
	api.DELETE("/uploads", a.handleDeleteUpload)
	api.GET("/analytics", a.handleAnalyticsSummary)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.analyticsStore != nil {
		return a.analyticsStore.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback
// if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally
// exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("agencia: required environment variable %s is not set", key)
	}
	return v
}
