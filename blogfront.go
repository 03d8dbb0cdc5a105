// Package blogfront is the web front-end for the iU 学友会 blog, built with
// Go, Echo, and templ. Content lives in a headless CMS; every page render
// fetches the data it needs through the cms client and writes complete HTML.
package blogfront

import (
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/iu-gakuyukai/blogfront/cms"
	"github.com/iu-gakuyukai/blogfront/stats"
	"github.com/iu-gakuyukai/blogfront/views"
)

// App is the central application. It wires together the CMS client,
// category cache, stats store, middleware, and routes.
type App struct {
	Config     SiteConfig
	Echo       *echo.Echo
	CMS        *cms.Client
	Categories *categoryCache
	Stats      *stats.Store

	imgLimiter   *ipLimiter
	customRoutes []func(*App)
	staticDir    string
}

// New creates a new App with the given configuration.
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

// Start initializes the CMS client, caches, middleware, and routes, and
// starts the server. It blocks until the server stops.
func (a *App) Start() error {
	if a.Config.CMSBaseURL == "" {
		return fmt.Errorf("blogfront: CMSBaseURL is required")
	}
	if a.Config.CMSAPIKey == "" {
		return fmt.Errorf("blogfront: CMSAPIKey is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("blogfront: SessionSecret is required")
	}

	a.CMS = cms.New(a.Config.CMSBaseURL, a.Config.CMSAPIKey)
	a.Categories = newCategoryCache(a.CMS, a.Config.CategoryCacheTTL)
	a.imgLimiter = newIPLimiter(30, imageLimitWindow)

	if a.Config.StatsEnabled {
		store, err := stats.NewStore(a.Config.StatsDatabasePath)
		if err != nil {
			return fmt.Errorf("blogfront: init stats store: %w", err)
		}
		a.Stats = store
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Embedded front-end assets (menu.js, site.css) served under /public/,
	// falling through to the user's static dir for everything else.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/menu.js", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))
	e.GET("/public/site.css", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	e.GET("/", a.handleHome)
	e.GET("/blog/category/:categoryId", a.handleCategory)
	e.GET("/blog/search", a.handleSearch)
	e.GET("/blog/:postId", a.handlePost)

	e.GET("/img", a.handleImage)
	e.GET("/stats.json", a.handleStatsJSON)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Stats != nil {
		return a.Stats.Close()
	}
	return nil
}

// viewConfig projects SiteConfig into the subset templates need.
func (a *App) viewConfig() views.SiteConfig {
	return views.SiteConfig{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
	}
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("blogfront: required environment variable %s is not set", key)
	}
	return v
}
