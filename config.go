package blogfront

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// SiteConfig holds all configuration for the blog front-end.
type SiteConfig struct {
	Name        string `yaml:"name"`        // Site name (default "iU 学友会")
	URL         string `yaml:"url"`         // Canonical URL (default "http://localhost:3000")
	Description string `yaml:"description"` // Site description for RSS and meta tags

	Addr string `yaml:"addr"` // Listen address (default ":3000")

	CMSBaseURL string `yaml:"cms_base_url"` // Required: content API root, e.g. https://example.microcms.io/api/v1
	CMSAPIKey  string `yaml:"-"`            // Required: content API key (env only)

	// ImageHosts lists hosts the image proxy may fetch from
	// (default the microCMS asset host).
	ImageHosts []string `yaml:"image_hosts"`

	SessionSecret string `yaml:"-"` // Required: session encryption secret (env only)
	CookieSecure  bool   `yaml:"cookie_secure"`

	StatsEnabled      bool   `yaml:"stats_enabled"`
	StatsDatabasePath string `yaml:"stats_database_path"` // SQLite path (default "data/stats.db")
	StatsToken        string `yaml:"-"`                   // Bearer token for /stats.json (env only)

	CategoryCacheTTL time.Duration `yaml:"category_cache_ttl"` // Header menu cache TTL (default 5min)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "iU 学友会"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if len(c.ImageHosts) == 0 {
		c.ImageHosts = []string{"images.microcms-assets.io"}
	}
	if c.StatsDatabasePath == "" {
		c.StatsDatabasePath = "data/stats.db"
	}
	if c.CategoryCacheTTL == 0 {
		c.CategoryCacheTTL = 5 * time.Minute
	}
}

// LoadConfig assembles a SiteConfig from an optional site.yaml overlaid
// with environment variables. A .env file is loaded first when present.
// Env vars win over the yaml file; secrets are env-only.
func LoadConfig() (SiteConfig, error) {
	godotenv.Load() // best effort; env may already be set

	var cfg SiteConfig

	path := EnvOr("SITE_CONFIG", "site.yaml")
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return SiteConfig{}, err
		}
	}

	if v := os.Getenv("SITE_NAME"); v != "" {
		cfg.Name = v
	}
	if v := os.Getenv("SITE_URL"); v != "" {
		cfg.URL = v
	}
	if v := os.Getenv("SITE_DESCRIPTION"); v != "" {
		cfg.Description = v
	}
	if v := os.Getenv("ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("CMS_BASE_URL"); v != "" {
		cfg.CMSBaseURL = v
	}
	if v := os.Getenv("IMAGE_HOSTS"); v != "" {
		cfg.ImageHosts = splitHosts(v)
	}
	cfg.CMSAPIKey = os.Getenv("CMS_API_KEY")
	cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	cfg.StatsToken = os.Getenv("STATS_TOKEN")
	if v := os.Getenv("STATS_ENABLED"); v != "" {
		cfg.StatsEnabled = v == "true" || v == "1"
	}
	if v := os.Getenv("COOKIE_SECURE"); v != "" {
		cfg.CookieSecure = v == "true" || v == "1"
	}

	cfg.setDefaults()
	return cfg, nil
}

func splitHosts(s string) []string {
	var hosts []string
	for _, h := range strings.Split(s, ",") {
		if h = strings.TrimSpace(h); h != "" {
			hosts = append(hosts, h)
		}
	}
	return hosts
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}
