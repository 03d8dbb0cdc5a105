// Package views renders the site's pages as templ components. Components
// are built programmatically: each one writes HTML into a buffer and is
// wrapped in templ.ComponentFunc.
package views

// SiteConfig holds site-wide settings the templates need.
// Every handler passes this so nothing is hardcoded in markup.
type SiteConfig struct {
	Name        string // e.g. "iU 学友会"
	URL         string // canonical base URL
	Description string
}

// PageMeta carries per-page document metadata into the <head>.
type PageMeta struct {
	Title       string
	Description string
	Keywords    string
	Path        string // canonical path, joined onto SiteConfig.URL
	OGType      string // "website" or "article"
}
