package views

import (
	"bytes"
	"context"
	"io"
	"net/url"

	"github.com/a-h/templ"

	"github.com/iu-gakuyukai/blogfront/cms"
)

// page wraps a body writer in the full document chrome: head metadata,
// site header with category navigation, footer, and scripts.
// searchQuery is the current search text; both search forms (desktop
// inline and mobile overlay) render the same value.
func page(cfg SiteConfig, meta PageMeta, cats []cms.Category, searchQuery string, body func(*bytes.Buffer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer

		buf.WriteString(`<!DOCTYPE html><html lang="ja"><head>`)
		buf.WriteString(`<meta charset="utf-8">`)
		buf.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		buf.WriteString(`<title>` + escape(meta.Title) + `</title>`)
		buf.WriteString(`<meta name="description" content="` + escape(meta.Description) + `">`)
		if meta.Keywords != "" {
			buf.WriteString(`<meta name="keywords" content="` + escape(meta.Keywords) + `">`)
		}
		ogType := meta.OGType
		if ogType == "" {
			ogType = "website"
		}
		canonical := buildURL(cfg.URL, meta.Path)
		buf.WriteString(`<meta property="og:title" content="` + escape(meta.Title) + `">`)
		buf.WriteString(`<meta property="og:type" content="` + escape(ogType) + `">`)
		buf.WriteString(`<meta property="og:url" content="` + escape(canonical) + `">`)
		buf.WriteString(`<link rel="canonical" href="` + escape(canonical) + `">`)
		buf.WriteString(`<link rel="stylesheet" href="/public/site.css">`)
		buf.WriteString(`</head><body>`)

		writeSiteHeader(&buf, cfg, cats, searchQuery)

		buf.WriteString(`<main>`)
		body(&buf)
		buf.WriteString(`</main>`)

		buf.WriteString(`<footer class="site-footer">&copy; ` + escape(cfg.Name) + `</footer>`)
		buf.WriteString(`<script src="/public/menu.js" defer></script>`)
		buf.WriteString(`</body></html>`)

		_, err := w.Write(buf.Bytes())
		return err
	})
}

// writeSiteHeader renders the site header: logo, desktop category nav
// with inline search, hamburger button, and the mobile overlay menu.
// The two search forms share one query value and one submit target.
func writeSiteHeader(buf *bytes.Buffer, cfg SiteConfig, cats []cms.Category, searchQuery string) {
	buf.WriteString(`<header class="site-header">`)
	buf.WriteString(`<a class="logo" href="/">` + escape(cfg.Name) + `</a>`)

	buf.WriteString(`<nav class="nav-desktop">`)
	writeCategoryLinks(buf, cats, "")
	writeSearchForm(buf, searchQuery)
	buf.WriteString(`</nav>`)

	buf.WriteString(`<button id="menu-open" class="hamburger" type="button" aria-label="メニューを開く">☰</button>`)
	buf.WriteString(`</header>`)

	buf.WriteString(`<div id="mobile-menu" class="mobile-menu">`)
	buf.WriteString(`<div class="menu-overlay" data-menu-close></div>`)
	buf.WriteString(`<div class="menu-panel">`)
	buf.WriteString(`<button class="menu-close" type="button" data-menu-close aria-label="メニューを閉じる">×</button>`)
	writeSearchForm(buf, searchQuery)
	buf.WriteString(`<nav>`)
	writeCategoryLinks(buf, cats, "menu-link")
	buf.WriteString(`</nav>`)
	buf.WriteString(`</div></div>`)
}

func writeCategoryLinks(buf *bytes.Buffer, cats []cms.Category, class string) {
	for _, cat := range cats {
		buf.WriteString(`<a`)
		if class != "" {
			buf.WriteString(` class="` + class + `"`)
		}
		buf.WriteString(` href="/blog/category/` + escape(url.PathEscape(cat.ID)) + `">` + escape(cat.Name) + `</a>`)
	}
}

func writeSearchForm(buf *bytes.Buffer, searchQuery string) {
	buf.WriteString(`<form class="search-form" action="/blog/search" method="get" role="search">`)
	buf.WriteString(`<input type="search" name="query" placeholder="検索" value="` + escape(searchQuery) + `">`)
	buf.WriteString(`</form>`)
}
