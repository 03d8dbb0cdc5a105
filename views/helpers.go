package views

import (
	"bytes"
	"html"
	"net/url"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/iu-gakuyukai/blogfront/cms"
)

// keywordBase is the fixed first meta keyword on category pages.
const keywordBase = "学友会"

func escape(s string) string {
	return html.EscapeString(s)
}

// buildURL joins path segments onto a base URL.
func buildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	return u.String()
}

// CategoryTitle formats the document title for a category page:
// "{name} のカテゴリ | {site}", or "カテゴリ | {site}" when the
// category is unknown.
func CategoryTitle(cat *cms.Category, siteName string) string {
	if cat != nil && cat.Name != "" {
		return cat.Name + " のカテゴリ | " + siteName
	}
	return "カテゴリ | " + siteName
}

// CategoryKeywords formats the meta keywords for a category page:
// "学友会, {name}", with the name left empty when unknown.
func CategoryKeywords(cat *cms.Category) string {
	name := ""
	if cat != nil {
		name = cat.Name
	}
	return keywordBase + ", " + name
}

var (
	reTags = regexp.MustCompile(`<[^>]*>`)
	reWS   = regexp.MustCompile(`\s+`)
)

// Summary returns a short plain-text summary of a post: its description
// when set, otherwise the body stripped of markup and truncated.
func Summary(p cms.Post) string {
	if p.Description != "" {
		return p.Description
	}
	text := html.UnescapeString(reTags.ReplaceAllString(p.Body, " "))
	text = strings.TrimSpace(reWS.ReplaceAllString(text, " "))
	return truncate(text, 120)
}

func truncate(s string, max int) string {
	rs := []rune(s)
	if len(rs) <= max {
		return s
	}
	return string(rs[:max]) + "…"
}

func formatDate(p cms.Post) string {
	if p.PublishedAt.IsZero() {
		return ""
	}
	return p.PublishedAt.Format("2006.01.02")
}

// imageSrc builds an image-proxy URL for a CMS image at the given width.
func imageSrc(img *cms.Image, width int) string {
	q := url.Values{}
	q.Set("url", img.URL)
	q.Set("w", strconv.Itoa(width))
	return "/img?" + q.Encode()
}

// writePostList renders an ordered list of post summaries.
func writePostList(buf *bytes.Buffer, posts []cms.Post) {
	buf.WriteString(`<ol class="post-list">`)
	for _, p := range posts {
		buf.WriteString(`<li>`)
		if p.Eyecatch != nil {
			buf.WriteString(`<img class="post-thumb" src="` + escape(imageSrc(p.Eyecatch, 480)) + `" alt="" loading="lazy">`)
		}
		buf.WriteString(`<a href="/blog/` + escape(url.PathEscape(p.ID)) + `">` + escape(p.Title) + `</a>`)
		if d := formatDate(p); d != "" {
			buf.WriteString(`<span class="post-date">` + d + `</span>`)
		}
		if s := Summary(p); s != "" {
			buf.WriteString(`<p>` + escape(s) + `</p>`)
		}
		buf.WriteString(`</li>`)
	}
	buf.WriteString(`</ol>`)
}
