package views

import (
	"bytes"
	"net/url"

	"github.com/a-h/templ"

	"github.com/iu-gakuyukai/blogfront/cms"
)

// PostPage renders a single post. The body arrives from the CMS rich
// editor as sanitized HTML and is written through unescaped.
func PostPage(cfg SiteConfig, cats []cms.Category, post cms.Post) templ.Component {
	meta := PageMeta{
		Title:       post.Title + " | " + cfg.Name,
		Description: Summary(post),
		Path:        "/blog/" + post.ID,
		OGType:      "article",
	}
	return page(cfg, meta, cats, "", func(buf *bytes.Buffer) {
		buf.WriteString(`<article class="post">`)
		buf.WriteString(`<h1>` + escape(post.Title) + `</h1>`)
		if d := formatDate(post); d != "" {
			buf.WriteString(`<p class="post-date">` + d + `</p>`)
		}
		if post.Category != nil {
			buf.WriteString(`<a class="post-category" href="/blog/category/` + escape(url.PathEscape(post.Category.ID)) + `">` + escape(post.Category.Name) + `</a>`)
		}
		if post.Eyecatch != nil {
			buf.WriteString(`<img class="post-eyecatch" src="` + escape(imageSrc(post.Eyecatch, 800)) + `" alt="">`)
		}
		buf.WriteString(`<div class="post-body">`)
		buf.WriteString(post.Body)
		buf.WriteString(`</div>`)
		buf.WriteString(`</article>`)
	})
}
