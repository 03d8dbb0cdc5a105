package views

import (
	"bytes"

	"github.com/a-h/templ"

	"github.com/iu-gakuyukai/blogfront/cms"
)

// Home renders the front page: the latest posts with pagination.
func Home(cfg SiteConfig, cats []cms.Category, posts []cms.Post, pg Pagination) templ.Component {
	meta := PageMeta{
		Title:       cfg.Name,
		Description: cfg.Description,
		Path:        "/",
	}
	return page(cfg, meta, cats, "", func(buf *bytes.Buffer) {
		buf.WriteString(`<h1>新着記事</h1>`)
		if len(posts) == 0 {
			buf.WriteString(`<p class="no-results">記事はまだありません。</p>`)
			return
		}
		writePostList(buf, posts)
		writePagination(buf, pg, "/", nil)
	})
}
