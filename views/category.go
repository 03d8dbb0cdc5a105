package views

import (
	"bytes"

	"github.com/a-h/templ"

	"github.com/iu-gakuyukai/blogfront/cms"
)

// CategoryPage renders one page of a category's posts with pagination.
// cat may be nil when the metadata fetch failed or the category does not
// exist; everything derived from it falls back to generic text.
func CategoryPage(cfg SiteConfig, cats []cms.Category, categoryID string, cat *cms.Category, posts []cms.Post, pg Pagination) templ.Component {
	meta := PageMeta{
		Title:    CategoryTitle(cat, cfg.Name),
		Keywords: CategoryKeywords(cat),
		Path:     "/blog/category/" + categoryID,
	}
	if cat != nil {
		meta.Description = cat.Explanation
	}

	return page(cfg, meta, cats, "", func(buf *bytes.Buffer) {
		name := ""
		if cat != nil {
			name = cat.Name
		}

		if name != "" {
			buf.WriteString(`<h1>` + escape(name) + `</h1>`)
		} else {
			buf.WriteString(`<h1>カテゴリ</h1>`)
		}

		if cat != nil && (cat.Explanation != "" || cat.Image != nil) {
			buf.WriteString(`<div class="category-hero">`)
			if cat.Image != nil {
				buf.WriteString(`<img src="` + escape(imageSrc(cat.Image, 800)) + `" alt="` + escape(name) + `">`)
			}
			if cat.Explanation != "" {
				buf.WriteString(`<p>` + escape(cat.Explanation) + `</p>`)
			}
			buf.WriteString(`</div>`)
		}

		if len(posts) == 0 {
			if name != "" {
				buf.WriteString(`<p class="no-results">` + escape(name) + ` の記事はまだありません。</p>`)
			} else {
				buf.WriteString(`<p class="no-results">記事はまだありません。</p>`)
			}
			return
		}

		writePostList(buf, posts)
		writePagination(buf, pg, "/blog/category/"+categoryID, nil)
	})
}
