package views

import (
	"bytes"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/iu-gakuyukai/blogfront/cms"
)

// SearchPage renders search results. searched is false when no query
// was submitted (blank input): the page then shows a prompt and no
// result list, since no fetch was performed.
func SearchPage(cfg SiteConfig, cats []cms.Category, query string, posts []cms.Post, pg Pagination, searched bool) templ.Component {
	meta := PageMeta{
		Title: "検索結果 | " + cfg.Name,
		Path:  "/blog/search",
	}
	return page(cfg, meta, cats, query, func(buf *bytes.Buffer) {
		buf.WriteString(`<h1>検索結果</h1>`)

		if !searched {
			buf.WriteString(`<p class="no-results">キーワードを入力してください。</p>`)
			return
		}

		if len(posts) == 0 {
			buf.WriteString(`<p class="no-results">「` + escape(query) + `」に一致する記事は見つかりませんでした。</p>`)
			return
		}

		buf.WriteString(`<p>「` + escape(query) + `」の検索結果: ` + strconv.Itoa(len(posts)) + `件表示</p>`)
		writePostList(buf, posts)
		writePagination(buf, pg, "/blog/search", url.Values{"query": {query}})
	})
}
