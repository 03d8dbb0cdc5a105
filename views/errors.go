package views

import (
	"bytes"

	"github.com/a-h/templ"

	"github.com/iu-gakuyukai/blogfront/cms"
)

// NotFound renders the 404 page.
func NotFound(cfg SiteConfig, cats []cms.Category) templ.Component {
	meta := PageMeta{
		Title: "ページが見つかりません | " + cfg.Name,
	}
	return page(cfg, meta, cats, "", func(buf *bytes.Buffer) {
		buf.WriteString(`<h1>404</h1>`)
		buf.WriteString(`<p>お探しのページは見つかりませんでした。</p>`)
		buf.WriteString(`<p><a href="/">トップページへ戻る</a></p>`)
	})
}

// ServerError renders the 500 page.
func ServerError(cfg SiteConfig, cats []cms.Category) templ.Component {
	meta := PageMeta{
		Title: "エラー | " + cfg.Name,
	}
	return page(cfg, meta, cats, "", func(buf *bytes.Buffer) {
		buf.WriteString(`<h1>エラーが発生しました</h1>`)
		buf.WriteString(`<p>時間をおいて再度お試しください。</p>`)
		buf.WriteString(`<p><a href="/">トップページへ戻る</a></p>`)
	})
}
