package blogfront

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

func (a *App) handleSitemap(c echo.Context) error {
	ctx := c.Request().Context()
	base := a.Config.URL

	urls := []sitemapURL{
		{Loc: base},
	}

	cats, err := a.Categories.List(ctx)
	if err != nil {
		return err
	}
	for _, cat := range cats {
		urls = append(urls, sitemapURL{
			Loc: BuildURL(base, "blog", "category", cat.ID),
		})
	}

	posts, err := a.CMS.ListPosts(ctx, 1, feedPostCount)
	if err != nil {
		return err
	}
	for _, p := range posts.Contents {
		lastMod := p.RevisedAt
		if lastMod.IsZero() {
			lastMod = p.PublishedAt
		}
		urls = append(urls, sitemapURL{
			Loc:     BuildURL(base, "blog", p.ID),
			LastMod: lastMod.Format(time.DateOnly),
		})
	}

	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
