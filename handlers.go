package blogfront

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iu-gakuyukai/blogfront/cms"
	"github.com/iu-gakuyukai/blogfront/internal/logger"
	"github.com/iu-gakuyukai/blogfront/views"
)

func (a *App) handleHome(c echo.Context) error {
	ctx := c.Request().Context()
	page := pageParam(c)

	posts, err := a.CMS.ListPosts(ctx, page, views.PerPage)
	if err != nil {
		return err
	}
	pg := views.NewPagination(posts.TotalCount, views.PerPage, page)
	return Render(c, views.Home(a.viewConfig(), a.headerCategories(c), posts.Contents, pg))
}

// handleCategory renders one page of a category's posts. The post-list
// fetch and the category-metadata fetch are independent calls issued
// back to back; only the post list is load-bearing. A failed metadata
// fetch falls back to generic page metadata instead of failing the page.
func (a *App) handleCategory(c echo.Context) error {
	ctx := c.Request().Context()
	categoryID := c.Param("categoryId")
	page := pageParam(c)

	var (
		wg  sync.WaitGroup
		cat *cms.Category
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		got, err := a.CMS.GetCategory(ctx, categoryID)
		if err != nil {
			logger.Log.Warnf("category metadata %s: %v", categoryID, err)
			return
		}
		cat = &got
	}()

	posts, postsErr := a.CMS.ListPostsByCategory(ctx, categoryID, page, views.PerPage)
	wg.Wait()
	if postsErr != nil {
		return postsErr
	}

	pg := views.NewPagination(posts.TotalCount, views.PerPage, page)
	return Render(c, views.CategoryPage(a.viewConfig(), a.headerCategories(c), categoryID, cat, posts.Contents, pg))
}

// handleSearch renders full-text search results. A blank or
// whitespace-only query performs no CMS call at all.
func (a *App) handleSearch(c echo.Context) error {
	ctx := c.Request().Context()
	query := c.QueryParam("query")

	if strings.TrimSpace(query) == "" {
		return Render(c, views.SearchPage(a.viewConfig(), a.headerCategories(c), query, nil, views.Pagination{}, false))
	}

	page := pageParam(c)
	posts, err := a.CMS.SearchPosts(ctx, query, page, views.PerPage)
	if err != nil {
		return err
	}
	pg := views.NewPagination(posts.TotalCount, views.PerPage, page)
	return Render(c, views.SearchPage(a.viewConfig(), a.headerCategories(c), query, posts.Contents, pg, true))
}

func (a *App) handlePost(c echo.Context) error {
	ctx := c.Request().Context()
	postID := c.Param("postId")

	draftKey := c.QueryParam("draftKey")
	if draftKey != "" {
		if err := setPreviewDraftKey(c, draftKey); err != nil {
			logger.Log.Warnf("save preview session: %v", err)
		}
	} else {
		draftKey = previewDraftKey(c)
	}

	post, err := a.CMS.GetPost(ctx, postID, draftKey)
	if err != nil {
		if errors.Is(err, cms.ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, views.NotFound(a.viewConfig(), a.headerCategories(c)))
		}
		return err
	}
	return Render(c, views.PostPage(a.viewConfig(), a.headerCategories(c), post))
}

func (a *App) handleStatsJSON(c echo.Context) error {
	if a.Stats == nil || a.Config.StatsToken == "" {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	auth := c.Request().Header.Get("Authorization")
	if auth != "Bearer "+a.Config.StatsToken {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	since := time.Now().AddDate(0, 0, -30)
	total, err := a.Stats.TotalViews(since)
	if err != nil {
		return err
	}
	top, err := a.Stats.TopPages(since, 20)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"total_views": total,
		"top_pages":   top,
	})
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	return c.File(a.staticDir + "/robots.txt")
}

// headerCategories returns the cached category list for the site header.
// A CMS failure here degrades to an empty menu rather than a failed page.
func (a *App) headerCategories(c echo.Context) []cms.Category {
	cats, err := a.Categories.List(c.Request().Context())
	if err != nil {
		logger.Log.Warnf("header categories: %v", err)
		return nil
	}
	return cats
}

// pageParam returns the 1-based page number from the query string,
// defaulting to 1 for absent or invalid values.
func pageParam(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, views.NotFound(a.viewConfig(), a.headerCategories(c)))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, views.ServerError(a.viewConfig(), a.headerCategories(c)))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
