package blogfront

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iu-gakuyukai/blogfront/cms"
)

// fakeCMS is a stand-in content API with canned data and call recording.
type fakeCMS struct {
	mu           sync.Mutex
	blogsCalls   []url.Values
	failBlogs    bool
	failCategory bool

	srv *httptest.Server
}

func newFakeCMS(t *testing.T) *fakeCMS {
	t.Helper()
	f := &fakeCMS{}
	f.srv = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeCMS) handle(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/blogs":
		f.mu.Lock()
		f.blogsCalls = append(f.blogsCalls, r.URL.Query())
		fail := f.failBlogs
		f.mu.Unlock()
		if fail {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		posts := make([]cms.Post, 10)
		for i := range posts {
			posts[i] = cms.Post{ID: "p1", Title: "記事", PublishedAt: time.Now()}
		}
		json.NewEncoder(w).Encode(cms.PostList{Contents: posts, TotalCount: 23})
	case r.URL.Path == "/categories":
		json.NewEncoder(w).Encode(map[string]any{
			"contents": []cms.Category{
				{ID: "c1", Name: "Sports"},
				{ID: "c2", Name: "Culture"},
			},
			"totalCount": 2,
		})
	case strings.HasPrefix(r.URL.Path, "/categories/"):
		f.mu.Lock()
		fail := f.failCategory
		f.mu.Unlock()
		if fail {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		id := strings.TrimPrefix(r.URL.Path, "/categories/")
		if id != "c1" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(cms.Category{ID: "c1", Name: "Sports"})
	case strings.HasPrefix(r.URL.Path, "/blogs/"):
		id := strings.TrimPrefix(r.URL.Path, "/blogs/")
		if id != "p1" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(cms.Post{ID: "p1", Title: "新歓のお知らせ", Body: "<p>本文</p>"})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeCMS) blogsCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.blogsCalls)
}

func (f *fakeCMS) lastBlogsCall() url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.blogsCalls) == 0 {
		return nil
	}
	return f.blogsCalls[len(f.blogsCalls)-1]
}

func newTestApp(t *testing.T, f *fakeCMS) *App {
	t.Helper()
	a := New(SiteConfig{
		CMSBaseURL:    f.srv.URL,
		CMSAPIKey:     "test-key",
		SessionSecret: "test-secret",
	})
	a.CMS = cms.New(f.srv.URL, "test-key")
	a.Categories = newCategoryCache(a.CMS, time.Minute)
	a.imgLimiter = newIPLimiter(30, imageLimitWindow)
	a.setupMiddleware()
	a.setupRoutes()
	return a
}

func get(a *App, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func TestCategoryPageFetchesRequestedPage(t *testing.T) {
	f := newFakeCMS(t)
	a := newTestApp(t, f)

	rec := get(a, "/blog/category/c1?page=2")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Sports のカテゴリ | iU 学友会")
	assert.Contains(t, body, `class="page active"`)

	q := f.lastBlogsCall()
	require.NotNil(t, q)
	assert.Equal(t, "category[equals]c1", q.Get("filters"))
	assert.Equal(t, "10", q.Get("limit"))
	assert.Equal(t, "10", q.Get("offset"), "page 2 starts at offset 10")
	assert.Equal(t, 1, f.blogsCallCount(), "exactly one list fetch per request")
}

func TestCategoryPageInvalidPageDefaultsToFirst(t *testing.T) {
	f := newFakeCMS(t)
	a := newTestApp(t, f)

	rec := get(a, "/blog/category/c1?page=banana")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0", f.lastBlogsCall().Get("offset"))
}

func TestCategoryMetadataFailureFallsBack(t *testing.T) {
	f := newFakeCMS(t)
	f.failCategory = true
	a := newTestApp(t, f)

	rec := get(a, "/blog/category/c1")
	require.Equal(t, http.StatusOK, rec.Code, "metadata failure must not fail the page")
	assert.Contains(t, rec.Body.String(), "カテゴリ | iU 学友会")
	assert.NotContains(t, rec.Body.String(), "Sports のカテゴリ")
}

func TestCategoryPostsFailureRendersErrorPage(t *testing.T) {
	f := newFakeCMS(t)
	f.failBlogs = true
	a := newTestApp(t, f)

	rec := get(a, "/blog/category/c1")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "エラーが発生しました")
}

func TestSearchBlankQuerySkipsCMS(t *testing.T) {
	f := newFakeCMS(t)
	a := newTestApp(t, f)

	rec := get(a, "/blog/search?query=%20%20")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "キーワードを入力してください。")
	assert.Equal(t, 0, f.blogsCallCount(), "whitespace-only query must not hit the CMS")
}

func TestSearchQueryFetchesOnce(t *testing.T) {
	f := newFakeCMS(t)
	a := newTestApp(t, f)

	rec := get(a, "/blog/search?query=music")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, f.blogsCallCount(), "exactly one search fetch per submit")
	assert.Equal(t, "music", f.lastBlogsCall().Get("q"))
}

func TestPostNotFound(t *testing.T) {
	f := newFakeCMS(t)
	a := newTestApp(t, f)

	rec := get(a, "/blog/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "404")
}

func TestPostPageServed(t *testing.T) {
	f := newFakeCMS(t)
	a := newTestApp(t, f)

	rec := get(a, "/blog/p1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "新歓のお知らせ")
}

func TestUnknownRouteRenders404Page(t *testing.T) {
	f := newFakeCMS(t)
	a := newTestApp(t, f)

	rec := get(a, "/nope/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "お探しのページは見つかりませんでした。")
}

func TestStatsEndpointHiddenWithoutToken(t *testing.T) {
	f := newFakeCMS(t)
	a := newTestApp(t, f)

	rec := get(a, "/stats.json")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHeaderCategoriesOnEveryPage(t *testing.T) {
	f := newFakeCMS(t)
	a := newTestApp(t, f)

	rec := get(a, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `href="/blog/category/c1"`)
	assert.Contains(t, body, `href="/blog/category/c2"`)
	assert.Contains(t, body, `id="menu-open"`)
}
