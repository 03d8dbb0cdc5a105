// Package cms is a thin client for the headless content API that stores
// the 学友会 blog posts and categories (a microCMS-style JSON API).
//
// It knows nothing about rendering or routing; handlers call it and
// compose the results into view data.
package cms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrNotFound is returned when the requested content does not exist.
var ErrNotFound = errors.New("cms: content not found")

const apiKeyHeader = "X-MICROCMS-API-KEY"

// Client calls the content API over HTTP. Safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string // e.g. https://example.microcms.io/api/v1
	apiKey     string
}

// New creates a Client for the API rooted at baseURL, authenticating
// every request with apiKey.
func New(baseURL, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// Image is a CMS-hosted image reference.
type Image struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Category is a named grouping of posts with optional explanation text
// and cover image.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Explanation string `json:"explanation,omitempty"`
	Image       *Image `json:"image,omitempty"`
}

// Post is an immutable snapshot of a blog post as served by the API.
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Body        string    `json:"body,omitempty"`
	Category    *Category `json:"category,omitempty"`
	Eyecatch    *Image    `json:"eyecatch,omitempty"`
	PublishedAt time.Time `json:"publishedAt"`
	RevisedAt   time.Time `json:"revisedAt"`
}

// PostList is a page of posts plus the total match count, from which
// callers derive the page count.
type PostList struct {
	Contents   []Post `json:"contents"`
	TotalCount int    `json:"totalCount"`
	Offset     int    `json:"offset"`
	Limit      int    `json:"limit"`
}

type categoryList struct {
	Contents   []Category `json:"contents"`
	TotalCount int        `json:"totalCount"`
}

// ListPosts returns one page of published posts, newest first.
// page is 1-based.
func (c *Client) ListPosts(ctx context.Context, page, pageSize int) (PostList, error) {
	q := listQuery(page, pageSize)
	var out PostList
	if err := c.get(ctx, "/blogs", q, &out); err != nil {
		return PostList{}, fmt.Errorf("cms: list posts: %w", err)
	}
	return out, nil
}

// ListPostsByCategory returns one page of posts belonging to the given
// category, newest first. A category with no posts yields an empty
// Contents slice and TotalCount 0, not an error.
func (c *Client) ListPostsByCategory(ctx context.Context, categoryID string, page, pageSize int) (PostList, error) {
	q := listQuery(page, pageSize)
	q.Set("filters", "category[equals]"+categoryID)
	var out PostList
	if err := c.get(ctx, "/blogs", q, &out); err != nil {
		return PostList{}, fmt.Errorf("cms: list posts for category %s: %w", categoryID, err)
	}
	return out, nil
}

// SearchPosts returns one page of posts matching the full-text query.
func (c *Client) SearchPosts(ctx context.Context, query string, page, pageSize int) (PostList, error) {
	q := listQuery(page, pageSize)
	q.Set("q", query)
	var out PostList
	if err := c.get(ctx, "/blogs", q, &out); err != nil {
		return PostList{}, fmt.Errorf("cms: search posts: %w", err)
	}
	return out, nil
}

// GetPost returns a single post by ID. A non-empty draftKey fetches the
// draft revision instead of the published one (editor preview).
// Returns ErrNotFound if the post does not exist.
func (c *Client) GetPost(ctx context.Context, id, draftKey string) (Post, error) {
	q := url.Values{}
	if draftKey != "" {
		q.Set("draftKey", draftKey)
	}
	var out Post
	if err := c.get(ctx, "/blogs/"+url.PathEscape(id), q, &out); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Post{}, ErrNotFound
		}
		return Post{}, fmt.Errorf("cms: get post %s: %w", id, err)
	}
	return out, nil
}

// GetCategory returns a single category's metadata by ID.
// Returns ErrNotFound if the category does not exist.
func (c *Client) GetCategory(ctx context.Context, id string) (Category, error) {
	var out Category
	if err := c.get(ctx, "/categories/"+url.PathEscape(id), nil, &out); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Category{}, ErrNotFound
		}
		return Category{}, fmt.Errorf("cms: get category %s: %w", id, err)
	}
	return out, nil
}

// ListCategories returns all categories in CMS order.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	q := url.Values{}
	q.Set("limit", "100")
	var out categoryList
	if err := c.get(ctx, "/categories", q, &out); err != nil {
		return nil, fmt.Errorf("cms: list categories: %w", err)
	}
	return out.Contents, nil
}

func listQuery(page, pageSize int) url.Values {
	if page < 1 {
		page = 1
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(pageSize))
	q.Set("offset", strconv.Itoa((page-1)*pageSize))
	q.Set("orders", "-publishedAt")
	return q
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return err
	}
	if query != nil {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set(apiKeyHeader, c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return json.NewDecoder(resp.Body).Decode(out)
	case http.StatusNotFound:
		return ErrNotFound
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("GET %s: status=%d body=%s", path, resp.StatusCode, string(body))
	}
}
