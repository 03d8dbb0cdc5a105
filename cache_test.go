package blogfront

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iu-gakuyukai/blogfront/cms"
)

type fakeLister struct {
	cats  []cms.Category
	err   error
	calls int
}

func (f *fakeLister) ListCategories(ctx context.Context) ([]cms.Category, error) {
	f.calls++
	return f.cats, f.err
}

func TestCategoryCacheLoadsOnce(t *testing.T) {
	lister := &fakeLister{cats: []cms.Category{{ID: "c1", Name: "Sports"}}}
	cache := newCategoryCache(lister, time.Minute)

	for i := 0; i < 3; i++ {
		cats, err := cache.List(context.Background())
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(cats) != 1 || cats[0].ID != "c1" {
			t.Fatalf("unexpected categories: %+v", cats)
		}
	}
	if lister.calls != 1 {
		t.Errorf("expected 1 CMS call, got %d", lister.calls)
	}
}

func TestCategoryCacheReloadsAfterInvalidate(t *testing.T) {
	lister := &fakeLister{cats: []cms.Category{{ID: "c1"}}}
	cache := newCategoryCache(lister, time.Minute)

	if _, err := cache.List(context.Background()); err != nil {
		t.Fatalf("List failed: %v", err)
	}
	cache.Invalidate()
	if _, err := cache.List(context.Background()); err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if lister.calls != 2 {
		t.Errorf("expected 2 CMS calls, got %d", lister.calls)
	}
}

func TestCategoryCacheExpires(t *testing.T) {
	lister := &fakeLister{cats: []cms.Category{{ID: "c1"}}}
	cache := newCategoryCache(lister, 50*time.Millisecond)

	if _, err := cache.List(context.Background()); err != nil {
		t.Fatalf("List failed: %v", err)
	}
	time.Sleep(80 * time.Millisecond)
	if _, err := cache.List(context.Background()); err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if lister.calls != 2 {
		t.Errorf("expected reload after TTL, got %d calls", lister.calls)
	}
}

func TestCategoryCachePropagatesError(t *testing.T) {
	lister := &fakeLister{err: errors.New("cms down")}
	cache := newCategoryCache(lister, time.Minute)

	if _, err := cache.List(context.Background()); err == nil {
		t.Fatal("expected error from failing lister")
	}
	// An error must not poison the cache with an empty valid entry.
	lister.err = nil
	lister.cats = []cms.Category{{ID: "c1"}}
	cats, err := cache.List(context.Background())
	if err != nil {
		t.Fatalf("List failed after recovery: %v", err)
	}
	if len(cats) != 1 {
		t.Fatalf("expected recovered categories, got %+v", cats)
	}
}
