package metadata

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"

	"reelgrid/models"
)

func TestCacheKeyStable(t *testing.T) {
	a := cacheKey("movies", "list", "popular")
	b := cacheKey("movies", "list", "popular")
	if a != b {
		t.Fatalf("same parts produced different keys: %q vs %q", a, b)
	}
	if a == cacheKey("movies", "list", "top_rated") {
		t.Fatal("different parts produced the same key")
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	c := newFileCache(fs, "cache/metadata", 3600)

	in := models.Paged{Page: 1, Results: []models.Title{{ID: 603, Name: "The Matrix", MediaType: models.MediaTypeMovie}}}
	key := cacheKey("movies", "list", "popular")
	if err := c.set(key, in); err != nil {
		t.Fatalf("set: %v", err)
	}

	var out models.Paged
	ok, err := c.get(key, &out)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if len(out.Results) != 1 || out.Results[0].Name != "The Matrix" {
		t.Errorf("round trip lost data: %+v", out)
	}
}

func TestFileCacheMiss(t *testing.T) {
	c := newFileCache(afero.NewMemMapFs(), "cache/metadata", 3600)
	var out models.Paged
	if ok, _ := c.get(cacheKey("nothing"), &out); ok {
		t.Fatal("expected miss for unknown key")
	}
}

func TestFileCacheExpiry(t *testing.T) {
	fs := afero.NewMemMapFs()
	c := newFileCache(fs, "cache/metadata", 60)

	key := cacheKey("movies", "list", "popular")
	if err := c.set(key, models.Paged{Page: 1}); err != nil {
		t.Fatalf("set: %v", err)
	}

	// Age the entry past the TTL.
	stale := time.Now().Add(-2 * time.Minute)
	path := filepath.Join("cache/metadata", key+".json")
	if err := fs.Chtimes(path, stale, stale); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	var out models.Paged
	if ok, _ := c.get(key, &out); ok {
		t.Fatal("expected expired entry to miss")
	}
	if _, err := fs.Stat(path); err == nil {
		t.Error("expired entry was not removed")
	}
}

func TestFileCacheClear(t *testing.T) {
	fs := afero.NewMemMapFs()
	c := newFileCache(fs, "cache/metadata", 3600)

	if err := c.set(cacheKey("a"), models.Paged{}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := c.set(cacheKey("b"), models.Paged{}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := c.clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}

	var out models.Paged
	if ok, _ := c.get(cacheKey("a"), &out); ok {
		t.Fatal("entry survived clear")
	}
}
