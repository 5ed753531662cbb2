package common

import "testing"

func setupTestEnvironment(t *testing.T) (*Cache, func()) {
	t.Helper()

	cache := NewCache(0, 0)

	cleanup := func() {
		cache.Flush()
	}

	return cache, cleanup
}

func TestCache_Set(t *testing.T) {
	cache, cleanup := setupTestEnvironment(t)
	defer cleanup()

	cache.Set(CacheKeyPost("abc"), "value")

	if _, ok := cache.Get(CacheKeyPost("abc")); !ok {
		t.Error("expected key to be set")
	}
}

func TestCache_Flush(t *testing.T) {
	cache, cleanup := setupTestEnvironment(t)
	defer cleanup()

	cache.Set(CacheKeyPostBySlug("hello-world"), "value")
	cache.Flush()

	if _, ok := cache.Get(CacheKeyPostBySlug("hello-world")); ok {
		t.Error("expected cache to be flushed")
	}
}
