package youtube

import (
	"testing"
	"time"
)

func TestResponseCacheRoundTrip(t *testing.T) {
	cache := NewResponseCache()

	key := CacheKey("analyze", "UCabc", "2026-01-01T00:00:00Z")
	cache.Set(key, "payload")

	got, ok := cache.Get(key)
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if got.(string) != "payload" {
		t.Fatalf("unexpected payload %v", got)
	}
}

func TestResponseCacheMiss(t *testing.T) {
	cache := NewResponseCache()

	if _, ok := cache.Get(CacheKey("analyze", "UCabc")); ok {
		t.Fatal("expected a miss on an empty cache")
	}
}

func TestResponseCacheExpiry(t *testing.T) {
	cache := NewResponseCache()
	current := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return current }

	key := CacheKey("linkcheck", "UCabc", "", "2026-01-01T00:00:00Z")
	cache.Set(key, 42)

	current = current.Add(14 * time.Minute)
	if _, ok := cache.Get(key); !ok {
		t.Fatal("entry must still be live inside the TTL")
	}

	current = current.Add(2 * time.Minute)
	if _, ok := cache.Get(key); ok {
		t.Fatal("entry must expire after the TTL")
	}
}

func TestCacheKeyDistinguishesInputs(t *testing.T) {
	a := CacheKey("analyze", "UCabc", "2026-01-01T00:00:00Z")
	b := CacheKey("analyze", "UCabc", "2025-01-01T00:00:00Z")
	if a == b {
		t.Fatal("different inputs must not collide")
	}
	if a != CacheKey("analyze", "UCabc", "2026-01-01T00:00:00Z") {
		t.Fatal("identical inputs must produce identical keys")
	}
}
