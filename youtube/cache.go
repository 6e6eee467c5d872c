package youtube

import (
	"strings"
	"sync"
	"time"

	"github.com/promoscan/promoscan/metrics"
)

const responseCacheTTL = 15 * time.Minute

type cacheEntry struct {
	payload interface{}
	expires time.Time
}

// ResponseCache memoizes computed feature payloads per request fingerprint
// so identical requests within the TTL do not spend quota again. It holds
// one process's worth of memory only; expiry is checked lazily on read.
// Returned payloads are read-only to callers.
type ResponseCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewResponseCache() *ResponseCache {
	return &ResponseCache{
		entries: make(map[string]cacheEntry),
		ttl:     responseCacheTTL,
		now:     time.Now,
	}
}

// CacheKey builds a request fingerprint. Every input that affects the result
// must be included, so logically distinct requests never collide and
// identical ones always do.
func CacheKey(feature string, parts ...string) string {
	return feature + "::" + strings.Join(parts, "::")
}

func (c *ResponseCache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		metrics.CacheMisses.Add(1)
		return nil, false
	}
	if c.now().After(entry.expires) {
		delete(c.entries, key)
		metrics.CacheMisses.Add(1)
		return nil, false
	}

	metrics.CacheHits.Add(1)
	return entry.payload, true
}

func (c *ResponseCache) Set(key string, payload interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		payload: payload,
		expires: c.now().Add(c.ttl),
	}
}
