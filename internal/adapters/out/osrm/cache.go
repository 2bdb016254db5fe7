package osrm

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"smartdelivery/internal/core/domain/model/kernel"
	"smartdelivery/internal/core/ports"
)

// tableCacheTTL bounds how long a matrix answer is served without re-asking
// the routing provider. Depot and courier positions drift slowly enough that
// five minutes of staleness does not change plan quality.
const tableCacheTTL = 5 * time.Minute

type tableCacheEntry struct {
	result    *ports.TableResult
	expiresAt time.Time
}

// tableCache memoizes /table responses keyed by the request coordinates and
// index subsets. Safe for concurrent use.
type tableCache struct {
	mu      sync.Mutex
	entries map[string]tableCacheEntry
	ttl     time.Duration
	now     func() time.Time
}

func newTableCache(ttl time.Duration) *tableCache {
	return &tableCache{
		entries: make(map[string]tableCacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// get returns the cached result for the key, or nil when missing or expired.
func (c *tableCache) get(key string) *ports.TableResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok || c.now().After(entry.expiresAt) {
		return nil
	}
	return entry.result
}

func (c *tableCache) put(key string, result *ports.TableResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = tableCacheEntry{
		result:    result,
		expiresAt: c.now().Add(c.ttl),
	}
}

// sweepExpired drops entries past their deadline and reports how many were
// removed. Expired entries are otherwise only evicted lazily on lookup.
func (c *tableCache) sweepExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

func (c *tableCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// tableCacheKey derives the cache key from the request shape. Coordinates are
// rounded to six decimals (~0.1 m) so jitter below routing resolution still
// hits the cache.
func tableCacheKey(points []kernel.GeoPoint, sources, destinations []int) string {
	var sb strings.Builder
	sb.WriteString("table:")
	for _, p := range points {
		fmt.Fprintf(&sb, "%.6f,%.6f;", p.Lat(), p.Lon())
	}
	if sources != nil {
		fmt.Fprintf(&sb, "|s=%v", sources)
	}
	if destinations != nil {
		fmt.Fprintf(&sb, "|d=%v", destinations)
	}
	return sb.String()
}
