package services

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// rateCache is a TTL cache for USD rates keyed by currency code. The clock is
// injected so tests can drive expiry deterministically.
type rateCache struct {
	mu      sync.RWMutex
	entries map[string]rateCacheEntry
	ttl     time.Duration
	now     func() time.Time
}

type rateCacheEntry struct {
	rate      decimal.Decimal
	fetchedAt time.Time
}

func newRateCache(ttl time.Duration, now func() time.Time) *rateCache {
	return &rateCache{
		entries: make(map[string]rateCacheEntry),
		ttl:     ttl,
		now:     now,
	}
}

// Get returns the cached rate and its fetch time when present and fresh.
func (c *rateCache) Get(code string) (decimal.Decimal, time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[code]
	if !ok || c.now().Sub(entry.fetchedAt) > c.ttl {
		return decimal.Zero, time.Time{}, false
	}
	return entry.rate, entry.fetchedAt, true
}

// Set stores a rate with the current clock time.
func (c *rateCache) Set(code string, rate decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[code] = rateCacheEntry{rate: rate, fetchedAt: c.now()}
}

// Clear drops all cached entries.
func (c *rateCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]rateCacheEntry)
}
