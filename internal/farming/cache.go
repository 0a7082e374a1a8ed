package farming

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/stakeyard/farmledger/internal/domain"
)

// CacheSchemaVersion is the current version of the cached projection.
// Increment when FarmInfo changes shape to auto-invalidate old entries.
const CacheSchemaVersion = "1.0"

// cachedFarmEntry wraps a farm projection with version metadata.
type cachedFarmEntry struct {
	Version  string           `json:"version"`
	Info     *domain.FarmInfo `json:"info"`
	CachedAt time.Time        `json:"cached_at"`
}

// farmInfoCache is an in-memory LRU for farm read projections with
// time-based expiration. Mutating operations invalidate their farm entry,
// so the TTL only bounds staleness across instances.
type farmInfoCache struct {
	lru *expirable.LRU[string, *cachedFarmEntry]
}

func newFarmInfoCache(size int, ttl time.Duration) *farmInfoCache {
	return &farmInfoCache{
		lru: expirable.NewLRU[string, *cachedFarmEntry](size, nil, ttl),
	}
}

// Get retrieves a farm projection, dropping entries from an older schema.
func (c *farmInfoCache) Get(farmID string) (*domain.FarmInfo, bool) {
	entry, found := c.lru.Get(farmID)
	if !found {
		return nil, false
	}
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(farmID)
		return nil, false
	}
	return entry.Info, true
}

// Set stores a farm projection under the current schema version.
func (c *farmInfoCache) Set(farmID string, info *domain.FarmInfo) {
	c.lru.Add(farmID, &cachedFarmEntry{
		Version:  CacheSchemaVersion,
		Info:     info,
		CachedAt: time.Now(),
	})
}

// Invalidate removes a farm's cached projection.
func (c *farmInfoCache) Invalidate(farmID string) {
	c.lru.Remove(farmID)
}
