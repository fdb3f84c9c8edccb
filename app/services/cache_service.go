package services

import (
	"context"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/location-resolver/app/models"
)

type cacheEntry struct {
	result   *models.ResolutionResult
	storedAt time.Time
}

// CacheService is the in-process L1 cache, an LRU with per-entry TTL.
type CacheService struct {
	entries *lru.Cache[string, cacheEntry]
	ttl     time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

// NewCacheService builds an LRU cache holding up to size entries.
func NewCacheService(size int, ttl time.Duration) (*CacheService, error) {
	entries, err := lru.New[string, cacheEntry](size)
	if err != nil {
		return nil, err
	}
	return &CacheService{entries: entries, ttl: ttl}, nil
}

// Get returns the cached result for key. Expired entries are evicted on
// read.
func (cs *CacheService) Get(_ context.Context, key string) (*models.ResolutionResult, bool, error) {
	entry, ok := cs.entries.Get(key)
	if !ok {
		cs.misses.Add(1)
		return nil, false, nil
	}
	if cs.ttl > 0 && time.Since(entry.storedAt) > cs.ttl {
		cs.entries.Remove(key)
		cs.misses.Add(1)
		return nil, false, nil
	}
	cs.hits.Add(1)
	return entry.result, true, nil
}

// Set stores a result under key.
func (cs *CacheService) Set(_ context.Context, key string, result *models.ResolutionResult) error {
	cs.entries.Add(key, cacheEntry{result: result, storedAt: time.Now()})
	return nil
}

// Delete removes a single key.
func (cs *CacheService) Delete(_ context.Context, key string) error {
	cs.entries.Remove(key)
	return nil
}

// Clear drops every cached entry and resets the counters.
func (cs *CacheService) Clear(_ context.Context) error {
	cs.entries.Purge()
	cs.hits.Store(0)
	cs.misses.Store(0)
	return nil
}

// InvalidateByDatasetVersion drops everything. The L1 cache does not tag
// entries with a dataset version, so a version change means a full purge.
func (cs *CacheService) InvalidateByDatasetVersion(ctx context.Context, _ string) error {
	return cs.Clear(ctx)
}

// GetStats returns hit/miss counters.
func (cs *CacheService) GetStats(_ context.Context) (*CacheStats, error) {
	hits, misses := cs.hits.Load(), cs.misses.Load()
	total := hits + misses
	rate := 0.0
	if total > 0 {
		rate = float64(hits) / float64(total)
	}
	return &CacheStats{
		HitRate:    rate,
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: int64(cs.entries.Len()),
	}, nil
}

// Exists reports whether key is cached and unexpired.
func (cs *CacheService) Exists(ctx context.Context, key string) (bool, error) {
	_, found, err := cs.Get(ctx, key)
	return found, err
}

// GetTTL returns the remaining lifetime of key.
func (cs *CacheService) GetTTL(_ context.Context, key string) (time.Duration, error) {
	entry, ok := cs.entries.Peek(key)
	if !ok {
		return 0, nil
	}
	if cs.ttl <= 0 {
		return 0, nil
	}
	remaining := cs.ttl - time.Since(entry.storedAt)
	if remaining < 0 {
		return 0, nil
	}
	return remaining, nil
}

// Close is a no-op for the in-process cache.
func (cs *CacheService) Close() error { return nil }
