package services

import (
	"context"
	"time"

	"github.com/location-resolver/app/models"
)

// CacheStats reports hit/miss counters for the admin endpoint.
type CacheStats struct {
	HitRate    float64 `json:"hit_rate"`
	TotalHits  int64   `json:"total_hits"`
	TotalMiss  int64   `json:"total_miss"`
	TotalItems int64   `json:"total_items"`
}

// ICacheService is the contract every cache backend implements. Keys are
// normalized query strings; values are finished resolution results.
type ICacheService interface {
	// Get returns the cached result for key, if present.
	Get(ctx context.Context, key string) (*models.ResolutionResult, bool, error)

	// Set stores a result under key.
	Set(ctx context.Context, key string, result *models.ResolutionResult) error

	// Delete removes a single key.
	Delete(ctx context.Context, key string) error

	// Clear drops every cached entry.
	Clear(ctx context.Context) error

	// InvalidateByDatasetVersion drops entries resolved against an older
	// canonical dataset.
	InvalidateByDatasetVersion(ctx context.Context, version string) error

	// GetStats returns hit/miss counters.
	GetStats(ctx context.Context) (*CacheStats, error)

	// Exists reports whether key is cached.
	Exists(ctx context.Context, key string) (bool, error)

	// GetTTL returns the remaining lifetime of key.
	GetTTL(ctx context.Context, key string) (time.Duration, error)

	// Close releases backend connections if any.
	Close() error
}
