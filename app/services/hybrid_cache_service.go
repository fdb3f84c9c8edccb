package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/location-resolver/app/models"
)

// HybridCacheService layers the in-process LRU (L1) over Redis (L2). L2
// hits are promoted to L1 in the background.
type HybridCacheService struct {
	local  *CacheService
	shared *RedisCacheService
	logger *zap.Logger
}

// NewHybridCacheService combines an L1 and L2 cache.
func NewHybridCacheService(local *CacheService, shared *RedisCacheService, logger *zap.Logger) *HybridCacheService {
	return &HybridCacheService{local: local, shared: shared, logger: logger}
}

// Get checks L1 first, then L2. An L2 hit is copied into L1 so the next
// lookup stays in process.
func (hcs *HybridCacheService) Get(ctx context.Context, key string) (*models.ResolutionResult, bool, error) {
	result, found, err := hcs.local.Get(ctx, key)
	if err == nil && found {
		return result, true, nil
	}

	result, found, err = hcs.shared.Get(ctx, key)
	if err != nil {
		hcs.logger.Warn("redis cache read failed", zap.Error(err), zap.String("key", key))
		return nil, false, nil
	}
	if !found {
		return nil, false, nil
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := hcs.local.Set(bgCtx, key, result); err != nil {
			hcs.logger.Warn("promote to local cache failed", zap.Error(err), zap.String("key", key))
		}
	}()

	hcs.logger.Debug("l2 cache hit", zap.String("key", key))
	return result, true, nil
}

// Set writes both layers in parallel.
func (hcs *HybridCacheService) Set(ctx context.Context, key string, result *models.ResolutionResult) error {
	errCh := make(chan error, 2)

	go func() { errCh <- hcs.local.Set(ctx, key, result) }()
	go func() {
		err := hcs.shared.Set(ctx, key, result)
		if err != nil {
			hcs.logger.Warn("redis cache write failed", zap.Error(err), zap.String("key", key))
		}
		errCh <- err
	}()

	var errs []error
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("cache errors: %v", errs)
	}
	return nil
}

// Delete removes key from both layers.
func (hcs *HybridCacheService) Delete(ctx context.Context, key string) error {
	errCh := make(chan error, 2)

	go func() { errCh <- hcs.local.Delete(ctx, key) }()
	go func() { errCh <- hcs.shared.Delete(ctx, key) }()

	var errs []error
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("delete errors: %v", errs)
	}
	return nil
}

// Clear empties both layers.
func (hcs *HybridCacheService) Clear(ctx context.Context) error {
	errCh := make(chan error, 2)

	go func() { errCh <- hcs.local.Clear(ctx) }()
	go func() { errCh <- hcs.shared.Clear(ctx) }()

	var errs []error
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("clear errors: %v", errs)
	}
	hcs.logger.Info("cleared hybrid cache")
	return nil
}

// InvalidateByDatasetVersion clears both layers.
func (hcs *HybridCacheService) InvalidateByDatasetVersion(ctx context.Context, version string) error {
	if err := hcs.local.InvalidateByDatasetVersion(ctx, version); err != nil {
		return err
	}
	return hcs.shared.InvalidateByDatasetVersion(ctx, version)
}

// GetStats merges counters from both layers.
func (hcs *HybridCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	localStats, err := hcs.local.GetStats(ctx)
	if err != nil {
		return nil, err
	}
	sharedStats, err := hcs.shared.GetStats(ctx)
	if err != nil {
		hcs.logger.Warn("redis stats unavailable", zap.Error(err))
		return localStats, nil
	}

	hits := localStats.TotalHits + sharedStats.TotalHits
	misses := localStats.TotalMiss + sharedStats.TotalMiss
	rate := 0.0
	if hits+misses > 0 {
		rate = float64(hits) / float64(hits+misses)
	}
	return &CacheStats{
		HitRate:    rate,
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: localStats.TotalItems + sharedStats.TotalItems,
	}, nil
}

// Exists checks L1 then L2.
func (hcs *HybridCacheService) Exists(ctx context.Context, key string) (bool, error) {
	found, err := hcs.local.Exists(ctx, key)
	if err == nil && found {
		return true, nil
	}
	return hcs.shared.Exists(ctx, key)
}

// GetTTL reports the L2 TTL, the authoritative one across instances.
func (hcs *HybridCacheService) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	return hcs.shared.GetTTL(ctx, key)
}

// Close closes the shared layer.
func (hcs *HybridCacheService) Close() error {
	return hcs.shared.Close()
}
