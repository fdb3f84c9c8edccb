package services

import (
	"context"
	"testing"
	"time"

	"github.com/location-resolver/app/models"
)

func TestCacheService_SetGet(t *testing.T) {
	cs, err := NewCacheService(16, time.Minute)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	ctx := context.Background()

	result := &models.ResolutionResult{
		LocationID: models.Uint64Ptr(100),
		Name:       "El Guayabo",
		Confidence: models.ConfidenceExact,
	}
	if err := cs.Set(ctx, "el guayabo", result); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, found, err := cs.Get(ctx, "el guayabo")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !found {
		t.Fatal("expected cache hit")
	}
	if got.LocationID == nil || *got.LocationID != 100 {
		t.Errorf("cached LocationID = %v, want 100", got.LocationID)
	}

	_, found, err = cs.Get(ctx, "missing")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if found {
		t.Error("expected cache miss for unknown key")
	}
}

func TestCacheService_TTLExpiry(t *testing.T) {
	cs, err := NewCacheService(16, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	ctx := context.Background()

	if err := cs.Set(ctx, "k", &models.ResolutionResult{Name: "x"}); err != nil {
		t.Fatalf("set: %v", err)
	}

	time.Sleep(25 * time.Millisecond)

	_, found, err := cs.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if found {
		t.Error("expected entry to expire")
	}
}

func TestCacheService_Stats(t *testing.T) {
	cs, err := NewCacheService(16, time.Minute)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	ctx := context.Background()

	cs.Set(ctx, "a", &models.ResolutionResult{Name: "a"})
	cs.Get(ctx, "a")       // hit
	cs.Get(ctx, "missing") // miss

	stats, err := cs.GetStats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalHits != 1 || stats.TotalMiss != 1 {
		t.Errorf("stats = %+v, want 1 hit and 1 miss", stats)
	}
	if stats.HitRate != 0.5 {
		t.Errorf("HitRate = %v, want 0.5", stats.HitRate)
	}
	if stats.TotalItems != 1 {
		t.Errorf("TotalItems = %v, want 1", stats.TotalItems)
	}
}

func TestCacheService_ClearAndInvalidate(t *testing.T) {
	cs, err := NewCacheService(16, time.Minute)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	ctx := context.Background()

	cs.Set(ctx, "a", &models.ResolutionResult{Name: "a"})
	cs.Set(ctx, "b", &models.ResolutionResult{Name: "b"})

	if err := cs.InvalidateByDatasetVersion(ctx, "2"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}

	for _, key := range []string{"a", "b"} {
		if exists, _ := cs.Exists(ctx, key); exists {
			t.Errorf("key %q survived invalidation", key)
		}
	}
}

func TestCacheService_LRUEviction(t *testing.T) {
	cs, err := NewCacheService(2, time.Minute)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	ctx := context.Background()

	cs.Set(ctx, "a", &models.ResolutionResult{Name: "a"})
	cs.Set(ctx, "b", &models.ResolutionResult{Name: "b"})
	cs.Set(ctx, "c", &models.ResolutionResult{Name: "c"})

	if exists, _ := cs.Exists(ctx, "a"); exists {
		t.Error("oldest entry should have been evicted")
	}
	if exists, _ := cs.Exists(ctx, "c"); !exists {
		t.Error("newest entry should still be cached")
	}
}
