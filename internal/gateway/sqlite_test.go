package gateway

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

// newTestStore builds an in-memory store with a small fixture set. The
// pool is pinned to one connection so the in-memory database survives.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(":memory:", zap.NewNop())
	if err != nil {
		t.Fatalf("open in-memory store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	store.DB().SetMaxOpenConns(1)
	if err := store.Init(); err != nil {
		t.Fatalf("apply schema: %v", err)
	}

	fixtures := []string{
		`INSERT INTO states (id, name, normalized_name, priority_level) VALUES
			(12, 'Guerrero', 'guerrero', 1),
			(20, 'Oaxaca', 'oaxaca', 2),
			(14, 'Jalisco', 'jalisco', 0)`,
		`INSERT INTO municipalities (id, state_id, name, normalized_name) VALUES
			(1, 12, 'Acapulco de Juárez', 'acapulco de juarez'),
			(2, 20, 'Tlacolula de Matamoros', 'tlacolula de matamoros'),
			(3, 14, 'Guadalajara', 'guadalajara')`,
		`INSERT INTO locations (id, municipality_id, name, normalized_name) VALUES
			(100, 1, 'El Guayabo', 'el guayabo'),
			(101, 1, 'Jario y Pantoja', 'jario y pantoja'),
			(102, 2, 'San Marcos Tlapazola', 'san marcos tlapazola'),
			(103, 3, 'Guadalajara Centro', 'guadalajara centro')`,
		`INSERT INTO priority_locations
			(location_id, location_name, municipality_id, municipality_name,
			 state_id, state_name, normalized_name, priority_level) VALUES
			(100, 'El Guayabo', 1, 'Acapulco de Juárez', 12, 'Guerrero', 'el guayabo', 1),
			(101, 'Jario y Pantoja', 1, 'Acapulco de Juárez', 12, 'Guerrero', 'jario y pantoja', 1),
			(102, 'San Marcos Tlapazola', 2, 'Tlacolula de Matamoros', 20, 'Oaxaca', 'san marcos tlapazola', 2)`,
	}
	for _, stmt := range fixtures {
		if _, err := store.DB().Exec(stmt); err != nil {
			t.Fatalf("load fixture: %v", err)
		}
	}
	return store
}

func TestFindPriorityByNormalizedName(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	entry, err := store.FindPriorityByNormalizedName(ctx, "el guayabo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry == nil {
		t.Fatal("expected entry, got nil")
	}
	if entry.LocationID != 100 || entry.StateName != "Guerrero" || entry.PriorityLevel != 1 {
		t.Errorf("unexpected entry: %+v", entry)
	}

	entry, err = store.FindPriorityByNormalizedName(ctx, "no such place")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry != nil {
		t.Errorf("expected nil for missing name, got %+v", entry)
	}
}

func TestSearchPriorityLike(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	entries, err := store.SearchPriorityLike(ctx, []string{"guayabo"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 || entries[0].LocationID != 100 {
		t.Errorf("unexpected entries: %+v", entries)
	}

	// Every pattern must match; an unmatched word excludes the row.
	entries, err = store.SearchPriorityLike(ctx, []string{"guayabo", "zzz"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries with unmatched pattern, got %+v", entries)
	}

	// State filter.
	oaxaca := uint64(20)
	entries, err = store.SearchPriorityLike(ctx, []string{"marcos"}, &oaxaca)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 || entries[0].StateID != 20 {
		t.Errorf("unexpected entries for state filter: %+v", entries)
	}

	guerrero := uint64(12)
	entries, err = store.SearchPriorityLike(ctx, []string{"marcos"}, &guerrero)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no Guerrero entries for marcos, got %+v", entries)
	}
}

func TestSearchPriorityLike_OrderedByTier(t *testing.T) {
	store := newTestStore(t)

	entries, err := store.ListAllPriority(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 priority entries, got %d", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i-1].PriorityLevel > entries[i].PriorityLevel {
			t.Errorf("entries not ordered by priority: %+v", entries)
		}
	}
}

func TestMunicipalityLookups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	muni, err := store.FindMunicipalityExact(ctx, 12, "acapulco de juarez")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if muni == nil || muni.ID != 1 || muni.StateName != "Guerrero" {
		t.Errorf("unexpected municipality: %+v", muni)
	}

	muni, err = store.FindMunicipalityExact(ctx, 20, "acapulco de juarez")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if muni != nil {
		t.Errorf("expected nil for wrong state, got %+v", muni)
	}

	muni, err = store.SearchMunicipalityLike(ctx, 20, "tlacolula")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if muni == nil || muni.ID != 2 {
		t.Errorf("unexpected LIKE municipality: %+v", muni)
	}
}

func TestLocationLookups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	loc, err := store.FindLocationExact(ctx, "guadalajara centro")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc == nil || loc.LocationID != 103 || loc.StateName != "Jalisco" {
		t.Errorf("unexpected location: %+v", loc)
	}

	guerrero := uint64(12)
	locs, err := store.SearchLocationsScoped(ctx, &guerrero, nil, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(locs) != 2 {
		t.Errorf("expected 2 Guerrero locations, got %+v", locs)
	}

	muniID := uint64(1)
	locs, err = store.SearchLocationsScoped(ctx, &guerrero, &muniID, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(locs) != 1 {
		t.Errorf("limit not applied, got %+v", locs)
	}
}
