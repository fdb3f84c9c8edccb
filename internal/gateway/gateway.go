// Package gateway provides read-only access to the canonical
// location/municipality/state tables and the precomputed priority-location
// index. The resolution engine only ever reads through this interface; the
// index itself is maintained by the offline seedstore job.
package gateway

import (
	"context"

	"github.com/location-resolver/app/models"
)

// Lookup is the read-only contract the resolver depends on.
type Lookup interface {
	// FindPriorityByNormalizedName returns the priority entry whose
	// normalized name equals name exactly, preferring lower priority
	// tiers. Nil when absent.
	FindPriorityByNormalizedName(ctx context.Context, name string) (*models.PriorityLocationEntry, error)

	// SearchPriorityLike returns priority entries whose normalized name
	// LIKE-contains every given word pattern, optionally restricted to one
	// state. Ordered by priority tier.
	SearchPriorityLike(ctx context.Context, wordPatterns []string, stateID *uint64) ([]models.PriorityLocationEntry, error)

	// ListAllPriority returns the full priority index for in-memory scans.
	ListAllPriority(ctx context.Context) ([]models.PriorityLocationEntry, error)

	// FindMunicipalityExact returns the municipality in the given state
	// whose normalized name equals normalizedName. Nil when absent.
	FindMunicipalityExact(ctx context.Context, stateID uint64, normalizedName string) (*models.Municipality, error)

	// SearchMunicipalityLike returns the first municipality in the given
	// state whose normalized name LIKE-contains pattern. Nil when absent.
	SearchMunicipalityLike(ctx context.Context, stateID uint64, pattern string) (*models.Municipality, error)

	// FindLocationExact returns a canonical location whose normalized name
	// equals normalizedName, searched nationwide. Nil when absent.
	FindLocationExact(ctx context.Context, normalizedName string) (*models.CanonicalLocation, error)

	// SearchLocationsScoped lists canonical locations optionally filtered
	// by state and municipality, up to limit rows.
	SearchLocationsScoped(ctx context.Context, stateID, municipalityID *uint64, limit int) ([]models.CanonicalLocation, error)
}
