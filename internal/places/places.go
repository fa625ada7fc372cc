// Package places integrates the external point-of-interest provider.
//
// It exposes a small Provider port consumed by the discovery and adventure
// services, an HTTP adapter that talks to the configured provider API with
// retry, and a Redis read-through cache decorator. Both adapters satisfy
// the same interface so callers never know whether a result came from the
// wire or the cache.
package places

import (
	"context"

	"github.com/chicaron82/roadtrip-planner-sub003/internal/domain"
)

// CorridorQuery asks for points of interest around one point of a route
// leg. SegmentIndex identifies which leg the corridor belongs to so the
// results can be pinned back onto the itinerary.
type CorridorQuery struct {
	Lat          float64
	Lng          float64
	RadiusKm     float64
	Categories   []string
	SegmentIndex int
}

// DestinationQuery asks for trip destination candidates within driving
// range of an origin. Tags narrow the search to matching interests when
// present. Limit caps the result size; zero means provider default.
type DestinationQuery struct {
	Origin        domain.Location
	MaxDistanceKm float64
	Tags          []string
	Limit         int
}

// Provider is the port for upstream place lookups.
//
// SearchCorridor returns raw suggestions for one corridor: identity,
// geometry and visit metadata only. Classification into buckets and tiers
// is the planning engine's job, not the provider's.
type Provider interface {
	SearchCorridor(ctx context.Context, q CorridorQuery) ([]domain.DiscoveredPOI, error)
	SearchDestinations(ctx context.Context, q DestinationQuery) ([]domain.DestinationCandidate, error)
}
