package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/chicaron82/roadtrip-planner-sub003/internal/domain"
	"github.com/chicaron82/roadtrip-planner-sub003/internal/engine"
	"github.com/chicaron82/roadtrip-planner-sub003/internal/places"
)

// AdventureRequest pairs the reachability query with optional inline
// destination candidates. With no inline candidates and a provider
// configured, candidates within the computed range are fetched.
type AdventureRequest struct {
	Query      domain.AdventureQuery
	Candidates []domain.DestinationCandidate
}

// AdventureResult is the full answer: the reachability envelope plus the
// scored destinations inside it.
type AdventureResult struct {
	Estimate     domain.ReachabilityEstimate   `json:"estimate"`
	Destinations []domain.AdventureDestination `json:"destinations"`
}

// AdventureService answers "where can we go": it derives the
// distance-and-cost envelope and ranks destination candidates inside it.
type AdventureService struct {
	engine   *engine.Engine
	provider places.Provider
	log      *slog.Logger
}

// NewAdventureService constructs an AdventureService. provider may be nil.
func NewAdventureService(eng *engine.Engine, provider places.Provider, log *slog.Logger) *AdventureService {
	return &AdventureService{engine: eng, provider: provider, log: log}
}

// Explore computes the reachability estimate and scores whatever
// candidates are available. A failed destination search degrades to an
// estimate-only answer; the envelope is useful on its own.
func (s *AdventureService) Explore(ctx context.Context, req AdventureRequest) (AdventureResult, error) {
	est, err := s.engine.Reachability(req.Query)
	if err != nil {
		return AdventureResult{}, fmt.Errorf("service.AdventureService.Explore: %w", err)
	}

	candidates := req.Candidates
	if len(candidates) == 0 && s.provider != nil && req.Query.Origin.HasCoordinates() && est.MaxDistanceKm > 0 {
		fetched, err := s.provider.SearchDestinations(ctx, places.DestinationQuery{
			Origin:        req.Query.Origin,
			MaxDistanceKm: est.MaxDistanceKm,
			Tags:          req.Query.InterestTags,
		})
		if err != nil {
			s.log.Warn("destination search failed", "error", err)
		} else {
			candidates = fetched
		}
	}

	scored := s.engine.ScoreDestinations(req.Query, est, candidates)
	if scored == nil {
		scored = []domain.AdventureDestination{}
	}
	return AdventureResult{Estimate: est, Destinations: scored}, nil
}
