package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/samber/lo"

	"github.com/chicaron82/roadtrip-planner-sub003/internal/domain"
	"github.com/chicaron82/roadtrip-planner-sub003/internal/engine"
	"github.com/chicaron82/roadtrip-planner-sub003/internal/places"
)

const (
	// defaultCorridorRadiusKm is the search radius around each leg when the
	// request does not override it.
	defaultCorridorRadiusKm = 10

	// maxConcurrentCorridors bounds the provider fan-out so a many-leg trip
	// does not burst the upstream API.
	maxConcurrentCorridors = 4
)

// DiscoverRequest carries everything one discovery run needs. Candidates
// are inline POIs the caller already holds (with their action states);
// when a provider is configured, each resolved leg is additionally searched
// as a corridor. A zero TimeBudgetMinutes means "use the policy default".
type DiscoverRequest struct {
	Segments          []domain.RouteSegment
	Settings          domain.TripSettings
	Candidates        []domain.DiscoveredPOI
	Categories        []string
	RadiusKm          float64
	TimeBudgetMinutes int
	AutoAddNoBrainers bool
}

// DiscoveryService turns a route into tiered, budget-filtered POI
// suggestions. The provider is optional: with none configured the service
// classifies whatever candidates the request carries.
type DiscoveryService struct {
	engine   *engine.Engine
	provider places.Provider
	log      *slog.Logger
}

// NewDiscoveryService constructs a DiscoveryService. provider may be nil.
func NewDiscoveryService(eng *engine.Engine, provider places.Provider, log *slog.Logger) *DiscoveryService {
	return &DiscoveryService{engine: eng, provider: provider, log: log}
}

// Discover gathers candidates, classifies them against the route and
// returns the selection that fits the time budget.
//
// Corridor queries run concurrently; a failed corridor is reported in
// FailedCorridors and flips PartialResults instead of failing the run.
// Only when every corridor fails and no inline candidates exist does the
// provider error surface.
func (s *DiscoveryService) Discover(ctx context.Context, req DiscoverRequest) (domain.DiscoveryResult, error) {
	candidates := req.Candidates
	result := domain.DiscoveryResult{}

	corridors := s.corridorsFor(req)
	if len(corridors) > 0 {
		fetched, failed := s.searchCorridors(ctx, corridors, req.Segments)
		result.FailedCorridors = failed
		result.PartialResults = len(failed) > 0

		if len(fetched) == 0 && len(failed) == len(corridors) && len(candidates) == 0 {
			return domain.DiscoveryResult{}, fmt.Errorf("service.DiscoveryService.Discover: every corridor search failed: %w", domain.ErrProvider)
		}
		candidates = append(candidates, fetched...)
	}

	// inline candidates come first, so the caller's action states win over
	// fresh provider copies of the same place
	candidates = lo.UniqBy(candidates, func(p domain.DiscoveredPOI) string { return p.ID })

	var destination domain.Location
	if n := len(req.Segments); n > 0 {
		destination = req.Segments[n-1].To
	}
	totalSegments := len(req.Segments)
	if req.Settings.IsRoundTrip {
		totalSegments *= 2
	}

	budget := req.TimeBudgetMinutes
	if budget == 0 {
		budget = s.engine.DefaultTimeBudget()
	}

	classified := s.engine.ClassifyPOIs(candidates, destination, req.Settings, totalSegments)
	if req.AutoAddNoBrainers {
		classified = s.engine.AddAllNoBrainers(classified, budget)
	}
	result.POIs = s.engine.FilterByTimeBudget(classified, budget)

	if result.PartialResults {
		s.log.Warn("discovery returned partial results",
			"failed_corridors", len(result.FailedCorridors),
			"pois", len(result.POIs))
	}
	return result, nil
}

// ApplyAction moves one POI out of pending on behalf of the caller.
func (s *DiscoveryService) ApplyAction(pois []domain.DiscoveredPOI, id string, state domain.POIActionState) ([]domain.DiscoveredPOI, error) {
	updated, err := s.engine.ApplyPOIAction(pois, id, state)
	if err != nil {
		return nil, fmt.Errorf("service.DiscoveryService.ApplyAction: %w", err)
	}
	return updated, nil
}

// corridorsFor derives one corridor query per resolved leg, centered on
// the leg's midpoint.
func (s *DiscoveryService) corridorsFor(req DiscoverRequest) []places.CorridorQuery {
	if s.provider == nil {
		return nil
	}
	radius := req.RadiusKm
	if radius <= 0 {
		radius = defaultCorridorRadiusKm
	}

	corridors := make([]places.CorridorQuery, 0, len(req.Segments))
	for i, seg := range req.Segments {
		if !seg.From.HasCoordinates() || !seg.To.HasCoordinates() {
			continue
		}
		corridors = append(corridors, places.CorridorQuery{
			Lat:          (seg.From.Lat + seg.To.Lat) / 2,
			Lng:          (seg.From.Lng + seg.To.Lng) / 2,
			RadiusKm:     radius,
			Categories:   req.Categories,
			SegmentIndex: i,
		})
	}
	return corridors
}

// searchCorridors fans the queries out with a bounded semaphore and
// collects results in corridor order so output stays deterministic.
func (s *DiscoveryService) searchCorridors(ctx context.Context, corridors []places.CorridorQuery, segs []domain.RouteSegment) ([]domain.DiscoveredPOI, []string) {
	fetched := make([][]domain.DiscoveredPOI, len(corridors))
	errs := make([]error, len(corridors))

	sem := make(chan struct{}, maxConcurrentCorridors)
	var wg sync.WaitGroup
	for i, c := range corridors {
		wg.Add(1)
		go func(i int, c places.CorridorQuery) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			pois, err := s.provider.SearchCorridor(ctx, c)
			if err != nil {
				errs[i] = err
				return
			}
			fetched[i] = pois
		}(i, c)
	}
	wg.Wait()

	var merged []domain.DiscoveredPOI
	var failed []string
	for i := range corridors {
		if errs[i] != nil {
			seg := segs[corridors[i].SegmentIndex]
			failed = append(failed, seg.From.Name+" to "+seg.To.Name)
			s.log.Warn("corridor search failed",
				"segment", corridors[i].SegmentIndex, "error", errs[i])
			continue
		}
		merged = append(merged, fetched[i]...)
	}
	return merged, failed
}
