package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/chicaron82/roadtrip-planner-sub003/internal/domain"
	"github.com/chicaron82/roadtrip-planner-sub003/internal/engine"
	"github.com/chicaron82/roadtrip-planner-sub003/internal/repo"
)

// BuildRequest is one stateless itinerary computation: routed legs plus
// every user constraint. A vehicle can arrive inline or as a reference to
// a saved profile; the inline profile wins when both are present.
type BuildRequest struct {
	Segments       []domain.RouteSegment
	Settings       domain.TripSettings
	Budget         domain.TripBudget
	Vehicle        *domain.VehicleProfile
	VehicleID      *uuid.UUID
	DismissedStops []domain.StopKey
}

// ItineraryService turns inputs into computed itineraries. The engine does
// all the thinking; this layer resolves vehicle references and saved plans
// into engine inputs.
type ItineraryService struct {
	engine   *engine.Engine
	vehicles repo.VehicleRepo
	plans    repo.PlanRepo
}

// NewItineraryService constructs an ItineraryService.
func NewItineraryService(eng *engine.Engine, vehicles repo.VehicleRepo, plans repo.PlanRepo) *ItineraryService {
	return &ItineraryService{engine: eng, vehicles: vehicles, plans: plans}
}

// Build computes the full itinerary for the request.
// Returns domain.ErrValidation for unusable inputs and domain.ErrNotFound
// when VehicleID references a profile that does not exist.
func (s *ItineraryService) Build(ctx context.Context, req BuildRequest) (domain.Itinerary, error) {
	vehicle := req.Vehicle
	if vehicle == nil && req.VehicleID != nil {
		v, err := s.vehicles.GetByID(ctx, *req.VehicleID)
		if err != nil {
			return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Build: %w", err)
		}
		vehicle = &v
	}

	it, err := s.engine.BuildItinerary(engine.Input{
		Segments:       req.Segments,
		Settings:       req.Settings,
		Budget:         req.Budget,
		Vehicle:        vehicle,
		DismissedStops: req.DismissedStops,
	})
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Build: %w", err)
	}
	return it, nil
}

// ForPlan recomputes the itinerary of a saved plan from its persisted
// inputs. Nothing derived is ever read from storage.
func (s *ItineraryService) ForPlan(ctx context.Context, planID uuid.UUID) (domain.Itinerary, error) {
	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.ForPlan: %w", err)
	}
	it, err := s.Build(ctx, BuildRequest{
		Segments: plan.Segments,
		Settings: plan.Settings,
		Budget:   plan.Budget,
	})
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.ForPlan: %w", err)
	}
	return it, nil
}
