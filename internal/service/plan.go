// Package service contains the business logic for the trip planner API.
// Services validate inputs, enforce business rules, and orchestrate repo,
// engine and provider calls. No SQL and no HTTP live here — services depend
// on interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/chicaron82/roadtrip-planner-sub003/internal/domain"
	"github.com/chicaron82/roadtrip-planner-sub003/internal/repo"
)

// PlanService implements business logic for saved plan operations.
// Plans persist inputs only; derived itineraries are recomputed on demand
// by the ItineraryService.
type PlanService struct {
	repo repo.PlanRepo
}

// NewPlanService constructs a PlanService backed by the provided PlanRepo.
func NewPlanService(r repo.PlanRepo) *PlanService {
	return &PlanService{repo: r}
}

// Create validates and persists a new plan.
// Returns domain.ErrValidation if input violates business rules.
func (s *PlanService) Create(ctx context.Context, plan domain.SavedPlan) (domain.SavedPlan, error) {
	if err := validatePlan(plan); err != nil {
		return domain.SavedPlan{}, fmt.Errorf("service.PlanService.Create: %w", err)
	}
	result, err := s.repo.Create(ctx, plan)
	if err != nil {
		return domain.SavedPlan{}, fmt.Errorf("service.PlanService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single plan by ID.
// Returns domain.ErrNotFound if no plan with that ID exists.
func (s *PlanService) GetByID(ctx context.Context, id uuid.UUID) (domain.SavedPlan, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.SavedPlan{}, fmt.Errorf("service.PlanService.GetByID: %w", err)
	}
	return result, nil
}

// List returns one page of plans, most recently updated first, plus the
// total count. Always returns a non-nil slice so callers can safely range
// over it.
func (s *PlanService) List(ctx context.Context, p domain.PaginationParams) ([]domain.SavedPlan, int64, error) {
	plans, total, err := s.repo.List(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.PlanService.List: %w", err)
	}
	if plans == nil {
		return []domain.SavedPlan{}, total, nil
	}
	return plans, total, nil
}

// Update validates and persists changes to an existing plan.
// Returns domain.ErrValidation for invalid input, domain.ErrNotFound if the
// plan does not exist.
func (s *PlanService) Update(ctx context.Context, plan domain.SavedPlan) (domain.SavedPlan, error) {
	if err := validatePlan(plan); err != nil {
		return domain.SavedPlan{}, fmt.Errorf("service.PlanService.Update: %w", err)
	}
	result, err := s.repo.Update(ctx, plan)
	if err != nil {
		return domain.SavedPlan{}, fmt.Errorf("service.PlanService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a plan by ID.
// Returns domain.ErrNotFound if the plan does not exist.
func (s *PlanService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.PlanService.Delete: %w", err)
	}
	return nil
}

// validatePlan enforces business rules common to both Create and Update.
//   - Name must be non-empty (whitespace-only names are rejected).
//   - Segment metrics must not be negative; a saved plan that cannot be
//     recomputed is worthless.
func validatePlan(plan domain.SavedPlan) error {
	if strings.TrimSpace(plan.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	for i, seg := range plan.Segments {
		if seg.DurationMinutes < 0 || seg.DistanceKm < 0 {
			return fmt.Errorf("%w: segment %d carries negative metrics", domain.ErrValidation, i)
		}
	}
	return nil
}
