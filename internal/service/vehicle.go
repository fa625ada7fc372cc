package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/chicaron82/roadtrip-planner-sub003/internal/domain"
	"github.com/chicaron82/roadtrip-planner-sub003/internal/repo"
)

// VehicleService implements business logic for vehicle profile operations.
type VehicleService struct {
	repo repo.VehicleRepo
}

// NewVehicleService constructs a VehicleService backed by the provided
// VehicleRepo.
func NewVehicleService(r repo.VehicleRepo) *VehicleService {
	return &VehicleService{repo: r}
}

// Create validates and persists a new vehicle profile.
func (s *VehicleService) Create(ctx context.Context, v domain.VehicleProfile) (domain.VehicleProfile, error) {
	if err := validateVehicle(v); err != nil {
		return domain.VehicleProfile{}, fmt.Errorf("service.VehicleService.Create: %w", err)
	}
	result, err := s.repo.Create(ctx, v)
	if err != nil {
		return domain.VehicleProfile{}, fmt.Errorf("service.VehicleService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single vehicle profile by ID.
func (s *VehicleService) GetByID(ctx context.Context, id uuid.UUID) (domain.VehicleProfile, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.VehicleProfile{}, fmt.Errorf("service.VehicleService.GetByID: %w", err)
	}
	return result, nil
}

// List returns all vehicle profiles ordered by name.
// Always returns a non-nil slice so callers can safely range over it.
func (s *VehicleService) List(ctx context.Context) ([]domain.VehicleProfile, error) {
	profiles, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.VehicleService.List: %w", err)
	}
	if profiles == nil {
		return []domain.VehicleProfile{}, nil
	}
	return profiles, nil
}

// Update validates and persists changes to an existing vehicle profile.
func (s *VehicleService) Update(ctx context.Context, v domain.VehicleProfile) (domain.VehicleProfile, error) {
	if err := validateVehicle(v); err != nil {
		return domain.VehicleProfile{}, fmt.Errorf("service.VehicleService.Update: %w", err)
	}
	result, err := s.repo.Update(ctx, v)
	if err != nil {
		return domain.VehicleProfile{}, fmt.Errorf("service.VehicleService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a vehicle profile by ID.
func (s *VehicleService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.VehicleService.Delete: %w", err)
	}
	return nil
}

// validateVehicle enforces the numbers the fuel planner divides by.
func validateVehicle(v domain.VehicleProfile) error {
	if strings.TrimSpace(v.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if v.TankLitres <= 0 {
		return fmt.Errorf("%w: tank_litres must be positive", domain.ErrValidation)
	}
	if v.LitresPer100Km <= 0 {
		return fmt.Errorf("%w: litres_per_100km must be positive", domain.ErrValidation)
	}
	if v.PricePerLitre < 0 {
		return fmt.Errorf("%w: price_per_litre must not be negative", domain.ErrValidation)
	}
	return nil
}
