package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/chicaron82/roadtrip-planner-sub003/internal/domain"
	"github.com/chicaron82/roadtrip-planner-sub003/internal/repo"
)

// FavoriteService implements business logic for starred places.
type FavoriteService struct {
	repo repo.FavoriteRepo
}

// NewFavoriteService constructs a FavoriteService backed by the provided
// FavoriteRepo.
func NewFavoriteService(r repo.FavoriteRepo) *FavoriteService {
	return &FavoriteService{repo: r}
}

// Star adds a place to the favorites. Starring an already-starred place
// returns the existing favorite unchanged.
func (s *FavoriteService) Star(ctx context.Context, fav domain.FavoritePOI) (domain.FavoritePOI, error) {
	if err := validateFavorite(fav); err != nil {
		return domain.FavoritePOI{}, fmt.Errorf("service.FavoriteService.Star: %w", err)
	}
	fav.Tags = normalizeTags(fav.Tags)

	result, err := s.repo.Upsert(ctx, fav)
	if err != nil {
		return domain.FavoritePOI{}, fmt.Errorf("service.FavoriteService.Star: %w", err)
	}
	return result, nil
}

// List returns favorites matching the category filter, all of them when
// category is empty. Always returns a non-nil slice.
func (s *FavoriteService) List(ctx context.Context, category string) ([]domain.FavoritePOI, error) {
	favorites, err := s.repo.List(ctx, strings.TrimSpace(category))
	if err != nil {
		return nil, fmt.Errorf("service.FavoriteService.List: %w", err)
	}
	if favorites == nil {
		return []domain.FavoritePOI{}, nil
	}
	return favorites, nil
}

// ListPaged returns one page of favorites plus the total count.
func (s *FavoriteService) ListPaged(ctx context.Context, category string, p domain.PaginationParams) ([]domain.FavoritePOI, int64, error) {
	favorites, total, err := s.repo.ListPaged(ctx, strings.TrimSpace(category), p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.FavoriteService.ListPaged: %w", err)
	}
	if favorites == nil {
		return []domain.FavoritePOI{}, total, nil
	}
	return favorites, total, nil
}

// Unstar removes a favorite by its place id.
// Returns domain.ErrNotFound if the place was never starred.
func (s *FavoriteService) Unstar(ctx context.Context, placeID string) error {
	if err := s.repo.Delete(ctx, placeID); err != nil {
		return fmt.Errorf("service.FavoriteService.Unstar: %w", err)
	}
	return nil
}

func validateFavorite(fav domain.FavoritePOI) error {
	if strings.TrimSpace(fav.PlaceID) == "" {
		return fmt.Errorf("%w: place_id is required", domain.ErrValidation)
	}
	if strings.TrimSpace(fav.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	return nil
}

// normalizeTags trims, drops empties and dedupes while keeping first-seen
// order.
func normalizeTags(tags []string) []string {
	cleaned := lo.FilterMap(tags, func(t string, _ int) (string, bool) {
		t = strings.TrimSpace(t)
		return t, t != ""
	})
	return lo.Uniq(cleaned)
}
