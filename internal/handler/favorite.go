package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chicaron82/roadtrip-planner-sub003/internal/domain"
)

// favoriteRequest is the body of POST /favorites. PlaceID is the provider's
// stable identifier and doubles as the upsert key.
type favoriteRequest struct {
	PlaceID  string   `json:"place_id"`
	Name     string   `json:"name"`
	Lat      float64  `json:"lat"`
	Lng      float64  `json:"lng"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Notes    string   `json:"notes,omitempty"`
}

func (req favoriteRequest) toDomain() domain.FavoritePOI {
	return domain.FavoritePOI{
		PlaceID:  req.PlaceID,
		Name:     req.Name,
		Lat:      req.Lat,
		Lng:      req.Lng,
		Category: req.Category,
		Tags:     req.Tags,
		Notes:    req.Notes,
	}
}

// handleStarFavorite handles POST /api/v1/favorites. Starring the same
// place twice updates it in place, but the status is 201 either way.
func (s *Server) handleStarFavorite(w http.ResponseWriter, r *http.Request) {
	var req favoriteRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body: "+err.Error())
		return
	}

	starred, err := s.deps.Favorites.Star(r.Context(), req.toDomain())
	if err != nil {
		s.respondServiceError(w, r, "favorite", err)
		return
	}
	respondJSON(w, http.StatusCreated, starred)
}

// handleListFavorites handles GET /api/v1/favorites with optional
// ?category= filtering and page/limit pagination.
func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	params := paginationParams(r)
	category := r.URL.Query().Get("category")

	favorites, total, err := s.deps.Favorites.ListPaged(r.Context(), category, params)
	if err != nil {
		s.respondServiceError(w, r, "favorite", err)
		return
	}
	respondJSON(w, http.StatusOK, pagedResponse{
		Data: favorites,
		Pagination: pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	})
}

// handleUnstarFavorite handles DELETE /api/v1/favorites/{placeID}.
func (s *Server) handleUnstarFavorite(w http.ResponseWriter, r *http.Request) {
	placeID := chi.URLParam(r, "placeID")
	if placeID == "" {
		badRequest(w, "missing place id")
		return
	}

	if err := s.deps.Favorites.Unstar(r.Context(), placeID); err != nil {
		s.respondServiceError(w, r, "favorite", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
