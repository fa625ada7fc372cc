// Package handler implements the HTTP handlers for the trip planner API.
// All handlers are methods on Server and are split into domain-specific
// files (itinerary.go, plan.go, etc.) but share the same Server struct so
// they can access its dependencies. Routes assembles the chi router.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/chicaron82/roadtrip-planner-sub003/internal/domain"
	"github.com/chicaron82/roadtrip-planner-sub003/internal/service"
	"github.com/chicaron82/roadtrip-planner-sub003/internal/session"
)

// PlanServicer defines the business operations the plan handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type PlanServicer interface {
	Create(ctx context.Context, plan domain.SavedPlan) (domain.SavedPlan, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.SavedPlan, error)
	List(ctx context.Context, p domain.PaginationParams) ([]domain.SavedPlan, int64, error)
	Update(ctx context.Context, plan domain.SavedPlan) (domain.SavedPlan, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// VehicleServicer defines the operations the vehicle handlers depend on.
type VehicleServicer interface {
	Create(ctx context.Context, v domain.VehicleProfile) (domain.VehicleProfile, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.VehicleProfile, error)
	List(ctx context.Context) ([]domain.VehicleProfile, error)
	Update(ctx context.Context, v domain.VehicleProfile) (domain.VehicleProfile, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// FavoriteServicer defines the operations the favorite handlers depend on.
type FavoriteServicer interface {
	Star(ctx context.Context, fav domain.FavoritePOI) (domain.FavoritePOI, error)
	ListPaged(ctx context.Context, category string, p domain.PaginationParams) ([]domain.FavoritePOI, int64, error)
	Unstar(ctx context.Context, placeID string) error
}

// ItineraryBuilder computes itineraries from raw inputs or saved plans.
type ItineraryBuilder interface {
	Build(ctx context.Context, req service.BuildRequest) (domain.Itinerary, error)
	ForPlan(ctx context.Context, planID uuid.UUID) (domain.Itinerary, error)
}

// DiscoveryServicer runs POI discovery and action transitions.
type DiscoveryServicer interface {
	Discover(ctx context.Context, req service.DiscoverRequest) (domain.DiscoveryResult, error)
	ApplyAction(pois []domain.DiscoveredPOI, id string, state domain.POIActionState) ([]domain.DiscoveredPOI, error)
}

// AdventureServicer answers reachability queries.
type AdventureServicer interface {
	Explore(ctx context.Context, req service.AdventureRequest) (service.AdventureResult, error)
}

// ExportServicer flattens itineraries into export rows.
type ExportServicer interface {
	Export(ctx context.Context, req service.BuildRequest) ([]domain.ItineraryExportRow, error)
}

// CheckFunc reports the health of one dependency. A nil CheckFunc marks
// the dependency as disabled rather than broken.
type CheckFunc func(ctx context.Context) error

// Deps carries everything the Server needs. The health checks are the only
// optional members; everything else must be wired.
type Deps struct {
	Plans       PlanServicer
	Vehicles    VehicleServicer
	Favorites   FavoriteServicer
	Itineraries ItineraryBuilder
	Discovery   DiscoveryServicer
	Adventures  AdventureServicer
	Exports     ExportServicer
	Sessions    *session.Manager

	DBCheck    CheckFunc
	CacheCheck CheckFunc

	Log *slog.Logger
}

// Server holds the handler dependencies. Methods live in domain-specific
// files but all operate on this struct.
type Server struct {
	deps Deps
	log  *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(deps Deps) *Server {
	log := deps.Log
	if log == nil {
		log = slog.Default()
	}
	return &Server{deps: deps, log: log}
}

// Routes assembles the API router. Cross-cutting middleware (request ids,
// logging, CORS, body limits) is applied by the caller so tests can mount
// the bare routes.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealth)
	r.Get("/openapi.yaml", s.handleOpenAPI)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/itinerary", s.handleBuildItinerary)
		r.Post("/itinerary/export", s.handleExportItinerary)
		r.Post("/discovery", s.handleDiscovery)
		r.Post("/discovery/action", s.handlePOIAction)
		r.Post("/adventure", s.handleAdventure)

		r.Route("/plans", func(r chi.Router) {
			r.Post("/", s.handleCreatePlan)
			r.Get("/", s.handleListPlans)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetPlan)
				r.Put("/", s.handleUpdatePlan)
				r.Delete("/", s.handleDeletePlan)
				r.Get("/itinerary", s.handlePlanItinerary)
			})
		})

		r.Route("/vehicles", func(r chi.Router) {
			r.Post("/", s.handleCreateVehicle)
			r.Get("/", s.handleListVehicles)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetVehicle)
				r.Put("/", s.handleUpdateVehicle)
				r.Delete("/", s.handleDeleteVehicle)
			})
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Post("/", s.handleStarFavorite)
			r.Get("/", s.handleListFavorites)
			r.Delete("/{placeID}", s.handleUnstarFavorite)
		})

		r.Route("/session", func(r chi.Router) {
			r.Post("/", s.handleCreateSession)
			r.Put("/{id}/inputs", s.handleUpdateSessionInputs)
			r.Get("/{id}/itinerary", s.handleSessionItinerary)
			r.Delete("/{id}", s.handleDeleteSession)
		})
	})

	return r
}

// ---- shared plumbing -------------------------------------------------------

// pagination is the page metadata attached to every list response.
type pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// pagedResponse is the standard list envelope: the page of data plus where
// it sits in the full result.
type pagedResponse struct {
	Data       any        `json:"data"`
	Pagination pagination `json:"pagination"`
}

// respondJSON writes v as the JSON response body with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck — nothing useful to do if the client went away mid-write.
	json.NewEncoder(w).Encode(v)
}

// decodeJSON decodes the request body into dst. The body size is already
// capped by the max-body-size middleware.
func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}
	return json.NewDecoder(r.Body).Decode(dst)
}

// pathUUID parses the named chi URL parameter as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}

// queryInt returns the named query parameter as an int pointer, or nil
// when absent or malformed. Pagination falls back to its defaults for nil.
func queryInt(r *http.Request, name string) *int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

// paginationParams reads ?page= and ?limit= with the domain defaults.
func paginationParams(r *http.Request) domain.PaginationParams {
	return domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))
}
