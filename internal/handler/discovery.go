package handler

import (
	"net/http"

	"github.com/chicaron82/roadtrip-planner-sub003/internal/domain"
	"github.com/chicaron82/roadtrip-planner-sub003/internal/service"
)

// discoveryRequest is the body of POST /discovery. Candidates carry the
// caller's current POI set with its action states; the provider search adds
// fresh ones per corridor when configured.
type discoveryRequest struct {
	Segments          []domain.RouteSegment  `json:"segments"`
	Settings          domain.TripSettings    `json:"settings"`
	Candidates        []domain.DiscoveredPOI `json:"candidates,omitempty"`
	Categories        []string               `json:"categories,omitempty"`
	RadiusKm          float64                `json:"radius_km,omitempty"`
	TimeBudgetMinutes int                    `json:"time_budget_minutes,omitempty"`
	AutoAddNoBrainers bool                   `json:"auto_add_no_brainers,omitempty"`
}

// poiActionRequest is the body of POST /discovery/action: one state
// transition applied to one POI inside the caller's set.
type poiActionRequest struct {
	POIs  []domain.DiscoveredPOI `json:"pois"`
	ID    string                 `json:"id"`
	State domain.POIActionState  `json:"state"`
}

// poiActionResponse returns the full updated set.
type poiActionResponse struct {
	POIs []domain.DiscoveredPOI `json:"pois"`
}

// handleDiscovery handles POST /api/v1/discovery.
// Answers 502 only when every corridor search failed and the caller
// supplied no candidates of their own.
func (s *Server) handleDiscovery(w http.ResponseWriter, r *http.Request) {
	var req discoveryRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body: "+err.Error())
		return
	}

	result, err := s.deps.Discovery.Discover(r.Context(), service.DiscoverRequest{
		Segments:          req.Segments,
		Settings:          req.Settings,
		Candidates:        req.Candidates,
		Categories:        req.Categories,
		RadiusKm:          req.RadiusKm,
		TimeBudgetMinutes: req.TimeBudgetMinutes,
		AutoAddNoBrainers: req.AutoAddNoBrainers,
	})
	if err != nil {
		s.respondServiceError(w, r, "poi", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// handlePOIAction handles POST /api/v1/discovery/action.
func (s *Server) handlePOIAction(w http.ResponseWriter, r *http.Request) {
	var req poiActionRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body: "+err.Error())
		return
	}

	updated, err := s.deps.Discovery.ApplyAction(req.POIs, req.ID, req.State)
	if err != nil {
		s.respondServiceError(w, r, "poi", err)
		return
	}
	respondJSON(w, http.StatusOK, poiActionResponse{POIs: updated})
}
