package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/chicaron82/roadtrip-planner-sub003/internal/domain"
	"github.com/chicaron82/roadtrip-planner-sub003/internal/service"
)

// itineraryRequest is the body of POST /itinerary and /itinerary/export:
// one full stateless computation. vehicle and vehicle_id are alternatives;
// the inline profile wins when both are present.
type itineraryRequest struct {
	Segments       []domain.RouteSegment  `json:"segments"`
	Settings       domain.TripSettings    `json:"settings"`
	Budget         domain.TripBudget      `json:"budget"`
	Vehicle        *domain.VehicleProfile `json:"vehicle,omitempty"`
	VehicleID      *uuid.UUID             `json:"vehicle_id,omitempty"`
	DismissedStops []domain.StopKey       `json:"dismissed_stops,omitempty"`
}

func (req itineraryRequest) toBuildRequest() service.BuildRequest {
	return service.BuildRequest{
		Segments:       req.Segments,
		Settings:       req.Settings,
		Budget:         req.Budget,
		Vehicle:        req.Vehicle,
		VehicleID:      req.VehicleID,
		DismissedStops: req.DismissedStops,
	}
}

// handleBuildItinerary handles POST /api/v1/itinerary.
// The response is the complete computed itinerary; nothing is stored.
func (s *Server) handleBuildItinerary(w http.ResponseWriter, r *http.Request) {
	var req itineraryRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body: "+err.Error())
		return
	}

	it, err := s.deps.Itineraries.Build(r.Context(), req.toBuildRequest())
	if err != nil {
		s.respondServiceError(w, r, "vehicle", err)
		return
	}
	respondJSON(w, http.StatusOK, it)
}

// handlePlanItinerary handles GET /api/v1/plans/{id}/itinerary.
// The itinerary is recomputed from the plan's persisted inputs on every call.
func (s *Server) handlePlanItinerary(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, "invalid plan id")
		return
	}

	it, err := s.deps.Itineraries.ForPlan(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, r, "plan", err)
		return
	}
	respondJSON(w, http.StatusOK, it)
}
