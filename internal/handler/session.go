package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/chicaron82/roadtrip-planner-sub003/internal/domain"
)

// sessionInputsRequest is the body of PUT /session/{id}/inputs. Every field
// is optional; only present fields are applied, so the client can PUT just
// the slider it moved. ClearVehicle drops the vehicle entirely, which a
// plain absent field cannot express.
type sessionInputsRequest struct {
	Segments       *[]domain.RouteSegment `json:"segments,omitempty"`
	Settings       *domain.TripSettings   `json:"settings,omitempty"`
	Budget         *domain.TripBudget     `json:"budget,omitempty"`
	Vehicle        *domain.VehicleProfile `json:"vehicle,omitempty"`
	DismissedStops *[]domain.StopKey      `json:"dismissed_stops,omitempty"`
	ClearVehicle   bool                   `json:"clear_vehicle,omitempty"`
}

type sessionCreatedResponse struct {
	ID uuid.UUID `json:"id"`
}

type sessionStatusResponse struct {
	Status string `json:"status"`
}

// handleCreateSession handles POST /api/v1/session.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	id := s.deps.Sessions.Create()
	respondJSON(w, http.StatusCreated, sessionCreatedResponse{ID: id})
}

// handleUpdateSessionInputs handles PUT /api/v1/session/{id}/inputs.
// Returns 202: the recompute is debounced and runs in the background, so
// the response never carries an itinerary.
func (s *Server) handleUpdateSessionInputs(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, "invalid session id")
		return
	}
	planner, ok := s.deps.Sessions.Get(id)
	if !ok {
		respondError(w, http.StatusNotFound, "not_found", "session not found")
		return
	}

	var req sessionInputsRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body: "+err.Error())
		return
	}

	if req.Segments != nil {
		planner.UpdateSegments(*req.Segments)
	}
	if req.Settings != nil {
		planner.UpdateSettings(*req.Settings)
	}
	if req.Budget != nil {
		planner.UpdateBudget(*req.Budget)
	}
	if req.Vehicle != nil {
		planner.UpdateVehicle(req.Vehicle)
	}
	if req.ClearVehicle {
		planner.UpdateVehicle(nil)
	}
	if req.DismissedStops != nil {
		planner.UpdateDismissedStops(*req.DismissedStops)
	}
	respondJSON(w, http.StatusAccepted, sessionStatusResponse{Status: "recomputing"})
}

// handleSessionItinerary handles GET /api/v1/session/{id}/itinerary.
// 202 means the session exists but no generation has finished yet; poll
// again after the debounce interval.
func (s *Server) handleSessionItinerary(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, "invalid session id")
		return
	}
	planner, ok := s.deps.Sessions.Get(id)
	if !ok {
		respondError(w, http.StatusNotFound, "not_found", "session not found")
		return
	}

	computed, ok := planner.Latest()
	if !ok {
		respondJSON(w, http.StatusAccepted, sessionStatusResponse{Status: "pending"})
		return
	}
	respondJSON(w, http.StatusOK, computed)
}

// handleDeleteSession handles DELETE /api/v1/session/{id}. Deleting an
// unknown session is a no-op, not an error.
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, "invalid session id")
		return
	}
	s.deps.Sessions.Delete(id)
	w.WriteHeader(http.StatusNoContent)
}
