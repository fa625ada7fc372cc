package handler

import (
	"net/http"

	"github.com/chicaron82/roadtrip-planner-sub003/internal/domain"
	"github.com/chicaron82/roadtrip-planner-sub003/internal/service"
)

// adventureRequest is the body of POST /adventure: the constraint envelope
// plus optional destination candidates. With no candidates the service asks
// the places provider for destinations within reach.
type adventureRequest struct {
	Query      domain.AdventureQuery         `json:"query"`
	Candidates []domain.DestinationCandidate `json:"candidates,omitempty"`
}

// handleAdventure handles POST /api/v1/adventure.
func (s *Server) handleAdventure(w http.ResponseWriter, r *http.Request) {
	var req adventureRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body: "+err.Error())
		return
	}

	result, err := s.deps.Adventures.Explore(r.Context(), service.AdventureRequest{
		Query:      req.Query,
		Candidates: req.Candidates,
	})
	if err != nil {
		s.respondServiceError(w, r, "destination", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
