package handler

import (
	"net/http"

	"github.com/chicaron82/roadtrip-planner-sub003/internal/domain"
)

// planRequest is the write shape for POST and PUT /plans: everything a
// saved plan persists, minus the server-owned id and timestamps.
type planRequest struct {
	Name     string                `json:"name"`
	Notes    string                `json:"notes"`
	Segments []domain.RouteSegment `json:"segments"`
	Settings domain.TripSettings   `json:"settings"`
	Budget   domain.TripBudget     `json:"budget"`
}

func (req planRequest) toDomain() domain.SavedPlan {
	return domain.SavedPlan{
		Name:     req.Name,
		Notes:    req.Notes,
		Segments: req.Segments,
		Settings: req.Settings,
		Budget:   req.Budget,
	}
}

// handleCreatePlan handles POST /api/v1/plans.
func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body: "+err.Error())
		return
	}

	created, err := s.deps.Plans.Create(r.Context(), req.toDomain())
	if err != nil {
		s.respondServiceError(w, r, "plan", err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// handleListPlans handles GET /api/v1/plans.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	params := paginationParams(r)
	plans, total, err := s.deps.Plans.List(r.Context(), params)
	if err != nil {
		s.respondServiceError(w, r, "plan", err)
		return
	}

	respondJSON(w, http.StatusOK, pagedResponse{
		Data: plans,
		Pagination: pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	})
}

// handleGetPlan handles GET /api/v1/plans/{id}.
func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, "invalid plan id")
		return
	}

	plan, err := s.deps.Plans.GetByID(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, r, "plan", err)
		return
	}
	respondJSON(w, http.StatusOK, plan)
}

// handleUpdatePlan handles PUT /api/v1/plans/{id}.
func (s *Server) handleUpdatePlan(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, "invalid plan id")
		return
	}
	var req planRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body: "+err.Error())
		return
	}

	plan := req.toDomain()
	plan.ID = id

	updated, err := s.deps.Plans.Update(r.Context(), plan)
	if err != nil {
		s.respondServiceError(w, r, "plan", err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// handleDeletePlan handles DELETE /api/v1/plans/{id}.
func (s *Server) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, "invalid plan id")
		return
	}

	if err := s.deps.Plans.Delete(r.Context(), id); err != nil {
		s.respondServiceError(w, r, "plan", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
