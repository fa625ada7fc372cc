package handler

import (
	"net/http"

	"github.com/chicaron82/roadtrip-planner-sub003/internal/domain"
)

// vehicleRequest is the create/update body for a vehicle profile. The ID and
// timestamps are server-assigned.
type vehicleRequest struct {
	Name           string  `json:"name"`
	FuelType       string  `json:"fuel_type"`
	TankLitres     float64 `json:"tank_litres"`
	LitresPer100Km float64 `json:"litres_per_100km"`
	PricePerLitre  float64 `json:"price_per_litre"`
}

func (req vehicleRequest) toDomain() domain.VehicleProfile {
	return domain.VehicleProfile{
		Name:           req.Name,
		FuelType:       req.FuelType,
		TankLitres:     req.TankLitres,
		LitresPer100Km: req.LitresPer100Km,
		PricePerLitre:  req.PricePerLitre,
	}
}

// handleCreateVehicle handles POST /api/v1/vehicles.
func (s *Server) handleCreateVehicle(w http.ResponseWriter, r *http.Request) {
	var req vehicleRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body: "+err.Error())
		return
	}

	created, err := s.deps.Vehicles.Create(r.Context(), req.toDomain())
	if err != nil {
		s.respondServiceError(w, r, "vehicle", err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// handleListVehicles handles GET /api/v1/vehicles. The fleet is small by
// nature, so the list is unpaginated.
func (s *Server) handleListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := s.deps.Vehicles.List(r.Context())
	if err != nil {
		s.respondServiceError(w, r, "vehicle", err)
		return
	}
	respondJSON(w, http.StatusOK, vehicles)
}

// handleGetVehicle handles GET /api/v1/vehicles/{id}.
func (s *Server) handleGetVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, "invalid vehicle id")
		return
	}

	vehicle, err := s.deps.Vehicles.GetByID(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, r, "vehicle", err)
		return
	}
	respondJSON(w, http.StatusOK, vehicle)
}

// handleUpdateVehicle handles PUT /api/v1/vehicles/{id}.
func (s *Server) handleUpdateVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, "invalid vehicle id")
		return
	}

	var req vehicleRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body: "+err.Error())
		return
	}

	vehicle := req.toDomain()
	vehicle.ID = id
	updated, err := s.deps.Vehicles.Update(r.Context(), vehicle)
	if err != nil {
		s.respondServiceError(w, r, "vehicle", err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// handleDeleteVehicle handles DELETE /api/v1/vehicles/{id}.
func (s *Server) handleDeleteVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, "invalid vehicle id")
		return
	}

	if err := s.deps.Vehicles.Delete(r.Context(), id); err != nil {
		s.respondServiceError(w, r, "vehicle", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
