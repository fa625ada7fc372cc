package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chicaron82/roadtrip-planner-sub003/internal/domain"
	"github.com/chicaron82/roadtrip-planner-sub003/internal/handler"
	"github.com/chicaron82/roadtrip-planner-sub003/internal/service"
)

func itineraryBody() map[string]any {
	return map[string]any{
		"segments": []map[string]any{
			{
				"from":             map[string]any{"name": "Montreal", "lat": 45.50, "lng": -73.57},
				"to":               map[string]any{"name": "Kingston", "lat": 44.23, "lng": -76.49},
				"distance_km":      290.0,
				"duration_minutes": 180,
			},
		},
		"settings": map[string]any{
			"max_drive_hours": 8,
			"num_travelers":   2,
			"num_drivers":     1,
		},
	}
}

// TestBuildItinerary_Returns200 verifies the stateless compute path: body
// in, full itinerary out, nothing else touched.
func TestBuildItinerary_Returns200(t *testing.T) {
	// Arrange
	itineraries := &mockItineraries{
		build: func(_ context.Context, req service.BuildRequest) (domain.Itinerary, error) {
			require.Len(t, req.Segments, 1)
			return domain.Itinerary{
				Summary: domain.TripSummary{TotalDays: 1, TotalDistanceKm: 290},
			}, nil
		},
	}

	// Act
	rec := serve(handler.Deps{Itineraries: itineraries},
		jsonRequest(t, http.MethodPost, "/api/v1/itinerary", itineraryBody()))

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)

	var got domain.Itinerary
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, 1, got.Summary.TotalDays)
	assert.InDelta(t, 290.0, got.Summary.TotalDistanceKm, 0.001)
}

// TestBuildItinerary_DecodesVehicleReference verifies vehicle_id survives
// the DTO translation as a pointer, absent meaning nil.
func TestBuildItinerary_DecodesVehicleReference(t *testing.T) {
	vehicleID := uuid.New()
	var gotReq service.BuildRequest
	itineraries := &mockItineraries{
		build: func(_ context.Context, req service.BuildRequest) (domain.Itinerary, error) {
			gotReq = req
			return domain.Itinerary{}, nil
		},
	}

	body := itineraryBody()
	body["vehicle_id"] = vehicleID.String()

	rec := serve(handler.Deps{Itineraries: itineraries},
		jsonRequest(t, http.MethodPost, "/api/v1/itinerary", body))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotReq.VehicleID)
	assert.Equal(t, vehicleID, *gotReq.VehicleID)
	assert.Nil(t, gotReq.Vehicle)
}

// TestBuildItinerary_EngineValidationMaps422 verifies engine rejections
// surface as 422, not 500.
func TestBuildItinerary_EngineValidationMaps422(t *testing.T) {
	itineraries := &mockItineraries{
		build: func(_ context.Context, _ service.BuildRequest) (domain.Itinerary, error) {
			return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Build: %w",
				fmt.Errorf("engine.Engine.BuildItinerary: max drive hours must be positive: %w", domain.ErrValidation))
		},
	}

	rec := serve(handler.Deps{Itineraries: itineraries},
		jsonRequest(t, http.MethodPost, "/api/v1/itinerary", itineraryBody()))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body errorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "validation_error", body.Error.Code)
}

// TestPlanItinerary_RecomputesForPathID verifies the saved-plan route hands
// the path id to the service.
func TestPlanItinerary_RecomputesForPathID(t *testing.T) {
	planID := uuid.New()
	var gotID uuid.UUID
	itineraries := &mockItineraries{
		forPlan: func(_ context.Context, id uuid.UUID) (domain.Itinerary, error) {
			gotID = id
			return domain.Itinerary{Summary: domain.TripSummary{TotalDays: 2}}, nil
		},
	}

	rec := serve(handler.Deps{Itineraries: itineraries},
		jsonRequest(t, http.MethodGet, "/api/v1/plans/"+planID.String()+"/itinerary", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, planID, gotID)
}

// TestPlanItinerary_PlanGoneMaps404 covers the dangling-id case.
func TestPlanItinerary_PlanGoneMaps404(t *testing.T) {
	itineraries := &mockItineraries{
		forPlan: func(_ context.Context, _ uuid.UUID) (domain.Itinerary, error) {
			return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.ForPlan: %w", domain.ErrNotFound)
		},
	}

	rec := serve(handler.Deps{Itineraries: itineraries},
		jsonRequest(t, http.MethodGet, "/api/v1/plans/"+uuid.NewString()+"/itinerary", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)

	var body errorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "plan not found", body.Error.Message)
}
