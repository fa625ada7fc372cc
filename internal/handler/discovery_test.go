package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chicaron82/roadtrip-planner-sub003/internal/domain"
	"github.com/chicaron82/roadtrip-planner-sub003/internal/handler"
	"github.com/chicaron82/roadtrip-planner-sub003/internal/service"
)

// TestDiscovery_Returns200WithPartialFlag verifies the partial-results
// signal reaches the wire untouched.
func TestDiscovery_Returns200WithPartialFlag(t *testing.T) {
	// Arrange
	var gotReq service.DiscoverRequest
	discovery := &mockDiscovery{
		discover: func(_ context.Context, req service.DiscoverRequest) (domain.DiscoveryResult, error) {
			gotReq = req
			return domain.DiscoveryResult{
				POIs:            []domain.DiscoveredPOI{{ID: "poi-falls", Name: "Chute Falls"}},
				PartialResults:  true,
				FailedCorridors: []string{"Montreal to Kingston"},
			}, nil
		},
	}
	body := map[string]any{
		"segments": []map[string]any{
			{
				"from":             map[string]any{"name": "Montreal", "lat": 45.50, "lng": -73.57},
				"to":               map[string]any{"name": "Kingston", "lat": 44.23, "lng": -76.49},
				"distance_km":      290.0,
				"duration_minutes": 180,
			},
		},
		"settings":            map[string]any{"max_drive_hours": 8},
		"time_budget_minutes": 90,
		"categories":          []string{"nature"},
	}

	// Act
	rec := serve(handler.Deps{Discovery: discovery},
		jsonRequest(t, http.MethodPost, "/api/v1/discovery", body))

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 90, gotReq.TimeBudgetMinutes)
	assert.Equal(t, []string{"nature"}, gotReq.Categories)

	var got domain.DiscoveryResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got.POIs, 1)
	assert.True(t, got.PartialResults)
	assert.Equal(t, []string{"Montreal to Kingston"}, got.FailedCorridors)
}

// TestDiscovery_ProviderDownMaps502 covers the every-corridor-failed case.
func TestDiscovery_ProviderDownMaps502(t *testing.T) {
	discovery := &mockDiscovery{
		discover: func(_ context.Context, _ service.DiscoverRequest) (domain.DiscoveryResult, error) {
			return domain.DiscoveryResult{}, fmt.Errorf("service.DiscoveryService.Discover: all corridor searches failed: %w", domain.ErrProvider)
		},
	}

	rec := serve(handler.Deps{Discovery: discovery},
		jsonRequest(t, http.MethodPost, "/api/v1/discovery", map[string]any{}))

	require.Equal(t, http.StatusBadGateway, rec.Code)

	var body errorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "provider_unavailable", body.Error.Code)
}

// TestPOIAction_Returns200WithUpdatedSet verifies one transition comes back
// as the full updated list.
func TestPOIAction_Returns200WithUpdatedSet(t *testing.T) {
	var gotID string
	var gotState domain.POIActionState
	discovery := &mockDiscovery{
		applyAction: func(pois []domain.DiscoveredPOI, id string, state domain.POIActionState) ([]domain.DiscoveredPOI, error) {
			gotID = id
			gotState = state
			pois[0].ActionState = state
			return pois, nil
		},
	}
	body := map[string]any{
		"pois":  []map[string]any{{"id": "poi-falls", "action_state": "pending"}},
		"id":    "poi-falls",
		"state": "dismissed",
	}

	rec := serve(handler.Deps{Discovery: discovery},
		jsonRequest(t, http.MethodPost, "/api/v1/discovery/action", body))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "poi-falls", gotID)
	assert.Equal(t, domain.POIDismissed, gotState)

	var got struct {
		POIs []domain.DiscoveredPOI `json:"pois"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got.POIs, 1)
	assert.Equal(t, domain.POIDismissed, got.POIs[0].ActionState)
}

// TestPOIAction_UnknownPOIMaps404 verifies acting on an id outside the set.
func TestPOIAction_UnknownPOIMaps404(t *testing.T) {
	discovery := &mockDiscovery{
		applyAction: func(_ []domain.DiscoveredPOI, _ string, _ domain.POIActionState) ([]domain.DiscoveredPOI, error) {
			return nil, fmt.Errorf("service.DiscoveryService.ApplyAction: %w", domain.ErrNotFound)
		},
	}
	body := map[string]any{"pois": []map[string]any{}, "id": "poi-ghost", "state": "added"}

	rec := serve(handler.Deps{Discovery: discovery},
		jsonRequest(t, http.MethodPost, "/api/v1/discovery/action", body))

	require.Equal(t, http.StatusNotFound, rec.Code)

	var respBody errorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&respBody))
	assert.Equal(t, "poi not found", respBody.Error.Message)
}
