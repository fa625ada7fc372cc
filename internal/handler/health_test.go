package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chicaron82/roadtrip-planner-sub003/internal/handler"
)

// TestHealth_Returns200WithCheckStates verifies a healthy database and an
// unconfigured cache: the missing cache is "disabled", never a failure.
func TestHealth_Returns200WithCheckStates(t *testing.T) {
	// Arrange
	deps := handler.Deps{
		DBCheck: func(_ context.Context) error { return nil },
	}

	// Act
	rec := serve(deps, jsonRequest(t, http.MethodGet, "/healthz", nil))

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "ok", body.Checks["database"])
	assert.Equal(t, "disabled", body.Checks["cache"])
}

// TestHealth_DatabaseDownReturns503 verifies a failing ping degrades the
// whole endpoint.
func TestHealth_DatabaseDownReturns503(t *testing.T) {
	deps := handler.Deps{
		DBCheck:    func(_ context.Context) error { return errors.New("dial tcp: connection refused") },
		CacheCheck: func(_ context.Context) error { return nil },
	}

	rec := serve(deps, jsonRequest(t, http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, "unavailable", body.Checks["database"])
	assert.Equal(t, "ok", body.Checks["cache"])
}

// TestOpenAPI_ServesEmbeddedSpec verifies the contract ships inside the
// binary.
func TestOpenAPI_ServesEmbeddedSpec(t *testing.T) {
	rec := serve(handler.Deps{}, jsonRequest(t, http.MethodGet, "/openapi.yaml", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "openapi:")
	assert.Contains(t, rec.Body.String(), "/api/v1/itinerary")
}
