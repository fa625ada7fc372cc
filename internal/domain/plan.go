package domain

import (
	"time"

	"github.com/google/uuid"
)

// SavedPlan is a persisted trip: the inputs needed to recompute the full
// itinerary, never the computed outputs. A plan is the top-level aggregate;
// loading one and running the engine always reproduces the same itinerary.
type SavedPlan struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	Notes     string         `json:"notes,omitempty"`
	Segments  []RouteSegment `json:"segments"`
	Settings  TripSettings   `json:"settings"`
	Budget    TripBudget     `json:"budget"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
