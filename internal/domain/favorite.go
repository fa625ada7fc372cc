package domain

import (
	"time"

	"github.com/google/uuid"
)

// FavoritePOI is a place the traveller starred for later trips.
// Favorites are global, not owned by any plan. Identity is determined by
// PlaceID, the provider's stable identifier, so starring the same place
// twice is a no-op.
type FavoritePOI struct {
	ID        uuid.UUID `json:"id"`
	PlaceID   string    `json:"place_id"`
	Name      string    `json:"name"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Category  string    `json:"category,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
