package domain

// TripSummary is the headline numbers for the whole trip.
type TripSummary struct {
	TotalDays          int     `json:"total_days"`
	TotalDistanceKm    float64 `json:"total_distance_km"`
	TotalDriveMinutes  int     `json:"total_drive_minutes"`
	TotalFuelCost      int     `json:"total_fuel_cost"`
	OvernightCount     int     `json:"overnight_count"`
	StopCount          int     `json:"stop_count"`
	LongestDayMinutes  int     `json:"longest_day_minutes"`
	LongestDayNumber   int     `json:"longest_day_number"`
	EstimatedTotalCost int     `json:"estimated_total_cost"`
}

// Itinerary is the complete computed plan: days, stops, the expanded
// timeline, money, and the feasibility verdict. It is a pure function of
// (segments, settings, budget); recomputing from the same inputs yields an
// identical value.
//
// IncompleteRoute is set when segments with unresolved locations were
// excluded from the partition; ExcludedSegments lists their original
// indices. The rest of the itinerary covers the resolved legs only.
type Itinerary struct {
	Days     []TripDay       `json:"days"`
	Stops    []SuggestedStop `json:"stops"`
	Timeline []TimelineEvent `json:"timeline"`

	Budget      TripBudget        `json:"budget"`
	Feasibility FeasibilityResult `json:"feasibility"`
	Summary     TripSummary       `json:"summary"`

	// PacingSuggestions is advisory free text; nothing downstream branches
	// on it.
	PacingSuggestions []string `json:"pacing_suggestions,omitempty"`

	IncompleteRoute  bool  `json:"incomplete_route,omitempty"`
	ExcludedSegments []int `json:"excluded_segments,omitempty"`
}

// DayFor returns the day owning segment index i, or nil when no day owns
// it.
func (it *Itinerary) DayFor(i int) *TripDay {
	for d := range it.Days {
		for _, si := range it.Days[d].SegmentIndices {
			if si == i {
				return &it.Days[d]
			}
		}
	}
	return nil
}
