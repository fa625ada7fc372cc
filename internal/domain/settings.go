package domain

import "time"

// StopFrequency selects how eagerly the stop planner inserts rest and fuel
// stops.
type StopFrequency string

const (
	FrequencyConservative StopFrequency = "conservative"
	FrequencyBalanced     StopFrequency = "balanced"
	FrequencyAggressive   StopFrequency = "aggressive"
)

// Valid reports whether f is one of the known frequencies.
func (f StopFrequency) Valid() bool {
	switch f {
	case FrequencyConservative, FrequencyBalanced, FrequencyAggressive:
		return true
	}
	return false
}

// TripSettings is every user-entered constraint the engine recomputes from.
// Settings are inputs: the engine never mutates them.
type TripSettings struct {
	MaxDriveHours  float64 `json:"max_drive_hours"`
	ToleranceHours float64 `json:"tolerance_hours"`

	DepartureAt time.Time `json:"departure_at"`
	// ArrivalAt is read only when UseArrivalTime is set; the zero value is
	// ignored otherwise.
	ArrivalAt      time.Time `json:"arrival_at"`
	UseArrivalTime bool      `json:"use_arrival_time"`

	IsRoundTrip bool `json:"is_round_trip"`
	// BeastMode disables the daily drive cap entirely. Long-drive warnings
	// stay informational; splitting is bypassed.
	BeastMode bool `json:"beast_mode"`

	StopFrequency StopFrequency `json:"stop_frequency"`

	NumTravelers int `json:"num_travelers"`
	NumDrivers   int `json:"num_drivers"`

	Currency     string `json:"currency,omitempty"`
	DistanceUnit string `json:"distance_unit,omitempty"`

	// DayTypes carries user overrides keyed by day number. Days absent from
	// the map default to planned. The engine reads these on recomputation
	// but never writes them.
	DayTypes map[int]DayType `json:"day_types,omitempty"`
}

// CapMinutes returns the per-day drive allowance including tolerance.
func (s TripSettings) CapMinutes() int {
	return int((s.MaxDriveHours + s.ToleranceHours) * 60)
}

// RoomsNeeded returns ceil(travelers/2), minimum one room.
func (s TripSettings) RoomsNeeded() int {
	if s.NumTravelers <= 2 {
		return 1
	}
	return (s.NumTravelers + 1) / 2
}
