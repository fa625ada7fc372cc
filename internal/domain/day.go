package domain

import "time"

// DayType classifies a day's purpose. Days default to planned; free and
// flexible are explicit user choices carried in TripSettings.DayTypes.
type DayType string

const (
	DayPlanned  DayType = "planned"
	DayFree     DayType = "free"
	DayFlexible DayType = "flexible"
)

// Valid reports whether t is one of the known day types.
func (t DayType) Valid() bool {
	switch t {
	case DayPlanned, DayFree, DayFlexible:
		return true
	}
	return false
}

// AccommodationType names where an overnight happens.
type AccommodationType string

const (
	AccommodationHotel   AccommodationType = "hotel"
	AccommodationCamping AccommodationType = "camping"
	AccommodationAirbnb  AccommodationType = "airbnb"
	AccommodationFriends AccommodationType = "friends"
	AccommodationOther   AccommodationType = "other"
)

// Valid reports whether a is one of the known accommodation types.
func (a AccommodationType) Valid() bool {
	switch a {
	case AccommodationHotel, AccommodationCamping, AccommodationAirbnb,
		AccommodationFriends, AccommodationOther:
		return true
	}
	return false
}

// OvernightStop is the synthesized lodging inserted at a day-split
// boundary. CostPerNight is per room.
type OvernightStop struct {
	Location      Location          `json:"location"`
	Accommodation AccommodationType `json:"accommodation"`
	CostPerNight  int               `json:"cost_per_night"`
	RoomsNeeded   int               `json:"rooms_needed"`
	CheckIn       time.Time         `json:"check_in"`
	CheckOut      time.Time         `json:"check_out"`
	Amenities     []string          `json:"amenities,omitempty"`
}

// TotalCost returns the night's cost across all rooms.
func (o OvernightStop) TotalCost() int {
	rooms := o.RoomsNeeded
	if rooms < 1 {
		rooms = 1
	}
	return o.CostPerNight * rooms
}

// TripDay is one driving day of the partitioned itinerary.
//
// Invariant: concatenating SegmentIndices across days in DayNumber order
// yields the full leg index sequence exactly once, in original order.
// DriveTimeMinutes counts driving only; stop time is visible on the
// timeline, not here.
type TripDay struct {
	DayNumber      int     `json:"day_number"`
	SegmentIndices []int   `json:"segment_indices"`
	DayType        DayType `json:"day_type"`

	DistanceKm       float64 `json:"distance_km"`
	DriveTimeMinutes int     `json:"drive_time_minutes"`

	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`

	Overnight *OvernightStop `json:"overnight,omitempty"` // nil on the final day
	Budget    *DayBudget     `json:"budget,omitempty"`
}
