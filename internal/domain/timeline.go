package domain

import "time"

// EventType identifies one entry in a day's timed event sequence.
type EventType string

const (
	EventDepart    EventType = "depart"
	EventDrive     EventType = "drive"
	EventStop      EventType = "stop"
	EventArrive    EventType = "arrive"
	EventOvernight EventType = "overnight"
)

// Valid reports whether e is one of the known event types.
func (e EventType) Valid() bool {
	switch e {
	case EventDepart, EventDrive, EventStop, EventArrive, EventOvernight:
		return true
	}
	return false
}

// TimelineEvent is one timed entry of the expanded itinerary.
//
// At is the destination-local display clock, not traveller-perceived elapsed
// time: timezone shifts picked up during a day take effect from the next day
// onward, so within any single day event times are monotonically increasing
// and never precede that day's departure.
type TimelineEvent struct {
	Type            EventType `json:"type"`
	DayNumber       int       `json:"day_number"`
	At              time.Time `json:"at"`
	DurationMinutes int       `json:"duration_minutes,omitempty"`
	Label           string    `json:"label"`

	SegmentIndex *int           `json:"segment_index,omitempty"` // drive events only
	Stop         *SuggestedStop `json:"stop,omitempty"`          // stop events only
	Overnight    *OvernightStop `json:"overnight,omitempty"`     // overnight events only
}
