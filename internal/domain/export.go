package domain

// ItineraryExportRow is a single row in the itinerary export.
// It is a flat, denormalized view: one row per timeline event, with day
// fields repeated for every event on that day. Days with no events never
// occur; every day has at least a depart and an arrive event.
//
// Times are formatted by the service layer so the row stays encoding-ready
// for CSV without further conversion.
type ItineraryExportRow struct {
	// Day fields — repeated for every event on the day.
	DayNumber       int
	DayDate         string // "2006-01-02" formatted date
	DayDistanceKm   float64
	DayDriveMinutes int

	// Event fields.
	EventType       string
	At              string // "15:04" local clock
	DurationMinutes int
	Label           string
	StopType        string // empty for non-stop events
	EstimatedCost   int
}
