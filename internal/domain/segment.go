// Package domain contains the core data types for the road-trip planner.
// This package has zero business logic and is imported by every other
// internal package (engine, repo, service, handler).
package domain

// WarningSeverity grades how serious a warning is.
type WarningSeverity string

const (
	SeverityInfo     WarningSeverity = "info"
	SeverityWarning  WarningSeverity = "warning"
	SeverityCritical WarningSeverity = "critical"
)

// Valid reports whether s is one of the known severities.
func (s WarningSeverity) Valid() bool {
	switch s {
	case SeverityInfo, SeverityWarning, SeverityCritical:
		return true
	}
	return false
}

// SegmentWarningType identifies what a segment warning is about.
type SegmentWarningType string

const (
	WarnLongDrive      SegmentWarningType = "long_drive"
	WarnBorderCrossing SegmentWarningType = "border_crossing"
	WarnTimezone       SegmentWarningType = "timezone"
	WarnWeather        SegmentWarningType = "weather"
)

// SegmentWarning is a single annotation attached to a route segment by the
// segment analyzer (or passed through from the routing provider).
type SegmentWarning struct {
	Type     SegmentWarningType `json:"type"`
	Severity WarningSeverity    `json:"severity"`
	Message  string             `json:"message"`
}

// RouteSegment is one origin→destination hop of the calculated route.
// Segments are produced once per route calculation and are the unit the
// rest of the engine partitions; the analyzer returns annotated copies and
// never mutates the originals.
type RouteSegment struct {
	From            Location         `json:"from"`
	To              Location         `json:"to"`
	DistanceKm      float64          `json:"distance_km"`
	DurationMinutes int              `json:"duration_minutes"`
	FuelCost        float64          `json:"fuel_cost"`
	Warnings        []SegmentWarning `json:"warnings,omitempty"`
	SuggestedBreak  bool             `json:"suggested_break,omitempty"`

	// TimezoneCrossing is set when the segment's endpoints sit far enough
	// apart in longitude to imply a zone change. TimezoneLabel carries a
	// representative UTC offset for the destination side (e.g. "UTC-07:00").
	TimezoneCrossing bool   `json:"timezone_crossing,omitempty"`
	TimezoneLabel    string `json:"timezone_label,omitempty"`

	// Weather is an optional free-text annotation supplied by an external
	// weather collaborator; the engine passes it through untouched.
	Weather string `json:"weather,omitempty"`
}

// HasCriticalWarning reports whether any attached warning is critical.
func (s RouteSegment) HasCriticalWarning() bool {
	for _, w := range s.Warnings {
		if w.Severity == SeverityCritical {
			return true
		}
	}
	return false
}

// Resolved reports whether both endpoints carry usable coordinates.
// Unresolved segments are excluded from day partitioning and surfaced to the
// caller as an incomplete-route signal instead of an error.
func (s RouteSegment) Resolved() bool {
	return s.From.HasCoordinates() && s.To.HasCoordinates()
}
