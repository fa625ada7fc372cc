package engine

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/chicaron82/roadtrip-planner-sub003/internal/domain"
)

// AnalyzeSegments returns annotated copies of segs: long-drive warnings,
// break suggestions, border-crossing warnings and timezone-crossing flags.
// The input slice is never mutated. Annotation is idempotent: a warning
// type already present (from the routing provider or an earlier pass) is
// not added twice.
func (e *Engine) AnalyzeSegments(segs []domain.RouteSegment) []domain.RouteSegment {
	out := make([]domain.RouteSegment, len(segs))
	for i, seg := range segs {
		out[i] = e.analyzeSegment(seg)
	}
	return out
}

func (e *Engine) analyzeSegment(seg domain.RouteSegment) domain.RouteSegment {
	seg.Warnings = append([]domain.SegmentWarning(nil), seg.Warnings...)

	if !hasWarning(seg.Warnings, domain.WarnLongDrive) {
		switch {
		case seg.DurationMinutes >= e.policy.CriticalDriveMinutes:
			seg.Warnings = append(seg.Warnings, domain.SegmentWarning{
				Type:     domain.WarnLongDrive,
				Severity: domain.SeverityCritical,
				Message:  fmt.Sprintf("%s continuous drive from %s to %s", formatMinutes(seg.DurationMinutes), seg.From.Name, seg.To.Name),
			})
		case seg.DurationMinutes >= e.policy.WarningDriveMinutes:
			seg.Warnings = append(seg.Warnings, domain.SegmentWarning{
				Type:     domain.WarnLongDrive,
				Severity: domain.SeverityWarning,
				Message:  fmt.Sprintf("%s continuous drive from %s to %s", formatMinutes(seg.DurationMinutes), seg.From.Name, seg.To.Name),
			})
		}
	}

	if seg.DurationMinutes > e.policy.BreakSuggestMinutes {
		seg.SuggestedBreak = true
	}

	if !hasWarning(seg.Warnings, domain.WarnBorderCrossing) {
		if from, to := countryOf(seg.From), countryOf(seg.To); from != "" && to != "" && from != to {
			seg.Warnings = append(seg.Warnings, domain.SegmentWarning{
				Type:     domain.WarnBorderCrossing,
				Severity: domain.SeverityWarning,
				Message:  fmt.Sprintf("border crossing between %s and %s, carry travel documents", seg.From.Name, seg.To.Name),
			})
		}
	}

	if math.Abs(seg.To.Lng-seg.From.Lng) >= e.policy.TimezoneLonDegrees {
		seg.TimezoneCrossing = true
		seg.TimezoneLabel = zoneLabel(seg.To.Lng)
	}

	return seg
}

// PacingSuggestions produces free-text advice about how the trip should be
// driven. Advisory only; nothing downstream branches on these.
func (e *Engine) PacingSuggestions(totalDriveMinutes int, settings domain.TripSettings) []string {
	var out []string
	if !settings.BeastMode && totalDriveMinutes > settings.CapMinutes() {
		out = append(out, "Total driving exceeds a single day's cap; consider splitting the trip across multiple days.")
	}
	if h := settings.DepartureAt.Hour(); (h >= 20 || h < 5) && totalDriveMinutes > 180 {
		out = append(out, "Departure falls late in the evening; minimize night driving where possible.")
	}
	if settings.NumDrivers > 1 {
		out = append(out, "Rotate drivers every two to three hours to keep everyone fresh.")
	}
	out = append(out, "Take a short break at least every two hours of driving.")
	return out
}

func hasWarning(ws []domain.SegmentWarning, t domain.SegmentWarningType) bool {
	for _, w := range ws {
		if w.Type == t {
			return true
		}
	}
	return false
}

// countryOf extracts the country from a location's address, taken as the
// text after the last comma. Empty when the address carries no comma.
func countryOf(l domain.Location) string {
	i := strings.LastIndex(l.Address, ",")
	if i < 0 {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(l.Address[i+1:]))
}

// zoneOffsetHours approximates the UTC offset at a longitude by nominal
// 15-degree bands. Good enough for crossing detection; exact civil zones
// are a rendering concern outside the engine.
func zoneOffsetHours(lng float64) int {
	return int(math.Round(lng / 15))
}

func zoneLabel(lng float64) string {
	return fmt.Sprintf("UTC%+03d:00", zoneOffsetHours(lng))
}

// zoneShift returns the clock change crossing the segment west-to-east
// as a signed duration.
func zoneShift(seg domain.RouteSegment) time.Duration {
	delta := zoneOffsetHours(seg.To.Lng) - zoneOffsetHours(seg.From.Lng)
	return time.Duration(delta) * time.Hour
}

func formatMinutes(m int) string {
	h, mm := m/60, m%60
	if h == 0 {
		return fmt.Sprintf("%dm", mm)
	}
	if mm == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh%02dm", h, mm)
}
