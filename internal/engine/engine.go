// Package engine implements the trip itinerary computation pipeline: the
// pure, synchronous transformations that turn routed legs plus user
// constraints into a day-partitioned plan with timed events, money and a
// feasibility verdict.
//
// Nothing in this package performs I/O or keeps state between calls. Every
// recomputation is a deterministic function of (segments, settings,
// budget) and is safe to re-run arbitrarily often.
package engine

import (
	"fmt"

	"github.com/chicaron82/roadtrip-planner-sub003/internal/domain"
)

// Engine runs the pipeline under one set of policy thresholds.
type Engine struct {
	policy Policy
}

// New returns an engine using p. Nil policy maps fall back to the defaults
// so a partially overridden policy stays usable.
func New(p Policy) *Engine {
	if p.StopProfiles == nil {
		p.StopProfiles = DefaultPolicy().StopProfiles
	}
	if p.NightlyRates == nil {
		p.NightlyRates = DefaultPolicy().NightlyRates
	}
	return &Engine{policy: p}
}

// Input is one full recomputation request. Segments are the outbound legs;
// round-trip mirroring happens inside the pipeline.
type Input struct {
	Segments []domain.RouteSegment
	Settings domain.TripSettings
	Budget   domain.TripBudget

	// Vehicle feeds fuel stop planning and the range check; nil degrades
	// both gracefully.
	Vehicle *domain.VehicleProfile

	// DismissedStops removes planner-generated stops before the timeline
	// is built.
	DismissedStops []domain.StopKey
}

// BuildItinerary runs the full pipeline: analyze, mirror, split, plan
// stops, build the timeline, settle the money, evaluate feasibility.
func (e *Engine) BuildItinerary(in Input) (domain.Itinerary, error) {
	settings := normalizeSettings(in.Settings)
	if err := validateInput(in.Segments, settings); err != nil {
		return domain.Itinerary{}, err
	}

	segs := in.Segments
	if settings.IsRoundTrip {
		segs = mirrorSegments(segs)
	}
	segs = e.AnalyzeSegments(segs)

	days, excluded := e.SplitDays(segs, settings)

	overnightAfter := make(map[int]bool, len(days))
	for i := 0; i < len(days)-1; i++ {
		idxs := days[i].SegmentIndices
		overnightAfter[idxs[len(idxs)-1]] = true
	}

	stops := e.PlanStops(segs, settings, in.Vehicle, overnightAfter)
	stops = removeDismissed(stops, in.DismissedStops)

	events, days := e.BuildTimeline(days, segs, stops, settings)
	days, budget := e.ApplyDayBudgets(days, segs, in.Budget, settings)
	feas := e.EvaluateFeasibility(days, segs, budget, settings, in.Vehicle)

	it := domain.Itinerary{
		Days:        days,
		Stops:       stops,
		Timeline:    events,
		Budget:      budget,
		Feasibility: feas,
		Summary:     buildSummary(days, stops, feas),

		IncompleteRoute:  len(excluded) > 0,
		ExcludedSegments: excluded,
	}
	if len(days) > 0 {
		it.PacingSuggestions = e.PacingSuggestions(feas.Summary.TotalDriveMinutes, settings)
	}
	return it, nil
}

func normalizeSettings(s domain.TripSettings) domain.TripSettings {
	if s.NumTravelers < 1 {
		s.NumTravelers = 1
	}
	if s.NumDrivers < 1 {
		s.NumDrivers = 1
	}
	if !s.StopFrequency.Valid() {
		s.StopFrequency = domain.FrequencyBalanced
	}
	return s
}

func validateInput(segs []domain.RouteSegment, settings domain.TripSettings) error {
	if !settings.BeastMode && settings.MaxDriveHours <= 0 {
		return fmt.Errorf("engine.Engine.BuildItinerary: max drive hours must be positive: %w", domain.ErrValidation)
	}
	if settings.ToleranceHours < 0 {
		return fmt.Errorf("engine.Engine.BuildItinerary: tolerance hours must not be negative: %w", domain.ErrValidation)
	}
	for i, s := range segs {
		if s.DurationMinutes < 0 || s.DistanceKm < 0 {
			return fmt.Errorf("engine.Engine.BuildItinerary: segment %d carries negative metrics: %w", i, domain.ErrValidation)
		}
	}
	return nil
}

// mirrorSegments appends reversed copies of the outbound legs. Derived
// annotations are cleared on the mirrored half; the analyzer regenerates
// them for the return direction.
func mirrorSegments(segs []domain.RouteSegment) []domain.RouteSegment {
	out := make([]domain.RouteSegment, 0, len(segs)*2)
	out = append(out, segs...)
	for i := len(segs) - 1; i >= 0; i-- {
		s := segs[i]
		s.From, s.To = s.To, s.From
		s.SuggestedBreak = false
		s.TimezoneCrossing = false
		s.TimezoneLabel = ""
		out = append(out, s)
	}
	return out
}

func removeDismissed(stops []domain.SuggestedStop, dismissed []domain.StopKey) []domain.SuggestedStop {
	if len(dismissed) == 0 {
		return stops
	}
	drop := make(map[domain.StopKey]bool, len(dismissed))
	for _, k := range dismissed {
		drop[k] = true
	}
	var out []domain.SuggestedStop
	for _, s := range stops {
		if !drop[s.Key()] {
			out = append(out, s)
		}
	}
	return out
}

func buildSummary(days []domain.TripDay, stops []domain.SuggestedStop, feas domain.FeasibilityResult) domain.TripSummary {
	s := domain.TripSummary{
		TotalDays:          len(days),
		TotalDistanceKm:    feas.Summary.TotalDistanceKm,
		TotalDriveMinutes:  feas.Summary.TotalDriveMinutes,
		EstimatedTotalCost: feas.Summary.EstimatedCost,
		StopCount:          len(stops),
	}
	for _, d := range days {
		if d.Budget != nil {
			s.TotalFuelCost += d.Budget.GasUsed
		}
		if d.Overnight != nil {
			s.OvernightCount++
		}
		if d.DriveTimeMinutes > s.LongestDayMinutes {
			s.LongestDayMinutes = d.DriveTimeMinutes
			s.LongestDayNumber = d.DayNumber
		}
	}
	return s
}
