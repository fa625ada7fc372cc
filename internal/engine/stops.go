package engine

import (
	"fmt"
	"math"

	"github.com/chicaron82/roadtrip-planner-sub003/internal/domain"
)

// PlanStops walks the leg sequence and inserts fuel, rest and meal stops at
// the boundaries between legs. At most one stop is emitted per boundary;
// when several needs coincide the dominant one wins and the stop's duration
// and cost absorb the rest (a refuel that lands on a due meal becomes one
// longer, costlier fuel stop).
//
// overnightAfter marks boundaries where the day splitter placed an
// overnight: rest and meal counters reset across them, and only a fuel
// stop may still be emitted there (it surfaces as a morning refuel on the
// next day's timeline). Pass nil when day boundaries are not known.
//
// Without a vehicle (or with an unusable tank/consumption pair) fuel
// planning is skipped and only cadence-driven stops are produced.
func (e *Engine) PlanStops(segs []domain.RouteSegment, settings domain.TripSettings, vehicle *domain.VehicleProfile, overnightAfter map[int]bool) []domain.SuggestedStop {
	if len(segs) < 2 {
		return nil
	}
	prof := e.policy.profileFor(settings.StopFrequency)

	fuelCapable := vehicle != nil && vehicle.TankLitres > 0 && vehicle.LitresPer100Km > 0
	var fuelThreshold float64
	if fuelCapable {
		fuelThreshold = vehicle.TankLitres * (1 - prof.RemainingTankFraction)
	}

	travelers := settings.NumTravelers
	if travelers < 1 {
		travelers = 1
	}

	var out []domain.SuggestedStop
	sinceBreak, sinceMeal := 0, 0
	fuelConsumed := 0.0

	for i := 0; i < len(segs)-1; i++ {
		seg := segs[i]
		if !seg.Resolved() {
			continue // excluded from the partition, never driven
		}
		sinceBreak += seg.DurationMinutes
		sinceMeal += seg.DurationMinutes
		if fuelCapable {
			fuelConsumed += seg.DistanceKm * vehicle.LitresPer100Km / 100
		}

		fuelDue := fuelCapable && fuelConsumed >= fuelThreshold
		mealDue := sinceMeal >= e.policy.MealAfterMinutes
		breakDue := sinceBreak >= prof.BreakCadenceMinutes || seg.SuggestedBreak

		if overnightAfter[i] {
			sinceBreak, sinceMeal = 0, 0
			mealDue, breakDue = false, false
		}

		var stop domain.SuggestedStop
		switch {
		case fuelDue && mealDue:
			stop = domain.SuggestedStop{
				Type:              domain.StopFuel,
				AfterSegmentIndex: i,
				DurationMinutes:   e.policy.MealMinutes,
				Priority:          domain.PriorityRequired,
				EstimatedCost:     e.refillCost(vehicle, fuelConsumed) + travelers*e.policy.MealCostPerTraveler,
				Reason:            "refuel and a meal before the tank runs low",
			}
			fuelConsumed = 0
			sinceMeal, sinceBreak = 0, 0
		case fuelDue:
			stop = domain.SuggestedStop{
				Type:              domain.StopFuel,
				AfterSegmentIndex: i,
				DurationMinutes:   e.policy.FuelStopMinutes,
				Priority:          domain.PriorityRequired,
				EstimatedCost:     e.refillCost(vehicle, fuelConsumed),
				Reason:            fmt.Sprintf("tank near the %d%% reserve", int(prof.RemainingTankFraction*100)),
			}
			fuelConsumed = 0
			sinceBreak = 0
		case mealDue:
			stop = domain.SuggestedStop{
				Type:              domain.StopMeal,
				AfterSegmentIndex: i,
				DurationMinutes:   e.policy.MealMinutes,
				Priority:          domain.PriorityRequired,
				EstimatedCost:     travelers * e.policy.MealCostPerTraveler,
				Reason:            fmt.Sprintf("meal after %s of driving", formatMinutes(sinceMeal)),
			}
			sinceMeal, sinceBreak = 0, 0
		case breakDue && sinceMeal >= e.policy.QuickMealAfterMinutes:
			stop = domain.SuggestedStop{
				Type:              domain.StopQuickMeal,
				AfterSegmentIndex: i,
				DurationMinutes:   e.policy.QuickMealMinutes,
				Priority:          domain.PriorityOptional,
				EstimatedCost:     travelers * e.policy.QuickMealCostPerTraveler,
				Reason:            "stretch the legs and grab a quick bite",
			}
			sinceMeal, sinceBreak = 0, 0
		case breakDue:
			stop = domain.SuggestedStop{
				Type:              domain.StopBreak,
				AfterSegmentIndex: i,
				DurationMinutes:   e.policy.BreakMinutes,
				Priority:          domain.PriorityOptional,
				Reason:            "rest break",
			}
			sinceBreak = 0
		default:
			continue
		}
		out = append(out, stop)
	}

	if settings.IsRoundTrip {
		annotateMirrors(out, len(segs))
	}
	return out
}

// annotateMirrors stamps outbound-half stops with the index of the return
// leg they would repeat after.
func annotateMirrors(stops []domain.SuggestedStop, totalSegments int) {
	half := totalSegments / 2
	for i := range stops {
		if stops[i].AfterSegmentIndex < half {
			m := totalSegments - 1 - stops[i].AfterSegmentIndex
			stops[i].MirrorSegmentIndex = &m
		}
	}
}

func (e *Engine) refillCost(v *domain.VehicleProfile, litres float64) int {
	if v == nil || v.PricePerLitre <= 0 {
		return 0
	}
	return int(math.Round(litres * v.PricePerLitre))
}
