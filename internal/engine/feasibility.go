package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/chicaron82/roadtrip-planner-sub003/internal/domain"
)

// EvaluateFeasibility rolls every signal the pipeline produced into one
// verdict with categorized warnings. Expects days that already carry their
// budget snapshots and clock times.
//
// Verdict rules: any critical warning or budget utilization above the over
// threshold makes the trip "over"; otherwise warning-severity findings or
// utilization in the tight band make it "tight"; info findings never
// degrade the verdict. An empty plan is "no-data", not "over".
//
// Monotonicity holds by construction: raising budget.Total only lowers
// utilization, and utilization feeds nothing but the budget warnings.
func (e *Engine) EvaluateFeasibility(days []domain.TripDay, segs []domain.RouteSegment, budget domain.TripBudget, settings domain.TripSettings, vehicle *domain.VehicleProfile) domain.FeasibilityResult {
	if len(days) == 0 {
		return domain.FeasibilityResult{Status: domain.FeasibilityNoData}
	}

	var warnings []domain.FeasibilityWarning
	add := func(w domain.FeasibilityWarning) { warnings = append(warnings, w) }

	capMin := settings.CapMinutes()
	travelers := settings.NumTravelers
	if travelers < 1 {
		travelers = 1
	}

	estCost := 0
	for di := range days {
		day := &days[di]
		n := day.DayNumber
		if day.Budget != nil {
			estCost += day.Budget.SpentTotal()
		}

		for _, idx := range day.SegmentIndices {
			for _, sw := range segs[idx].Warnings {
				if sw.Severity == domain.SeverityInfo {
					continue
				}
				add(domain.FeasibilityWarning{
					Category:  segmentWarningCategory(sw.Type),
					Severity:  sw.Severity,
					Message:   sw.Message,
					DayNumber: &n,
				})
			}
			if vehicle != nil && vehicle.RangeKm() > 0 && segs[idx].DistanceKm > vehicle.UsableRangeKm(e.policy.FuelReserveFraction) {
				add(domain.FeasibilityWarning{
					Category:   domain.WarnFuel,
					Severity:   domain.SeverityWarning,
					Message:    fmt.Sprintf("leg %s to %s is longer than the vehicle's usable range", segs[idx].From.Name, segs[idx].To.Name),
					Suggestion: "plan a fuel stop mid-leg or reroute through a town",
					DayNumber:  &n,
				})
			}
		}

		if !settings.BeastMode && day.DriveTimeMinutes > capMin {
			add(domain.FeasibilityWarning{
				Category:   domain.WarnDriveTime,
				Severity:   domain.SeverityCritical,
				Message:    fmt.Sprintf("day %d drives %s, above the %s daily cap", n, formatMinutes(day.DriveTimeMinutes), formatMinutes(capMin)),
				Suggestion: "raise the cap, enable beast mode, or break the leg with a waypoint",
				DayNumber:  &n,
			})
		}

		if settings.NumDrivers <= 1 && day.DriveTimeMinutes > e.policy.SoloDriverDailyMinutes {
			add(domain.FeasibilityWarning{
				Category:   domain.WarnDriver,
				Severity:   domain.SeverityWarning,
				Message:    fmt.Sprintf("day %d puts %s on a single driver", n, formatMinutes(day.DriveTimeMinutes)),
				Suggestion: "add a second driver or shorten the day",
				DayNumber:  &n,
			})
		} else if day.DriveTimeMinutes > e.policy.SoloDriverDailyMinutes && travelers >= 3 {
			add(domain.FeasibilityWarning{
				Category:  domain.WarnPassenger,
				Severity:  domain.SeverityInfo,
				Message:   fmt.Sprintf("day %d is a long haul for %d travellers", n, travelers),
				DayNumber: &n,
			})
		}

		if di > 0 {
			rest := day.DepartureTime.Sub(days[di-1].ArrivalTime)
			switch {
			case rest < 0:
				add(domain.FeasibilityWarning{
					Category:   domain.WarnTiming,
					Severity:   domain.SeverityCritical,
					Message:    fmt.Sprintf("day %d departs before day %d arrives", n, n-1),
					Suggestion: "move the arrival target later or drop a day's distance",
					DayNumber:  &n,
				})
			case rest < time.Duration(e.policy.MinOvernightRestHours*float64(time.Hour)):
				add(domain.FeasibilityWarning{
					Category:  domain.WarnTiming,
					Severity:  domain.SeverityWarning,
					Message:   fmt.Sprintf("only %s of rest before day %d", formatMinutes(int(rest.Minutes())), n),
					DayNumber: &n,
				})
			}
		}
	}

	totalDrive := 0
	totalDist := 0.0
	for _, d := range days {
		totalDrive += d.DriveTimeMinutes
		totalDist += d.DistanceKm
	}

	if settings.UseArrivalTime && !settings.ArrivalAt.IsZero() && !settings.DepartureAt.IsZero() {
		window := settings.ArrivalAt.Sub(settings.DepartureAt)
		if window < 0 {
			add(domain.FeasibilityWarning{
				Category: domain.WarnDateWindow,
				Severity: domain.SeverityCritical,
				Message:  "the arrival target is earlier than the departure time",
			})
		} else if window < time.Duration(totalDrive)*time.Minute {
			add(domain.FeasibilityWarning{
				Category:   domain.WarnDateWindow,
				Severity:   domain.SeverityCritical,
				Message:    fmt.Sprintf("%s of driving cannot fit the %s window between departure and arrival", formatMinutes(totalDrive), formatMinutes(int(window.Minutes()))),
				Suggestion: "widen the date window or trim the route",
			})
		}
	}

	utilization := 0.0
	if budget.Mode == domain.BudgetModePlanToBudget && budget.Total > 0 {
		utilization = float64(estCost) / float64(budget.Total)
		switch {
		case utilization > e.policy.OverUtilization:
			add(domain.FeasibilityWarning{
				Category:   domain.WarnBudget,
				Severity:   domain.SeverityCritical,
				Message:    fmt.Sprintf("planned spend of %d exceeds the %d budget", estCost, budget.Total),
				Suggestion: "raise the budget, drop a night, or shorten the route",
			})
		case utilization >= e.policy.TightUtilization:
			add(domain.FeasibilityWarning{
				Category: domain.WarnBudget,
				Severity: domain.SeverityWarning,
				Message:  fmt.Sprintf("planned spend of %d uses %.0f%% of the budget", estCost, utilization*100),
			})
		}
	}

	status := domain.FeasibilityOnTrack
	for _, w := range warnings {
		if w.Severity == domain.SeverityCritical {
			status = domain.FeasibilityOver
			break
		}
		if w.Severity == domain.SeverityWarning {
			status = domain.FeasibilityTight
		}
	}

	return domain.FeasibilityResult{
		Status:   status,
		Warnings: warnings,
		Summary: domain.FeasibilitySummary{
			TotalDays:         len(days),
			TotalDistanceKm:   math.Round(totalDist*10) / 10,
			TotalDriveMinutes: totalDrive,
			EstimatedCost:     estCost,
			PerPersonCost:     estCost / travelers,
			BudgetUtilization: utilization,
		},
	}
}

func segmentWarningCategory(t domain.SegmentWarningType) domain.WarningCategory {
	switch t {
	case domain.WarnLongDrive:
		return domain.WarnDriveTime
	default:
		return domain.WarnTiming
	}
}
