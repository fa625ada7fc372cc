package domain

// FeasibilityStatus is the single verdict shown for a plan.
//
// "no-data" is the neutral verdict for an empty plan: nothing to evaluate is
// not the same as everything checks out.
type FeasibilityStatus string

const (
	FeasibilityOnTrack FeasibilityStatus = "on-track"
	FeasibilityTight   FeasibilityStatus = "tight"
	FeasibilityOver    FeasibilityStatus = "over"
	FeasibilityNoData  FeasibilityStatus = "no-data"
)

// Valid reports whether s is one of the known verdicts.
func (s FeasibilityStatus) Valid() bool {
	switch s {
	case FeasibilityOnTrack, FeasibilityTight, FeasibilityOver, FeasibilityNoData:
		return true
	}
	return false
}

// WarningCategory names the concern a feasibility warning belongs to.
type WarningCategory string

const (
	WarnBudget     WarningCategory = "budget"
	WarnDriveTime  WarningCategory = "drive-time"
	WarnDriver     WarningCategory = "driver"
	WarnTiming     WarningCategory = "timing"
	WarnPassenger  WarningCategory = "passenger"
	WarnFuel       WarningCategory = "fuel"
	WarnDateWindow WarningCategory = "date-window"
)

// FeasibilityWarning is one named concern with enough context to act on.
type FeasibilityWarning struct {
	Category   WarningCategory `json:"category"`
	Severity   WarningSeverity `json:"severity"`
	Message    string          `json:"message"`
	Suggestion string          `json:"suggestion,omitempty"`

	DayNumber *int `json:"day_number,omitempty"` // set when the concern is day-specific
}

// FeasibilitySummary is the roll-up behind the verdict. BudgetUtilization
// is totalPlannedCost/budget.Total and is reported only in plan-to-budget
// mode with a positive total.
type FeasibilitySummary struct {
	TotalDays         int     `json:"total_days"`
	TotalDistanceKm   float64 `json:"total_distance_km"`
	TotalDriveMinutes int     `json:"total_drive_minutes"`
	EstimatedCost     int     `json:"estimated_cost"`
	PerPersonCost     int     `json:"per_person_cost"`
	BudgetUtilization float64 `json:"budget_utilization,omitempty"`
}

// FeasibilityResult pairs the verdict with its evidence.
type FeasibilityResult struct {
	Status   FeasibilityStatus    `json:"status"`
	Warnings []FeasibilityWarning `json:"warnings"`
	Summary  FeasibilitySummary   `json:"summary"`
}

// CriticalCount returns how many warnings are critical.
func (r FeasibilityResult) CriticalCount() int {
	n := 0
	for _, w := range r.Warnings {
		if w.Severity == SeverityCritical {
			n++
		}
	}
	return n
}
