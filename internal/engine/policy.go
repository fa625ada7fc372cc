package engine

import "github.com/chicaron82/roadtrip-planner-sub003/internal/domain"

// StopProfile is the stop-frequency tuning for one preference level.
type StopProfile struct {
	// RemainingTankFraction is the tank level that triggers a fuel stop:
	// 0.30 means "stop when 30% is left".
	RemainingTankFraction float64
	// BreakCadenceMinutes is how long continuous driving may run before a
	// rest break is suggested.
	BreakCadenceMinutes int
}

// Policy holds every tunable threshold the engine consults. All cutoffs
// live here as named values rather than inline literals so deployments can
// adjust them without touching the pipeline code. DefaultPolicy is the
// tested baseline.
type Policy struct {
	// Segment analysis.
	CriticalDriveMinutes int     // at or above: critical long_drive warning
	WarningDriveMinutes  int     // at or above: warning long_drive warning
	BreakSuggestMinutes  int     // above: suggestedBreak set
	TimezoneLonDegrees   float64 // endpoint longitude delta implying a zone change

	// Stop planning.
	StopProfiles     map[domain.StopFrequency]StopProfile
	BreakMinutes     int
	FuelStopMinutes  int
	QuickMealMinutes int
	MealMinutes      int
	// MealAfterMinutes is accumulated driving before a full meal stop;
	// QuickMealAfterMinutes upgrades a due rest break to a quick meal when
	// a full meal is already this close.
	MealAfterMinutes      int
	QuickMealAfterMinutes int

	MealCostPerTraveler      int
	QuickMealCostPerTraveler int

	// Day splitting and overnights.
	DefaultNightlyRate   int // per room
	MorningDepartureHour int // later days leave at this local hour

	// Budget.
	DefaultWeights      domain.BudgetWeights
	FoodPerPersonPerDay int
	DayTightThreshold   int // remaining at or below this (but above zero) is tight

	// Feasibility.
	TightUtilization       float64
	OverUtilization        float64
	SoloDriverDailyMinutes int
	MinOvernightRestHours  float64
	FuelReserveFraction    float64 // spare tank kept for the range check

	// Discovery.
	NoBrainerMaxDetourMinutes   int
	NoBrainerMinScore           float64
	WorthDetourMaxDetourMinutes int
	WorthDetourMinScore         float64
	DefaultTimeBudgetMinutes    int
	MaxTimeBudgetMinutes        int
	DestinationRadiusKm         float64

	// Adventure reachability.
	AvgSpeedKmh       float64
	DriveHoursPerDay  float64
	NightlyRates      map[domain.AccommodationTier]int
	DefaultFuelCostKm float64
	GreatFitScore     float64
	ClosenessWeight   float64
	TagOverlapWeight  float64
	HeadroomWeight    float64
}

// DefaultPolicy returns the baseline thresholds the scenario tests pin
// down.
func DefaultPolicy() Policy {
	return Policy{
		CriticalDriveMinutes: 360,
		WarningDriveMinutes:  240,
		BreakSuggestMinutes:  180,
		TimezoneLonDegrees:   15,

		StopProfiles: map[domain.StopFrequency]StopProfile{
			domain.FrequencyConservative: {RemainingTankFraction: 0.30, BreakCadenceMinutes: 90},
			domain.FrequencyBalanced:     {RemainingTankFraction: 0.25, BreakCadenceMinutes: 120},
			domain.FrequencyAggressive:   {RemainingTankFraction: 0.20, BreakCadenceMinutes: 150},
		},
		BreakMinutes:          15,
		FuelStopMinutes:       15,
		QuickMealMinutes:      20,
		MealMinutes:           45,
		MealAfterMinutes:      240,
		QuickMealAfterMinutes: 180,

		MealCostPerTraveler:      22,
		QuickMealCostPerTraveler: 12,

		DefaultNightlyRate:   120,
		MorningDepartureHour: 9,

		DefaultWeights:      domain.BudgetWeights{Gas: 35, Hotel: 40, Food: 20, Misc: 5},
		FoodPerPersonPerDay: 45,
		DayTightThreshold:   50,

		TightUtilization:       0.85,
		OverUtilization:        1.0,
		SoloDriverDailyMinutes: 600,
		MinOvernightRestHours:  8,
		FuelReserveFraction:    0.10,

		NoBrainerMaxDetourMinutes:   15,
		NoBrainerMinScore:           70,
		WorthDetourMaxDetourMinutes: 45,
		WorthDetourMinScore:         40,
		DefaultTimeBudgetMinutes:    60,
		MaxTimeBudgetMinutes:        240,
		DestinationRadiusKm:         25,

		AvgSpeedKmh:      80,
		DriveHoursPerDay: 8,
		NightlyRates: map[domain.AccommodationTier]int{
			domain.TierBudget:   60,
			domain.TierStandard: 120,
			domain.TierComfort:  200,
		},
		DefaultFuelCostKm: 0.12,
		GreatFitScore:     80,
		ClosenessWeight:   50,
		TagOverlapWeight:  30,
		HeadroomWeight:    20,
	}
}

// profileFor returns the stop profile for f, falling back to balanced for
// unknown values.
func (p Policy) profileFor(f domain.StopFrequency) StopProfile {
	if prof, ok := p.StopProfiles[f]; ok {
		return prof
	}
	return p.StopProfiles[domain.FrequencyBalanced]
}
