package domain

// BudgetMode selects which direction the budget math runs.
//
// In open mode nothing is pre-allocated: category totals are the sum of
// costs the itinerary actually incurs. In plan-to-budget mode the traveller
// names a total, categories are carved from it by weight, and utilization
// is reported against it.
type BudgetMode string

const (
	BudgetModeOpen         BudgetMode = "open"
	BudgetModePlanToBudget BudgetMode = "plan-to-budget"
)

// Valid reports whether m is one of the known budget modes.
func (m BudgetMode) Valid() bool {
	switch m {
	case BudgetModeOpen, BudgetModePlanToBudget:
		return true
	}
	return false
}

// BudgetWeights is the percentage split applied when a total is distributed
// across categories. Weights should sum to roughly 100; distribution
// normalizes by the actual sum so small drift is harmless.
type BudgetWeights struct {
	Gas   float64 `json:"gas"`
	Hotel float64 `json:"hotel"`
	Food  float64 `json:"food"`
	Misc  float64 `json:"misc"`
}

// Sum returns the total of all four weights.
func (w BudgetWeights) Sum() float64 {
	return w.Gas + w.Hotel + w.Food + w.Misc
}

// IsZero reports whether no weight is set.
func (w BudgetWeights) IsZero() bool {
	return w.Sum() == 0
}

// TripBudget is the trip-level money plan in whole currency units.
//
// Invariant: Gas+Hotel+Food+Misc == Total after every mutating operation.
// Allocation pushes any rounding residual into Hotel so the identity
// survives integer arithmetic.
type TripBudget struct {
	Mode    BudgetMode `json:"mode"`
	Profile string     `json:"profile,omitempty"` // preset name, or "custom" when weights were edited
	Total   int        `json:"total"`
	Gas     int        `json:"gas"`
	Hotel   int        `json:"hotel"`
	Food    int        `json:"food"`
	Misc    int        `json:"misc"`

	Weights BudgetWeights `json:"weights"`
}

// CategorySum returns the sum of the four category amounts.
func (b TripBudget) CategorySum() int {
	return b.Gas + b.Hotel + b.Food + b.Misc
}

// BudgetCategory names one of the four spend categories for targeted
// updates.
type BudgetCategory string

const (
	CategoryGas   BudgetCategory = "gas"
	CategoryHotel BudgetCategory = "hotel"
	CategoryFood  BudgetCategory = "food"
	CategoryMisc  BudgetCategory = "misc"
)

// Valid reports whether c is one of the known categories.
func (c BudgetCategory) Valid() bool {
	switch c {
	case CategoryGas, CategoryHotel, CategoryFood, CategoryMisc:
		return true
	}
	return false
}

// DayBudgetStatus classifies a single day's remaining allowance.
type DayBudgetStatus string

const (
	DayBudgetComfortable DayBudgetStatus = "comfortable"
	DayBudgetTight       DayBudgetStatus = "tight"
	DayBudgetOver        DayBudgetStatus = "over"
)

// DayBudget is the per-day spend snapshot. GasUsed, HotelCost and
// FoodEstimate are actuals for the day. The Remaining fields are populated
// only in plan-to-budget mode: allocated share minus cumulative spend
// through this day. Status reflects the worst category's remaining, so one
// blown category marks the whole day even when the others have headroom.
type DayBudget struct {
	GasUsed      int `json:"gas_used"`
	HotelCost    int `json:"hotel_cost"`
	FoodEstimate int `json:"food_estimate"`

	GasRemaining   *int `json:"gas_remaining,omitempty"`
	HotelRemaining *int `json:"hotel_remaining,omitempty"`
	FoodRemaining  *int `json:"food_remaining,omitempty"`

	Status DayBudgetStatus `json:"status,omitempty"` // empty in open mode
}

// SpentTotal returns the day's combined actual spend.
func (d DayBudget) SpentTotal() int {
	return d.GasUsed + d.HotelCost + d.FoodEstimate
}
