package engine

import (
	"math"

	"github.com/chicaron82/roadtrip-planner-sub003/internal/domain"
)

// UpdateTotal sets a new budget total and rebalances the categories.
//
// With all categories at zero the total is distributed by weight (the
// budget's own weights, or the policy defaults when none are set).
// Otherwise every category is scaled by newTotal/currentSum so existing
// proportions survive. Either way the rounding residual lands in hotel via
// reconcileBudgetRounding. Negative totals are coerced to zero.
func (e *Engine) UpdateTotal(b domain.TripBudget, newTotal int) domain.TripBudget {
	if newTotal < 0 {
		newTotal = 0
	}

	w := b.Weights
	if w.IsZero() {
		w = e.policy.DefaultWeights
	}

	if sum := b.CategorySum(); sum == 0 {
		ws := w.Sum()
		b.Gas = int(math.Round(float64(newTotal) * w.Gas / ws))
		b.Hotel = int(math.Round(float64(newTotal) * w.Hotel / ws))
		b.Food = int(math.Round(float64(newTotal) * w.Food / ws))
		b.Misc = int(math.Round(float64(newTotal) * w.Misc / ws))
	} else {
		ratio := float64(newTotal) / float64(sum)
		b.Gas = int(math.Round(float64(b.Gas) * ratio))
		b.Hotel = int(math.Round(float64(b.Hotel) * ratio))
		b.Food = int(math.Round(float64(b.Food) * ratio))
		b.Misc = int(math.Round(float64(b.Misc) * ratio))
	}
	return reconcileBudgetRounding(b, newTotal)
}

// UpdateCategory sets one category directly and recomputes the total from
// the four categories. The other categories are never redistributed.
// Negative values are coerced to zero.
func (e *Engine) UpdateCategory(b domain.TripBudget, cat domain.BudgetCategory, value int) domain.TripBudget {
	if value < 0 {
		value = 0
	}
	switch cat {
	case domain.CategoryGas:
		b.Gas = value
	case domain.CategoryHotel:
		b.Hotel = value
	case domain.CategoryFood:
		b.Food = value
	case domain.CategoryMisc:
		b.Misc = value
	}
	b.Total = b.CategorySum()
	return b
}

// reconcileBudgetRounding restores the gas+hotel+food+misc == total
// identity after integer rounding by adding the residual to the hotel
// category. The hotel destination is a designed tie-break, chosen because
// lodging is the category a traveller most often pads by hand.
func reconcileBudgetRounding(b domain.TripBudget, target int) domain.TripBudget {
	b.Hotel += target - b.CategorySum()
	b.Total = target
	return b
}

// ApplyDayBudgets attaches a spend snapshot to every day and returns the
// day copies plus the trip budget after reconciliation with the itinerary.
//
// In open mode the budget's categories become the summed actuals (misc has
// no actual source and stays zero). In plan-to-budget mode with a positive
// total each day also gets remaining amounts (allocation minus cumulative
// spend through that day) and the comfortable/tight/over status driven by
// the worst category.
func (e *Engine) ApplyDayBudgets(days []domain.TripDay, segs []domain.RouteSegment, budget domain.TripBudget, settings domain.TripSettings) ([]domain.TripDay, domain.TripBudget) {
	travelers := settings.NumTravelers
	if travelers < 1 {
		travelers = 1
	}

	// a plan-to-budget total with untouched categories gets the weight
	// distribution before any remaining is computed
	if budget.Mode == domain.BudgetModePlanToBudget && budget.Total > 0 && budget.CategorySum() == 0 {
		budget = e.UpdateTotal(budget, budget.Total)
	}

	out := make([]domain.TripDay, len(days))
	copy(out, days)

	cumGas, cumHotel, cumFood := 0, 0, 0
	tracked := budget.Mode == domain.BudgetModePlanToBudget && budget.Total > 0

	for i := range out {
		day := &out[i]

		fuel := 0.0
		for _, idx := range day.SegmentIndices {
			fuel += segs[idx].FuelCost
		}
		db := domain.DayBudget{
			GasUsed:      int(math.Round(fuel)),
			FoodEstimate: travelers * e.policy.FoodPerPersonPerDay,
		}
		if day.Overnight != nil {
			db.HotelCost = day.Overnight.TotalCost()
		}

		cumGas += db.GasUsed
		cumHotel += db.HotelCost
		cumFood += db.FoodEstimate

		if tracked {
			gasRem := budget.Gas - cumGas
			hotelRem := budget.Hotel - cumHotel
			foodRem := budget.Food - cumFood
			db.GasRemaining = &gasRem
			db.HotelRemaining = &hotelRem
			db.FoodRemaining = &foodRem
			db.Status = e.dayBudgetStatus(min(gasRem, hotelRem, foodRem))
		}
		day.Budget = &db
	}

	if budget.Mode == domain.BudgetModeOpen {
		budget.Gas = cumGas
		budget.Hotel = cumHotel
		budget.Food = cumFood
		budget.Misc = 0
		budget.Total = budget.CategorySum()
	}
	return out, budget
}

func (e *Engine) dayBudgetStatus(remaining int) domain.DayBudgetStatus {
	switch {
	case remaining > e.policy.DayTightThreshold:
		return domain.DayBudgetComfortable
	case remaining > 0:
		return domain.DayBudgetTight
	default:
		return domain.DayBudgetOver
	}
}
