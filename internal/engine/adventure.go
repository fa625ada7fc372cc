package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/samber/lo"

	"github.com/chicaron82/roadtrip-planner-sub003/internal/domain"
)

// Reachability inverts the cost model: given a time-and-money envelope it
// computes how far the trip can physically and financially reach.
//
// Lodging and food are carved out of the budget first; what is left buys
// distance at the query's fuel cost per km. The result is additionally
// capped by what the available drive-days can cover, and DistanceBound
// records which constraint clamped harder. A round trip halves both
// ceilings since every kilometre is driven twice.
func (e *Engine) Reachability(q domain.AdventureQuery) (domain.ReachabilityEstimate, error) {
	if q.Days < 1 {
		return domain.ReachabilityEstimate{}, fmt.Errorf("engine.Engine.Reachability: at least one day required: %w", domain.ErrValidation)
	}

	budget := q.Budget
	if budget < 0 {
		budget = 0
	}
	travelers := q.Travelers
	if travelers < 1 {
		travelers = 1
	}
	rate, ok := e.policy.NightlyRates[q.Tier]
	if !ok {
		rate = e.policy.NightlyRates[domain.TierStandard]
	}
	perKm := q.FuelCostPerKm
	if perKm <= 0 {
		perKm = e.policy.DefaultFuelCostKm
	}

	nights := q.Days - 1
	rooms := (travelers + 1) / 2
	lodging := rate * rooms * nights
	food := e.policy.FoodPerPersonPerDay * q.Days * travelers

	travel := budget - lodging - food
	if travel < 0 {
		travel = 0
	}

	mult := 1.0
	if q.RoundTrip {
		mult = 2
	}
	budgetDist := float64(travel) / (perKm * mult)
	timeDist := float64(q.Days) * e.policy.DriveHoursPerDay * e.policy.AvgSpeedKmh / mult

	est := domain.ReachabilityEstimate{
		BudgetForTravel: travel,
		LodgingCost:     lodging,
		FoodCost:        food,
		Nights:          nights,
		NightlyRate:     rate,
		RoomsPerNight:   rooms,
	}
	if timeDist <= budgetDist {
		est.MaxDistanceKm = math.Round(timeDist*10) / 10
		est.DistanceBound = "time"
	} else {
		est.MaxDistanceKm = math.Round(budgetDist*10) / 10
		est.DistanceBound = "budget"
	}
	return est, nil
}

// ScoreDestinations ranks candidates inside the reachability envelope.
// Candidates beyond MaxDistanceKm (or with no usable distance) are dropped
// rather than scored at zero. Score combines closeness to the distance
// ceiling, interest-tag overlap and remaining-budget headroom, 0..100.
// With no interest tags on the query the full tag weight is awarded, since
// there is no preference a candidate could violate.
func (e *Engine) ScoreDestinations(q domain.AdventureQuery, est domain.ReachabilityEstimate, candidates []domain.DestinationCandidate) []domain.AdventureDestination {
	if est.MaxDistanceKm <= 0 {
		return nil
	}

	budget := q.Budget
	if budget < 0 {
		budget = 0
	}
	perKm := q.FuelCostPerKm
	if perKm <= 0 {
		perKm = e.policy.DefaultFuelCostKm
	}
	mult := 1.0
	if q.RoundTrip {
		mult = 2
	}

	var out []domain.AdventureDestination
	for _, c := range candidates {
		if c.DistanceKm <= 0 || c.DistanceKm > est.MaxDistanceKm {
			continue
		}

		closeness := c.DistanceKm / est.MaxDistanceKm * e.policy.ClosenessWeight

		tagScore := e.policy.TagOverlapWeight
		if len(q.InterestTags) > 0 {
			matched := len(lo.Intersect(q.InterestTags, c.Tags))
			tagScore = float64(matched) / float64(len(q.InterestTags)) * e.policy.TagOverlapWeight
		}

		fuelCost := int(math.Round(c.DistanceKm * perKm * mult))
		estCost := est.LodgingCost + est.FoodCost + fuelCost
		headroom := 0.0
		if budget > 0 && estCost < budget {
			headroom = float64(budget-estCost) / float64(budget)
		}
		headroomScore := headroom * e.policy.HeadroomWeight

		score := math.Round((closeness+tagScore+headroomScore)*10) / 10
		out = append(out, domain.AdventureDestination{
			Candidate:     c,
			Score:         score,
			GreatFit:      score >= e.policy.GreatFitScore,
			EstimatedCost: estCost,
			Reason:        e.destinationReason(closeness, tagScore, headroomScore),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if out[i].Candidate.Location.Name != out[j].Candidate.Location.Name {
			return out[i].Candidate.Location.Name < out[j].Candidate.Location.Name
		}
		return out[i].Candidate.Location.ID < out[j].Candidate.Location.ID
	})
	return out
}

func (e *Engine) destinationReason(closeness, tagScore, headroomScore float64) string {
	cr := closeness / e.policy.ClosenessWeight
	tr := tagScore / e.policy.TagOverlapWeight
	hr := headroomScore / e.policy.HeadroomWeight
	switch {
	case cr >= tr && cr >= hr:
		return "makes the most of your range"
	case tr >= hr:
		return "a strong match for your interests"
	default:
		return "leaves plenty of budget to spare"
	}
}
