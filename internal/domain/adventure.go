package domain

// AccommodationTier buckets nightly lodging cost for reachability math.
type AccommodationTier string

const (
	TierBudget   AccommodationTier = "budget"
	TierStandard AccommodationTier = "standard"
	TierComfort  AccommodationTier = "comfort"
)

// Valid reports whether t is one of the known tiers.
func (t AccommodationTier) Valid() bool {
	switch t {
	case TierBudget, TierStandard, TierComfort:
		return true
	}
	return false
}

// AdventureQuery is the "where can we go" question: a starting point, a
// time-and-money envelope, and taste.
type AdventureQuery struct {
	Origin        Location          `json:"origin"`
	Days          int               `json:"days"`
	Budget        int               `json:"budget"`
	Travelers     int               `json:"travelers"`
	RoundTrip     bool              `json:"round_trip"`
	Tier          AccommodationTier `json:"tier"`
	FuelCostPerKm float64           `json:"fuel_cost_per_km"`
	InterestTags  []string          `json:"interest_tags,omitempty"`
}

// DestinationCandidate is one place the reachability calculator considers.
// DistanceKm is one-way from the query origin.
type DestinationCandidate struct {
	Location   Location `json:"location"`
	DistanceKm float64  `json:"distance_km"`
	Tags       []string `json:"tags,omitempty"`
}

// ReachabilityEstimate is the distance-and-cost ceiling derived from a
// query before any candidate is scored. DistanceBound names which
// constraint clamped MaxDistanceKm: "budget" or "time".
type ReachabilityEstimate struct {
	MaxDistanceKm   float64 `json:"max_distance_km"`
	BudgetForTravel int     `json:"budget_for_travel"`
	LodgingCost     int     `json:"lodging_cost"`
	FoodCost        int     `json:"food_cost"`
	Nights          int     `json:"nights"`
	NightlyRate     int     `json:"nightly_rate"`
	RoomsPerNight   int     `json:"rooms_per_night"`
	DistanceBound   string  `json:"distance_bound"`
}

// AdventureDestination is a scored, reachable destination suggestion.
// Score is 0..100 for display tiering; GreatFit marks scores at or above
// the great-fit cutoff.
type AdventureDestination struct {
	Candidate     DestinationCandidate `json:"candidate"`
	Score         float64              `json:"score"`
	GreatFit      bool                 `json:"great_fit"`
	EstimatedCost int                  `json:"estimated_cost"`
	Reason        string               `json:"reason"`
}
