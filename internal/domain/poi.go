package domain

// POIBucket groups a suggestion by where it sits relative to the route:
// strung along the corridor, or clustered at the destination.
type POIBucket string

const (
	BucketAlongWay    POIBucket = "along-way"
	BucketDestination POIBucket = "destination"
)

// Valid reports whether b is one of the known buckets.
func (b POIBucket) Valid() bool {
	switch b {
	case BucketAlongWay, BucketDestination:
		return true
	}
	return false
}

// POITier ranks how strongly a suggestion earns its detour.
type POITier string

const (
	TierNoBrainer   POITier = "no-brainer"
	TierWorthDetour POITier = "worth-detour"
	TierIfTime      POITier = "if-time"
)

// Rank orders tiers for sorting, best first.
func (t POITier) Rank() int {
	switch t {
	case TierNoBrainer:
		return 0
	case TierWorthDetour:
		return 1
	default:
		return 2
	}
}

// POIActionState tracks what the traveller decided about a suggestion.
// pending→added and pending→dismissed are terminal within a planning
// session; the engine never reverses them.
type POIActionState string

const (
	POIPending   POIActionState = "pending"
	POIAdded     POIActionState = "added"
	POIDismissed POIActionState = "dismissed"
)

// Valid reports whether s is one of the known action states.
func (s POIActionState) Valid() bool {
	switch s {
	case POIPending, POIAdded, POIDismissed:
		return true
	}
	return false
}

// Terminal reports whether s admits no further transition.
func (s POIActionState) Terminal() bool {
	return s == POIAdded || s == POIDismissed
}

// DiscoveredPOI is one point-of-interest suggestion: a provider hit
// annotated with where it sits, how much it costs to visit, and what the
// traveller decided about it. ActionState is owned by the caller and passed
// back in on every recomputation.
type DiscoveredPOI struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Lat      float64  `json:"lat"`
	Lng      float64  `json:"lng"`
	Tags     []string `json:"tags,omitempty"`

	Bucket POIBucket `json:"bucket"`
	Tier   POITier   `json:"tier"`

	DistanceFromRouteKm float64 `json:"distance_from_route_km"`
	DetourTimeMinutes   int     `json:"detour_time_minutes"`
	VisitMinutes        int     `json:"visit_minutes"`
	EntryCost           int     `json:"entry_cost"`
	FitsInBreakWindow   bool    `json:"fits_in_break_window"`
	RankingScore        float64 `json:"ranking_score"` // 0..100

	ActionState POIActionState `json:"action_state"`

	SegmentIndex       *int `json:"segment_index,omitempty"`
	MirrorSegmentIndex *int `json:"mirror_segment_index,omitempty"` // round-trip twin
}

// DiscoveryResult carries the tiered suggestions for one discovery run.
//
// PartialResults is set when at least one corridor query failed while
// others answered; the suggestions present are valid but the set may be
// incomplete.
type DiscoveryResult struct {
	POIs            []DiscoveredPOI `json:"pois"`
	PartialResults  bool            `json:"partial_results"`
	FailedCorridors []string        `json:"failed_corridors,omitempty"`
}
