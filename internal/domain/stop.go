package domain

// StopType identifies what a suggested stop is for.
type StopType string

const (
	StopDrive     StopType = "drive"
	StopFuel      StopType = "fuel"
	StopBreak     StopType = "break"
	StopQuickMeal StopType = "quick_meal"
	StopMeal      StopType = "meal"
	StopOvernight StopType = "overnight"
)

// Valid reports whether t is one of the known stop types.
func (t StopType) Valid() bool {
	switch t {
	case StopDrive, StopFuel, StopBreak, StopQuickMeal, StopMeal, StopOvernight:
		return true
	}
	return false
}

// StopPriority separates stops the plan needs from stops the plan offers.
type StopPriority string

const (
	PriorityRequired StopPriority = "required"
	PriorityOptional StopPriority = "optional"
)

// SuggestedStop is one planner-generated stop anchored after a segment.
// All generated stops are accepted by default; the caller removes dismissed
// ones (by Key) before the timeline is built.
type SuggestedStop struct {
	Type              StopType     `json:"type"`
	AfterSegmentIndex int          `json:"after_segment_index"`
	DurationMinutes   int          `json:"duration_minutes"`
	Priority          StopPriority `json:"priority"`
	EstimatedCost     int          `json:"estimated_cost"`
	Reason            string       `json:"reason,omitempty"`

	// MirrorSegmentIndex is set on round trips: the reflected index of the
	// return leg this stop would repeat after.
	MirrorSegmentIndex *int `json:"mirror_segment_index,omitempty"`
}

// StopKey identifies one suggested stop for dismissal across
// recomputations. Regenerating from the same inputs yields the same keys.
type StopKey struct {
	Type              StopType `json:"type"`
	AfterSegmentIndex int      `json:"after_segment_index"`
}

// Key returns the stop's dismissal identity.
func (s SuggestedStop) Key() StopKey {
	return StopKey{Type: s.Type, AfterSegmentIndex: s.AfterSegmentIndex}
}
