package engine

import "github.com/chicaron82/roadtrip-planner-sub003/internal/domain"

// SplitDays partitions segs into bounded driving days and synthesizes an
// overnight stop at every split boundary. It returns the days plus the
// indices of unresolved segments that were excluded from the partition.
//
// The walk is greedy: a leg joins the current day unless doing so would
// push the day past (maxDriveHours+toleranceHours)*60 minutes. Exact
// boundary equality fits. A single leg longer than the cap is never
// subdivided; it becomes its own over-cap day, flagged by its long_drive
// warning rather than by the splitter. BeastMode disables the cap and the
// whole sequence becomes one day.
func (e *Engine) SplitDays(segs []domain.RouteSegment, settings domain.TripSettings) ([]domain.TripDay, []int) {
	var included, excluded []int
	for i, s := range segs {
		if s.Resolved() {
			included = append(included, i)
		} else {
			excluded = append(excluded, i)
		}
	}
	if len(included) == 0 {
		return nil, excluded
	}

	var groups [][]int
	if settings.BeastMode {
		groups = [][]int{included}
	} else {
		capMin := settings.CapMinutes()
		var cur []int
		curMin := 0
		for _, idx := range included {
			d := segs[idx].DurationMinutes
			if len(cur) > 0 && curMin+d > capMin {
				groups = append(groups, cur)
				cur, curMin = nil, 0
			}
			cur = append(cur, idx)
			curMin += d
		}
		groups = append(groups, cur)
	}

	days := make([]domain.TripDay, len(groups))
	for gi, group := range groups {
		day := domain.TripDay{
			DayNumber:      gi + 1,
			SegmentIndices: group,
			DayType:        dayTypeFor(settings, gi+1),
		}
		for _, idx := range group {
			day.DistanceKm += segs[idx].DistanceKm
			day.DriveTimeMinutes += segs[idx].DurationMinutes
		}
		if gi < len(groups)-1 {
			last := segs[group[len(group)-1]]
			day.Overnight = &domain.OvernightStop{
				Location:      last.To,
				Accommodation: domain.AccommodationHotel,
				CostPerNight:  e.policy.DefaultNightlyRate,
				RoomsNeeded:   settings.RoomsNeeded(),
			}
		}
		days[gi] = day
	}
	return days, excluded
}

func dayTypeFor(settings domain.TripSettings, dayNumber int) domain.DayType {
	if t, ok := settings.DayTypes[dayNumber]; ok && t.Valid() {
		return t
	}
	return domain.DayPlanned
}
