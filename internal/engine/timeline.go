package engine

import (
	"time"

	"github.com/chicaron82/roadtrip-planner-sub003/internal/domain"
)

// BuildTimeline expands the partitioned days into the ordered, timed event
// sequence and returns it together with day copies whose clocks (departure,
// arrival, overnight check-in/out) are filled in. Neither input slice is
// mutated.
//
// Clock model: displayed times are the destination-local clock. A timezone
// crossing picked up mid-day never moves that day's own clocks; the
// accumulated shift is applied when the next day's departure is computed.
// Within any single day, event times are monotonically non-decreasing and
// never precede the day's departure.
//
// Day one departs at the settings departure time. Later days leave at the
// morning-departure hour. When UseArrivalTime is set, the final day is
// instead anchored backward from the target arrival, subtracting its full
// drive-plus-stop duration.
//
// A stop anchored after a day's closing leg belongs to the next day and is
// emitted right after its depart event (a morning refuel), keeping every
// stop at or after its own day's departure.
func (e *Engine) BuildTimeline(days []domain.TripDay, segs []domain.RouteSegment, stops []domain.SuggestedStop, settings domain.TripSettings) ([]domain.TimelineEvent, []domain.TripDay) {
	if len(days) == 0 {
		return nil, nil
	}

	stopsAt := make(map[int][]domain.SuggestedStop, len(stops))
	for _, s := range stops {
		stopsAt[s.AfterSegmentIndex] = append(stopsAt[s.AfterSegmentIndex], s)
	}

	out := make([]domain.TripDay, len(days))
	copy(out, days)
	for i := range out {
		if out[i].Overnight != nil {
			o := *out[i].Overnight
			out[i].Overnight = &o
		}
	}

	var events []domain.TimelineEvent
	var pendingShift time.Duration
	var clock time.Time

	for di := range out {
		day := &out[di]
		final := di == len(out)-1
		dayNo := day.DayNumber

		var carried []domain.SuggestedStop
		if di > 0 {
			prev := out[di-1].SegmentIndices
			carried = stopsAt[prev[len(prev)-1]]
		}

		switch {
		case final && settings.UseArrivalTime && !settings.ArrivalAt.IsZero():
			clock = settings.ArrivalAt.Add(-dayDuration(day, carried, stopsAt))
			pendingShift = 0
		case di == 0:
			clock = settings.DepartureAt
			if clock.IsZero() {
				clock = clock.Add(time.Duration(e.policy.MorningDepartureHour) * time.Hour)
			}
		default:
			clock = nextMorning(clock.Add(pendingShift), e.policy.MorningDepartureHour)
			pendingShift = 0
		}

		day.DepartureTime = clock
		if di > 0 && out[di-1].Overnight != nil {
			out[di-1].Overnight.CheckOut = clock
		}

		firstSeg := segs[day.SegmentIndices[0]]
		events = append(events, domain.TimelineEvent{
			Type:      domain.EventDepart,
			DayNumber: dayNo,
			At:        clock,
			Label:     "Depart " + firstSeg.From.Name,
		})

		for _, st := range carried {
			events = append(events, stopEvent(st, dayNo, clock))
			clock = clock.Add(time.Duration(st.DurationMinutes) * time.Minute)
		}

		lastIdx := day.SegmentIndices[len(day.SegmentIndices)-1]
		for _, segIdx := range day.SegmentIndices {
			seg := segs[segIdx]
			idx := segIdx
			events = append(events, domain.TimelineEvent{
				Type:            domain.EventDrive,
				DayNumber:       dayNo,
				At:              clock,
				DurationMinutes: seg.DurationMinutes,
				Label:           "Drive " + seg.From.Name + " to " + seg.To.Name,
				SegmentIndex:    &idx,
			})
			clock = clock.Add(time.Duration(seg.DurationMinutes) * time.Minute)
			if seg.TimezoneCrossing {
				pendingShift += zoneShift(seg)
			}
			if segIdx != lastIdx {
				for _, st := range stopsAt[segIdx] {
					events = append(events, stopEvent(st, dayNo, clock))
					clock = clock.Add(time.Duration(st.DurationMinutes) * time.Minute)
				}
			}
		}

		events = append(events, domain.TimelineEvent{
			Type:      domain.EventArrive,
			DayNumber: dayNo,
			At:        clock,
			Label:     "Arrive " + segs[lastIdx].To.Name,
		})
		day.ArrivalTime = clock

		if !final && day.Overnight != nil {
			day.Overnight.CheckIn = clock
			events = append(events, domain.TimelineEvent{
				Type:      domain.EventOvernight,
				DayNumber: dayNo,
				At:        clock,
				Label:     "Overnight in " + day.Overnight.Location.Name,
				Overnight: day.Overnight,
			})
		}
	}

	return events, out
}

// dayDuration is the day's full drive-plus-stop length: carried morning
// stops, every leg, and every stop except those at the day's closing
// boundary (they belong to the next morning).
func dayDuration(day *domain.TripDay, carried []domain.SuggestedStop, stopsAt map[int][]domain.SuggestedStop) time.Duration {
	total := day.DriveTimeMinutes
	for _, st := range carried {
		total += st.DurationMinutes
	}
	last := day.SegmentIndices[len(day.SegmentIndices)-1]
	for _, idx := range day.SegmentIndices {
		if idx == last {
			continue
		}
		for _, st := range stopsAt[idx] {
			total += st.DurationMinutes
		}
	}
	return time.Duration(total) * time.Minute
}

func stopEvent(st domain.SuggestedStop, dayNo int, at time.Time) domain.TimelineEvent {
	s := st
	return domain.TimelineEvent{
		Type:            domain.EventStop,
		DayNumber:       dayNo,
		At:              at,
		DurationMinutes: st.DurationMinutes,
		Label:           stopLabel(st.Type),
		Stop:            &s,
	}
}

func stopLabel(t domain.StopType) string {
	switch t {
	case domain.StopFuel:
		return "Fuel stop"
	case domain.StopBreak:
		return "Rest break"
	case domain.StopQuickMeal:
		return "Quick meal"
	case domain.StopMeal:
		return "Meal stop"
	case domain.StopOvernight:
		return "Overnight"
	default:
		return "Stop"
	}
}

func nextMorning(t time.Time, hour int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+1, hour, 0, 0, 0, t.Location())
}
