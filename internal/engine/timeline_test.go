package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chicaron82/roadtrip-planner-sub003/internal/domain"
)

// ---- BuildTimeline ---------------------------------------------------------

func TestEngine_BuildTimeline_SingleDayEventOrder(t *testing.T) {
	e := testEngine()
	segs := []domain.RouteSegment{
		seg("Montreal", "Kingston", 180, 290),
		seg("Kingston", "Toronto", 130, 260),
	}
	days := []domain.TripDay{{
		DayNumber:        1,
		SegmentIndices:   []int{0, 1},
		DriveTimeMinutes: 310,
	}}
	stops := []domain.SuggestedStop{{
		Type:              domain.StopQuickMeal,
		AfterSegmentIndex: 0,
		DurationMinutes:   20,
	}}

	events, out := e.BuildTimeline(days, segs, stops, baseSettings())

	require.Len(t, events, 5)
	assert.Equal(t, domain.EventDepart, events[0].Type)
	assert.Equal(t, domain.EventDrive, events[1].Type)
	assert.Equal(t, domain.EventStop, events[2].Type)
	assert.Equal(t, domain.EventDrive, events[3].Type)
	assert.Equal(t, domain.EventArrive, events[4].Type)

	at := func(h, m int) time.Time {
		return time.Date(2026, 6, 1, h, m, 0, 0, time.UTC)
	}
	assert.Equal(t, at(8, 0), events[0].At)
	assert.Equal(t, at(8, 0), events[1].At)
	assert.Equal(t, at(11, 0), events[2].At)
	assert.Equal(t, at(11, 20), events[3].At)
	assert.Equal(t, at(13, 30), events[4].At)

	assert.Equal(t, "Depart Montreal", events[0].Label)
	assert.Equal(t, "Arrive Toronto", events[4].Label)
	require.NotNil(t, events[1].SegmentIndex)
	assert.Equal(t, 0, *events[1].SegmentIndex)

	assert.Equal(t, at(8, 0), out[0].DepartureTime)
	assert.Equal(t, at(13, 30), out[0].ArrivalTime)
}

func TestEngine_BuildTimeline_OvernightAndCarriedMorningStop(t *testing.T) {
	e := testEngine()
	segs := []domain.RouteSegment{
		seg("A", "B", 300, 400),
		seg("B", "C", 300, 400),
		seg("C", "D", 300, 400),
	}
	days := []domain.TripDay{
		{
			DayNumber:        1,
			SegmentIndices:   []int{0, 1},
			DriveTimeMinutes: 600,
			Overnight:        &domain.OvernightStop{Location: domain.Location{Name: "C"}},
		},
		{DayNumber: 2, SegmentIndices: []int{2}, DriveTimeMinutes: 300},
	}
	// a refuel anchored at day one's closing boundary
	stops := []domain.SuggestedStop{{
		Type:              domain.StopFuel,
		AfterSegmentIndex: 1,
		DurationMinutes:   15,
	}}

	events, out := e.BuildTimeline(days, segs, stops, baseSettings())

	day1Arrive := time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC)
	day2Depart := time.Date(2026, 6, 2, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, day1Arrive, out[0].ArrivalTime)
	require.NotNil(t, out[0].Overnight)
	assert.Equal(t, day1Arrive, out[0].Overnight.CheckIn)
	assert.Equal(t, day2Depart, out[0].Overnight.CheckOut)
	assert.Equal(t, day2Depart, out[1].DepartureTime)

	// the deferred refuel opens day two instead of closing day one
	var carried *domain.TimelineEvent
	for i := range events {
		if events[i].Type == domain.EventStop {
			carried = &events[i]
		}
	}
	require.NotNil(t, carried)
	assert.Equal(t, 2, carried.DayNumber)
	assert.Equal(t, day2Depart, carried.At)
	require.NotNil(t, carried.Stop)
	assert.Equal(t, domain.StopFuel, carried.Stop.Type)

	assert.Equal(t, day2Depart.Add(15*time.Minute+300*time.Minute), out[1].ArrivalTime)
}

func TestEngine_BuildTimeline_TimezoneShiftWaitsForNextDay(t *testing.T) {
	e := testEngine()
	crossing := seg("Lisbon", "Kyiv", 900, 1200)
	crossing.From.Lng = 0
	crossing.To.Lng = 31
	crossing.TimezoneCrossing = true
	after := seg("Kyiv", "Poltava", 300, 340)
	after.From.Lng = 31
	after.To.Lng = 33
	segs := []domain.RouteSegment{crossing, after}
	days := []domain.TripDay{
		{DayNumber: 1, SegmentIndices: []int{0}, DriveTimeMinutes: 900},
		{DayNumber: 2, SegmentIndices: []int{1}, DriveTimeMinutes: 300},
	}

	events, out := e.BuildTimeline(days, segs, nil, baseSettings())

	// the crossing day keeps its own clock: 08:00 departure plus 15h
	assert.Equal(t, time.Date(2026, 6, 1, 23, 0, 0, 0, time.UTC), out[0].ArrivalTime)

	// the +2h shift lands at the next boundary; the shifted clock is past
	// midnight, so the next 09:00 departure is a day later
	assert.Equal(t, time.Date(2026, 6, 3, 9, 0, 0, 0, time.UTC), out[1].DepartureTime)

	// no event of a day ever precedes that day's departure
	departures := map[int]time.Time{}
	for _, d := range out {
		departures[d.DayNumber] = d.DepartureTime
	}
	for _, ev := range events {
		assert.False(t, ev.At.Before(departures[ev.DayNumber]),
			"event %q at %s precedes day %d departure", ev.Label, ev.At, ev.DayNumber)
	}
}

func TestEngine_BuildTimeline_ArrivalAnchoredFinalDay(t *testing.T) {
	e := testEngine()
	segs := []domain.RouteSegment{
		seg("A", "B", 180, 290),
		seg("B", "C", 130, 260),
	}
	days := []domain.TripDay{{
		DayNumber:        1,
		SegmentIndices:   []int{0, 1},
		DriveTimeMinutes: 310,
	}}
	stops := []domain.SuggestedStop{{
		Type:              domain.StopQuickMeal,
		AfterSegmentIndex: 0,
		DurationMinutes:   20,
	}}
	settings := baseSettings()
	settings.UseArrivalTime = true
	settings.ArrivalAt = time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC)

	_, out := e.BuildTimeline(days, segs, stops, settings)

	assert.Equal(t, time.Date(2026, 6, 1, 12, 30, 0, 0, time.UTC), out[0].DepartureTime)
	assert.Equal(t, settings.ArrivalAt, out[0].ArrivalTime)
}

func TestEngine_BuildTimeline_ArrivalAnchorLeavesEarlierDaysForward(t *testing.T) {
	e := testEngine()
	segs := []domain.RouteSegment{
		seg("A", "B", 300, 400),
		seg("B", "C", 300, 400),
	}
	days := []domain.TripDay{
		{
			DayNumber:        1,
			SegmentIndices:   []int{0},
			DriveTimeMinutes: 300,
			Overnight:        &domain.OvernightStop{Location: domain.Location{Name: "B"}},
		},
		{DayNumber: 2, SegmentIndices: []int{1}, DriveTimeMinutes: 300},
	}
	settings := baseSettings()
	settings.UseArrivalTime = true
	settings.ArrivalAt = time.Date(2026, 6, 2, 17, 0, 0, 0, time.UTC)

	_, out := e.BuildTimeline(days, segs, nil, settings)

	assert.Equal(t, time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC), out[0].DepartureTime)
	assert.Equal(t, time.Date(2026, 6, 2, 12, 0, 0, 0, time.UTC), out[1].DepartureTime)
	assert.Equal(t, settings.ArrivalAt, out[1].ArrivalTime)
	assert.Equal(t, out[1].DepartureTime, out[0].Overnight.CheckOut)
}

func TestEngine_BuildTimeline_EmptyDays(t *testing.T) {
	e := testEngine()

	events, out := e.BuildTimeline(nil, nil, nil, baseSettings())

	assert.Nil(t, events)
	assert.Nil(t, out)
}

func TestEngine_BuildTimeline_DoesNotMutateInputDays(t *testing.T) {
	e := testEngine()
	segs := []domain.RouteSegment{
		seg("A", "B", 300, 400),
		seg("B", "C", 300, 400),
	}
	days := []domain.TripDay{
		{
			DayNumber:        1,
			SegmentIndices:   []int{0},
			DriveTimeMinutes: 300,
			Overnight:        &domain.OvernightStop{Location: domain.Location{Name: "B"}},
		},
		{DayNumber: 2, SegmentIndices: []int{1}, DriveTimeMinutes: 300},
	}

	_, _ = e.BuildTimeline(days, segs, nil, baseSettings())

	assert.True(t, days[0].DepartureTime.IsZero())
	assert.True(t, days[0].Overnight.CheckIn.IsZero())
}
