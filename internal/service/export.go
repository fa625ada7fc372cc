package service

import (
	"context"
	"fmt"

	"github.com/chicaron82/roadtrip-planner-sub003/internal/domain"
)

// ExportService flattens a computed itinerary into denormalized rows: one
// row per timeline event, with the owning day's fields repeated on each.
// The rows are encoding-ready; the handler only picks CSV or JSON.
type ExportService struct {
	itineraries *ItineraryService
}

// NewExportService constructs an ExportService on top of the itinerary builder.
func NewExportService(itineraries *ItineraryService) *ExportService {
	return &ExportService{itineraries: itineraries}
}

// Export computes the itinerary for the request and returns its flat rows.
// Always returns a non-nil slice on success.
func (s *ExportService) Export(ctx context.Context, req BuildRequest) ([]domain.ItineraryExportRow, error) {
	it, err := s.itineraries.Build(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	return buildRows(it), nil
}

func buildRows(it domain.Itinerary) []domain.ItineraryExportRow {
	days := make(map[int]domain.TripDay, len(it.Days))
	for _, d := range it.Days {
		days[d.DayNumber] = d
	}

	rows := make([]domain.ItineraryExportRow, 0, len(it.Timeline))
	for _, ev := range it.Timeline {
		day := days[ev.DayNumber]
		row := domain.ItineraryExportRow{
			DayNumber:       ev.DayNumber,
			DayDate:         day.DepartureTime.Format("2006-01-02"),
			DayDistanceKm:   day.DistanceKm,
			DayDriveMinutes: day.DriveTimeMinutes,
			EventType:       string(ev.Type),
			At:              ev.At.Format("15:04"),
			DurationMinutes: ev.DurationMinutes,
			Label:           ev.Label,
		}
		switch {
		case ev.Stop != nil:
			row.StopType = string(ev.Stop.Type)
			row.EstimatedCost = ev.Stop.EstimatedCost
		case ev.Overnight != nil:
			row.EstimatedCost = ev.Overnight.TotalCost()
		}
		rows = append(rows, row)
	}
	return rows
}
