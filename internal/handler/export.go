// Package handler — export.go implements POST /itinerary/export.
// Computes the itinerary for the posted inputs and returns its timeline as
// a flat table. Supports content negotiation via ?format=csv (CSV) or
// default (JSON).
package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/chicaron82/roadtrip-planner-sub003/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"day_number", "day_date", "day_distance_km", "day_drive_minutes",
	"event_type", "at", "duration_minutes", "label",
	"stop_type", "estimated_cost",
}

// exportRow is the JSON shape of one timeline event. Day columns repeat on
// every row so each line stands alone.
type exportRow struct {
	DayNumber       int                `json:"day_number"`
	DayDate         openapi_types.Date `json:"day_date"`
	DayDistanceKm   float64            `json:"day_distance_km"`
	DayDriveMinutes int                `json:"day_drive_minutes"`
	EventType       string             `json:"event_type"`
	At              string             `json:"at"`
	DurationMinutes int                `json:"duration_minutes,omitempty"`
	Label           string             `json:"label"`
	StopType        string             `json:"stop_type,omitempty"`
	EstimatedCost   int                `json:"estimated_cost,omitempty"`
}

// handleExportItinerary handles POST /api/v1/itinerary/export.
// The body is the same shape as POST /itinerary; use ?format=csv to receive
// CSV, default is JSON.
func (s *Server) handleExportItinerary(w http.ResponseWriter, r *http.Request) {
	var req itineraryRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body: "+err.Error())
		return
	}

	rows, err := s.deps.Exports.Export(r.Context(), req.toBuildRequest())
	if err != nil {
		s.respondServiceError(w, r, "vehicle", err)
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		writeCSVRows(w, rows)
		return
	}
	respondJSON(w, http.StatusOK, buildJSONRows(rows))
}

// buildJSONRows converts domain rows to the typed JSON shape.
func buildJSONRows(rows []domain.ItineraryExportRow) []exportRow {
	out := make([]exportRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, exportRow{
			DayNumber:       r.DayNumber,
			DayDate:         mustParseDate(r.DayDate),
			DayDistanceKm:   r.DayDistanceKm,
			DayDriveMinutes: r.DayDriveMinutes,
			EventType:       r.EventType,
			At:              r.At,
			DurationMinutes: r.DurationMinutes,
			Label:           r.Label,
			StopType:        r.StopType,
			EstimatedCost:   r.EstimatedCost,
		})
	}
	return out
}

// writeCSVRows encodes domain rows as CSV and writes the full response.
func writeCSVRows(w http.ResponseWriter, rows []domain.ItineraryExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck — bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		cw.Write(rowToCSVRecord(r))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes()) //nolint:errcheck
}

// rowToCSVRecord encodes a domain row as a flat string slice.
// Distances keep one decimal place; empty stop columns stay empty.
func rowToCSVRecord(r domain.ItineraryExportRow) []string {
	return []string{
		strconv.Itoa(r.DayNumber),
		r.DayDate,
		strconv.FormatFloat(r.DayDistanceKm, 'f', 1, 64),
		strconv.Itoa(r.DayDriveMinutes),
		r.EventType,
		r.At,
		strconv.Itoa(r.DurationMinutes),
		r.Label,
		r.StopType,
		strconv.Itoa(r.EstimatedCost),
	}
}

// mustParseDate parses an "2006-01-02" string into an openapi_types.Date.
// Panics on malformed input; callers are expected to pass service-generated dates.
func mustParseDate(s string) openapi_types.Date {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic("handler: malformed date from service: " + s)
	}
	return openapi_types.Date{Time: t}
}
