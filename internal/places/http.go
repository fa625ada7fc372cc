package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/chicaron82/roadtrip-planner-sub003/internal/domain"
)

// HTTPProvider talks to the places API over HTTP. Transient failures
// (429, 5xx, network errors) are retried with fibonacci backoff; anything
// that still fails surfaces as domain.ErrProvider. Safe for concurrent use.
type HTTPProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewHTTPProvider constructs a provider for the API at baseURL.
// apiKey may be empty for providers that do not require one.
func NewHTTPProvider(baseURL, apiKey string) *HTTPProvider {
	return &HTTPProvider{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

// poiPayload is the provider's wire shape for one point of interest.
type poiPayload struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Category            string   `json:"category"`
	Lat                 float64  `json:"lat"`
	Lng                 float64  `json:"lng"`
	Tags                []string `json:"tags"`
	DistanceFromRouteKm float64  `json:"distance_from_route_km"`
	DetourTimeMinutes   int      `json:"detour_time_minutes"`
	VisitMinutes        int      `json:"visit_minutes"`
	EntryCost           int      `json:"entry_cost"`
	FitsInBreakWindow   bool     `json:"fits_in_break_window"`
	Rating              float64  `json:"rating"`
}

type corridorResponse struct {
	POIs []poiPayload `json:"pois"`
}

type destinationPayload struct {
	PlaceID    string   `json:"place_id"`
	Name       string   `json:"name"`
	Lat        float64  `json:"lat"`
	Lng        float64  `json:"lng"`
	DistanceKm float64  `json:"distance_km"`
	Tags       []string `json:"tags"`
}

type destinationsResponse struct {
	Destinations []destinationPayload `json:"destinations"`
}

func (p *HTTPProvider) SearchCorridor(ctx context.Context, q CorridorQuery) ([]domain.DiscoveredPOI, error) {
	params := url.Values{}
	params.Set("lat", formatCoord(q.Lat))
	params.Set("lng", formatCoord(q.Lng))
	params.Set("radius_km", strconv.FormatFloat(q.RadiusKm, 'f', -1, 64))
	if len(q.Categories) > 0 {
		params.Set("categories", strings.Join(q.Categories, ","))
	}

	var decoded corridorResponse
	if err := p.getJSON(ctx, "/v1/pois", params, &decoded); err != nil {
		return nil, p.wrapErr("SearchCorridor", err)
	}

	pois := make([]domain.DiscoveredPOI, 0, len(decoded.POIs))
	for _, raw := range decoded.POIs {
		seg := q.SegmentIndex
		pois = append(pois, domain.DiscoveredPOI{
			ID:                  raw.ID,
			Name:                raw.Name,
			Category:            raw.Category,
			Lat:                 raw.Lat,
			Lng:                 raw.Lng,
			Tags:                raw.Tags,
			DistanceFromRouteKm: raw.DistanceFromRouteKm,
			DetourTimeMinutes:   raw.DetourTimeMinutes,
			VisitMinutes:        raw.VisitMinutes,
			EntryCost:           raw.EntryCost,
			FitsInBreakWindow:   raw.FitsInBreakWindow,
			RankingScore:        raw.Rating,
			ActionState:         domain.POIPending,
			SegmentIndex:        &seg,
		})
	}
	return pois, nil
}

func (p *HTTPProvider) SearchDestinations(ctx context.Context, q DestinationQuery) ([]domain.DestinationCandidate, error) {
	params := url.Values{}
	params.Set("lat", formatCoord(q.Origin.Lat))
	params.Set("lng", formatCoord(q.Origin.Lng))
	params.Set("max_distance_km", strconv.FormatFloat(q.MaxDistanceKm, 'f', -1, 64))
	if len(q.Tags) > 0 {
		params.Set("tags", strings.Join(q.Tags, ","))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	var decoded destinationsResponse
	if err := p.getJSON(ctx, "/v1/destinations", params, &decoded); err != nil {
		return nil, p.wrapErr("SearchDestinations", err)
	}

	candidates := make([]domain.DestinationCandidate, 0, len(decoded.Destinations))
	for _, raw := range decoded.Destinations {
		candidates = append(candidates, domain.DestinationCandidate{
			Location: domain.Location{
				ID:   raw.PlaceID,
				Name: raw.Name,
				Lat:  raw.Lat,
				Lng:  raw.Lng,
			},
			DistanceKm: raw.DistanceKm,
			Tags:       raw.Tags,
		})
	}
	return candidates, nil
}

// getJSON issues a GET against path and decodes the JSON body into out.
// 429 and 5xx responses and transport errors are retried; other failures
// return immediately.
func (p *HTTPProvider) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	endpoint := p.baseURL + path + "?" + params.Encode()

	backoff := retry.WithMaxRetries(3, retry.NewFibonacci(200*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		if p.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+p.apiKey)
		}

		resp, err := p.client.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			err := fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
			if transientStatus(resp.StatusCode) {
				return retry.RetryableError(err)
			}
			return err
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	})
}

// wrapErr turns a transport failure into domain.ErrProvider while letting
// context cancellation through untouched, so a cancelled discovery run is
// not mistaken for a provider outage.
func (p *HTTPProvider) wrapErr(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("places.HTTPProvider.%s: %w", op, err)
	}
	return fmt.Errorf("places.HTTPProvider.%s: %w: %s", op, domain.ErrProvider, err)
}

func transientStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests, http.StatusInternalServerError,
		http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
