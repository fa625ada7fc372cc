package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/chicaron82/roadtrip-planner-sub003/internal/domain"
	"github.com/chicaron82/roadtrip-planner-sub003/internal/handler"
	"github.com/chicaron82/roadtrip-planner-sub003/internal/service"
)

// ---- mock servicers --------------------------------------------------------

// Each mock is a hand-written test double for one of the handler's consumer
// interfaces. Every method is a function field — set only the ones your test
// needs; an unexpected call hits a nil field and panics, which is exactly
// the failure we want to see.

type mockPlans struct {
	create  func(ctx context.Context, plan domain.SavedPlan) (domain.SavedPlan, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.SavedPlan, error)
	list    func(ctx context.Context, p domain.PaginationParams) ([]domain.SavedPlan, int64, error)
	update  func(ctx context.Context, plan domain.SavedPlan) (domain.SavedPlan, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockPlans) Create(ctx context.Context, plan domain.SavedPlan) (domain.SavedPlan, error) {
	return m.create(ctx, plan)
}

func (m *mockPlans) GetByID(ctx context.Context, id uuid.UUID) (domain.SavedPlan, error) {
	return m.getByID(ctx, id)
}

func (m *mockPlans) List(ctx context.Context, p domain.PaginationParams) ([]domain.SavedPlan, int64, error) {
	return m.list(ctx, p)
}

func (m *mockPlans) Update(ctx context.Context, plan domain.SavedPlan) (domain.SavedPlan, error) {
	return m.update(ctx, plan)
}

func (m *mockPlans) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

// compile-time check: mockPlans must satisfy handler.PlanServicer.
var _ handler.PlanServicer = (*mockPlans)(nil)

type mockVehicles struct {
	create  func(ctx context.Context, v domain.VehicleProfile) (domain.VehicleProfile, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.VehicleProfile, error)
	list    func(ctx context.Context) ([]domain.VehicleProfile, error)
	update  func(ctx context.Context, v domain.VehicleProfile) (domain.VehicleProfile, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockVehicles) Create(ctx context.Context, v domain.VehicleProfile) (domain.VehicleProfile, error) {
	return m.create(ctx, v)
}

func (m *mockVehicles) GetByID(ctx context.Context, id uuid.UUID) (domain.VehicleProfile, error) {
	return m.getByID(ctx, id)
}

func (m *mockVehicles) List(ctx context.Context) ([]domain.VehicleProfile, error) {
	return m.list(ctx)
}

func (m *mockVehicles) Update(ctx context.Context, v domain.VehicleProfile) (domain.VehicleProfile, error) {
	return m.update(ctx, v)
}

func (m *mockVehicles) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

// compile-time check: mockVehicles must satisfy handler.VehicleServicer.
var _ handler.VehicleServicer = (*mockVehicles)(nil)

type mockFavorites struct {
	star      func(ctx context.Context, fav domain.FavoritePOI) (domain.FavoritePOI, error)
	listPaged func(ctx context.Context, category string, p domain.PaginationParams) ([]domain.FavoritePOI, int64, error)
	unstar    func(ctx context.Context, placeID string) error
}

func (m *mockFavorites) Star(ctx context.Context, fav domain.FavoritePOI) (domain.FavoritePOI, error) {
	return m.star(ctx, fav)
}

func (m *mockFavorites) ListPaged(ctx context.Context, category string, p domain.PaginationParams) ([]domain.FavoritePOI, int64, error) {
	return m.listPaged(ctx, category, p)
}

func (m *mockFavorites) Unstar(ctx context.Context, placeID string) error {
	return m.unstar(ctx, placeID)
}

// compile-time check: mockFavorites must satisfy handler.FavoriteServicer.
var _ handler.FavoriteServicer = (*mockFavorites)(nil)

type mockItineraries struct {
	build   func(ctx context.Context, req service.BuildRequest) (domain.Itinerary, error)
	forPlan func(ctx context.Context, planID uuid.UUID) (domain.Itinerary, error)
}

func (m *mockItineraries) Build(ctx context.Context, req service.BuildRequest) (domain.Itinerary, error) {
	return m.build(ctx, req)
}

func (m *mockItineraries) ForPlan(ctx context.Context, planID uuid.UUID) (domain.Itinerary, error) {
	return m.forPlan(ctx, planID)
}

// compile-time check: mockItineraries must satisfy handler.ItineraryBuilder.
var _ handler.ItineraryBuilder = (*mockItineraries)(nil)

type mockDiscovery struct {
	discover    func(ctx context.Context, req service.DiscoverRequest) (domain.DiscoveryResult, error)
	applyAction func(pois []domain.DiscoveredPOI, id string, state domain.POIActionState) ([]domain.DiscoveredPOI, error)
}

func (m *mockDiscovery) Discover(ctx context.Context, req service.DiscoverRequest) (domain.DiscoveryResult, error) {
	return m.discover(ctx, req)
}

func (m *mockDiscovery) ApplyAction(pois []domain.DiscoveredPOI, id string, state domain.POIActionState) ([]domain.DiscoveredPOI, error) {
	return m.applyAction(pois, id, state)
}

// compile-time check: mockDiscovery must satisfy handler.DiscoveryServicer.
var _ handler.DiscoveryServicer = (*mockDiscovery)(nil)

type mockAdventures struct {
	explore func(ctx context.Context, req service.AdventureRequest) (service.AdventureResult, error)
}

func (m *mockAdventures) Explore(ctx context.Context, req service.AdventureRequest) (service.AdventureResult, error) {
	return m.explore(ctx, req)
}

// compile-time check: mockAdventures must satisfy handler.AdventureServicer.
var _ handler.AdventureServicer = (*mockAdventures)(nil)

type mockExports struct {
	export func(ctx context.Context, req service.BuildRequest) ([]domain.ItineraryExportRow, error)
}

func (m *mockExports) Export(ctx context.Context, req service.BuildRequest) ([]domain.ItineraryExportRow, error) {
	return m.export(ctx, req)
}

// compile-time check: mockExports must satisfy handler.ExportServicer.
var _ handler.ExportServicer = (*mockExports)(nil)

// ---- request plumbing ------------------------------------------------------

// errorBody mirrors the wire error envelope.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// jsonRequest builds an httptest request with the given body marshalled as
// JSON. A nil body means no body at all.
func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	if body == nil {
		return httptest.NewRequest(method, target, nil)
	}
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// serve routes one request through a Server built over deps. Tests that do
// not set a logger get a silent one so expected-failure paths don't spam
// the test output.
func serve(deps handler.Deps, req *http.Request) *httptest.ResponseRecorder {
	if deps.Log == nil {
		deps.Log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	rec := httptest.NewRecorder()
	handler.NewServer(deps).Routes().ServeHTTP(rec, req)
	return rec
}
