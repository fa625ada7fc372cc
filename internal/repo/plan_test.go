package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chicaron82/roadtrip-planner-sub003/internal/domain"
	"github.com/chicaron82/roadtrip-planner-sub003/internal/repo"
	"github.com/chicaron82/roadtrip-planner-sub003/testutil"
)

// beginTestTx opens a transaction against the test database that is rolled
// back when the test finishes, giving free per-test isolation.
func beginTestTx(t *testing.T) pgx.Tx {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})
	return tx
}

func newPlanRepo(t *testing.T) repo.PlanRepo {
	t.Helper()
	return repo.NewPlanRepo(beginTestTx(t))
}

// planFixture returns a plan with a two-leg route and sensible settings.
// Callers can override individual fields after calling this function.
func planFixture() domain.SavedPlan {
	return domain.SavedPlan{
		Name:  "Montreal to Toronto",
		Notes: "long weekend",
		Segments: []domain.RouteSegment{
			{
				From:            domain.Location{Name: "Montreal", Lat: 45.50, Lng: -73.57, Role: domain.RoleOrigin},
				To:              domain.Location{Name: "Kingston", Lat: 44.23, Lng: -76.49, Role: domain.RoleWaypoint},
				DistanceKm:      290,
				DurationMinutes: 180,
			},
			{
				From:            domain.Location{Name: "Kingston", Lat: 44.23, Lng: -76.49, Role: domain.RoleWaypoint},
				To:              domain.Location{Name: "Toronto", Lat: 43.65, Lng: -79.38, Role: domain.RoleDestination},
				DistanceKm:      260,
				DurationMinutes: 160,
			},
		},
		Settings: domain.TripSettings{
			MaxDriveHours: 8,
			DepartureAt:   time.Date(2026, 7, 10, 8, 0, 0, 0, time.UTC),
			StopFrequency: domain.FrequencyBalanced,
			NumTravelers:  2,
			NumDrivers:    1,
		},
		Budget: domain.TripBudget{
			Mode:  domain.BudgetModePlanToBudget,
			Total: 1000,
			Gas:   350,
			Hotel: 400,
			Food:  200,
			Misc:  50,
		},
	}
}

func TestPlanRepo_Create(t *testing.T) {
	r := newPlanRepo(t)
	ctx := context.Background()

	input := planFixture()
	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.NotEqual(t, [16]byte{}, got.ID, "ID should be DB-generated UUID")
	assert.Equal(t, input.Name, got.Name)
	assert.Equal(t, input.Notes, got.Notes)
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set by DB")
	assert.False(t, got.UpdatedAt.IsZero(), "UpdatedAt should be set by DB")

	// the jsonb round trip preserves the full route and settings
	require.Len(t, got.Segments, 2)
	assert.Equal(t, "Montreal", got.Segments[0].From.Name)
	assert.Equal(t, 290.0, got.Segments[0].DistanceKm)
	assert.Equal(t, domain.FrequencyBalanced, got.Settings.StopFrequency)
	assert.True(t, got.Settings.DepartureAt.Equal(input.Settings.DepartureAt))
	assert.Equal(t, 1000, got.Budget.Total)
}

func TestPlanRepo_GetByID(t *testing.T) {
	r := newPlanRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, planFixture())
	require.NoError(t, err)

	got, err := r.GetByID(ctx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Name, got.Name)
	assert.Len(t, got.Segments, 2)
}

func TestPlanRepo_GetByID_NotFound(t *testing.T) {
	r := newPlanRepo(t)
	ctx := context.Background()

	id := [16]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}

	_, err := r.GetByID(ctx, id)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPlanRepo_List_PagedAndOrdered(t *testing.T) {
	r := newPlanRepo(t)
	ctx := context.Background()

	first := planFixture()
	first.Name = "First Plan"
	second := planFixture()
	second.Name = "Second Plan"

	_, err := r.Create(ctx, first)
	require.NoError(t, err)
	created2, err := r.Create(ctx, second)
	require.NoError(t, err)

	// touching the second plan bumps it to the top of the listing
	created2.Notes = "touched"
	_, err = r.Update(ctx, created2)
	require.NoError(t, err)

	page, total, err := r.List(ctx, domain.PaginationParams{Page: 1, Limit: 1})

	require.NoError(t, err)
	assert.GreaterOrEqual(t, total, int64(2))
	require.Len(t, page, 1)
	assert.Equal(t, "Second Plan", page[0].Name)
}

func TestPlanRepo_Update(t *testing.T) {
	r := newPlanRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, planFixture())
	require.NoError(t, err)

	created.Name = "Renamed"
	created.Settings.BeastMode = true
	created.Segments = created.Segments[:1]

	updated, err := r.Update(ctx, created)

	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Renamed", updated.Name)
	assert.True(t, updated.Settings.BeastMode)
	assert.Len(t, updated.Segments, 1)
	assert.False(t, updated.UpdatedAt.IsZero())
}

func TestPlanRepo_Update_NotFound(t *testing.T) {
	r := newPlanRepo(t)
	ctx := context.Background()

	ghost := planFixture()
	ghost.ID = [16]byte{0xde, 0xad, 0xbe, 0xef, 0xde, 0xad, 0xbe, 0xef,
		0xde, 0xad, 0xbe, 0xef, 0xde, 0xad, 0xbe, 0xef}

	_, err := r.Update(ctx, ghost)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPlanRepo_Delete(t *testing.T) {
	r := newPlanRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, planFixture())
	require.NoError(t, err)

	err = r.Delete(ctx, created.ID)
	require.NoError(t, err)

	_, err = r.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "plan should be gone after delete")
}

func TestPlanRepo_Delete_NotFound(t *testing.T) {
	r := newPlanRepo(t)
	ctx := context.Background()

	id := [16]byte{0xca, 0xfe, 0xba, 0xbe, 0xca, 0xfe, 0xba, 0xbe,
		0xca, 0xfe, 0xba, 0xbe, 0xca, 0xfe, 0xba, 0xbe}

	err := r.Delete(ctx, id)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
