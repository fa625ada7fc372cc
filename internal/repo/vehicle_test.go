package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chicaron82/roadtrip-planner-sub003/internal/domain"
	"github.com/chicaron82/roadtrip-planner-sub003/internal/repo"
)

func newVehicleRepo(t *testing.T) repo.VehicleRepo {
	t.Helper()
	return repo.NewVehicleRepo(beginTestTx(t))
}

func vehicleFixture() domain.VehicleProfile {
	return domain.VehicleProfile{
		Name:           "Family Wagon",
		FuelType:       "gasoline",
		TankLitres:     55,
		LitresPer100Km: 8.5,
		PricePerLitre:  1.62,
	}
}

func TestVehicleRepo_Create(t *testing.T) {
	r := newVehicleRepo(t)
	ctx := context.Background()

	input := vehicleFixture()
	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.NotEqual(t, [16]byte{}, got.ID)
	assert.Equal(t, input.Name, got.Name)
	assert.Equal(t, input.TankLitres, got.TankLitres)
	assert.Equal(t, input.LitresPer100Km, got.LitresPer100Km)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestVehicleRepo_GetByID_NotFound(t *testing.T) {
	r := newVehicleRepo(t)
	ctx := context.Background()

	id := [16]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}

	_, err := r.GetByID(ctx, id)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVehicleRepo_List_OrderedByName(t *testing.T) {
	r := newVehicleRepo(t)
	ctx := context.Background()

	van := vehicleFixture()
	van.Name = "Zebra Van"
	coupe := vehicleFixture()
	coupe.Name = "Alpine Coupe"

	_, err := r.Create(ctx, van)
	require.NoError(t, err)
	_, err = r.Create(ctx, coupe)
	require.NoError(t, err)

	profiles, err := r.List(ctx)

	require.NoError(t, err)
	require.GreaterOrEqual(t, len(profiles), 2)
	assert.Equal(t, "Alpine Coupe", profiles[0].Name)
}

func TestVehicleRepo_Update(t *testing.T) {
	r := newVehicleRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, vehicleFixture())
	require.NoError(t, err)

	created.PricePerLitre = 1.89
	created.FuelType = "diesel"

	updated, err := r.Update(ctx, created)

	require.NoError(t, err)
	assert.Equal(t, 1.89, updated.PricePerLitre)
	assert.Equal(t, "diesel", updated.FuelType)
}

func TestVehicleRepo_Delete(t *testing.T) {
	r := newVehicleRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, vehicleFixture())
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, created.ID))

	_, err = r.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
