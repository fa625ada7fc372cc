package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/chicaron82/roadtrip-planner-sub003/internal/domain"
)

// VehicleRepo defines the persistence operations for vehicle profiles.
type VehicleRepo interface {
	// Create inserts a new vehicle profile and returns the persisted record.
	Create(ctx context.Context, v domain.VehicleProfile) (domain.VehicleProfile, error)

	// GetByID retrieves a single vehicle profile by its UUID primary key.
	// Returns domain.ErrNotFound if no profile with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.VehicleProfile, error)

	// List returns all vehicle profiles ordered by name.
	List(ctx context.Context) ([]domain.VehicleProfile, error)

	// Update overwrites the mutable fields of a profile and returns the
	// updated record. Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, v domain.VehicleProfile) (domain.VehicleProfile, error)

	// Delete removes a profile by ID. Returns domain.ErrNotFound if it
	// does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgVehicleRepo is the Postgres implementation of VehicleRepo.
type pgVehicleRepo struct {
	db db
}

// NewVehicleRepo constructs a VehicleRepo backed by the provided db connection.
func NewVehicleRepo(db db) VehicleRepo {
	return &pgVehicleRepo{db: db}
}

func (r *pgVehicleRepo) Create(ctx context.Context, v domain.VehicleProfile) (domain.VehicleProfile, error) {
	const q = `
		INSERT INTO vehicle_profiles (name, fuel_type, tank_litres, litres_per_100km, price_per_litre)
		VALUES (@name, @fuel_type, @tank_litres, @litres_per_100km, @price_per_litre)
		RETURNING id, name, fuel_type, tank_litres, litres_per_100km, price_per_litre, created_at, updated_at`

	row := r.db.QueryRow(ctx, q, vehicleArgs(v))
	result, err := scanVehicle(row)
	if err != nil {
		return domain.VehicleProfile{}, fmt.Errorf("repo.VehicleRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgVehicleRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.VehicleProfile, error) {
	const q = `
		SELECT id, name, fuel_type, tank_litres, litres_per_100km, price_per_litre, created_at, updated_at
		FROM vehicle_profiles
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanVehicle(row)
	if err != nil {
		return domain.VehicleProfile{}, fmt.Errorf("repo.VehicleRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgVehicleRepo) List(ctx context.Context) ([]domain.VehicleProfile, error) {
	const q = `
		SELECT id, name, fuel_type, tank_litres, litres_per_100km, price_per_litre, created_at, updated_at
		FROM vehicle_profiles
		ORDER BY name`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.VehicleRepo.List: %w", err)
	}
	defer rows.Close()

	profiles := []domain.VehicleProfile{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.VehicleRepo.List: scan: %w", err)
		}
		profiles = append(profiles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.VehicleRepo.List: rows: %w", err)
	}
	return profiles, nil
}

func (r *pgVehicleRepo) Update(ctx context.Context, v domain.VehicleProfile) (domain.VehicleProfile, error) {
	const q = `
		UPDATE vehicle_profiles
		SET name             = @name,
		    fuel_type        = @fuel_type,
		    tank_litres      = @tank_litres,
		    litres_per_100km = @litres_per_100km,
		    price_per_litre  = @price_per_litre,
		    updated_at       = now()
		WHERE id = @id
		RETURNING id, name, fuel_type, tank_litres, litres_per_100km, price_per_litre, created_at, updated_at`

	args := vehicleArgs(v)
	args["id"] = v.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanVehicle(row)
	if err != nil {
		return domain.VehicleProfile{}, fmt.Errorf("repo.VehicleRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgVehicleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM vehicle_profiles WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.VehicleRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.VehicleRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func vehicleArgs(v domain.VehicleProfile) pgx.NamedArgs {
	return pgx.NamedArgs{
		"name":             v.Name,
		"fuel_type":        v.FuelType,
		"tank_litres":      v.TankLitres,
		"litres_per_100km": v.LitresPer100Km,
		"price_per_litre":  v.PricePerLitre,
	}
}

// scanVehicle maps a single database row into a domain.VehicleProfile.
func scanVehicle(s scanner) (domain.VehicleProfile, error) {
	var (
		v  domain.VehicleProfile
		id pgtype.UUID
	)
	err := s.Scan(&id, &v.Name, &v.FuelType, &v.TankLitres, &v.LitresPer100Km, &v.PricePerLitre, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.VehicleProfile{}, domain.ErrNotFound
		}
		return domain.VehicleProfile{}, err
	}
	v.ID = uuid.UUID(id.Bytes)
	return v, nil
}
