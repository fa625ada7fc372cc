// Package repo contains all database access for the trip planner API.
// Each resource has its own file with an interface and a Postgres
// implementation. No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/chicaron82/roadtrip-planner-sub003/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PlanRepo defines the persistence operations for saved plans.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
//
// A plan row stores the itinerary inputs (route, settings, budget) as jsonb;
// computed itineraries are never persisted, they are recomputed on load.
type PlanRepo interface {
	// Create inserts a new plan and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, plan domain.SavedPlan) (domain.SavedPlan, error)

	// GetByID retrieves a single plan by its UUID primary key.
	// Returns domain.ErrNotFound if no plan with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.SavedPlan, error)

	// List returns one page of plans ordered by updated_at descending,
	// plus the total plan count for pagination.
	List(ctx context.Context, p domain.PaginationParams) ([]domain.SavedPlan, int64, error)

	// Update overwrites the mutable fields of an existing plan and returns
	// the updated record. Returns domain.ErrNotFound if no plan with that
	// ID exists.
	Update(ctx context.Context, plan domain.SavedPlan) (domain.SavedPlan, error)

	// Delete removes a plan by ID. Returns domain.ErrNotFound if it does
	// not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgPlanRepo is the Postgres implementation of PlanRepo.
type pgPlanRepo struct {
	db db
}

// NewPlanRepo constructs a PlanRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPlanRepo(db db) PlanRepo {
	return &pgPlanRepo{db: db}
}

func (r *pgPlanRepo) Create(ctx context.Context, plan domain.SavedPlan) (domain.SavedPlan, error) {
	const q = `
		INSERT INTO plans (name, notes, segments, settings, budget)
		VALUES (@name, @notes, @segments, @settings, @budget)
		RETURNING id, name, notes, segments, settings, budget, created_at, updated_at`

	args, err := planArgs(plan)
	if err != nil {
		return domain.SavedPlan{}, fmt.Errorf("repo.PlanRepo.Create: %w", err)
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanPlan(row)
	if err != nil {
		return domain.SavedPlan{}, fmt.Errorf("repo.PlanRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgPlanRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.SavedPlan, error) {
	const q = `
		SELECT id, name, notes, segments, settings, budget, created_at, updated_at
		FROM plans
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanPlan(row)
	if err != nil {
		return domain.SavedPlan{}, fmt.Errorf("repo.PlanRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns one page of plans, most recently touched first.
func (r *pgPlanRepo) List(ctx context.Context, p domain.PaginationParams) ([]domain.SavedPlan, int64, error) {
	const q = `
		SELECT id, name, notes, segments, settings, budget, created_at, updated_at,
		       count(*) OVER () AS total
		FROM plans
		ORDER BY updated_at DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.PlanRepo.List: %w", err)
	}
	defer rows.Close()

	plans := []domain.SavedPlan{}
	var total int64
	for rows.Next() {
		plan, n, err := scanPlanWithTotal(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.PlanRepo.List: scan: %w", err)
		}
		plans = append(plans, plan)
		total = n
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.PlanRepo.List: rows: %w", err)
	}
	return plans, total, nil
}

func (r *pgPlanRepo) Update(ctx context.Context, plan domain.SavedPlan) (domain.SavedPlan, error) {
	const q = `
		UPDATE plans
		SET name       = @name,
		    notes      = @notes,
		    segments   = @segments,
		    settings   = @settings,
		    budget     = @budget,
		    updated_at = now()
		WHERE id = @id
		RETURNING id, name, notes, segments, settings, budget, created_at, updated_at`

	args, err := planArgs(plan)
	if err != nil {
		return domain.SavedPlan{}, fmt.Errorf("repo.PlanRepo.Update: %w", err)
	}
	args["id"] = plan.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanPlan(row)
	if err != nil {
		return domain.SavedPlan{}, fmt.Errorf("repo.PlanRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgPlanRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM plans WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.PlanRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.PlanRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// planArgs marshals the jsonb columns and builds the named args shared by
// Create and Update.
func planArgs(plan domain.SavedPlan) (pgx.NamedArgs, error) {
	segments, err := json.Marshal(plan.Segments)
	if err != nil {
		return nil, fmt.Errorf("marshal segments: %w", err)
	}
	settings, err := json.Marshal(plan.Settings)
	if err != nil {
		return nil, fmt.Errorf("marshal settings: %w", err)
	}
	budget, err := json.Marshal(plan.Budget)
	if err != nil {
		return nil, fmt.Errorf("marshal budget: %w", err)
	}
	return pgx.NamedArgs{
		"name":     plan.Name,
		"notes":    plan.Notes,
		"segments": segments,
		"settings": settings,
		"budget":   budget,
	}, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanPlan maps a single database row into a domain.SavedPlan, decoding the
// three jsonb columns.
func scanPlan(s scanner) (domain.SavedPlan, error) {
	var (
		plan     domain.SavedPlan
		id       pgtype.UUID
		segments []byte
		settings []byte
		budget   []byte
	)

	err := s.Scan(&id, &plan.Name, &plan.Notes, &segments, &settings, &budget, &plan.CreatedAt, &plan.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.SavedPlan{}, domain.ErrNotFound
		}
		return domain.SavedPlan{}, err
	}

	plan.ID = uuid.UUID(id.Bytes)
	if err := unmarshalPlanColumns(&plan, segments, settings, budget); err != nil {
		return domain.SavedPlan{}, err
	}
	return plan, nil
}

func scanPlanWithTotal(s scanner) (domain.SavedPlan, int64, error) {
	var (
		plan     domain.SavedPlan
		id       pgtype.UUID
		segments []byte
		settings []byte
		budget   []byte
		total    int64
	)

	err := s.Scan(&id, &plan.Name, &plan.Notes, &segments, &settings, &budget, &plan.CreatedAt, &plan.UpdatedAt, &total)
	if err != nil {
		return domain.SavedPlan{}, 0, err
	}

	plan.ID = uuid.UUID(id.Bytes)
	if err := unmarshalPlanColumns(&plan, segments, settings, budget); err != nil {
		return domain.SavedPlan{}, 0, err
	}
	return plan, total, nil
}

func unmarshalPlanColumns(plan *domain.SavedPlan, segments, settings, budget []byte) error {
	if err := json.Unmarshal(segments, &plan.Segments); err != nil {
		return fmt.Errorf("unmarshal segments: %w", err)
	}
	if err := json.Unmarshal(settings, &plan.Settings); err != nil {
		return fmt.Errorf("unmarshal settings: %w", err)
	}
	if err := json.Unmarshal(budget, &plan.Budget); err != nil {
		return fmt.Errorf("unmarshal budget: %w", err)
	}
	return nil
}
