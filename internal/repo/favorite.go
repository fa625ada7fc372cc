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

// FavoriteRepo defines the persistence operations for starred places.
// Identity is the provider's place_id, so the same place starred twice
// resolves to a single row.
type FavoriteRepo interface {
	// Upsert inserts a favorite by place_id, or returns the existing row if
	// the place is already starred. The first star's fields are preserved
	// on conflict.
	Upsert(ctx context.Context, fav domain.FavoritePOI) (domain.FavoritePOI, error)

	// List returns all favorites whose category matches (or all of them
	// when category is empty), ordered by name.
	List(ctx context.Context, category string) ([]domain.FavoritePOI, error)

	// ListPaged returns one page of favorites matching the category filter
	// and the total count. An empty category matches everything.
	ListPaged(ctx context.Context, category string, p domain.PaginationParams) ([]domain.FavoritePOI, int64, error)

	// Delete removes a favorite by its place_id.
	// Returns domain.ErrNotFound if the place was never starred.
	Delete(ctx context.Context, placeID string) error
}

// pgFavoriteRepo is the Postgres implementation of FavoriteRepo.
type pgFavoriteRepo struct {
	db db
}

// NewFavoriteRepo constructs a FavoriteRepo backed by the provided db connection.
func NewFavoriteRepo(db db) FavoriteRepo {
	return &pgFavoriteRepo{db: db}
}

// Upsert inserts a favorite or returns the existing row on place_id conflict.
// The DO UPDATE SET trick forces the RETURNING clause to fire even when the
// conflict handler skips the insert — without it, RETURNING returns nothing
// on DO NOTHING conflicts.
func (r *pgFavoriteRepo) Upsert(ctx context.Context, fav domain.FavoritePOI) (domain.FavoritePOI, error) {
	const q = `
		INSERT INTO favorite_pois (place_id, name, lat, lng, category, tags, notes)
		VALUES (@place_id, @name, @lat, @lng, @category, @tags, @notes)
		ON CONFLICT (place_id) DO UPDATE SET place_id = EXCLUDED.place_id
		RETURNING id, place_id, name, lat, lng, category, tags, notes, created_at`

	// a nil slice maps to NULL, not '{}', and tags is NOT NULL
	tags := fav.Tags
	if tags == nil {
		tags = []string{}
	}

	args := pgx.NamedArgs{
		"place_id": fav.PlaceID,
		"name":     fav.Name,
		"lat":      fav.Lat,
		"lng":      fav.Lng,
		"category": fav.Category,
		"tags":     tags,
		"notes":    fav.Notes,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanFavorite(row)
	if err != nil {
		return domain.FavoritePOI{}, fmt.Errorf("repo.FavoriteRepo.Upsert: %w", err)
	}
	return result, nil
}

func (r *pgFavoriteRepo) List(ctx context.Context, category string) ([]domain.FavoritePOI, error) {
	const q = `
		SELECT id, place_id, name, lat, lng, category, tags, notes, created_at
		FROM favorite_pois
		WHERE @category = '' OR category = @category
		ORDER BY name`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"category": category})
	if err != nil {
		return nil, fmt.Errorf("repo.FavoriteRepo.List: %w", err)
	}
	defer rows.Close()

	favorites := []domain.FavoritePOI{}
	for rows.Next() {
		fav, err := scanFavorite(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.FavoriteRepo.List: scan: %w", err)
		}
		favorites = append(favorites, fav)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.FavoriteRepo.List: rows: %w", err)
	}
	return favorites, nil
}

func (r *pgFavoriteRepo) ListPaged(ctx context.Context, category string, p domain.PaginationParams) ([]domain.FavoritePOI, int64, error) {
	const q = `
		SELECT id, place_id, name, lat, lng, category, tags, notes, created_at,
		       count(*) OVER () AS total
		FROM favorite_pois
		WHERE @category = '' OR category = @category
		ORDER BY name
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"category": category,
		"limit":    p.Limit,
		"offset":   p.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.FavoriteRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	favorites := []domain.FavoritePOI{}
	var total int64
	for rows.Next() {
		var (
			fav domain.FavoritePOI
			id  pgtype.UUID
		)
		err := rows.Scan(&id, &fav.PlaceID, &fav.Name, &fav.Lat, &fav.Lng, &fav.Category, &fav.Tags, &fav.Notes, &fav.CreatedAt, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.FavoriteRepo.ListPaged: scan: %w", err)
		}
		fav.ID = uuid.UUID(id.Bytes)
		favorites = append(favorites, fav)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.FavoriteRepo.ListPaged: rows: %w", err)
	}
	return favorites, total, nil
}

func (r *pgFavoriteRepo) Delete(ctx context.Context, placeID string) error {
	const q = `DELETE FROM favorite_pois WHERE place_id = @place_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"place_id": placeID})
	if err != nil {
		return fmt.Errorf("repo.FavoriteRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.FavoriteRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanFavorite maps a single database row into a domain.FavoritePOI.
func scanFavorite(s scanner) (domain.FavoritePOI, error) {
	var (
		fav domain.FavoritePOI
		id  pgtype.UUID
	)
	err := s.Scan(&id, &fav.PlaceID, &fav.Name, &fav.Lat, &fav.Lng, &fav.Category, &fav.Tags, &fav.Notes, &fav.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.FavoritePOI{}, domain.ErrNotFound
		}
		return domain.FavoritePOI{}, err
	}
	fav.ID = uuid.UUID(id.Bytes)
	return fav, nil
}
