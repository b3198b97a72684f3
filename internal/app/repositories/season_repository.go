package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emirhan/coursedeck/internal/app/models"
	"github.com/emirhan/coursedeck/internal/pkg/apperrors"
)

// SeasonRepository handles database operations for academic seasons
type SeasonRepository struct {
	db *pgxpool.Pool
}

// NewSeasonRepository creates a new season repository
func NewSeasonRepository(db *pgxpool.Pool) *SeasonRepository {
	return &SeasonRepository{
		db: db,
	}
}

// Upsert writes a season by its upstream id in a single atomic statement and
// reports whether a new row was created. The id and created_at of an
// existing row are preserved; last_synced_at is refreshed either way.
func (r *SeasonRepository) Upsert(ctx context.Context, season *models.Season) (bool, error) {
	query := `
		INSERT INTO academic_seasons (id, name, name_en, name_tr, active, start_date, end_date, last_synced_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now(), now())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			name_en = EXCLUDED.name_en,
			name_tr = EXCLUDED.name_tr,
			active = EXCLUDED.active,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			last_synced_at = now(),
			updated_at = now()
		RETURNING (xmax = 0), last_synced_at, created_at, updated_at
	`

	var created bool
	err := r.db.QueryRow(ctx, query,
		season.ID,
		season.Name,
		season.NameEn,
		season.NameTr,
		season.Active,
		season.StartDate,
		season.EndDate,
	).Scan(&created, &season.LastSyncedAt, &season.CreatedAt, &season.UpdatedAt)
	if err != nil {
		return false, fmt.Errorf("error upserting season %d: %w", season.ID, err)
	}

	return created, nil
}

// GetByID retrieves a season by its upstream id
func (r *SeasonRepository) GetByID(ctx context.Context, id int64) (*models.Season, error) {
	query := `
		SELECT id, name, name_en, name_tr, active, start_date, end_date, last_synced_at, created_at, updated_at
		FROM academic_seasons
		WHERE id = $1
	`

	var season models.Season
	err := r.db.QueryRow(ctx, query, id).Scan(
		&season.ID,
		&season.Name,
		&season.NameEn,
		&season.NameTr,
		&season.Active,
		&season.StartDate,
		&season.EndDate,
		&season.LastSyncedAt,
		&season.CreatedAt,
		&season.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSeasonNotFound
		}
		return nil, fmt.Errorf("error retrieving season: %w", err)
	}

	return &season, nil
}

// GetAll retrieves all seasons, newest first
func (r *SeasonRepository) GetAll(ctx context.Context) ([]*models.Season, error) {
	query := `
		SELECT id, name, name_en, name_tr, active, start_date, end_date, last_synced_at, created_at, updated_at
		FROM academic_seasons
		ORDER BY id DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing seasons: %w", err)
	}
	defer rows.Close()

	var seasons []*models.Season
	for rows.Next() {
		var season models.Season
		if err := rows.Scan(
			&season.ID,
			&season.Name,
			&season.NameEn,
			&season.NameTr,
			&season.Active,
			&season.StartDate,
			&season.EndDate,
			&season.LastSyncedAt,
			&season.CreatedAt,
			&season.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning season: %w", err)
		}
		seasons = append(seasons, &season)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating seasons: %w", err)
	}

	return seasons, nil
}

// Count returns the number of stored seasons
func (r *SeasonRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM academic_seasons`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting seasons: %w", err)
	}
	return count, nil
}

// LatestSyncTime returns the most recent last_synced_at across all seasons,
// or nil when no seasons are stored.
func (r *SeasonRepository) LatestSyncTime(ctx context.Context) (*time.Time, error) {
	var latest *time.Time
	err := r.db.QueryRow(ctx, `SELECT MAX(last_synced_at) FROM academic_seasons`).Scan(&latest)
	if err != nil {
		return nil, fmt.Errorf("error reading latest sync time: %w", err)
	}
	return latest, nil
}

// DeleteByID removes a season and, through foreign keys, every course and
// meeting block that belongs to it.
func (r *SeasonRepository) DeleteByID(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM academic_seasons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting season: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSeasonNotFound
	}
	return nil
}
