package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emirhan/coursedeck/internal/app/models"
	"github.com/emirhan/coursedeck/internal/pkg/apperrors"
)

// DepartmentRepository handles database operations for departments
type DepartmentRepository struct {
	db *pgxpool.Pool
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *pgxpool.Pool) *DepartmentRepository {
	return &DepartmentRepository{
		db: db,
	}
}

// Upsert writes a department by its upstream id in a single atomic statement
// and reports whether a new row was created.
func (r *DepartmentRepository) Upsert(ctx context.Context, department *models.Department) (bool, error) {
	query := `
		INSERT INTO departments (id, name, name_en, name_tr, code, faculty_id, faculty_name, last_synced_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now(), now())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			name_en = EXCLUDED.name_en,
			name_tr = EXCLUDED.name_tr,
			code = EXCLUDED.code,
			faculty_id = EXCLUDED.faculty_id,
			faculty_name = EXCLUDED.faculty_name,
			last_synced_at = now(),
			updated_at = now()
		RETURNING (xmax = 0), last_synced_at, created_at, updated_at
	`

	var created bool
	err := r.db.QueryRow(ctx, query,
		department.ID,
		department.Name,
		department.NameEn,
		department.NameTr,
		department.Code,
		department.FacultyID,
		department.FacultyName,
	).Scan(&created, &department.LastSyncedAt, &department.CreatedAt, &department.UpdatedAt)
	if err != nil {
		return false, fmt.Errorf("error upserting department %d: %w", department.ID, err)
	}

	return created, nil
}

// GetAll retrieves all departments ordered by name
func (r *DepartmentRepository) GetAll(ctx context.Context) ([]*models.Department, error) {
	query := `
		SELECT id, name, name_en, name_tr, code, faculty_id, faculty_name, last_synced_at, created_at, updated_at
		FROM departments
		ORDER BY name ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing departments: %w", err)
	}
	defer rows.Close()

	var departments []*models.Department
	for rows.Next() {
		var department models.Department
		if err := rows.Scan(
			&department.ID,
			&department.Name,
			&department.NameEn,
			&department.NameTr,
			&department.Code,
			&department.FacultyID,
			&department.FacultyName,
			&department.LastSyncedAt,
			&department.CreatedAt,
			&department.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning department: %w", err)
		}
		departments = append(departments, &department)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating departments: %w", err)
	}

	return departments, nil
}

// Count returns the number of stored departments
func (r *DepartmentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM departments`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting departments: %w", err)
	}
	return count, nil
}

// DeleteByID removes a department and, through foreign keys, its courses.
func (r *DepartmentRepository) DeleteByID(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting department: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrDepartmentNotFound
	}
	return nil
}
