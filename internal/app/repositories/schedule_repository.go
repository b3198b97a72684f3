package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emirhan/coursedeck/internal/app/models"
	"github.com/emirhan/coursedeck/internal/pkg/apperrors"
	"github.com/emirhan/coursedeck/internal/pkg/dberrors"
)

// ScheduleRepository handles database operations for saved schedules
type ScheduleRepository struct {
	db *pgxpool.Pool
}

// NewScheduleRepository creates a new schedule repository
func NewScheduleRepository(db *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{
		db: db,
	}
}

// Create stores a schedule and its course snapshots in one transaction.
func (r *ScheduleRepository) Create(ctx context.Context, schedule *models.SavedSchedule) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error beginning schedule create: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	query := `
		INSERT INTO saved_schedules (owner, name, description, season_id, season_name, total_credits, total_ects, is_favorite, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
		RETURNING id, created_at, updated_at
	`
	err = tx.QueryRow(ctx, query,
		schedule.Owner,
		schedule.Name,
		schedule.Description,
		schedule.SeasonID,
		schedule.SeasonName,
		schedule.TotalCredits,
		schedule.TotalEcts,
		schedule.IsFavorite,
	).Scan(&schedule.ID, &schedule.CreatedAt, &schedule.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_saved_schedules_owner_name") {
			return apperrors.ErrScheduleAlreadyExists
		}
		return fmt.Errorf("error creating schedule: %w", err)
	}

	for _, course := range schedule.Courses {
		slots, err := json.Marshal(course.TimeSlots)
		if err != nil {
			return fmt.Errorf("error encoding time slots: %w", err)
		}

		err = tx.QueryRow(ctx, `
			INSERT INTO schedule_courses (schedule_id, course_code, course_name, section_number, credits, ects, instructor, department_id, department_name, time_slots)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id
		`,
			schedule.ID,
			course.CourseCode,
			course.CourseName,
			course.Section,
			course.Credits,
			course.Ects,
			course.Instructor,
			course.DepartmentID,
			course.DepartmentName,
			slots,
		).Scan(&course.ID)
		if err != nil {
			return fmt.Errorf("error creating schedule course: %w", err)
		}
		course.ScheduleID = schedule.ID
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing schedule create: %w", err)
	}

	return nil
}

// GetByID retrieves one schedule with its course snapshots. The owner must
// match; other owners see not-found.
func (r *ScheduleRepository) GetByID(ctx context.Context, id int64, owner string) (*models.SavedSchedule, error) {
	query := `
		SELECT id, owner, name, description, season_id, season_name, total_credits, total_ects, is_favorite, created_at, updated_at
		FROM saved_schedules
		WHERE id = $1 AND owner = $2
	`

	var schedule models.SavedSchedule
	err := r.db.QueryRow(ctx, query, id, owner).Scan(
		&schedule.ID,
		&schedule.Owner,
		&schedule.Name,
		&schedule.Description,
		&schedule.SeasonID,
		&schedule.SeasonName,
		&schedule.TotalCredits,
		&schedule.TotalEcts,
		&schedule.IsFavorite,
		&schedule.CreatedAt,
		&schedule.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrScheduleNotFound
		}
		return nil, fmt.Errorf("error retrieving schedule: %w", err)
	}

	if err := r.loadCourses(ctx, []*models.SavedSchedule{&schedule}); err != nil {
		return nil, err
	}

	return &schedule, nil
}

// ListByOwner retrieves every schedule of one owner, favorites first.
func (r *ScheduleRepository) ListByOwner(ctx context.Context, owner string) ([]*models.SavedSchedule, error) {
	query := `
		SELECT id, owner, name, description, season_id, season_name, total_credits, total_ects, is_favorite, created_at, updated_at
		FROM saved_schedules
		WHERE owner = $1
		ORDER BY is_favorite DESC, updated_at DESC
	`

	rows, err := r.db.Query(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("error listing schedules: %w", err)
	}
	defer rows.Close()

	var schedules []*models.SavedSchedule
	for rows.Next() {
		var schedule models.SavedSchedule
		if err := rows.Scan(
			&schedule.ID,
			&schedule.Owner,
			&schedule.Name,
			&schedule.Description,
			&schedule.SeasonID,
			&schedule.SeasonName,
			&schedule.TotalCredits,
			&schedule.TotalEcts,
			&schedule.IsFavorite,
			&schedule.CreatedAt,
			&schedule.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning schedule: %w", err)
		}
		schedules = append(schedules, &schedule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schedules: %w", err)
	}

	if err := r.loadCourses(ctx, schedules); err != nil {
		return nil, err
	}

	return schedules, nil
}

// SetFavorite flips the favorite flag of one schedule.
func (r *ScheduleRepository) SetFavorite(ctx context.Context, id int64, owner string, favorite bool) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE saved_schedules SET is_favorite = $3, updated_at = now() WHERE id = $1 AND owner = $2`,
		id, owner, favorite)
	if err != nil {
		return fmt.Errorf("error updating schedule favorite flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrScheduleNotFound
	}
	return nil
}

// DeleteByID removes one schedule and, through foreign keys, its snapshots.
func (r *ScheduleRepository) DeleteByID(ctx context.Context, id int64, owner string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM saved_schedules WHERE id = $1 AND owner = $2`, id, owner)
	if err != nil {
		return fmt.Errorf("error deleting schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrScheduleNotFound
	}
	return nil
}

// loadCourses attaches course snapshots to the given schedules in one query.
func (r *ScheduleRepository) loadCourses(ctx context.Context, schedules []*models.SavedSchedule) error {
	if len(schedules) == 0 {
		return nil
	}

	byID := make(map[int64]*models.SavedSchedule, len(schedules))
	ids := make([]int64, 0, len(schedules))
	for _, schedule := range schedules {
		byID[schedule.ID] = schedule
		ids = append(ids, schedule.ID)
	}

	query := `
		SELECT id, schedule_id, course_code, course_name, section_number, credits, ects, instructor, department_id, department_name, time_slots
		FROM schedule_courses
		WHERE schedule_id = ANY($1)
		ORDER BY schedule_id, course_code, section_number
	`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("error listing schedule courses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var course models.ScheduleCourse
		var slots []byte
		if err := rows.Scan(
			&course.ID,
			&course.ScheduleID,
			&course.CourseCode,
			&course.CourseName,
			&course.Section,
			&course.Credits,
			&course.Ects,
			&course.Instructor,
			&course.DepartmentID,
			&course.DepartmentName,
			&slots,
		); err != nil {
			return fmt.Errorf("error scanning schedule course: %w", err)
		}
		if len(slots) > 0 {
			if err := json.Unmarshal(slots, &course.TimeSlots); err != nil {
				return fmt.Errorf("error decoding time slots: %w", err)
			}
		}
		if schedule, ok := byID[course.ScheduleID]; ok {
			schedule.Courses = append(schedule.Courses, &course)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating schedule courses: %w", err)
	}

	return nil
}
