package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emirhan/coursedeck/internal/app/models"
)

// SectionRepository handles database operations for course meeting blocks
type SectionRepository struct {
	db *pgxpool.Pool
}

// NewSectionRepository creates a new section repository
func NewSectionRepository(db *pgxpool.Pool) *SectionRepository {
	return &SectionRepository{
		db: db,
	}
}

// ReplaceForCourse deletes every meeting block of a course and inserts the
// given ones inside a single transaction, so readers never observe a partial
// rebuild committed.
func (r *SectionRepository) ReplaceForCourse(ctx context.Context, courseID int64, sections []*models.CourseSection) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error beginning section replace: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM course_sections WHERE course_id = $1`, courseID); err != nil {
		return fmt.Errorf("error deleting sections for course %d: %w", courseID, err)
	}

	batch := &pgx.Batch{}
	for _, section := range sections {
		batch.Queue(`
			INSERT INTO course_sections (course_id, day, start_time, end_time, building, room, meeting_type, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		`, courseID, section.Day, section.StartTime, section.EndTime, section.Building, section.Room, section.Type)
	}

	if batch.Len() > 0 {
		results := tx.SendBatch(ctx, batch)
		for i := 0; i < batch.Len(); i++ {
			if _, err := results.Exec(); err != nil {
				_ = results.Close()
				return fmt.Errorf("error inserting section for course %d: %w", courseID, err)
			}
		}
		if err := results.Close(); err != nil {
			return fmt.Errorf("error closing section batch: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing section replace: %w", err)
	}

	return nil
}

// ListByCourse retrieves the meeting blocks of one course.
func (r *SectionRepository) ListByCourse(ctx context.Context, courseID int64) ([]*models.CourseSection, error) {
	query := `
		SELECT id, course_id, day, start_time, end_time, building, room, meeting_type, created_at
		FROM course_sections
		WHERE course_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing sections: %w", err)
	}
	defer rows.Close()

	var sections []*models.CourseSection
	for rows.Next() {
		var section models.CourseSection
		if err := rows.Scan(
			&section.ID,
			&section.CourseID,
			&section.Day,
			&section.StartTime,
			&section.EndTime,
			&section.Building,
			&section.Room,
			&section.Type,
			&section.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning section: %w", err)
		}
		sections = append(sections, &section)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sections: %w", err)
	}

	return sections, nil
}
