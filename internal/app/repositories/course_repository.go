package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emirhan/coursedeck/internal/app/models"
)

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
	}
}

const courseColumns = `id, season_id, department_id, code, section_number, name, name_en, name_tr,
		credit, ects, full_quota, quota, info, instructor, department_name,
		last_synced_at, created_at, updated_at`

// Upsert writes a course by its natural key (season_id, code, section_number)
// in a single atomic statement, reports whether a new row was created and
// fills in the surrogate id. Surrogate id and created_at of an existing row
// are preserved.
func (r *CourseRepository) Upsert(ctx context.Context, course *models.Course) (bool, error) {
	query := `
		INSERT INTO courses (season_id, department_id, code, section_number, name, name_en, name_tr,
			credit, ects, full_quota, quota, info, instructor, department_name,
			last_synced_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, now(), now(), now())
		ON CONFLICT (season_id, code, section_number) DO UPDATE SET
			department_id = EXCLUDED.department_id,
			name = EXCLUDED.name,
			name_en = EXCLUDED.name_en,
			name_tr = EXCLUDED.name_tr,
			credit = EXCLUDED.credit,
			ects = EXCLUDED.ects,
			full_quota = EXCLUDED.full_quota,
			quota = EXCLUDED.quota,
			info = EXCLUDED.info,
			instructor = EXCLUDED.instructor,
			department_name = EXCLUDED.department_name,
			last_synced_at = now(),
			updated_at = now()
		RETURNING id, (xmax = 0), last_synced_at, created_at, updated_at
	`

	var created bool
	err := r.db.QueryRow(ctx, query,
		course.SeasonID,
		course.DepartmentID,
		course.Code,
		course.Section,
		course.Name,
		course.NameEn,
		course.NameTr,
		course.Credit,
		course.Ects,
		course.FullQuota,
		course.Quota,
		course.Info,
		course.Instructor,
		course.DepartmentName,
	).Scan(&course.ID, &created, &course.LastSyncedAt, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		return false, fmt.Errorf("error upserting course %s/%d in season %d: %w",
			course.Code, course.Section, course.SeasonID, err)
	}

	return created, nil
}

// ListBySeason retrieves every course of a season with its meeting blocks.
func (r *CourseRepository) ListBySeason(ctx context.Context, seasonID int64) ([]*models.Course, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM courses
		WHERE season_id = $1
		ORDER BY code, section_number
	`, courseColumns)

	return r.listWithSections(ctx, query, seasonID)
}

// ListBySeasonAndDepartment retrieves the courses one department offers in
// one season, with their meeting blocks.
func (r *CourseRepository) ListBySeasonAndDepartment(ctx context.Context, seasonID, departmentID int64) ([]*models.Course, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM courses
		WHERE season_id = $1 AND department_id = $2
		ORDER BY code, section_number
	`, courseColumns)

	return r.listWithSections(ctx, query, seasonID, departmentID)
}

// CountBySeason returns the number of courses stored for a season.
func (r *CourseRepository) CountBySeason(ctx context.Context, seasonID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM courses WHERE season_id = $1`, seasonID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting courses: %w", err)
	}
	return count, nil
}

// listWithSections runs a course query and loads the meeting blocks of the
// returned courses in one follow-up query instead of one per course.
func (r *CourseRepository) listWithSections(ctx context.Context, query string, args ...interface{}) ([]*models.Course, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	byID := make(map[int64]*models.Course)
	var ids []int64

	for rows.Next() {
		var course models.Course
		if err := rows.Scan(
			&course.ID,
			&course.SeasonID,
			&course.DepartmentID,
			&course.Code,
			&course.Section,
			&course.Name,
			&course.NameEn,
			&course.NameTr,
			&course.Credit,
			&course.Ects,
			&course.FullQuota,
			&course.Quota,
			&course.Info,
			&course.Instructor,
			&course.DepartmentName,
			&course.LastSyncedAt,
			&course.CreatedAt,
			&course.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning course: %w", err)
		}
		courses = append(courses, &course)
		byID[course.ID] = &course
		ids = append(ids, course.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating courses: %w", err)
	}

	if len(ids) == 0 {
		return courses, nil
	}

	sectionQuery := `
		SELECT id, course_id, day, start_time, end_time, building, room, meeting_type, created_at
		FROM course_sections
		WHERE course_id = ANY($1)
		ORDER BY course_id, id
	`
	sectionRows, err := r.db.Query(ctx, sectionQuery, ids)
	if err != nil {
		return nil, fmt.Errorf("error listing course sections: %w", err)
	}
	defer sectionRows.Close()

	for sectionRows.Next() {
		var section models.CourseSection
		if err := sectionRows.Scan(
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
			return nil, fmt.Errorf("error scanning course section: %w", err)
		}
		if course, ok := byID[section.CourseID]; ok {
			course.Sections = append(course.Sections, &section)
		}
	}
	if err := sectionRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course sections: %w", err)
	}

	return courses, nil
}
