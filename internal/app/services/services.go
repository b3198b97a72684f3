// Package services carries the business logic: the sync engine that
// reconciles the upstream university API into Postgres, the catalog service
// that answers read queries through a memory-tier/store/live-API fallback
// chain, and saved-schedule handling.
//
// Services accept the narrow store interfaces below instead of concrete
// repositories so the reconciliation and fallback logic is testable against
// in-memory fakes. The pgx repositories in internal/app/repositories satisfy
// them.
package services

import (
	"context"
	"time"

	"github.com/emirhan/coursedeck/internal/app/models"
)

// SeasonStore is the durable storage surface for academic seasons.
type SeasonStore interface {
	Upsert(ctx context.Context, season *models.Season) (created bool, err error)
	GetByID(ctx context.Context, id int64) (*models.Season, error)
	GetAll(ctx context.Context) ([]*models.Season, error)
	Count(ctx context.Context) (int64, error)
	LatestSyncTime(ctx context.Context) (*time.Time, error)
	DeleteByID(ctx context.Context, id int64) error
}

// DepartmentStore is the durable storage surface for departments.
type DepartmentStore interface {
	Upsert(ctx context.Context, department *models.Department) (created bool, err error)
	GetAll(ctx context.Context) ([]*models.Department, error)
	Count(ctx context.Context) (int64, error)
	DeleteByID(ctx context.Context, id int64) error
}

// CourseStore is the durable storage surface for courses. Upsert is keyed by
// the natural key (season, code, section number), not the surrogate id.
type CourseStore interface {
	Upsert(ctx context.Context, course *models.Course) (created bool, err error)
	ListBySeason(ctx context.Context, seasonID int64) ([]*models.Course, error)
	ListBySeasonAndDepartment(ctx context.Context, seasonID, departmentID int64) ([]*models.Course, error)
}

// SectionStore replaces the meeting blocks of a course as one unit.
type SectionStore interface {
	ReplaceForCourse(ctx context.Context, courseID int64, sections []*models.CourseSection) error
}

// ScheduleStore is the durable storage surface for saved schedules.
type ScheduleStore interface {
	Create(ctx context.Context, schedule *models.SavedSchedule) error
	GetByID(ctx context.Context, id int64, owner string) (*models.SavedSchedule, error)
	ListByOwner(ctx context.Context, owner string) ([]*models.SavedSchedule, error)
	SetFavorite(ctx context.Context, id int64, owner string, favorite bool) error
	DeleteByID(ctx context.Context, id int64, owner string) error
}

// CourseCacheInvalidator is the slice of the catalog memory tier the sync
// engine needs: dropping cached course listings after it has written fresh
// data, instead of waiting out the TTL.
type CourseCacheInvalidator interface {
	Clear()
}
