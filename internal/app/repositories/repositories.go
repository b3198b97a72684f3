package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	SeasonRepository     *SeasonRepository
	DepartmentRepository *DepartmentRepository
	CourseRepository     *CourseRepository
	SectionRepository    *SectionRepository
	ScheduleRepository   *ScheduleRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		SeasonRepository:     NewSeasonRepository(db),
		DepartmentRepository: NewDepartmentRepository(db),
		CourseRepository:     NewCourseRepository(db),
		SectionRepository:    NewSectionRepository(db),
		ScheduleRepository:   NewScheduleRepository(db),
	}
}
