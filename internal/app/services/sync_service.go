package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/emirhan/coursedeck/internal/app/models"
	"github.com/emirhan/coursedeck/internal/app/models/dto"
	"github.com/emirhan/coursedeck/internal/pkg/apperrors"
	"github.com/emirhan/coursedeck/internal/pkg/upstream"
)

// SyncCounts reports how many rows a sync operation created and updated.
type SyncCounts struct {
	Created int
	Updated int
}

func (c *SyncCounts) record(created bool) {
	if created {
		c.Created++
	} else {
		c.Updated++
	}
}

func (c *SyncCounts) add(other SyncCounts) {
	c.Created += other.Created
	c.Updated += other.Updated
}

// SeasonPickPolicy selects which season course sync targets. It receives the
// stored seasons in listing order and returns nil when there is nothing to
// pick.
type SeasonPickPolicy func(seasons []*models.Season) *models.Season

// PickActiveOrFirst is the default policy: the season flagged active
// upstream, or the first listed one when no season carries the flag.
func PickActiveOrFirst(seasons []*models.Season) *models.Season {
	if len(seasons) == 0 {
		return nil
	}
	for _, season := range seasons {
		if season.IsActive() {
			return season
		}
	}
	return seasons[0]
}

// SyncService reconciles the upstream university API into durable storage.
// At most one sync runs at a time: a trigger that arrives while another run
// holds the slot fails fast with ErrSyncInProgress.
type SyncService interface {
	SyncAll(ctx context.Context) error
	SyncSeasons(ctx context.Context) (SyncCounts, error)
	SyncDepartments(ctx context.Context) (SyncCounts, error)
	SyncCourses(ctx context.Context) (SyncCounts, error)
	SyncCoursesForSeasonAndDepartment(ctx context.Context, seasonID, departmentID int64) (SyncCounts, error)
	Status(ctx context.Context) (*dto.SyncStatusResponse, error)
	DeleteSeason(ctx context.Context, id int64) error
	DeleteDepartment(ctx context.Context, id int64) error
}

// syncServiceImpl implements the SyncService interface
type syncServiceImpl struct {
	upstream        upstream.Client
	seasonStore     SeasonStore
	departmentStore DepartmentStore
	courseStore     CourseStore
	sectionStore    SectionStore
	courseCache     CourseCacheInvalidator
	pickSeason      SeasonPickPolicy
	logger          zerolog.Logger

	// inFlight serializes whole sync runs; it is never held across anything
	// but the run itself.
	inFlight sync.Mutex
}

// NewSyncService creates a new sync service instance. A nil pickSeason falls
// back to PickActiveOrFirst.
func NewSyncService(
	client upstream.Client,
	seasonStore SeasonStore,
	departmentStore DepartmentStore,
	courseStore CourseStore,
	sectionStore SectionStore,
	courseCache CourseCacheInvalidator,
	pickSeason SeasonPickPolicy,
	logger zerolog.Logger,
) SyncService {
	if pickSeason == nil {
		pickSeason = PickActiveOrFirst
	}
	return &syncServiceImpl{
		upstream:        client,
		seasonStore:     seasonStore,
		departmentStore: departmentStore,
		courseStore:     courseStore,
		sectionStore:    sectionStore,
		courseCache:     courseCache,
		pickSeason:      pickSeason,
		logger:          logger.With().Str("component", "sync").Logger(),
	}
}

// SyncAll runs seasons, departments and courses in that strict order; course
// reconciliation needs season and department rows to exist already. Phases
// that committed before a later phase fails stay committed.
func (s *syncServiceImpl) SyncAll(ctx context.Context) error {
	if !s.inFlight.TryLock() {
		return apperrors.ErrSyncInProgress
	}
	defer s.inFlight.Unlock()

	start := time.Now()
	s.logger.Info().Msg("Starting full data synchronization")

	if _, err := s.syncSeasons(ctx); err != nil {
		return fmt.Errorf("data sync failed: %w", err)
	}
	if _, err := s.syncDepartments(ctx); err != nil {
		return fmt.Errorf("data sync failed: %w", err)
	}
	if _, err := s.syncCourses(ctx); err != nil {
		return fmt.Errorf("data sync failed: %w", err)
	}

	s.invalidateCourseCache()
	s.logger.Info().Dur("elapsed", time.Since(start)).Msg("Full synchronization completed")
	return nil
}

// SyncSeasons reconciles all upstream seasons into storage.
func (s *syncServiceImpl) SyncSeasons(ctx context.Context) (SyncCounts, error) {
	if !s.inFlight.TryLock() {
		return SyncCounts{}, apperrors.ErrSyncInProgress
	}
	defer s.inFlight.Unlock()

	return s.syncSeasons(ctx)
}

// SyncDepartments reconciles all upstream departments into storage.
func (s *syncServiceImpl) SyncDepartments(ctx context.Context) (SyncCounts, error) {
	if !s.inFlight.TryLock() {
		return SyncCounts{}, apperrors.ErrSyncInProgress
	}
	defer s.inFlight.Unlock()

	return s.syncDepartments(ctx)
}

// SyncCourses reconciles the courses of the target season across every
// stored department.
func (s *syncServiceImpl) SyncCourses(ctx context.Context) (SyncCounts, error) {
	if !s.inFlight.TryLock() {
		return SyncCounts{}, apperrors.ErrSyncInProgress
	}
	defer s.inFlight.Unlock()

	counts, err := s.syncCourses(ctx)
	if err != nil {
		return counts, err
	}
	s.invalidateCourseCache()
	return counts, nil
}

// SyncCoursesForSeasonAndDepartment reconciles the courses of one
// season/department pair.
func (s *syncServiceImpl) SyncCoursesForSeasonAndDepartment(ctx context.Context, seasonID, departmentID int64) (SyncCounts, error) {
	if !s.inFlight.TryLock() {
		return SyncCounts{}, apperrors.ErrSyncInProgress
	}
	defer s.inFlight.Unlock()

	counts, err := s.syncCoursesForSeasonAndDepartment(ctx, seasonID, departmentID)
	if err != nil {
		return counts, err
	}
	s.invalidateCourseCache()
	return counts, nil
}

// syncSeasons fetches all seasons and upserts them one by one. A fetch
// failure aborts before any row is touched.
func (s *syncServiceImpl) syncSeasons(ctx context.Context) (SyncCounts, error) {
	apiSeasons, err := s.upstream.FetchSeasons(ctx)
	if err != nil {
		return SyncCounts{}, fmt.Errorf("%w: %v", apperrors.ErrUpstreamUnavailable, err)
	}

	s.logger.Info().Int("count", len(apiSeasons)).Msg("Fetched seasons from upstream")

	var counts SyncCounts
	for _, apiSeason := range apiSeasons {
		season := &models.Season{
			ID:        apiSeason.ID,
			Name:      apiSeason.Name,
			NameEn:    apiSeason.NameEn,
			NameTr:    apiSeason.NameTr,
			Active:    apiSeason.Active,
			StartDate: apiSeason.StartDate,
			EndDate:   apiSeason.EndDate,
		}

		created, err := s.seasonStore.Upsert(ctx, season)
		if err != nil {
			return counts, fmt.Errorf("storing season %d: %w", season.ID, err)
		}
		counts.record(created)
	}

	s.logger.Info().
		Int("created", counts.Created).
		Int("updated", counts.Updated).
		Msg("Seasons synced")
	return counts, nil
}

// syncDepartments fetches all departments and upserts them one by one.
func (s *syncServiceImpl) syncDepartments(ctx context.Context) (SyncCounts, error) {
	apiDepartments, err := s.upstream.FetchDepartments(ctx)
	if err != nil {
		return SyncCounts{}, fmt.Errorf("%w: %v", apperrors.ErrUpstreamUnavailable, err)
	}

	s.logger.Info().Int("count", len(apiDepartments)).Msg("Fetched departments from upstream")

	var counts SyncCounts
	for _, apiDepartment := range apiDepartments {
		department := &models.Department{
			ID:          apiDepartment.ID,
			Name:        apiDepartment.Name,
			NameEn:      apiDepartment.NameEn,
			NameTr:      apiDepartment.NameTr,
			Code:        apiDepartment.Code,
			FacultyID:   apiDepartment.FacultyID,
			FacultyName: apiDepartment.FacultyName,
		}

		created, err := s.departmentStore.Upsert(ctx, department)
		if err != nil {
			return counts, fmt.Errorf("storing department %d: %w", department.ID, err)
		}
		counts.record(created)
	}

	s.logger.Info().
		Int("created", counts.Created).
		Int("updated", counts.Updated).
		Msg("Departments synced")
	return counts, nil
}

// syncCourses picks the target season, then walks every stored department.
// One department failing is logged and skipped; the loop always finishes.
// The aggregate counts simply omit failed departments.
func (s *syncServiceImpl) syncCourses(ctx context.Context) (SyncCounts, error) {
	seasons, err := s.seasonStore.GetAll(ctx)
	if err != nil {
		return SyncCounts{}, fmt.Errorf("listing seasons: %w", err)
	}
	departments, err := s.departmentStore.GetAll(ctx)
	if err != nil {
		return SyncCounts{}, fmt.Errorf("listing departments: %w", err)
	}

	season := s.pickSeason(seasons)
	if season == nil {
		s.logger.Warn().Msg("No seasons found, skipping course sync")
		return SyncCounts{}, nil
	}
	if len(departments) == 0 {
		s.logger.Warn().Msg("No departments found, skipping course sync")
		return SyncCounts{}, nil
	}

	s.logger.Info().
		Int64("seasonId", season.ID).
		Str("season", season.Name).
		Int("departments", len(departments)).
		Msg("Syncing courses")

	var totals SyncCounts
	for _, department := range departments {
		counts, err := s.syncCoursesForSeasonAndDepartment(ctx, season.ID, department.ID)
		if err != nil {
			s.logger.Error().
				Err(err).
				Int64("departmentId", department.ID).
				Str("department", department.Name).
				Msg("Failed to sync courses for department")
			continue
		}
		totals.add(counts)
	}

	s.logger.Info().
		Int64("seasonId", season.ID).
		Int("created", totals.Created).
		Int("updated", totals.Updated).
		Msg("Courses synced")
	return totals, nil
}

// syncCoursesForSeasonAndDepartment fetches the courses of one pair and
// upserts each by natural key. Meeting blocks are rebuilt wholesale when the
// payload carries any; an empty detail list leaves stored blocks untouched
// rather than destroying data on a partial payload.
func (s *syncServiceImpl) syncCoursesForSeasonAndDepartment(ctx context.Context, seasonID, departmentID int64) (SyncCounts, error) {
	apiCourses, err := s.upstream.FetchCourses(ctx, seasonID, departmentID)
	if err != nil {
		return SyncCounts{}, fmt.Errorf("%w: %v", apperrors.ErrUpstreamUnavailable, err)
	}

	var counts SyncCounts
	for _, apiCourse := range apiCourses {
		course := &models.Course{
			SeasonID:       seasonID,
			DepartmentID:   departmentID,
			Code:           apiCourse.Code,
			Section:        apiCourse.Section,
			Name:           apiCourse.Name,
			NameEn:         apiCourse.NameEn,
			NameTr:         apiCourse.NameTr,
			Credit:         apiCourse.Credit,
			Ects:           apiCourse.Ects,
			FullQuota:      apiCourse.FullQuota,
			Quota:          apiCourse.Quota,
			Info:           apiCourse.Info,
			Instructor:     apiCourse.Instructor,
			DepartmentName: apiCourse.DepartmentName,
		}

		created, err := s.courseStore.Upsert(ctx, course)
		if err != nil {
			return counts, fmt.Errorf("storing course %s/%d: %w", course.Code, course.Section, err)
		}
		counts.record(created)

		if len(apiCourse.Details) == 0 {
			continue
		}

		sections := make([]*models.CourseSection, 0, len(apiCourse.Details))
		for _, detail := range apiCourse.Details {
			sections = append(sections, &models.CourseSection{
				CourseID:  course.ID,
				Day:       detail.Day,
				StartTime: detail.StartHour,
				EndTime:   detail.EndHour,
				Building:  detail.RoomFloor,
				Room:      detail.RoomName,
				Type:      detail.Type,
			})
		}
		if err := s.sectionStore.ReplaceForCourse(ctx, course.ID, sections); err != nil {
			return counts, fmt.Errorf("replacing sections for course %s/%d: %w", course.Code, course.Section, err)
		}
	}

	return counts, nil
}

// Status summarizes the state of the durable mirror.
func (s *syncServiceImpl) Status(ctx context.Context) (*dto.SyncStatusResponse, error) {
	seasonCount, err := s.seasonStore.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting seasons: %w", err)
	}
	departmentCount, err := s.departmentStore.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting departments: %w", err)
	}
	lastSync, err := s.seasonStore.LatestSyncTime(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading last sync time: %w", err)
	}

	return &dto.SyncStatusResponse{
		SeasonCount:     seasonCount,
		DepartmentCount: departmentCount,
		LastSyncTime:    lastSync,
	}, nil
}

// DeleteSeason removes a season and everything hanging off it. Normal sync
// never deletes rows; this is the explicit administrative removal path.
func (s *syncServiceImpl) DeleteSeason(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid season ID", apperrors.ErrValidationFailed)
	}
	if err := s.seasonStore.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.invalidateCourseCache()
	s.logger.Info().Int64("seasonId", id).Msg("Season deleted")
	return nil
}

// DeleteDepartment removes a department and its courses.
func (s *syncServiceImpl) DeleteDepartment(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid department ID", apperrors.ErrValidationFailed)
	}
	if err := s.departmentStore.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.invalidateCourseCache()
	s.logger.Info().Int64("departmentId", id).Msg("Department deleted")
	return nil
}

func (s *syncServiceImpl) invalidateCourseCache() {
	if s.courseCache != nil {
		s.courseCache.Clear()
	}
}
