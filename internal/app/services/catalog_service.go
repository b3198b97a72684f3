package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/emirhan/coursedeck/internal/app/models"
	"github.com/emirhan/coursedeck/internal/app/models/dto"
	"github.com/emirhan/coursedeck/internal/pkg/cache"
	"github.com/emirhan/coursedeck/internal/pkg/upstream"
)

// CatalogService answers read queries for seasons, departments and courses.
// Every operation is total: internal failures degrade to a fallback tier or
// an empty result, they never reach the caller as errors.
//
// Resolution order is memory tier, then durable storage, then (for all but
// the bulk season listing) the live upstream API. Live fallback results are
// returned as-is and never written back to storage, so a cold store stays
// cold until the next sync.
type CatalogService interface {
	GetSeasons(ctx context.Context) []dto.SeasonResponse
	GetDepartments(ctx context.Context) []dto.DepartmentResponse
	GetCourses(ctx context.Context, seasonID, departmentID int64) []dto.CourseResponse
	GetAllCoursesForSeason(ctx context.Context, seasonID int64) []dto.CourseResponse
	IsReady(ctx context.Context) bool
	Stats(ctx context.Context) dto.CacheStatsResponse
}

// catalogServiceImpl implements the CatalogService interface
type catalogServiceImpl struct {
	upstream        upstream.Client
	seasonStore     SeasonStore
	departmentStore DepartmentStore
	courseStore     CourseStore
	courses         *cache.TTLCache[[]dto.CourseResponse]
	logger          zerolog.Logger
}

// NewCatalogService creates a new catalog service instance. The course cache
// may be shared with the sync engine, which clears it after writing.
func NewCatalogService(
	client upstream.Client,
	seasonStore SeasonStore,
	departmentStore DepartmentStore,
	courseStore CourseStore,
	courses *cache.TTLCache[[]dto.CourseResponse],
	logger zerolog.Logger,
) CatalogService {
	return &catalogServiceImpl{
		upstream:        client,
		seasonStore:     seasonStore,
		departmentStore: departmentStore,
		courseStore:     courseStore,
		courses:         courses,
		logger:          logger.With().Str("component", "catalog").Logger(),
	}
}

// GetSeasons lists all seasons from storage, falling back to the live
// upstream API when storage is empty or failing.
func (s *catalogServiceImpl) GetSeasons(ctx context.Context) []dto.SeasonResponse {
	seasons, err := s.seasonStore.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to read seasons from storage, falling back to upstream")
		return s.liveSeasons(ctx)
	}
	if len(seasons) == 0 {
		s.logger.Warn().Msg("No seasons in storage, falling back to upstream")
		return s.liveSeasons(ctx)
	}

	result := make([]dto.SeasonResponse, 0, len(seasons))
	for _, season := range seasons {
		result = append(result, seasonToDTO(season))
	}
	return result
}

// GetDepartments lists all departments from storage, falling back to the
// live upstream API when storage is empty or failing.
func (s *catalogServiceImpl) GetDepartments(ctx context.Context) []dto.DepartmentResponse {
	departments, err := s.departmentStore.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to read departments from storage, falling back to upstream")
		return s.liveDepartments(ctx)
	}
	if len(departments) == 0 {
		s.logger.Warn().Msg("No departments in storage, falling back to upstream")
		return s.liveDepartments(ctx)
	}

	result := make([]dto.DepartmentResponse, 0, len(departments))
	for _, department := range departments {
		result = append(result, departmentToDTO(department))
	}
	return result
}

// GetCourses lists the courses of one season/department pair. Memory-tier
// hits skip storage entirely; a cold or failing store falls back to the live
// upstream API. Only store-sourced results are cached, so a cold store is
// re-fetched live on every call until a sync fills it.
func (s *catalogServiceImpl) GetCourses(ctx context.Context, seasonID, departmentID int64) []dto.CourseResponse {
	key := fmt.Sprintf("courses:%d:%d", seasonID, departmentID)
	if cached, ok := s.courses.Get(key); ok {
		return cached
	}

	courses, err := s.courseStore.ListBySeasonAndDepartment(ctx, seasonID, departmentID)
	if err != nil {
		s.logger.Error().Err(err).
			Int64("seasonId", seasonID).
			Int64("departmentId", departmentID).
			Msg("Failed to read courses from storage, falling back to upstream")
		return s.liveCourses(ctx, seasonID, departmentID)
	}
	if len(courses) == 0 {
		s.logger.Warn().
			Int64("seasonId", seasonID).
			Int64("departmentId", departmentID).
			Msg("No courses in storage, falling back to upstream")
		return s.liveCourses(ctx, seasonID, departmentID)
	}

	result := coursesToDTO(courses)
	s.courses.Put(key, result)
	return result
}

// GetAllCoursesForSeason lists every course of a season. Unlike the
// per-department query this never proxies the upstream API: bulk season
// listings are too expensive to fetch live, so a cold store yields an empty
// result.
func (s *catalogServiceImpl) GetAllCoursesForSeason(ctx context.Context, seasonID int64) []dto.CourseResponse {
	key := fmt.Sprintf("season-courses:%d", seasonID)
	if cached, ok := s.courses.Get(key); ok {
		return cached
	}

	courses, err := s.courseStore.ListBySeason(ctx, seasonID)
	if err != nil {
		s.logger.Error().Err(err).Int64("seasonId", seasonID).Msg("Failed to read season courses from storage")
		return []dto.CourseResponse{}
	}
	if len(courses) == 0 {
		s.logger.Warn().Int64("seasonId", seasonID).Msg("No courses in storage for season, returning empty list")
		return []dto.CourseResponse{}
	}

	result := coursesToDTO(courses)
	s.courses.Put(key, result)
	return result
}

// IsReady reports whether the durable mirror holds both seasons and
// departments. Course presence is deliberately not part of the gate.
func (s *catalogServiceImpl) IsReady(ctx context.Context) bool {
	seasonCount, err := s.seasonStore.Count(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to count seasons for readiness check")
		return false
	}
	departmentCount, err := s.departmentStore.Count(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to count departments for readiness check")
		return false
	}
	return seasonCount > 0 && departmentCount > 0
}

// Stats reports mirror counts, readiness and the most recent sync time.
// Storage failures degrade to an error-flagged response instead of
// propagating.
func (s *catalogServiceImpl) Stats(ctx context.Context) dto.CacheStatsResponse {
	stats := dto.CacheStatsResponse{Source: "database"}

	seasonCount, err := s.seasonStore.Count(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to collect cache stats")
		stats.Error = err.Error()
		return stats
	}
	departmentCount, err := s.departmentStore.Count(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to collect cache stats")
		stats.Error = err.Error()
		return stats
	}

	stats.Seasons = seasonCount
	stats.Departments = departmentCount
	stats.Ready = seasonCount > 0 && departmentCount > 0

	lastSync, err := s.seasonStore.LatestSyncTime(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to read last sync time for cache stats")
		stats.Error = err.Error()
		return stats
	}
	if lastSync != nil {
		stats.LastSync = lastSync.UTC().Format("2006-01-02T15:04:05Z07:00")
	}

	return stats
}

// liveSeasons serves seasons straight from upstream; a double failure
// degrades to an empty result.
func (s *catalogServiceImpl) liveSeasons(ctx context.Context) []dto.SeasonResponse {
	apiSeasons, err := s.upstream.FetchSeasons(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Upstream season fallback failed")
		return []dto.SeasonResponse{}
	}

	result := make([]dto.SeasonResponse, 0, len(apiSeasons))
	for _, apiSeason := range apiSeasons {
		result = append(result, dto.SeasonResponse{
			ID:        apiSeason.ID,
			Name:      apiSeason.Name,
			NameEn:    apiSeason.NameEn,
			NameTr:    apiSeason.NameTr,
			Active:    apiSeason.Active,
			StartDate: apiSeason.StartDate,
			EndDate:   apiSeason.EndDate,
		})
	}
	return result
}

func (s *catalogServiceImpl) liveDepartments(ctx context.Context) []dto.DepartmentResponse {
	apiDepartments, err := s.upstream.FetchDepartments(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Upstream department fallback failed")
		return []dto.DepartmentResponse{}
	}

	result := make([]dto.DepartmentResponse, 0, len(apiDepartments))
	for _, apiDepartment := range apiDepartments {
		result = append(result, dto.DepartmentResponse{
			ID:          apiDepartment.ID,
			Name:        apiDepartment.Name,
			NameEn:      apiDepartment.NameEn,
			NameTr:      apiDepartment.NameTr,
			Code:        apiDepartment.Code,
			FacultyID:   apiDepartment.FacultyID,
			FacultyName: apiDepartment.FacultyName,
			UnitID:      apiDepartment.FacultyID,
			UnitName:    apiDepartment.FacultyName,
			UnitNameEn:  apiDepartment.FacultyName,
		})
	}
	return result
}

func (s *catalogServiceImpl) liveCourses(ctx context.Context, seasonID, departmentID int64) []dto.CourseResponse {
	apiCourses, err := s.upstream.FetchCourses(ctx, seasonID, departmentID)
	if err != nil {
		s.logger.Error().Err(err).
			Int64("seasonId", seasonID).
			Int64("departmentId", departmentID).
			Msg("Upstream course fallback failed")
		return []dto.CourseResponse{}
	}

	result := make([]dto.CourseResponse, 0, len(apiCourses))
	for _, apiCourse := range apiCourses {
		details := make([]dto.MeetingResponse, 0, len(apiCourse.Details))
		for _, detail := range apiCourse.Details {
			details = append(details, dto.MeetingResponse{
				Day:       detail.Day,
				StartHour: detail.StartHour,
				EndHour:   detail.EndHour,
				RoomFloor: detail.RoomFloor,
				RoomName:  detail.RoomName,
				Type:      detail.Type,
			})
		}
		result = append(result, dto.CourseResponse{
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
			DepartmentID:   departmentID,
			DepartmentName: apiCourse.DepartmentName,
			Details:        details,
		})
	}
	return result
}

// ========== Conversion helpers ==========

func seasonToDTO(season *models.Season) dto.SeasonResponse {
	return dto.SeasonResponse{
		ID:        season.ID,
		Name:      season.Name,
		NameEn:    season.NameEn,
		NameTr:    season.NameTr,
		Active:    season.Active,
		StartDate: season.StartDate,
		EndDate:   season.EndDate,
	}
}

func departmentToDTO(department *models.Department) dto.DepartmentResponse {
	return dto.DepartmentResponse{
		ID:          department.ID,
		Name:        department.Name,
		NameEn:      department.NameEn,
		NameTr:      department.NameTr,
		Code:        department.Code,
		FacultyID:   department.FacultyID,
		FacultyName: department.FacultyName,
		// Aliases kept for older clients.
		UnitID:     department.FacultyID,
		UnitName:   department.FacultyName,
		UnitNameEn: department.FacultyName,
	}
}

func coursesToDTO(courses []*models.Course) []dto.CourseResponse {
	result := make([]dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		result = append(result, courseToDTO(course))
	}
	return result
}

func courseToDTO(course *models.Course) dto.CourseResponse {
	details := make([]dto.MeetingResponse, 0, len(course.Sections))
	for _, section := range course.Sections {
		// FullName, TypeShort and NameShort are not tracked in storage and
		// stay null.
		details = append(details, dto.MeetingResponse{
			Day:       section.Day,
			StartHour: section.StartTime,
			EndHour:   section.EndTime,
			RoomFloor: section.Building,
			RoomName:  section.Room,
			Type:      section.Type,
		})
	}

	return dto.CourseResponse{
		Code:           course.Code,
		Section:        course.Section,
		Name:           course.Name,
		NameEn:         course.NameEn,
		NameTr:         course.NameTr,
		Credit:         course.Credit,
		Ects:           course.Ects,
		FullQuota:      course.FullQuota,
		Quota:          course.Quota,
		Info:           course.Info,
		Instructor:     course.Instructor,
		DepartmentID:   course.DepartmentID,
		DepartmentName: course.DepartmentName,
		Details:        details,
	}
}
