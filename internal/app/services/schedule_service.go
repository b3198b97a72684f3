package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/emirhan/coursedeck/internal/app/models"
	"github.com/emirhan/coursedeck/internal/app/models/dto"
	"github.com/emirhan/coursedeck/internal/pkg/apperrors"
)

// ScheduleService manages saved course schedules. Schedules hold
// denormalized snapshots of catalog data, so later re-syncs never change
// what a client saved.
type ScheduleService interface {
	CreateSchedule(ctx context.Context, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error)
	GetSchedule(ctx context.Context, id int64, owner string) (*dto.ScheduleResponse, error)
	ListSchedules(ctx context.Context, owner string) ([]dto.ScheduleResponse, error)
	SetFavorite(ctx context.Context, id int64, owner string, favorite bool) error
	DeleteSchedule(ctx context.Context, id int64, owner string) error
}

// scheduleServiceImpl implements the ScheduleService interface
type scheduleServiceImpl struct {
	scheduleStore ScheduleStore
}

// NewScheduleService creates a new schedule service instance
func NewScheduleService(scheduleStore ScheduleStore) ScheduleService {
	return &scheduleServiceImpl{
		scheduleStore: scheduleStore,
	}
}

// CreateSchedule stores a new schedule. Credit and ECTS totals are computed
// here, not trusted from the request.
func (s *scheduleServiceImpl) CreateSchedule(ctx context.Context, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error) {
	if strings.TrimSpace(req.Owner) == "" {
		return nil, fmt.Errorf("%w: owner cannot be empty", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}
	if req.SeasonID <= 0 {
		return nil, fmt.Errorf("%w: invalid season ID", apperrors.ErrValidationFailed)
	}

	schedule := &models.SavedSchedule{
		Owner:       req.Owner,
		Name:        req.Name,
		Description: req.Description,
		SeasonID:    req.SeasonID,
		SeasonName:  req.SeasonName,
	}

	for _, course := range req.Courses {
		schedule.TotalCredits += course.Credit
		schedule.TotalEcts += course.Ects

		slots := make([]models.TimeSlot, 0, len(course.Details))
		for _, detail := range course.Details {
			slots = append(slots, models.TimeSlot{
				Day:   detail.Day,
				Start: detail.StartHour,
				End:   detail.EndHour,
				Room:  detail.RoomName,
			})
		}

		schedule.Courses = append(schedule.Courses, &models.ScheduleCourse{
			CourseCode:     course.Code,
			CourseName:     course.Name,
			Section:        course.Section,
			Credits:        course.Credit,
			Ects:           course.Ects,
			Instructor:     course.Instructor,
			DepartmentID:   course.DepartmentID,
			DepartmentName: course.DepartmentName,
			TimeSlots:      slots,
		})
	}

	if err := s.scheduleStore.Create(ctx, schedule); err != nil {
		return nil, err
	}

	response := scheduleToDTO(schedule)
	return &response, nil
}

// GetSchedule retrieves one schedule belonging to owner.
func (s *scheduleServiceImpl) GetSchedule(ctx context.Context, id int64, owner string) (*dto.ScheduleResponse, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid schedule ID", apperrors.ErrValidationFailed)
	}

	schedule, err := s.scheduleStore.GetByID(ctx, id, owner)
	if err != nil {
		return nil, err
	}

	response := scheduleToDTO(schedule)
	return &response, nil
}

// ListSchedules retrieves all schedules of one owner.
func (s *scheduleServiceImpl) ListSchedules(ctx context.Context, owner string) ([]dto.ScheduleResponse, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, fmt.Errorf("%w: owner cannot be empty", apperrors.ErrValidationFailed)
	}

	schedules, err := s.scheduleStore.ListByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("error listing schedules: %w", err)
	}

	result := make([]dto.ScheduleResponse, 0, len(schedules))
	for _, schedule := range schedules {
		result = append(result, scheduleToDTO(schedule))
	}
	return result, nil
}

// SetFavorite flips the favorite flag of one schedule.
func (s *scheduleServiceImpl) SetFavorite(ctx context.Context, id int64, owner string, favorite bool) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid schedule ID", apperrors.ErrValidationFailed)
	}
	return s.scheduleStore.SetFavorite(ctx, id, owner, favorite)
}

// DeleteSchedule removes one schedule belonging to owner.
func (s *scheduleServiceImpl) DeleteSchedule(ctx context.Context, id int64, owner string) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid schedule ID", apperrors.ErrValidationFailed)
	}
	return s.scheduleStore.DeleteByID(ctx, id, owner)
}

func scheduleToDTO(schedule *models.SavedSchedule) dto.ScheduleResponse {
	courses := make([]dto.ScheduleCourseResponse, 0, len(schedule.Courses))
	for _, course := range schedule.Courses {
		slots := make([]dto.TimeSlotResponse, 0, len(course.TimeSlots))
		for _, slot := range course.TimeSlots {
			slots = append(slots, dto.TimeSlotResponse{
				Day:   slot.Day,
				Start: slot.Start,
				End:   slot.End,
				Room:  slot.Room,
			})
		}
		courses = append(courses, dto.ScheduleCourseResponse{
			CourseCode:     course.CourseCode,
			CourseName:     course.CourseName,
			Section:        course.Section,
			Credits:        course.Credits,
			Ects:           course.Ects,
			Instructor:     course.Instructor,
			DepartmentID:   course.DepartmentID,
			DepartmentName: course.DepartmentName,
			TimeSlots:      slots,
		})
	}

	return dto.ScheduleResponse{
		ID:           schedule.ID,
		Owner:        schedule.Owner,
		Name:         schedule.Name,
		Description:  schedule.Description,
		SeasonID:     schedule.SeasonID,
		SeasonName:   schedule.SeasonName,
		TotalCredits: schedule.TotalCredits,
		TotalEcts:    schedule.TotalEcts,
		IsFavorite:   schedule.IsFavorite,
		Courses:      courses,
		CreatedAt:    schedule.CreatedAt,
		UpdatedAt:    schedule.UpdatedAt,
	}
}
