package services

import (
	"context"
	"errors"
	"testing"

	"github.com/emirhan/coursedeck/internal/app/models/dto"
	"github.com/emirhan/coursedeck/internal/pkg/apperrors"
)

func newScheduleRequest(owner, name string) *dto.CreateScheduleRequest {
	return &dto.CreateScheduleRequest{
		Owner:      owner,
		Name:       name,
		SeasonID:   10,
		SeasonName: "2025 Fall",
		Courses: []dto.ScheduleCourseRequest{
			{
				Code: "CSE101", Section: 1, Name: "Intro to Programming",
				Credit: 3, Ects: 6,
				Details: []dto.MeetingResponse{
					{Day: "Monday", StartHour: "09:00", EndHour: "11:00", RoomName: "A101"},
				},
			},
			{
				Code: "PHY101", Section: 2, Name: "Physics I",
				Credit: 4, Ects: 7,
			},
		},
	}
}

func TestCreateScheduleComputesTotals(t *testing.T) {
	service := NewScheduleService(newFakeScheduleStore())

	schedule, err := service.CreateSchedule(context.Background(), newScheduleRequest("student-1", "Plan A"))
	if err != nil {
		t.Fatalf("CreateSchedule: %v", err)
	}

	// Totals are computed server-side from the course snapshots.
	if schedule.TotalCredits != 7 || schedule.TotalEcts != 13 {
		t.Fatalf("totals = %d credits %d ects, want 7/13", schedule.TotalCredits, schedule.TotalEcts)
	}
	if len(schedule.Courses) != 2 {
		t.Fatalf("courses = %d, want 2", len(schedule.Courses))
	}
	slots := schedule.Courses[0].TimeSlots
	if len(slots) != 1 || slots[0].Day != "Monday" || slots[0].Room != "A101" {
		t.Fatalf("time slots = %+v, want single Monday/A101 block", slots)
	}
}

func TestCreateScheduleValidation(t *testing.T) {
	service := NewScheduleService(newFakeScheduleStore())

	cases := []struct {
		name string
		req  *dto.CreateScheduleRequest
	}{
		{"empty owner", &dto.CreateScheduleRequest{Name: "x", SeasonID: 10}},
		{"empty name", &dto.CreateScheduleRequest{Owner: "s", SeasonID: 10}},
		{"bad season", &dto.CreateScheduleRequest{Owner: "s", Name: "x"}},
	}
	for _, tc := range cases {
		if _, err := service.CreateSchedule(context.Background(), tc.req); !errors.Is(err, apperrors.ErrValidationFailed) {
			t.Errorf("%s: err = %v, want ErrValidationFailed", tc.name, err)
		}
	}
}

func TestCreateScheduleDuplicateName(t *testing.T) {
	service := NewScheduleService(newFakeScheduleStore())

	if _, err := service.CreateSchedule(context.Background(), newScheduleRequest("student-1", "Plan A")); err != nil {
		t.Fatal(err)
	}
	_, err := service.CreateSchedule(context.Background(), newScheduleRequest("student-1", "Plan A"))
	if !errors.Is(err, apperrors.ErrScheduleAlreadyExists) {
		t.Fatalf("duplicate err = %v, want ErrScheduleAlreadyExists", err)
	}

	// The same name under another owner is fine.
	if _, err := service.CreateSchedule(context.Background(), newScheduleRequest("student-2", "Plan A")); err != nil {
		t.Fatalf("other owner err = %v, want nil", err)
	}
}

func TestScheduleOwnershipScoping(t *testing.T) {
	service := NewScheduleService(newFakeScheduleStore())

	created, err := service.CreateSchedule(context.Background(), newScheduleRequest("student-1", "Plan A"))
	if err != nil {
		t.Fatal(err)
	}

	// Another owner sees not-found, never someone else's schedule.
	if _, err := service.GetSchedule(context.Background(), created.ID, "student-2"); !errors.Is(err, apperrors.ErrScheduleNotFound) {
		t.Fatalf("foreign GetSchedule err = %v, want ErrScheduleNotFound", err)
	}
	if err := service.DeleteSchedule(context.Background(), created.ID, "student-2"); !errors.Is(err, apperrors.ErrScheduleNotFound) {
		t.Fatalf("foreign DeleteSchedule err = %v, want ErrScheduleNotFound", err)
	}

	got, err := service.GetSchedule(context.Background(), created.ID, "student-1")
	if err != nil {
		t.Fatalf("owner GetSchedule: %v", err)
	}
	if got.Name != "Plan A" {
		t.Fatalf("schedule name = %q, want Plan A", got.Name)
	}
}

func TestListSchedulesFavoritesFirst(t *testing.T) {
	service := NewScheduleService(newFakeScheduleStore())

	a, _ := service.CreateSchedule(context.Background(), newScheduleRequest("student-1", "Plan A"))
	b, _ := service.CreateSchedule(context.Background(), newScheduleRequest("student-1", "Plan B"))
	if a == nil || b == nil {
		t.Fatal("schedule creation failed")
	}

	if err := service.SetFavorite(context.Background(), b.ID, "student-1", true); err != nil {
		t.Fatalf("SetFavorite: %v", err)
	}

	schedules, err := service.ListSchedules(context.Background(), "student-1")
	if err != nil {
		t.Fatalf("ListSchedules: %v", err)
	}
	if len(schedules) != 2 {
		t.Fatalf("schedules = %d, want 2", len(schedules))
	}
	if schedules[0].ID != b.ID || !schedules[0].IsFavorite {
		t.Fatalf("first listed = %+v, want favorite Plan B", schedules[0])
	}

	if _, err := service.ListSchedules(context.Background(), ""); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("empty owner err = %v, want ErrValidationFailed", err)
	}
}
