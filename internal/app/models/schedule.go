package models

import "time"

// SavedSchedule is a named set of courses a client has put together for one
// season. Ownership is a caller-supplied identifier; account handling lives
// outside this service.
type SavedSchedule struct {
	ID           int64             `json:"id"`
	Owner        string            `json:"owner"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	SeasonID     int64             `json:"season_id"`
	SeasonName   string            `json:"season_name"`
	TotalCredits int               `json:"total_credits"`
	TotalEcts    int               `json:"total_ects"`
	IsFavorite   bool              `json:"is_favorite"`
	Courses      []*ScheduleCourse `json:"courses,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// ScheduleCourse is a denormalized snapshot of a course inside a saved
// schedule. Snapshots survive re-syncs of the catalog untouched.
type ScheduleCourse struct {
	ID             int64      `json:"id"`
	ScheduleID     int64      `json:"schedule_id"`
	CourseCode     string     `json:"course_code"`
	CourseName     string     `json:"course_name"`
	Section        int        `json:"section"`
	Credits        int        `json:"credits"`
	Ects           int        `json:"ects"`
	Instructor     string     `json:"instructor"`
	DepartmentID   int64      `json:"department_id"`
	DepartmentName string     `json:"department_name"`
	TimeSlots      []TimeSlot `json:"time_slots"`
}

// TimeSlot is one meeting block inside a schedule snapshot, stored as JSONB.
type TimeSlot struct {
	Day   string `json:"day"`
	Start string `json:"start"`
	End   string `json:"end"`
	Room  string `json:"room"`
}
