package dto

import "time"

// ScheduleCourseRequest is one course snapshot inside a schedule request.
type ScheduleCourseRequest struct {
	Code           string            `json:"code" binding:"required"`
	Section        int               `json:"section" binding:"required"`
	Name           string            `json:"name"`
	Credit         int               `json:"credit"`
	Ects           int               `json:"ects"`
	Instructor     string            `json:"instructor"`
	DepartmentID   int64             `json:"departmentId"`
	DepartmentName string            `json:"departmentName"`
	Details        []MeetingResponse `json:"details"`
}

// CreateScheduleRequest represents schedule creation data.
type CreateScheduleRequest struct {
	Owner       string                  `json:"owner" binding:"required"`
	Name        string                  `json:"name" binding:"required,max=200"`
	Description string                  `json:"description" binding:"max=1000"`
	SeasonID    int64                   `json:"seasonId" binding:"required,gt=0"`
	SeasonName  string                  `json:"seasonName"`
	Courses     []ScheduleCourseRequest `json:"courses" binding:"required"`
}

// ScheduleCourseResponse is one course snapshot inside a saved schedule.
type ScheduleCourseResponse struct {
	CourseCode     string             `json:"courseCode"`
	CourseName     string             `json:"courseName"`
	Section        int                `json:"section"`
	Credits        int                `json:"credits"`
	Ects           int                `json:"ects"`
	Instructor     string             `json:"instructor"`
	DepartmentID   int64              `json:"departmentId"`
	DepartmentName string             `json:"departmentName"`
	TimeSlots      []TimeSlotResponse `json:"timeSlots"`
}

// TimeSlotResponse is one meeting block of a schedule snapshot.
type TimeSlotResponse struct {
	Day   string `json:"day"`
	Start string `json:"start"`
	End   string `json:"end"`
	Room  string `json:"room"`
}

// ScheduleResponse represents a saved schedule.
type ScheduleResponse struct {
	ID           int64                    `json:"id"`
	Owner        string                   `json:"owner"`
	Name         string                   `json:"name"`
	Description  string                   `json:"description"`
	SeasonID     int64                    `json:"seasonId"`
	SeasonName   string                   `json:"seasonName"`
	TotalCredits int                      `json:"totalCredits"`
	TotalEcts    int                      `json:"totalEcts"`
	IsFavorite   bool                     `json:"isFavorite"`
	Courses      []ScheduleCourseResponse `json:"courses"`
	CreatedAt    time.Time                `json:"createdAt"`
	UpdatedAt    time.Time                `json:"updatedAt"`
}
