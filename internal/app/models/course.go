package models

import "time"

// Course is one offering within a season. Rows get a local surrogate id; the
// natural key (SeasonID, Code, Section) is unique within a season and is what
// sync uses to match incoming data to existing rows.
type Course struct {
	ID             int64            `json:"id"`
	SeasonID       int64            `json:"season_id"`
	DepartmentID   int64            `json:"department_id"`
	Code           string           `json:"code"`
	Section        int              `json:"section"`
	Name           string           `json:"name"`
	NameEn         string           `json:"name_en"`
	NameTr         string           `json:"name_tr"`
	Credit         int              `json:"credit"`
	Ects           int              `json:"ects"`
	FullQuota      int              `json:"full_quota"`
	Quota          int              `json:"quota"`
	Info           string           `json:"info"`
	Instructor     string           `json:"instructor"`
	DepartmentName string           `json:"department_name"`
	Sections       []*CourseSection `json:"sections,omitempty"`
	LastSyncedAt   time.Time        `json:"last_synced_at"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// CourseSection is a single scheduled meeting block (day/time/room) owned by
// exactly one course. Sections are replaced as a unit when the parent course
// is re-synced with meeting data; they are never upserted individually.
type CourseSection struct {
	ID        int64     `json:"id"`
	CourseID  int64     `json:"course_id"`
	Day       string    `json:"day"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Building  string    `json:"building"`
	Room      string    `json:"room"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}
