package models

import "time"

// Department represents a teaching department mirrored from the university
// API, keyed by the upstream id.
type Department struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	NameEn       string    `json:"name_en"`
	NameTr       string    `json:"name_tr"`
	Code         string    `json:"code"`
	FacultyID    int64     `json:"faculty_id"`
	FacultyName  string    `json:"faculty_name"`
	LastSyncedAt time.Time `json:"last_synced_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
