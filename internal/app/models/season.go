package models

import "time"

// Season represents an academic term mirrored from the university API. The id
// is the upstream identifier; rows are never renumbered locally.
type Season struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	NameEn       string    `json:"name_en"`
	NameTr       string    `json:"name_tr"`
	Active       int       `json:"active"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	LastSyncedAt time.Time `json:"last_synced_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsActive reports whether the upstream flagged this season as the current
// one.
func (s *Season) IsActive() bool {
	return s.Active == 1
}
