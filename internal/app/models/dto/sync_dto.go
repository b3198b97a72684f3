package dto

import "time"

// SyncCountsResponse reports how many rows a sync operation created and
// updated. Departments that failed inside an isolated loop are simply
// missing from the totals.
type SyncCountsResponse struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

// SyncStatusResponse summarizes the state of the durable mirror.
type SyncStatusResponse struct {
	SeasonCount     int64      `json:"seasonCount"`
	DepartmentCount int64      `json:"departmentCount"`
	LastSyncTime    *time.Time `json:"lastSyncTime,omitempty"`
}
