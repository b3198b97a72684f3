package dto

// SeasonResponse is the transfer shape for an academic season.
type SeasonResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	NameEn    string `json:"nameEn"`
	NameTr    string `json:"nameTr"`
	Active    int    `json:"active"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// DepartmentResponse is the transfer shape for a department. The unit*
// fields are aliases of the faculty fields kept for older clients.
type DepartmentResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	NameEn      string `json:"nameEn"`
	NameTr      string `json:"nameTr"`
	Code        string `json:"code"`
	FacultyID   int64  `json:"facultyId"`
	FacultyName string `json:"facultyName"`
	UnitID      int64  `json:"unitId"`
	UnitName    string `json:"unitName"`
	UnitNameEn  string `json:"unitNameEn"`
}

// MeetingResponse is the transfer shape for one scheduled meeting block of a
// course. FullName, TypeShort and NameShort are not tracked in storage and
// are always null; callers must tolerate that.
type MeetingResponse struct {
	Day       string  `json:"day"`
	StartHour string  `json:"startHour"`
	EndHour   string  `json:"endHour"`
	RoomFloor string  `json:"roomFloor"`
	RoomName  string  `json:"roomName"`
	Type      string  `json:"type"`
	FullName  *string `json:"fullName"`
	TypeShort *string `json:"typeShort"`
	NameShort *string `json:"nameShort"`
}

// CourseResponse is the transfer shape for a course offering with its
// meeting blocks.
type CourseResponse struct {
	Code           string            `json:"code"`
	Section        int               `json:"section"`
	Name           string            `json:"name"`
	NameEn         string            `json:"nameEn"`
	NameTr         string            `json:"nameTr"`
	Credit         int               `json:"credit"`
	Ects           int               `json:"ects"`
	FullQuota      int               `json:"fullQuota"`
	Quota          int               `json:"quota"`
	Info           string            `json:"info"`
	Instructor     string            `json:"instructor"`
	DepartmentID   int64             `json:"departmentId"`
	DepartmentName string            `json:"departmentName"`
	Details        []MeetingResponse `json:"details"`
}

// CacheStatsResponse reports the health of the catalog mirror.
type CacheStatsResponse struct {
	Seasons     int64  `json:"seasons"`
	Departments int64  `json:"departments"`
	Ready       bool   `json:"ready"`
	Source      string `json:"source"`
	LastSync    string `json:"lastSync,omitempty"`
	Error       string `json:"error,omitempty"`
}

// CacheStatusResponse is the readiness gate polled before trusting the cache.
type CacheStatusResponse struct {
	Ready bool `json:"ready"`
}
