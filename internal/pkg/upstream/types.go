package upstream

// Season is an academic term as served by the university API.
type Season struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	NameEn    string `json:"nameEn"`
	NameTr    string `json:"nameTr"`
	Active    int    `json:"active"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// Department is a teaching department as served by the university API.
type Department struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	NameEn      string `json:"nameEn"`
	NameTr      string `json:"nameTr"`
	Code        string `json:"code"`
	FacultyID   int64  `json:"facultyId"`
	FacultyName string `json:"facultyName"`
}

// Meeting is one scheduled meeting block nested under a course payload.
type Meeting struct {
	Day       string `json:"day"`
	StartHour string `json:"startHour"`
	EndHour   string `json:"endHour"`
	RoomFloor string `json:"roomFloor"`
	RoomName  string `json:"roomName"`
	Type      string `json:"type"`
}

// Course is one offering with its nested meeting blocks as served by the
// university API.
type Course struct {
	Code           string    `json:"code"`
	Section        int       `json:"section"`
	Name           string    `json:"name"`
	NameEn         string    `json:"nameEn"`
	NameTr         string    `json:"nameTr"`
	Credit         int       `json:"credit"`
	Ects           int       `json:"ects"`
	FullQuota      int       `json:"fullQuota"`
	Quota          int       `json:"quota"`
	Info           string    `json:"info"`
	Instructor     string    `json:"instructor"`
	DepartmentName string    `json:"departmentName"`
	Details        []Meeting `json:"details"`
}
