package models

// Department is one row of GET /common/departments.
type Department struct {
	DepartmentID   int    `json:"department_id"`
	DepartmentName string `json:"department_name"`
}

// CourseTimeSlot is a meeting time attached to an available course.
type CourseTimeSlot struct {
	DayOfWeek string `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// AvailableCourse is one row of GET /students/{id}/available-courses.
type AvailableCourse struct {
	InstanceID     int              `json:"instance_id"`
	CourseID       string           `json:"course_id"`
	CourseName     string           `json:"course_name"`
	Credit         float64          `json:"credit"`
	TeacherName    string           `json:"teacher_name,omitempty"`
	Department     string           `json:"department"`
	Building       string           `json:"building"`
	Room           string           `json:"room"`
	RemainingQuota int              `json:"remaining_quota"`
	EnrollType     string           `json:"enroll_type"` // 本院系/跨院系
	TimeSlots      []CourseTimeSlot `json:"time_slots,omitempty"`
}

// ScheduleEntry is one row of a student or teacher schedule. Weekday,
// times, and week type arrive as display strings; see the schedule package
// for parsing them into a ScheduledSession.
type ScheduleEntry struct {
	InstanceID  int     `json:"instance_id"`
	CourseID    string  `json:"course_id"`
	CourseName  string  `json:"course_name"`
	Credit      float64 `json:"credit"`
	Weekday     string  `json:"weekday"` // 星期一 .. 星期日
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	Building    string  `json:"building"`
	Room        string  `json:"room"`
	TeacherName string  `json:"teacher_name,omitempty"`
	WeekRange   string  `json:"week_range"` // e.g. "1-16周"
	WeekType    string  `json:"week_type"`  // 全部/单周/双周
}

// EnrollRequest is the body of enroll and drop calls.
type EnrollRequest struct {
	InstanceID int `json:"instance_id"`
}

// EnrolledStudent is one row of GET /teachers/{id}/students.
type EnrolledStudent struct {
	UserID     int    `json:"user_id"`
	StudentID  string `json:"student_id"`
	Name       string `json:"name"`
	Department string `json:"department_name,omitempty"`
}

// EnrollmentStat is one row of GET /statistics/enrollment.
type EnrollmentStat struct {
	InstanceID int    `json:"instance_id"`
	CourseID   string `json:"course_id"`
	CourseName string `json:"course_name"`
	Quota      int    `json:"quota"`
	Enrolled   int    `json:"enrolled"`
}

// SystemOverview is the payload of GET /statistics/overview.
type SystemOverview struct {
	StudentCount    int `json:"student_count"`
	TeacherCount    int `json:"teacher_count"`
	CourseCount     int `json:"course_count"`
	EnrollmentCount int `json:"enrollment_count"`
}
