// File: utils/constants.go
package utils

// Durable storage keys for the credential unit. They mirror the portal's
// browser-local storage keys so a migrated profile stays readable.
const (
	StorageKeyToken        = "token"
	StorageKeyRefreshToken = "refreshToken"
	StorageKeyUserInfo     = "userInfo"
	StorageKeyTermID       = "currentSemesterId"
)

// LoginPath is the navigation entry point for unauthenticated users.
const LoginPath = "/login"

// Role labels as the portal sends them on the wire.
const (
	RoleLabelStudent = "学生"
	RoleLabelTeacher = "教师"
	RoleLabelAdmin   = "教务"
)

// Week parity labels as the portal sends them.
const (
	WeekLabelAll  = "全部"
	WeekLabelOdd  = "单周"
	WeekLabelEven = "双周"
)
