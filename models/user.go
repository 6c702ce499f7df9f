package models

// Role is the normalized user role.
type Role string

const (
	RoleUnknown Role = ""
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// ParseRole maps a wire role label to a normalized Role. The portal sends
// Chinese labels; normalized names are accepted too.
func ParseRole(label string) Role {
	switch label {
	case "学生", string(RoleStudent):
		return RoleStudent
	case "教师", string(RoleTeacher):
		return RoleTeacher
	case "教务", string(RoleAdmin):
		return RoleAdmin
	default:
		return RoleUnknown
	}
}

// UserProfile is the user block returned by login and refresh. It is
// replaced wholesale on every session transition, never patched.
type UserProfile struct {
	UserID         int    `json:"user_id"`
	Username       string `json:"username"`
	Name           string `json:"name"`
	Role           string `json:"role"` // wire label, see ParseRole
	DepartmentID   int    `json:"department_id"`
	DepartmentName string `json:"department_name,omitempty"`
}

// Credentials is the durable credential unit: both tokens plus the profile,
// persisted and cleared together. AccessToken is non-empty iff logged in.
type Credentials struct {
	AccessToken  string
	RefreshToken string
	Profile      *UserProfile
}

// LoggedIn reports whether the unit represents an authenticated session.
func (c Credentials) LoggedIn() bool {
	return c.AccessToken != ""
}
