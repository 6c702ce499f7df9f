package models

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshRequest is the body of POST /auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse is the payload of a successful login or refresh.
type TokenResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	TokenType    string      `json:"token_type"`
	ExpiresIn    int         `json:"expires_in"`
	UserInfo     UserProfile `json:"user_info"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	StudentID    string `json:"student_id"`
	Name         string `json:"name"`
	Password     string `json:"password"`
	Role         string `json:"role"`
	DepartmentID int    `json:"department_id"`
}

// ChangePasswordRequest is the body of POST /auth/change-password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}
