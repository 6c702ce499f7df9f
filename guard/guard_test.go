package guard

import (
	"testing"

	"github.com/lucky-sheltered-boy/BUAA-database-2025/models"
	"github.com/lucky-sheltered-boy/BUAA-database-2025/session"
)

func TestDecide(t *testing.T) {
	student := session.Facts{LoggedIn: true, Role: models.RoleStudent, UserID: 7}
	teacher := session.Facts{LoggedIn: true, Role: models.RoleTeacher, UserID: 8}
	anonymous := session.Facts{}

	tests := []struct {
		name         string
		target       Route
		facts        session.Facts
		wantAllow    bool
		wantRedirect string
	}{
		{
			name:      "public route without session",
			target:    Route{Path: "/login"},
			facts:     anonymous,
			wantAllow: true,
		},
		{
			name:         "protected route without session",
			target:       Route{Path: "/student", RequiresAuth: true, RequiredRole: models.RoleStudent},
			facts:        anonymous,
			wantRedirect: "/login",
		},
		{
			name:         "student visiting teacher pages lands on own dashboard",
			target:       Route{Path: "/teacher", RequiresAuth: true, RequiredRole: models.RoleTeacher},
			facts:        student,
			wantRedirect: "/student/dashboard",
		},
		{
			name:      "teacher visiting teacher pages",
			target:    Route{Path: "/teacher", RequiresAuth: true, RequiredRole: models.RoleTeacher},
			facts:     teacher,
			wantAllow: true,
		},
		{
			name:      "role-agnostic protected route admits any session",
			target:    Route{Path: "/settings", RequiresAuth: true},
			facts:     teacher,
			wantAllow: true,
		},
		{
			name:         "unrecognized role falls back to login",
			target:       Route{Path: "/admin", RequiresAuth: true, RequiredRole: models.RoleAdmin},
			facts:        session.Facts{LoggedIn: true, Role: models.Role("auditor")},
			wantRedirect: "/login",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Decide(tc.target, tc.facts)
			if got.Allow != tc.wantAllow {
				t.Fatalf("Allow = %v, want %v", got.Allow, tc.wantAllow)
			}
			if got.RedirectTo != tc.wantRedirect {
				t.Fatalf("RedirectTo = %q, want %q", got.RedirectTo, tc.wantRedirect)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		path         string
		wantRole     models.Role
		requiresAuth bool
	}{
		{"/login", models.RoleUnknown, false},
		{"/student/dashboard", models.RoleStudent, true},
		{"/teacher/students/42", models.RoleTeacher, true},
		{"/admin/statistics", models.RoleAdmin, true},
		{"/unlisted", models.RoleUnknown, true},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			r := Lookup(tc.path)
			if r.RequiresAuth != tc.requiresAuth {
				t.Fatalf("RequiresAuth = %v, want %v", r.RequiresAuth, tc.requiresAuth)
			}
			if r.RequiredRole != tc.wantRole {
				t.Fatalf("RequiredRole = %q, want %q", r.RequiredRole, tc.wantRole)
			}
		})
	}
}
