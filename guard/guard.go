// Package guard decides whether a navigation is admitted, and where to
// redirect it otherwise. It is a pure function over the route table and the
// session facts.
package guard

import (
	"github.com/lucky-sheltered-boy/BUAA-database-2025/models"
	"github.com/lucky-sheltered-boy/BUAA-database-2025/session"
	"github.com/lucky-sheltered-boy/BUAA-database-2025/utils"
)

// Route is one entry of the static route table.
type Route struct {
	Path         string
	RequiresAuth bool
	RequiredRole models.Role // RoleUnknown means any authenticated role
}

// Decision is the guard's verdict: admit, or redirect to another path.
type Decision struct {
	Allow      bool
	RedirectTo string
}

var allow = Decision{Allow: true}

func redirectTo(path string) Decision {
	return Decision{RedirectTo: path}
}

// landingPages maps each role to its default dashboard.
var landingPages = map[models.Role]string{
	models.RoleStudent: "/student/dashboard",
	models.RoleTeacher: "/teacher/dashboard",
	models.RoleAdmin:   "/admin/dashboard",
}

// LandingPage returns the role's default dashboard, falling back to the
// login entry point for unrecognized roles.
func LandingPage(role models.Role) string {
	if page, ok := landingPages[role]; ok {
		return page
	}
	return utils.LoginPath
}

// Decide admits or redirects a navigation given the current session facts.
func Decide(target Route, facts session.Facts) Decision {
	if !target.RequiresAuth {
		return allow
	}
	if !facts.LoggedIn {
		return redirectTo(utils.LoginPath)
	}
	if target.RequiredRole != models.RoleUnknown && facts.Role != target.RequiredRole {
		// Send the user to their own dashboard rather than a flat denial.
		return redirectTo(LandingPage(facts.Role))
	}
	return allow
}
