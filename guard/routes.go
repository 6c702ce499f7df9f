package guard

import (
	"strings"

	"github.com/lucky-sheltered-boy/BUAA-database-2025/models"
	"github.com/lucky-sheltered-boy/BUAA-database-2025/utils"
)

// Routes is the portal's static route table. Subtree entries cover their
// child pages (dashboard, courses, schedule, settings).
var Routes = []Route{
	{Path: utils.LoginPath},
	{Path: "/"},
	{Path: "/student", RequiresAuth: true, RequiredRole: models.RoleStudent},
	{Path: "/teacher", RequiresAuth: true, RequiredRole: models.RoleTeacher},
	{Path: "/admin", RequiresAuth: true, RequiredRole: models.RoleAdmin},
}

// Lookup resolves a path against the route table by longest matching
// prefix. Unknown paths resolve to an auth-required route so nothing
// unlisted is reachable while logged out.
func Lookup(path string) Route {
	best := Route{Path: path, RequiresAuth: true}
	bestLen := -1
	for _, r := range Routes {
		if r.Path == path {
			return r
		}
		prefix := r.Path
		if prefix != "/" && strings.HasPrefix(path, prefix+"/") && len(prefix) > bestLen {
			best = r
			bestLen = len(prefix)
		}
	}
	return best
}
