package session

import (
	"strings"

	"github.com/learnhub-dev/learnhub/internal/tokenstore"
)

// Access classifies a route as public or protected for a role
type Access struct {
	role tokenstore.Role
}

// Public routes render for everyone
var Public = Access{}

// Protected returns the classification for routes that need a role's session
func Protected(role tokenstore.Role) Access {
	return Access{role: role}
}

// Role returns the required role and whether the route is protected
func (a Access) Role() (tokenstore.Role, bool) {
	return a.role, a.role != ""
}

func (a Access) String() string {
	if a.role == "" {
		return "public"
	}
	return "protected(" + string(a.role) + ")"
}

// Classification is the static route table. Lookups match exact paths first,
// then the longest registered prefix ending in "/".
type Classification map[string]Access

// Lookup returns the access class for path. Unknown paths are public.
func (c Classification) Lookup(path string) Access {
	if a, ok := c[path]; ok {
		return a
	}
	best := ""
	for prefix := range c {
		if strings.HasSuffix(prefix, "/") && strings.HasPrefix(path, prefix) && len(prefix) > len(best) {
			best = prefix
		}
	}
	if best != "" {
		return c[best]
	}
	return Public
}
