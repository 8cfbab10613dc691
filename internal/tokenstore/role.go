package tokenstore

import "fmt"

// Role selects the token namespace, API surface and login redirect.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Persistent storage keys. Kept stable so existing sessions survive upgrades.
const (
	UserTokenKey   = "authToken"
	AdminTokenKey  = "adminAuthToken"
	DisplayNameKey = "username"
)

// Login routes per role
const (
	UserLoginPath  = "/login"
	AdminLoginPath = "/admin/login"
)

// Roles lists every known role
var Roles = []Role{RoleUser, RoleAdmin}

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// TokenKey returns the storage key holding the role's bearer token
func (r Role) TokenKey() string {
	if r == RoleAdmin {
		return AdminTokenKey
	}
	return UserTokenKey
}

// LoginPath returns where an unauthenticated visitor of this role is sent
func (r Role) LoginPath() string {
	if r == RoleAdmin {
		return AdminLoginPath
	}
	return UserLoginPath
}

func (r Role) String() string {
	return string(r)
}

// ParseRole converts user input into a Role
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
	return r, nil
}
