// Package entity contains the core business objects of the project.
package entity

import "slices"

// Role represents the single role an account holds for its whole lifetime.
type Role string

const (
	// RoleViewer indicates an ordinary shopper account.
	RoleViewer Role = "viewer"
	// RoleAdmin indicates a shop-owning seller account.
	RoleAdmin Role = "admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleViewer, RoleAdmin:
		return true
	default:
		return false
	}
}

// OwnsShop reports whether accounts with this role carry a shop profile.
func (r Role) OwnsShop() bool {
	return r == RoleAdmin
}

// Roles is a slice of Role for convenience.
type Roles []Role

// AllRoles lists every role the system knows about.
var AllRoles = Roles{RoleViewer, RoleAdmin}

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

// ParseRole converts a raw string into a Role, reporting whether it is known.
func ParseRole(s string) (Role, bool) {
	role := Role(s)

	return role, role.IsValid()
}
