// Package authz provides role predicates shared by the API route layer and
// any service that needs to gate an operation on the caller's role set.
// All functions are pure; the role set is whatever the identity provider
// attached to the verified token.
package authz

// Role is the closed set of roles a customer account can carry.
type Role string

const (
	RoleCustomer     Role = "customer"
	RoleSupport      Role = "support"
	RoleMerchandiser Role = "merchandiser"
	RoleAdmin        Role = "admin"
)

// AllRoles returns the declared role enumeration.
func AllRoles() []Role {
	return []Role{RoleCustomer, RoleSupport, RoleMerchandiser, RoleAdmin}
}

// Valid reports whether r is one of the declared roles.
func Valid(r Role) bool {
	switch r {
	case RoleCustomer, RoleSupport, RoleMerchandiser, RoleAdmin:
		return true
	}
	return false
}

// FromStrings converts raw role claims into typed roles. Unknown values are
// kept as-is so callers can reject them explicitly.
func FromStrings(raw []string) []Role {
	roles := make([]Role, 0, len(raw))
	for _, r := range raw {
		roles = append(roles, Role(r))
	}
	return roles
}

// Strings converts a role set back to its wire representation.
func Strings(roles []Role) []string {
	raw := make([]string, 0, len(roles))
	for _, r := range roles {
		raw = append(raw, string(r))
	}
	return raw
}

// HasRole reports whether the user holds at least one of the required roles.
// The requirement may be a single role or a list.
func HasRole(userRoles []Role, required ...Role) bool {
	for _, req := range required {
		if contains(userRoles, req) {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether the intersection of the two sets is non-empty.
func HasAnyRole(userRoles, required []Role) bool {
	return HasRole(userRoles, required...)
}

// HasAllRoles reports whether required is a subset of the user's role set.
func HasAllRoles(userRoles, required []Role) bool {
	for _, req := range required {
		if !contains(userRoles, req) {
			return false
		}
	}
	return true
}

func IsAdmin(userRoles []Role) bool {
	return contains(userRoles, RoleAdmin)
}

func IsCustomer(userRoles []Role) bool {
	return contains(userRoles, RoleCustomer)
}

func contains(roles []Role, r Role) bool {
	for _, have := range roles {
		if have == r {
			return true
		}
	}
	return false
}
