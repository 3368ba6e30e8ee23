package authclient

// UserRole is the user's role as issued by the auth service
type UserRole string

const (
	// RoleUser is the regular member role
	RoleUser UserRole = "user"
	// RoleAdmin grants access to admin surfaces
	RoleAdmin UserRole = "admin"
)

// IsValid checks if the role is one of the predefined valid roles
func (r UserRole) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// ParseRole safely parses a string into a UserRole type
func ParseRole(roleStr string) (UserRole, bool) {
	role := UserRole(roleStr)
	return role, role.IsValid()
}
