package domain

// Role is the closed set of account roles.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole coerces an arbitrary role string to a known role.
// Unknown values fall back to RoleUser rather than failing.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleUser, RoleAdmin:
		return Role(s)
	default:
		return RoleUser
	}
}

// IsAdmin reports whether the role grants admin capabilities.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

func (r Role) String() string {
	return string(r)
}
