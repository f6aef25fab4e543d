package domain

// Role of an authenticated caller, supplied by the identity provider
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Principal authenticated caller attached to every inbound request
type Principal struct {
	UserID string
	Role   Role
}

// IsAdmin returns true for administrators
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// IsAuthenticated returns true if the principal carries a user id
func (p Principal) IsAuthenticated() bool {
	return p.UserID != ""
}

// ParseRole maps a token claim to a Role; unknown values become RoleUser
func ParseRole(s string) Role {
	if Role(s) == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}
