package domain

const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

// ValidRole reports whether r is a role the system knows about.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleClient
}

// Principal is the identity derived from a verified token. It lives for a
// single request and is never persisted.
type Principal struct {
	UserID     int64  `json:"id"`
	UserCode   string `json:"userCode"`
	SchoolCode string `json:"schoolCode,omitempty"`
	Role       string `json:"role"`
	Email      string `json:"email,omitempty"`
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// HasRole reports whether the principal's role is one of roles.
func (p *Principal) HasRole(roles ...string) bool {
	if p == nil {
		return false
	}
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

// ScopedSchool returns the school a client principal is pinned to.
// Admins are unscoped and get "".
func (p *Principal) ScopedSchool() string {
	if p == nil || p.Role != RoleClient {
		return ""
	}
	return p.SchoolCode
}
