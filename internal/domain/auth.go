package domain

// Role is the authenticated caller's role
type Role string

const (
	RoleAdmin Role = "admin"
	RoleHost  Role = "host"
)

// AuthClaims are the validated JWT claims for an admin/host caller
type AuthClaims struct {
	Subject string `json:"sub"`
	Email   string `json:"email,omitempty"`
	Role    Role   `json:"role"`
}

// IsAdmin reports whether the caller holds the admin role
func (c *AuthClaims) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}
