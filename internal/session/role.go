package session

// Role is the access level embedded in a session token.
type Role int

const (
	RoleUser Role = iota
	RoleVendor
	RoleAdmin
	RoleSuperAdmin
)

// ParseRole maps the role claim to a typed Role. Unknown values map to
// RoleUser, the least-privileged role, consistent with treating bad
// tokens as anonymous rather than erroring.
func ParseRole(s string) Role {
	switch s {
	case "SUPER_ADMIN":
		return RoleSuperAdmin
	case "ADMIN":
		return RoleAdmin
	case "VENDOR":
		return RoleVendor
	case "USER":
		return RoleUser
	default:
		return RoleUser
	}
}

// String returns the wire representation used by the backend.
func (r Role) String() string {
	switch r {
	case RoleSuperAdmin:
		return "SUPER_ADMIN"
	case RoleAdmin:
		return "ADMIN"
	case RoleVendor:
		return "VENDOR"
	case RoleUser:
		return "USER"
	default:
		return "USER"
	}
}

// Elevated reports whether the role bypasses vendor capability checks.
func (r Role) Elevated() bool {
	switch r {
	case RoleAdmin, RoleSuperAdmin:
		return true
	default:
		return false
	}
}

// MarshalJSON serializes the role as its wire string.
func (r Role) MarshalJSON() ([]byte, error) {
	return []byte(`"` + r.String() + `"`), nil
}

// UnmarshalJSON parses the wire string form of a role.
func (r *Role) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	*r = ParseRole(s)
	return nil
}
