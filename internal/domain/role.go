package domain

// RoleName enumerates the fixed account roles.
type RoleName string

const (
	RoleMember RoleName = "member"
	RoleStaff  RoleName = "staff"
	RoleAdmin  RoleName = "admin"
)

// Rank returns the position of the role in the hierarchy
// (member < staff < admin). Unknown roles rank below every known one.
func (r RoleName) Rank() int {
	switch r {
	case RoleMember:
		return 1
	case RoleStaff:
		return 2
	case RoleAdmin:
		return 3
	default:
		return 0
	}
}

// Known reports whether the role is one of the fixed set.
func (r RoleName) Known() bool {
	return r.Rank() > 0
}

// Role is reference data owned by the role directory.
type Role struct {
	ID   int64
	Name RoleName
}
