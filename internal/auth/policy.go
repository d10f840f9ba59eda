package auth

import "github.com/spec-kit/clothing-shop/internal/domain"

// Decision is the outcome of an access check.
type Decision int

const (
	DecisionForbid Decision = iota
	DecisionAllow
	DecisionNotFound
)

// Target identifies the owner of the resource an access check applies to.
type Target struct {
	OwnerID   int64
	OwnerRole domain.RoleName
}

// Decide evaluates the role hierarchy for a caller acting on a target record.
// Pure function; the single source of truth for every role comparison.
//
// Rules, in order: missing target reports NotFound. Admins and self-access
// are always allowed. Staff may act on any target that is not an admin.
// Everything else, including unknown caller roles, is forbidden.
func Decide(caller domain.Identity, target *Target) Decision {
	if target == nil {
		return DecisionNotFound
	}
	if caller.Role == domain.RoleAdmin || caller.SubjectID == target.OwnerID {
		return DecisionAllow
	}
	if caller.Role == domain.RoleStaff && target.OwnerRole.Rank() < domain.RoleAdmin.Rank() {
		return DecisionAllow
	}
	return DecisionForbid
}

// CanListUsers gates collection-wide reads; only admins see the full listing.
func CanListUsers(caller domain.Identity) bool {
	return caller.Role == domain.RoleAdmin
}
