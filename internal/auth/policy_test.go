package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/clothing-shop/internal/domain"
)

func TestDecide(t *testing.T) {
	cases := []struct {
		name   string
		caller domain.Identity
		target *Target
		want   Decision
	}{
		{
			name:   "missing target",
			caller: domain.Identity{SubjectID: 1, Role: domain.RoleAdmin},
			target: nil,
			want:   DecisionNotFound,
		},
		{
			name:   "admin sees admin",
			caller: domain.Identity{SubjectID: 1, Role: domain.RoleAdmin},
			target: &Target{OwnerID: 2, OwnerRole: domain.RoleAdmin},
			want:   DecisionAllow,
		},
		{
			name:   "admin sees member",
			caller: domain.Identity{SubjectID: 1, Role: domain.RoleAdmin},
			target: &Target{OwnerID: 9, OwnerRole: domain.RoleMember},
			want:   DecisionAllow,
		},
		{
			name:   "self access regardless of role",
			caller: domain.Identity{SubjectID: 5, Role: domain.RoleMember},
			target: &Target{OwnerID: 5, OwnerRole: domain.RoleMember},
			want:   DecisionAllow,
		},
		{
			name:   "staff sees member",
			caller: domain.Identity{SubjectID: 2, Role: domain.RoleStaff},
			target: &Target{OwnerID: 9, OwnerRole: domain.RoleMember},
			want:   DecisionAllow,
		},
		{
			name:   "staff sees other staff",
			caller: domain.Identity{SubjectID: 2, Role: domain.RoleStaff},
			target: &Target{OwnerID: 3, OwnerRole: domain.RoleStaff},
			want:   DecisionAllow,
		},
		{
			name:   "staff never sees admin",
			caller: domain.Identity{SubjectID: 2, Role: domain.RoleStaff},
			target: &Target{OwnerID: 1, OwnerRole: domain.RoleAdmin},
			want:   DecisionForbid,
		},
		{
			name:   "member cannot see others",
			caller: domain.Identity{SubjectID: 5, Role: domain.RoleMember},
			target: &Target{OwnerID: 6, OwnerRole: domain.RoleMember},
			want:   DecisionForbid,
		},
		{
			name:   "unknown caller role denied",
			caller: domain.Identity{SubjectID: 5, Role: "superuser"},
			target: &Target{OwnerID: 6, OwnerRole: domain.RoleMember},
			want:   DecisionForbid,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Decide(tc.caller, tc.target))
		})
	}
}

func TestCanListUsers(t *testing.T) {
	assert.True(t, CanListUsers(domain.Identity{Role: domain.RoleAdmin}))
	assert.False(t, CanListUsers(domain.Identity{Role: domain.RoleStaff}))
	assert.False(t, CanListUsers(domain.Identity{Role: domain.RoleMember}))
	assert.False(t, CanListUsers(domain.Identity{Role: "superuser"}))
}

func TestRoleRank(t *testing.T) {
	assert.Greater(t, domain.RoleAdmin.Rank(), domain.RoleStaff.Rank())
	assert.Greater(t, domain.RoleStaff.Rank(), domain.RoleMember.Rank())
	assert.Equal(t, 0, domain.RoleName("superuser").Rank())
	assert.False(t, domain.RoleName("superuser").Known())
}
