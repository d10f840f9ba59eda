package dto

import "github.com/spec-kit/clothing-shop/internal/domain"

// RoleListQuery carries listing parameters from the query string.
type RoleListQuery struct {
	Search     string `query:"search"`
	SortBy     string `query:"sort_by"`
	Descending bool   `query:"descending"`
	Page       int    `query:"page" validate:"omitempty,min=1"`
	PageSize   int    `query:"page_size" validate:"omitempty,min=1,max=100"`
}

// RoleResponse is the external role representation.
type RoleResponse struct {
	ID   int64           `json:"id"`
	Name domain.RoleName `json:"name"`
}

// NewRoleResponses maps domain roles to their external shape.
func NewRoleResponses(roles []domain.Role) []RoleResponse {
	out := make([]RoleResponse, 0, len(roles))
	for _, role := range roles {
		out = append(out, RoleResponse{ID: role.ID, Name: role.Name})
	}
	return out
}
