package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clothing-shop/internal/api/dto"
	"github.com/spec-kit/clothing-shop/internal/query"
	"github.com/spec-kit/clothing-shop/internal/service"
)

// RolesHandler exposes read access to the role directory.
type RolesHandler struct {
	roles *service.RoleService
}

// NewRolesHandler constructs handler.
func NewRolesHandler(roleService *service.RoleService) *RolesHandler {
	return &RolesHandler{roles: roleService}
}

// List handles GET /roles.
func (h *RolesHandler) List(c *fiber.Ctx) error {
	var req dto.RoleListQuery
	if err := c.QueryParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	roles, err := h.roles.List(c.Context(), query.Spec{
		Search:     req.Search,
		SortField:  req.SortBy,
		Descending: req.Descending,
		Page:       req.Page,
		PageSize:   req.PageSize,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"roles": dto.NewRoleResponses(roles)}})
}

// Get handles GET /roles/:id.
func (h *RolesHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return fiber.NewError(http.StatusBadRequest, "invalid role id")
	}

	role, err := h.roles.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"role": dto.RoleResponse{ID: role.ID, Name: role.Name}}})
}
