package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clothing-shop/internal/api/dto"
	"github.com/spec-kit/clothing-shop/internal/auth"
	"github.com/spec-kit/clothing-shop/internal/domain"
	"github.com/spec-kit/clothing-shop/internal/service"
)

// UsersHandler exposes user-record endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// List handles GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	caller, err := requireIdentity(c)
	if err != nil {
		return err
	}

	users, err := h.users.List(c.Context(), caller)
	if err != nil {
		return err
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"users": out}})
}

// Get handles GET /users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	caller, err := requireIdentity(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}

	user, err := h.users.Get(c.Context(), caller, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"user": dto.NewUserResponse(user)}})
}

// Update handles PUT /users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	caller, err := requireIdentity(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, err := h.users.UpdateProfile(c.Context(), caller, id, service.ProfileUpdate{
		FullName:    req.FullName,
		Gender:      req.Gender,
		DateOfBirth: req.DateOfBirth,
		Address:     req.Address,
		Phone:       req.Phone,
		Email:       req.Email,
		Avatar:      req.Avatar,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"user": dto.NewUserResponse(user)}})
}

// ChangePassword handles PUT /users/:id/password.
func (h *UsersHandler) ChangePassword(c *fiber.Ctx) error {
	caller, err := requireIdentity(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	if err := h.users.ChangePassword(c.Context(), caller, id, req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "password_changed"}})
}

// Deactivate handles DELETE /users/:id.
func (h *UsersHandler) Deactivate(c *fiber.Ctx) error {
	caller, err := requireIdentity(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.users.Deactivate(c.Context(), caller, id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "deactivated"}})
}

// Reactivate handles PUT /users/:id/recovery.
func (h *UsersHandler) Reactivate(c *fiber.Ctx) error {
	caller, err := requireIdentity(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.users.Reactivate(c.Context(), caller, id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "reactivated"}})
}

func requireIdentity(c *fiber.Ctx) (domain.Identity, error) {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return domain.Identity{}, fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	return identity, nil
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(http.StatusBadRequest, "invalid user id")
	}
	return id, nil
}
