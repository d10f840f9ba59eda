package dto

import (
	"time"

	"github.com/spec-kit/clothing-shop/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Username    string     `json:"username" validate:"required,min=3,max=64"`
	Password    string     `json:"password" validate:"required,min=8,max=128"`
	FullName    string     `json:"full_name" validate:"required,max=128"`
	Gender      string     `json:"gender" validate:"omitempty,oneof=male female other"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Address     string     `json:"address" validate:"max=256"`
	Phone       string     `json:"phone" validate:"max=32"`
	Email       string     `json:"email" validate:"required,email"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UpdateProfileRequest payload for profile updates.
type UpdateProfileRequest struct {
	FullName    string     `json:"full_name" validate:"required,max=128"`
	Gender      string     `json:"gender" validate:"omitempty,oneof=male female other"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Address     string     `json:"address" validate:"max=256"`
	Phone       string     `json:"phone" validate:"max=32"`
	Email       string     `json:"email" validate:"required,email"`
	Avatar      string     `json:"avatar" validate:"omitempty,url"`
}

// ChangePasswordRequest payload for password changes.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=128"`
}

// UserResponse is the external account representation. The password hash
// never leaves the service.
type UserResponse struct {
	ID          int64           `json:"id"`
	Username    string          `json:"username"`
	FullName    string          `json:"full_name"`
	Gender      string          `json:"gender,omitempty"`
	DateOfBirth *time.Time      `json:"date_of_birth,omitempty"`
	Address     string          `json:"address,omitempty"`
	Phone       string          `json:"phone,omitempty"`
	Email       string          `json:"email"`
	Avatar      string          `json:"avatar,omitempty"`
	RoleID      int64           `json:"role_id"`
	RoleName    domain.RoleName `json:"role_name"`
	Deactivated bool            `json:"deactivated"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NewUserResponse maps a domain user to its external shape.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		FullName:    user.FullName,
		Gender:      user.Gender,
		DateOfBirth: user.DateOfBirth,
		Address:     user.Address,
		Phone:       user.Phone,
		Email:       user.Email,
		Avatar:      user.Avatar,
		RoleID:      user.RoleID,
		RoleName:    user.RoleName,
		Deactivated: user.Deactivated,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}
