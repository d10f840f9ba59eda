package domain

import "time"

// User is the domain model for shop accounts.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	FullName     string
	Gender       string
	DateOfBirth  *time.Time
	Address      string
	Phone        string
	Email        string
	Avatar       string
	RoleID       int64
	RoleName     RoleName
	Deactivated  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
