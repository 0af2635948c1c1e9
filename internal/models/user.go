package models

import "time"

type Role int

// Role constants
const (
	RoleStudent Role = 1
	RoleAdmin   Role = 2
)

// String returns the role name used in API responses
func (r Role) String() string {
	if r == RoleAdmin {
		return "ADMIN"
	}
	return "STUDENT"
}

// User represents a portal account
type User struct {
	ID              int       `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	Role            Role      `json:"role"` // 1=Student, 2=Admin
	PreferredLocale string    `json:"preferredLocale"`
	CreatedAt       time.Time `json:"createdAt"`
}

// UserToken represents a stored refresh token
type UserToken struct {
	ID     int    `json:"id"`
	UserID int    `json:"userId"`
	Token  string `json:"token"`
}

// RegisterRequest represents the registration payload
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterResponse is returned after a successful registration
type RegisterResponse struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
}

// UpdateProfileRequest represents a partial profile update
type UpdateProfileRequest struct {
	Name            *string `json:"name,omitempty" validate:"omitempty,min=1"`
	PreferredLocale *string `json:"preferredLocale,omitempty" validate:"omitempty,oneof=he en"`
}

// ProfileResponse represents the current user's profile
type ProfileResponse struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	PreferredLocale string `json:"preferredLocale"`
}

// CreateAdminRequest is used by the operator CLI
type CreateAdminRequest struct {
	Name     string `validate:"required,min=2"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}
