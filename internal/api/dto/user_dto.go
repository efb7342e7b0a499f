package dto

import "github.com/spec-kit/fleet-admin/internal/domain"

// CreateUserRequest payload for admin-provisioned accounts.
type CreateUserRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

// UpdateUserRequest carries optional account changes.
type UpdateUserRequest struct {
	Name   *string            `json:"name"`
	Email  *string            `json:"email"`
	Role   *domain.Role       `json:"role"`
	Status *domain.UserStatus `json:"status"`
}
