package dto

import "github.com/spec-kit/bizdash/internal/domain"

// UpdateAdminRequest is a partial update; nil fields are left untouched.
type UpdateAdminRequest struct {
	Email       *string           `json:"email,omitempty" validate:"omitempty,email"`
	FirstName   *string           `json:"firstName,omitempty" validate:"omitempty,min=1,max=50"`
	LastName    *string           `json:"lastName,omitempty" validate:"omitempty,min=1,max=50"`
	Role        *domain.AdminRole `json:"role,omitempty" validate:"omitempty,oneof=super-admin admin"`
	BusinessIDs *[]string         `json:"businessIds,omitempty"`
	IsActive    *bool             `json:"isActive,omitempty"`
}
