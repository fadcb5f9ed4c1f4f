package dto

import "github.com/spec-kit/bizdash/internal/domain"

// LoginRequest is shared by the admin and staff login endpoints.
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// AdminLoginResponse is returned by POST /admin/login.
type AdminLoginResponse struct {
	Token string       `json:"token"`
	Admin domain.Admin `json:"admin"`
}

// StaffLoginResponse is returned by POST /staff/login.
type StaffLoginResponse struct {
	Token string       `json:"token"`
	Staff domain.Staff `json:"staff"`
}

// RegisterRequest creates the bootstrap admin, or any admin when sent by a super-admin.
type RegisterRequest struct {
	Email       string            `json:"email" validate:"required,email"`
	Password    string            `json:"password" validate:"required,min=8"`
	FirstName   string            `json:"firstName" validate:"required,max=50"`
	LastName    string            `json:"lastName" validate:"required,max=50"`
	Role        *domain.AdminRole `json:"role,omitempty" validate:"omitempty,oneof=super-admin admin"`
	BusinessIDs []string          `json:"businessIds,omitempty"`
}

// MessageResponse is the body of soft-delete endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}
