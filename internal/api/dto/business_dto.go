package dto

import "github.com/spec-kit/bizdash/internal/domain"

// CreateBusinessRequest payload.
type CreateBusinessRequest struct {
	Name        string  `json:"name" validate:"required,max=120"`
	Slug        string  `json:"slug" validate:"required,max=120"`
	Description *string `json:"description,omitempty"`
	Logo        *string `json:"logo,omitempty"`
	Website     *string `json:"website,omitempty" validate:"omitempty,url"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// UpdateBusinessRequest is a partial update.
type UpdateBusinessRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Slug        *string `json:"slug,omitempty" validate:"omitempty,min=1,max=120"`
	Description *string `json:"description,omitempty"`
	Logo        *string `json:"logo,omitempty"`
	Website     *string `json:"website,omitempty" validate:"omitempty,url"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// UploadLogoResponse is returned by POST /businesses/:id/logo.
type UploadLogoResponse struct {
	Message  string          `json:"message"`
	Logo     string          `json:"logo"`
	Business domain.Business `json:"business"`
}
