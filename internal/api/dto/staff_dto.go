package dto

import (
	"net/url"
	"strconv"
	"time"

	"github.com/spec-kit/bizdash/internal/domain"
)

// StaffQuery filters GET /businesses/:id/staff. Zero fields are omitted.
type StaffQuery struct {
	Search         string `query:"search"`
	Page           int    `query:"page"`
	Limit          int    `query:"limit"`
	Status         string `query:"status" validate:"omitempty,oneof=active on_leave terminated"`
	EmploymentType string `query:"employmentType" validate:"omitempty,oneof=full-time part-time contract"`
}

// Values encodes only the populated filters.
func (q StaffQuery) Values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.EmploymentType != "" {
		v.Set("employmentType", q.EmploymentType)
	}
	return v
}

// CreateStaffRequest payload.
type CreateStaffRequest struct {
	FirstName      string                `json:"firstName" validate:"required,max=50"`
	LastName       string                `json:"lastName" validate:"required,max=50"`
	Email          string                `json:"email" validate:"required,email"`
	Password       string                `json:"password,omitempty" validate:"omitempty,min=8"`
	Phone          *string               `json:"phone,omitempty"`
	Position       string                `json:"position" validate:"required"`
	Department     *string               `json:"department,omitempty"`
	DateHired      time.Time             `json:"dateHired" validate:"required"`
	Salary         *float64              `json:"salary,omitempty" validate:"omitempty,gte=0"`
	SalaryType     *domain.SalaryType    `json:"salaryType,omitempty" validate:"omitempty,oneof=hourly daily monthly annual"`
	EmploymentType domain.EmploymentType `json:"employmentType" validate:"required,oneof=full-time part-time contract"`
	BusinessID     string                `json:"businessId"`
	Status         *domain.StaffStatus   `json:"status,omitempty" validate:"omitempty,oneof=active on_leave terminated"`
	Notes          *string               `json:"notes,omitempty"`
}

// UpdateStaffRequest is a partial update. BusinessID cannot change: staff never
// cross tenant boundaries.
type UpdateStaffRequest struct {
	FirstName      *string                `json:"firstName,omitempty" validate:"omitempty,min=1,max=50"`
	LastName       *string                `json:"lastName,omitempty" validate:"omitempty,min=1,max=50"`
	Email          *string                `json:"email,omitempty" validate:"omitempty,email"`
	Password       *string                `json:"password,omitempty" validate:"omitempty,min=8"`
	Phone          *string                `json:"phone,omitempty"`
	Position       *string                `json:"position,omitempty"`
	Department     *string                `json:"department,omitempty"`
	DateHired      *time.Time             `json:"dateHired,omitempty"`
	Salary         *float64               `json:"salary,omitempty" validate:"omitempty,gte=0"`
	SalaryType     *domain.SalaryType     `json:"salaryType,omitempty" validate:"omitempty,oneof=hourly daily monthly annual"`
	EmploymentType *domain.EmploymentType `json:"employmentType,omitempty" validate:"omitempty,oneof=full-time part-time contract"`
	Status         *domain.StaffStatus    `json:"status,omitempty" validate:"omitempty,oneof=active on_leave terminated"`
	Notes          *string                `json:"notes,omitempty"`
	IsActive       *bool                  `json:"isActive,omitempty"`
}

// UploadPhotoResponse is returned by POST /staff/:id/photo.
type UploadPhotoResponse struct {
	Message  string       `json:"message"`
	PhotoURL string       `json:"photoUrl"`
	Staff    domain.Staff `json:"staff"`
}

// UploadDocumentResponse is returned by POST /staff/:id/documents.
type UploadDocumentResponse struct {
	Message     string       `json:"message"`
	DocumentURL string       `json:"documentUrl"`
	Staff       domain.Staff `json:"staff"`
}
