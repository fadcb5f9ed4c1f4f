package backend

import (
	"context"

	"github.com/spec-kit/bizdash/internal/api/dto"
	"github.com/spec-kit/bizdash/internal/domain"
	"github.com/spec-kit/bizdash/internal/gateway"
)

// AdminAuthAPI covers /admin/login, /admin/register and /admin/me.
type AdminAuthAPI struct {
	gw *gateway.Client
}

// NewAdminAuthAPI binds the API to an admin-domain client.
func NewAdminAuthAPI(gw *gateway.Client) *AdminAuthAPI {
	return &AdminAuthAPI{gw: gw}
}

// Login exchanges credentials for a token and the admin record.
func (a *AdminAuthAPI) Login(ctx context.Context, req dto.LoginRequest) (*dto.AdminLoginResponse, error) {
	var resp dto.AdminLoginResponse
	if err := a.gw.Post(ctx, "/admin/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an admin.
func (a *AdminAuthAPI) Register(ctx context.Context, req dto.RegisterRequest) (*domain.Admin, error) {
	var admin domain.Admin
	if err := a.gw.Post(ctx, "/admin/register", req, &admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

// Me resolves the stored token to the current admin.
func (a *AdminAuthAPI) Me(ctx context.Context) (*domain.Admin, error) {
	var admin domain.Admin
	if err := a.gw.Get(ctx, "/admin/me", nil, &admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

// StaffAuthAPI covers /staff/login and /staff/me.
type StaffAuthAPI struct {
	gw *gateway.Client
}

// NewStaffAuthAPI binds the API to a staff-domain client.
func NewStaffAuthAPI(gw *gateway.Client) *StaffAuthAPI {
	return &StaffAuthAPI{gw: gw}
}

// Login exchanges credentials for a token and the staff record.
func (a *StaffAuthAPI) Login(ctx context.Context, req dto.LoginRequest) (*dto.StaffLoginResponse, error) {
	var resp dto.StaffLoginResponse
	if err := a.gw.Post(ctx, "/staff/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me resolves the stored token to the current staff member.
func (a *StaffAuthAPI) Me(ctx context.Context) (*domain.Staff, error) {
	var staff domain.Staff
	if err := a.gw.Get(ctx, "/staff/me", nil, &staff); err != nil {
		return nil, err
	}
	return &staff, nil
}
