package backend

import (
	"context"

	"github.com/spec-kit/bizdash/internal/api/dto"
	"github.com/spec-kit/bizdash/internal/domain"
	"github.com/spec-kit/bizdash/internal/gateway"
)

// AdminsAPI manages administrator accounts. The backend only serves it to super-admins.
type AdminsAPI struct {
	gw *gateway.Client
}

func NewAdminsAPI(gw *gateway.Client) *AdminsAPI {
	return &AdminsAPI{gw: gw}
}

func (a *AdminsAPI) List(ctx context.Context) ([]domain.Admin, error) {
	var admins []domain.Admin
	if err := a.gw.Get(ctx, "/admin/admins", nil, &admins); err != nil {
		return nil, err
	}
	return admins, nil
}

func (a *AdminsAPI) Get(ctx context.Context, id string) (*domain.Admin, error) {
	var admin domain.Admin
	if err := a.gw.Get(ctx, "/admin/admins/"+escape(id), nil, &admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

// Create goes through /admin/register, which the backend gates to super-admins
// once the bootstrap admin exists.
func (a *AdminsAPI) Create(ctx context.Context, req dto.RegisterRequest) (*domain.Admin, error) {
	var admin domain.Admin
	if err := a.gw.Post(ctx, "/admin/register", req, &admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

func (a *AdminsAPI) Update(ctx context.Context, id string, req dto.UpdateAdminRequest) (*domain.Admin, error) {
	var admin domain.Admin
	if err := a.gw.Put(ctx, "/admin/admins/"+escape(id), req, &admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

// Delete soft-deletes an admin.
func (a *AdminsAPI) Delete(ctx context.Context, id string) (*dto.MessageResponse, error) {
	var resp dto.MessageResponse
	if err := a.gw.Delete(ctx, "/admin/admins/"+escape(id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
