package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/bizdash/internal/api/dto"
	"github.com/spec-kit/bizdash/internal/backend"
	"github.com/spec-kit/bizdash/internal/domain"
	"github.com/spec-kit/bizdash/internal/workspace"
	apperrors "github.com/spec-kit/bizdash/pkg/util"
)

// AdminService manages admin accounts. Every operation is super-admin only.
type AdminService struct {
	deps Dependencies
}

func NewAdminService(deps Dependencies) *AdminService {
	return &AdminService{deps: deps.withDefaults()}
}

func (s *AdminService) List(ctx context.Context, ws *workspace.Workspace) ([]domain.Admin, error) {
	if _, err := requireSuperAdmin(ws); err != nil {
		return nil, err
	}
	return backend.NewAdminsAPI(ws.AdminAPI).List(ctx)
}

func (s *AdminService) Get(ctx context.Context, ws *workspace.Workspace, id string) (*domain.Admin, error) {
	if _, err := requireSuperAdmin(ws); err != nil {
		return nil, err
	}
	return backend.NewAdminsAPI(ws.AdminAPI).Get(ctx, id)
}

// Create registers a new admin on behalf of the signed-in super-admin.
func (s *AdminService) Create(ctx context.Context, ws *workspace.Workspace, req dto.RegisterRequest) (*domain.Admin, error) {
	actor, err := requireSuperAdmin(ws)
	if err != nil {
		return nil, err
	}
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	created, err := backend.NewAdminsAPI(ws.AdminAPI).Create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.deps.Logger.Info("admin created", zap.String("admin_id", created.ID), zap.String("by", actor.ID))
	return created, nil
}

// Update edits an admin. When the signed-in admin edits itself the session is
// refreshed with the result so role changes apply immediately.
func (s *AdminService) Update(ctx context.Context, ws *workspace.Workspace, id string, req dto.UpdateAdminRequest) (*domain.Admin, error) {
	actor, err := requireSuperAdmin(ws)
	if err != nil {
		return nil, err
	}
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	updated, err := backend.NewAdminsAPI(ws.AdminAPI).Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if updated.ID == actor.ID {
		ws.Admin.SetIdentity(ctx, *updated)
	}
	return updated, nil
}

// Delete soft-deletes an admin. A super-admin cannot delete itself.
func (s *AdminService) Delete(ctx context.Context, ws *workspace.Workspace, id string) (*dto.MessageResponse, error) {
	actor, err := requireSuperAdmin(ws)
	if err != nil {
		return nil, err
	}
	if id == actor.ID {
		return nil, apperrors.NewForbidden("cannot delete your own account")
	}
	return backend.NewAdminsAPI(ws.AdminAPI).Delete(ctx, id)
}
