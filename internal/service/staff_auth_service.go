package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/bizdash/internal/api/dto"
	"github.com/spec-kit/bizdash/internal/backend"
	"github.com/spec-kit/bizdash/internal/config"
	"github.com/spec-kit/bizdash/internal/domain"
	"github.com/spec-kit/bizdash/internal/events"
	"github.com/spec-kit/bizdash/internal/workspace"
)

// StaffAuthService is the staff-domain counterpart of AuthService.
type StaffAuthService struct {
	deps       Dependencies
	staleAfter time.Duration
}

func NewStaffAuthService(cfg config.GatewayConfig, deps Dependencies) *StaffAuthService {
	return &StaffAuthService{deps: deps.withDefaults(), staleAfter: cfg.IdentityStale()}
}

func (s *StaffAuthService) Login(ctx context.Context, ws *workspace.Workspace, req dto.LoginRequest) (*domain.Staff, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	ws.Staff.SetLoading(true)
	defer ws.Staff.SetLoading(false)

	resp, err := backend.NewStaffAuthAPI(ws.StaffAPI).Login(ctx, req)
	if err != nil {
		return nil, err
	}
	ws.Credentials.Set(domain.DomainStaff, resp.Token)
	ws.Staff.SetIdentity(ctx, resp.Staff)

	s.deps.Logger.Info("staff logged in", zap.String("staff_id", resp.Staff.ID))
	s.deps.publish(ctx, events.EventLoggedIn, staffActor(ws, resp.Staff), nil)
	return &resp.Staff, nil
}

func (s *StaffAuthService) Rehydrate(ctx context.Context, ws *workspace.Workspace) error {
	return rehydrate(ctx, ws.Staff.Store, ws.Credentials, s.staleAfter, backend.NewStaffAuthAPI(ws.StaffAPI).Me, s.deps.Logger)
}

func (s *StaffAuthService) Logout(ctx context.Context, ws *workspace.Workspace) {
	staff, ok := ws.Staff.Identity()
	ws.Staff.Logout(ctx)
	if ok {
		s.deps.publish(ctx, events.EventLoggedOut, staffActor(ws, staff), nil)
	}
}
