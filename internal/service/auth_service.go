package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/bizdash/internal/api/dto"
	"github.com/spec-kit/bizdash/internal/backend"
	"github.com/spec-kit/bizdash/internal/config"
	"github.com/spec-kit/bizdash/internal/credential"
	"github.com/spec-kit/bizdash/internal/domain"
	"github.com/spec-kit/bizdash/internal/events"
	"github.com/spec-kit/bizdash/internal/gateway"
	"github.com/spec-kit/bizdash/internal/session"
	"github.com/spec-kit/bizdash/internal/workspace"
)

// AuthService coordinates the admin login, registration and logout flows.
type AuthService struct {
	deps       Dependencies
	staleAfter time.Duration
}

// NewAuthService builds the service.
func NewAuthService(cfg config.GatewayConfig, deps Dependencies) *AuthService {
	return &AuthService{deps: deps.withDefaults(), staleAfter: cfg.IdentityStale()}
}

// Login exchanges credentials for a token, stores it and records the admin.
// Invalid credentials leave both the credential store and the session untouched.
func (s *AuthService) Login(ctx context.Context, ws *workspace.Workspace, req dto.LoginRequest) (*domain.Admin, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	ws.Admin.SetLoading(true)
	defer ws.Admin.SetLoading(false)

	resp, err := backend.NewAdminAuthAPI(ws.AdminAPI).Login(ctx, req)
	if err != nil {
		return nil, err
	}
	ws.Credentials.Set(domain.DomainAdmin, resp.Token)
	ws.Admin.SetIdentity(ctx, resp.Admin)

	s.deps.Logger.Info("admin logged in", zap.String("admin_id", resp.Admin.ID))
	s.deps.publish(ctx, events.EventLoggedIn, adminActor(ws, resp.Admin), nil)
	return &resp.Admin, nil
}

// Register creates an admin. It does not sign the new admin in.
func (s *AuthService) Register(ctx context.Context, ws *workspace.Workspace, req dto.RegisterRequest) (*domain.Admin, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	return backend.NewAdminAuthAPI(ws.AdminAPI).Register(ctx, req)
}

// Rehydrate reconciles the persisted admin snapshot with the stored credential,
// asking the backend who the token belongs to when the snapshot is missing or stale.
func (s *AuthService) Rehydrate(ctx context.Context, ws *workspace.Workspace) error {
	return rehydrate(ctx, ws.Admin.Store, ws.Credentials, s.staleAfter, backend.NewAdminAuthAPI(ws.AdminAPI).Me, s.deps.Logger)
}

// Logout clears the admin credential and session. Calling it twice is harmless.
func (s *AuthService) Logout(ctx context.Context, ws *workspace.Workspace) {
	admin, ok := ws.Admin.Identity()
	ws.Admin.Logout(ctx)
	if ok {
		s.deps.publish(ctx, events.EventLoggedOut, adminActor(ws, admin), nil)
	}
}

func adminActor(ws *workspace.Workspace, a domain.Admin) events.Actor {
	return events.Actor{Domain: domain.DomainAdmin, ID: a.ID, Email: a.Email, BrowserID: ws.BrowserID}
}

func staffActor(ws *workspace.Workspace, s domain.Staff) events.Actor {
	return events.Actor{Domain: domain.DomainStaff, ID: s.ID, Email: s.Email, BrowserID: ws.BrowserID}
}

// rehydrate is shared by both domains.
//
// A missing credential means unauthenticated whatever the snapshot says. A
// fresh authenticated snapshot is trusted as is. Otherwise /me decides: an
// expired token has already been cleared by the gateway, and a transport
// failure keeps the cached identity.
func rehydrate[T domain.Identity](
	ctx context.Context,
	store *session.Store[T],
	creds credential.Getter,
	staleAfter time.Duration,
	me func(context.Context) (*T, error),
	logger *zap.Logger,
) error {
	if _, ok := creds.Get(store.Domain()); !ok {
		if store.IsAuthenticated() {
			store.Discard(ctx)
		}
		return nil
	}
	if store.IsAuthenticated() && !store.Stale(staleAfter) {
		return nil
	}

	store.SetLoading(true)
	defer store.SetLoading(false)

	identity, err := me(ctx)
	switch {
	case err == nil:
		store.SetIdentity(ctx, *identity)
		return nil
	case errors.Is(err, gateway.ErrSessionExpired):
		return nil
	case errors.Is(err, gateway.ErrTransport) && store.IsAuthenticated():
		logger.Warn("identity refresh failed; keeping cached identity",
			zap.String("domain", string(store.Domain())), zap.Error(err))
		return nil
	default:
		return err
	}
}
