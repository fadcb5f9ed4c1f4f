// Package service holds the dashboard flows. Each flow works on the caller's
// workspace and reaches the backend only through that workspace's gateway
// clients.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/bizdash/internal/access"
	"github.com/spec-kit/bizdash/internal/domain"
	"github.com/spec-kit/bizdash/internal/events"
	"github.com/spec-kit/bizdash/internal/workspace"
	apperrors "github.com/spec-kit/bizdash/pkg/util"
)

// Dependencies are shared by every service.
type Dependencies struct {
	Logger     *zap.Logger
	Dispatcher events.Dispatcher
	Now        func() time.Time
}

func (d Dependencies) withDefaults() Dependencies {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Dispatcher == nil {
		d.Dispatcher = events.Nop{}
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

func (d Dependencies) publish(ctx context.Context, typ events.EventType, actor events.Actor, payload any) {
	err := d.Dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      typ,
		Actor:     actor,
		Timestamp: d.Now(),
		Payload:   payload,
	})
	if err != nil {
		d.Logger.Warn("event handler failed", zap.String("event", string(typ)), zap.Error(err))
	}
}

// currentAdmin returns the signed-in admin or UNAUTHORIZED.
func currentAdmin(ws *workspace.Workspace) (domain.Admin, error) {
	admin, ok := ws.Admin.Identity()
	if !ok {
		return domain.Admin{}, apperrors.NewUnauthorized("admin session required")
	}
	return admin, nil
}

func currentStaff(ws *workspace.Workspace) (domain.Staff, error) {
	staff, ok := ws.Staff.Identity()
	if !ok {
		return domain.Staff{}, apperrors.NewUnauthorized("staff session required")
	}
	return staff, nil
}

func requireSuperAdmin(ws *workspace.Workspace) (domain.Admin, error) {
	admin, err := currentAdmin(ws)
	if err != nil {
		return admin, err
	}
	if !admin.IsSuperAdmin() {
		return admin, apperrors.NewForbidden("super-admin role required")
	}
	return admin, nil
}

// scope applies the business-access policy to the signed-in admin before any
// backend call and audits refusals.
type scope struct {
	deps Dependencies
}

func (s scope) authorize(ctx context.Context, ws *workspace.Workspace, businessID, operation string) (domain.Admin, error) {
	admin, err := currentAdmin(ws)
	if err != nil {
		return admin, err
	}
	if err := access.Require(admin, businessID); err != nil {
		s.deps.Logger.Info("business access denied",
			zap.String("admin_id", admin.ID),
			zap.String("business_id", businessID),
			zap.String("operation", operation))
		s.deps.publish(ctx, events.EventAccessDenied,
			events.Actor{Domain: domain.DomainAdmin, ID: admin.ID, Email: admin.Email, BrowserID: ws.BrowserID},
			events.AccessDeniedPayload{BusinessID: businessID, Operation: operation})
		return admin, err
	}
	return admin, nil
}
