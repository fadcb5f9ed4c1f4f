package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/bizdash/internal/events"
)

// AuditService writes session lifecycle events to the log.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventLoggedIn, a.handle)
	a.dispatcher.Subscribe(events.EventLoggedOut, a.handle)
	a.dispatcher.Subscribe(events.EventSessionExpired, a.handle)
	a.dispatcher.Subscribe(events.EventAccessDenied, a.handle)
}

func (a *AuditService) handle(_ context.Context, event events.Event) error {
	a.logger.Info(string(event.Type),
		zap.String("event_id", event.ID),
		zap.String("domain", string(event.Actor.Domain)),
		zap.String("actor_id", event.Actor.ID),
		zap.String("browser_id", event.Actor.BrowserID),
		zap.Time("at", event.Timestamp),
		zap.Any("payload", event.Payload))
	return nil
}
