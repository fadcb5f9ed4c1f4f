package http

import (
	"context"
	"errors"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/spec-kit/bizdash/internal/gateway"
	"github.com/spec-kit/bizdash/internal/observability"
	"github.com/spec-kit/bizdash/internal/workspace"
	apperrors "github.com/spec-kit/bizdash/pkg/util"
)

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration) {
	app.Use(observability.RequestID())
	app.Use(observability.RequestLogger(logger, metrics))
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(requestContextMiddleware())
	app.Use(errorHandlingMiddleware(logger, metrics))
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// requestContextMiddleware forwards the request id to backend calls.
func requestContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.SetUserContext(gateway.WithRequestID(c.UserContext(), observability.RequestIDFrom(c)))
		return c.Next()
	}
}

func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err == nil {
				return
			}
			if path, ok := expiredRedirect(c, err); ok {
				metrics.RecordError(c.Path(), c.Method(), "SESSION_EXPIRED")
				err = sessionExpired(c, path)
				return
			}

			domainErr := toDomainError(err)
			metrics.RecordError(c.Path(), c.Method(), domainErr.Code)
			response := fiber.Map{"error": fiber.Map{
				"code":    domainErr.Code,
				"message": domainErr.Message,
			}}
			if len(domainErr.Details) > 0 {
				response["error"].(fiber.Map)["details"] = domainErr.Details
			}
			if domainErr.HTTPStatus >= 500 {
				logger.Error("request failed",
					zap.Error(domainErr),
					zap.String("request_id", observability.RequestIDFrom(c)))
			}
			c.Status(domainErr.HTTPStatus)
			_ = c.JSON(response)
			err = nil
		}()
		return c.Next()
	}
}

// expiredRedirect reports the login path when err is a forced logout.
func expiredRedirect(c *fiber.Ctx, err error) (string, bool) {
	if ws := workspace.From(c); ws != nil {
		if path, ok := ws.Redirect(); ok {
			return path, true
		}
	}
	if errors.Is(err, gateway.ErrSessionExpired) {
		return "/login", true
	}
	return "", false
}

func sessionExpired(c *fiber.Ctx, path string) error {
	c.Location(path)
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Status(fiber.StatusFound).JSON(fiber.Map{
		"state":    "session_expired",
		"redirect": path,
	})
}

// toDomainError maps gateway failures onto the dashboard's error envelope.
func toDomainError(err error) *apperrors.DomainError {
	var apiErr *gateway.APIError
	var fiberErr *fiber.Error
	switch {
	case errors.Is(err, gateway.ErrTransport):
		return apperrors.NewUpstreamUnavailable(err).(*apperrors.DomainError)
	case errors.As(err, &apiErr):
		return fromAPIError(apiErr)
	case errors.As(err, &fiberErr):
		return apperrors.NewDomainError(codeForStatus(fiberErr.Code), fiberErr.Message, fiberErr.Code, nil)
	}
	return apperrors.ToDomainError(err)
}

func fromAPIError(e *gateway.APIError) *apperrors.DomainError {
	switch {
	case errors.Is(e, gateway.ErrInvalidCredentials):
		return apperrors.NewInvalidCredentials(e.Message).(*apperrors.DomainError)
	case errors.Is(e, gateway.ErrForbidden):
		return apperrors.NewForbidden(e.Message).(*apperrors.DomainError)
	}
	status := e.Status
	if status >= 500 {
		status = http.StatusBadGateway
	}
	return &apperrors.DomainError{
		Code:       codeForStatus(e.Status),
		Message:    e.Message,
		HTTPStatus: status,
		Err:        e,
	}
}

func codeForStatus(status int) string {
	switch {
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return "VALIDATION_FAILED"
	case status == http.StatusNotFound:
		return "NOT_FOUND"
	case status == http.StatusConflict:
		return "CONFLICT"
	case status == http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case status == http.StatusForbidden:
		return "FORBIDDEN"
	case status == http.StatusTooManyRequests:
		return "RATE_LIMITED"
	case status >= 500:
		return "UPSTREAM_ERROR"
	default:
		return "REQUEST_FAILED"
	}
}

// loginLimiter throttles login attempts per client address. Clients idle for
// longer than window are forgotten.
type loginLimiter struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	window    time.Duration
	now       func() time.Time
	lastSweep time.Time
	clients   map[string]*clientLimiter
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newLoginLimiter(perMinute, burst int) *loginLimiter {
	if perMinute <= 0 {
		perMinute = 10
	}
	if burst <= 0 {
		burst = 1
	}
	return &loginLimiter{
		limit:   rate.Every(time.Minute / time.Duration(perMinute)),
		burst:   burst,
		window:  5 * time.Minute,
		now:     time.Now,
		clients: make(map[string]*clientLimiter),
	}
}

func (l *loginLimiter) allow(ip string) bool {
	return l.limiterFor(ip).AllowN(l.now(), 1)
}

func (l *loginLimiter) limiterFor(ip string) *rate.Limiter {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) > l.window {
		l.cleanupLocked(now)
		l.lastSweep = now
	}
	if entry, ok := l.clients[ip]; ok {
		entry.lastSeen = now
		return entry.limiter
	}
	lim := rate.NewLimiter(l.limit, l.burst)
	l.clients[ip] = &clientLimiter{limiter: lim, lastSeen: now}
	return lim
}

func (l *loginLimiter) cleanupLocked(now time.Time) {
	for key, entry := range l.clients {
		if now.Sub(entry.lastSeen) > l.window {
			delete(l.clients, key)
		}
	}
}

func (l *loginLimiter) tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

func (l *loginLimiter) handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !l.allow(c.IP()) {
			return apperrors.NewDomainError("RATE_LIMITED", "too many login attempts", fiber.StatusTooManyRequests, nil)
		}
		return c.Next()
	}
}
