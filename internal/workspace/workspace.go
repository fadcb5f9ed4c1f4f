// Package workspace assembles the per-browser access-control state: the
// credential store, both identity sessions and the two gateway clients bound
// to them.
package workspace

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/bizdash/internal/credential"
	"github.com/spec-kit/bizdash/internal/domain"
	"github.com/spec-kit/bizdash/internal/events"
	"github.com/spec-kit/bizdash/internal/gateway"
	"github.com/spec-kit/bizdash/internal/observability"
	"github.com/spec-kit/bizdash/internal/session"
)

// BrowserCookie names the cookie that keys a browser's session snapshots.
const BrowserCookie = "dash_sid"

const localsKey = "workspace"

// Options configure a Factory.
type Options struct {
	BaseURL    string
	LoginPath  string
	Timeout    time.Duration
	Transport  http.RoundTripper
	Persister  session.Persister
	Cookie     credential.CookieOptions
	Logger     *zap.Logger
	Metrics    *observability.Metrics
	Dispatcher events.Dispatcher
	Now        func() time.Time
}

// Factory builds workspaces sharing one transport and one snapshot persister.
type Factory struct {
	opts Options
}

// NewFactory fills defaults and returns a Factory.
func NewFactory(opts Options) *Factory {
	if opts.LoginPath == "" {
		opts.LoginPath = "/login"
	}
	if opts.Transport == nil {
		opts.Transport = http.DefaultTransport
	}
	if opts.Persister == nil {
		opts.Persister = session.NewMemoryPersister()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Dispatcher == nil {
		opts.Dispatcher = events.Nop{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Factory{opts: opts}
}

// Workspace is the access-control state of one browser for one request.
type Workspace struct {
	BrowserID   string
	Credentials credential.Provider
	Admin       *session.AdminSession
	Staff       *session.StaffSession
	AdminAPI    *gateway.Client
	StaffAPI    *gateway.Client

	mu             sync.Mutex
	redirect       string
	expired        domain.Domain
	expiredDomains map[domain.Domain]bool
}

// Open builds the workspace for c, issuing a browser id cookie on first visit.
func (f *Factory) Open(c *fiber.Ctx) (*Workspace, error) {
	sid := c.Cookies(BrowserCookie)
	if _, err := uuid.Parse(sid); err != nil {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     BrowserCookie,
			Value:    sid,
			Path:     "/",
			Domain:   f.opts.Cookie.Domain,
			Expires:  f.opts.Now().Add(credential.TTL),
			Secure:   f.opts.Cookie.Secure,
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
	creds := credential.NewCookieStore(c, f.opts.Cookie)
	return f.Assemble(c.UserContext(), sid, creds)
}

// Assemble builds a workspace over any credential provider and loads both
// sessions from the persister.
func (f *Factory) Assemble(ctx context.Context, browserID string, creds credential.Provider) (*Workspace, error) {
	if creds == nil {
		return nil, errors.New("workspace: credential provider required")
	}
	ws := &Workspace{BrowserID: browserID, Credentials: creds}

	sessOpts := session.Options{
		BrowserID:   browserID,
		Persister:   f.opts.Persister,
		Credentials: creds,
		Logger:      f.opts.Logger,
		Now:         f.opts.Now,
	}
	ws.Admin = session.NewAdminSession(sessOpts)
	ws.Staff = session.NewStaffSession(sessOpts)
	ws.Admin.Load(ctx)
	ws.Staff.Load(ctx)

	var err error
	ws.AdminAPI, err = f.client(ctx, ws, domain.DomainAdmin, func(ctx context.Context) { ws.Admin.Discard(ctx) })
	if err != nil {
		return nil, err
	}
	ws.StaffAPI, err = f.client(ctx, ws, domain.DomainStaff, func(ctx context.Context) { ws.Staff.Discard(ctx) })
	if err != nil {
		return nil, err
	}
	return ws, nil
}

func (f *Factory) client(ctx context.Context, ws *Workspace, d domain.Domain, discard func(context.Context)) (*gateway.Client, error) {
	nav := gateway.NavigatorFunc(func(path string) {
		// Concurrent calls can all see the same 401; only the first one logs out.
		if !ws.markExpired(d, path) {
			return
		}
		discard(ctx)
		f.opts.Metrics.RecordForcedLogout(string(d))
		_ = f.opts.Dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventSessionExpired,
			Actor:     events.Actor{Domain: d, BrowserID: ws.BrowserID},
			Timestamp: f.opts.Now(),
			Payload:   events.SessionExpiredPayload{RedirectTo: path},
		})
	})
	return gateway.New(gateway.Config{
		Domain:    d,
		BaseURL:   f.opts.BaseURL,
		LoginPath: f.opts.LoginPath,
		Transport: f.opts.Transport,
		Timeout:   f.opts.Timeout,
		Logger:    f.opts.Logger,
	}, ws.Credentials, nav)
}

// markExpired records the forced logout and reports whether d was not
// already expired in this workspace.
func (w *Workspace) markExpired(d domain.Domain, path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.expiredDomains[d] {
		return false
	}
	if w.expiredDomains == nil {
		w.expiredDomains = make(map[domain.Domain]bool, 2)
	}
	w.expiredDomains[d] = true
	w.redirect = path
	w.expired = d
	return true
}

// Redirect reports where a forced logout during this request sent the browser.
func (w *Workspace) Redirect() (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.redirect, w.redirect != ""
}

// Expired names the domain whose session was forced out, if any.
func (w *Workspace) Expired() (domain.Domain, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.expired, w.expired != ""
}

// Middleware opens a workspace for every request and stores it in Locals.
func Middleware(f *Factory) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ws, err := f.Open(c)
		if err != nil {
			return err
		}
		c.Locals(localsKey, ws)
		return c.Next()
	}
}

// From returns the workspace Middleware stored on c.
func From(c *fiber.Ctx) *Workspace {
	ws, _ := c.Locals(localsKey).(*Workspace)
	return ws
}
