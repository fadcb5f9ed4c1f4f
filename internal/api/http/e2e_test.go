package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	httptransport "github.com/spec-kit/bizdash/internal/api/http"
	"github.com/spec-kit/bizdash/internal/api/http/handlers"
	"github.com/spec-kit/bizdash/internal/auth"
	"github.com/spec-kit/bizdash/internal/config"
	"github.com/spec-kit/bizdash/internal/events"
	"github.com/spec-kit/bizdash/internal/observability"
	"github.com/spec-kit/bizdash/internal/repository"
	"github.com/spec-kit/bizdash/internal/sandbox"
	"github.com/spec-kit/bizdash/internal/service"
	"github.com/spec-kit/bizdash/internal/workspace"
)

const (
	rootEmail    = "root@example.com"
	rootPassword = "root-password"
)

// fiberTransport hands backend calls straight to the sandbox app.
type fiberTransport struct{ app *fiber.App }

func (f fiberTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return f.app.Test(req, -1)
}

type harness struct {
	t       *testing.T
	app     *fiber.App
	repos   repository.Set
	metrics *observability.Metrics
	events  []events.Event
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{t: t, repos: repository.NewMemoryStore().Set(), metrics: observability.NewMetrics()}

	backend := sandbox.New(sandbox.Deps{
		Repos:      h.repos,
		Tokens:     auth.NewTokenManager("test-secret", time.Hour),
		BcryptCost: bcrypt.MinCost,
	})
	require.NoError(t, backend.Bootstrap(context.Background(), rootEmail, rootPassword))

	dispatcher := events.NewInMemoryDispatcher()
	for _, et := range []events.EventType{events.EventLoggedIn, events.EventLoggedOut, events.EventSessionExpired, events.EventAccessDenied} {
		dispatcher.Subscribe(et, func(_ context.Context, e events.Event) error {
			h.events = append(h.events, e)
			return nil
		})
	}

	factory := workspace.NewFactory(workspace.Options{
		BaseURL:    "http://backend.test",
		Transport:  fiberTransport{app: backend.App()},
		Metrics:    h.metrics,
		Dispatcher: dispatcher,
	})
	deps := service.Dependencies{Dispatcher: dispatcher}
	gw := config.GatewayConfig{}
	adminAuth := service.NewAuthService(gw, deps)
	staffAuth := service.NewStaffAuthService(gw, deps)

	h.app = fiber.New(fiber.Config{UnescapePath: true})
	httptransport.RegisterMiddlewares(h.app, zap.NewNop(), h.metrics, 0)
	httptransport.RegisterRoutes(h.app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler("bizdash", "test", nil),
		Auth:           handlers.NewAuthHandler(adminAuth, staffAuth),
		Business:       handlers.NewBusinessHandler(service.NewBusinessService(deps)),
		Blog:           handlers.NewBlogHandler(service.NewBlogService(deps)),
		Staff:          handlers.NewStaffHandler(service.NewStaffService(deps)),
		Settings:       handlers.NewSettingsHandler(service.NewAdminService(deps)),
		Portal:         handlers.NewPortalHandler(service.NewAttendanceService(deps)),
		Workspace:      factory,
		AdminAuth:      adminAuth,
		StaffAuth:      staffAuth,
		LoginPerMinute: 600,
		LoginBurst:     100,
	})
	return h
}

func (h *harness) countEvents(et events.EventType) int {
	n := 0
	for _, e := range h.events {
		if e.Type == et {
			n++
		}
	}
	return n
}

// browser keeps cookies between requests the way a real one would.
type browser struct {
	h       *harness
	cookies map[string]string
}

func (h *harness) browser() *browser {
	return &browser{h: h, cookies: map[string]string{}}
}

type result struct {
	status   int
	location string
	body     map[string]any
}

func (r result) data() map[string]any {
	d, _ := r.body["data"].(map[string]any)
	return d
}

func (r result) errorCode() string {
	e, _ := r.body["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}

func (b *browser) do(method, path string, body any) result {
	b.h.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(b.h.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for name, value := range b.cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}

	resp, err := b.h.app.Test(req, -1)
	require.NoError(b.h.t, err)
	defer resp.Body.Close()

	for _, c := range resp.Cookies() {
		if c.Value == "" || (!c.Expires.IsZero() && c.Expires.Before(time.Now())) {
			delete(b.cookies, c.Name)
			continue
		}
		b.cookies[c.Name] = c.Value
	}

	out := result{status: resp.StatusCode, location: resp.Header.Get("Location")}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(b.h.t, err)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out.body)
	}
	return out
}

func (b *browser) loginAdmin(email, password string) result {
	return b.do(http.MethodPost, "/login", map[string]string{"email": email, "password": password})
}

func (h *harness) rootBrowser() *browser {
	b := h.browser()
	res := b.loginAdmin(rootEmail, rootPassword)
	require.Equal(h.t, http.StatusOK, res.status)
	return b
}

func createBusiness(t *testing.T, b *browser, name, slug string) string {
	t.Helper()
	res := b.do(http.MethodPost, "/businesses", map[string]any{"name": name, "slug": slug})
	require.Equal(t, http.StatusCreated, res.status)
	id, _ := res.data()["_id"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestUnauthenticatedBrowserIsSentToLogin(t *testing.T) {
	h := newHarness(t)
	b := h.browser()

	for _, path := range []string{"/overview", "/settings/admins", "/business/anything"} {
		res := b.do(http.MethodGet, path, nil)
		require.Equal(t, http.StatusFound, res.status, path)
		require.Equal(t, "/login", res.location, path)
	}

	res := b.do(http.MethodGet, "/login", nil)
	require.Equal(t, http.StatusOK, res.status)
	require.Equal(t, "login", res.data()["state"])
	require.NotContains(t, res.data(), "loading")
	require.NotEmpty(t, b.cookies[workspace.BrowserCookie])
}

func TestInvalidCredentialsLeaveBrowserSignedOut(t *testing.T) {
	h := newHarness(t)
	b := h.browser()

	res := b.loginAdmin(rootEmail, "wrong-password")
	require.Equal(t, http.StatusUnauthorized, res.status)
	require.Equal(t, "INVALID_CREDENTIALS", res.errorCode())
	require.Empty(t, res.location)
	require.Zero(t, h.countEvents(events.EventSessionExpired))

	res = b.do(http.MethodGet, "/overview", nil)
	require.Equal(t, http.StatusFound, res.status)
	require.Equal(t, "/login", res.location)
}

func TestSuperAdminSeesEverything(t *testing.T) {
	h := newHarness(t)
	root := h.rootBrowser()
	require.Equal(t, 1, h.countEvents(events.EventLoggedIn))

	res := root.do(http.MethodGet, "/overview", nil)
	require.Equal(t, http.StatusOK, res.status)
	require.Equal(t, "empty", res.data()["state"])
	require.Equal(t, true, res.data()["canCreate"])

	acme := createBusiness(t, root, "Acme", "acme")
	createBusiness(t, root, "Globex", "globex")

	res = root.do(http.MethodGet, "/overview", nil)
	require.Equal(t, "ready", res.data()["state"])
	require.Len(t, res.data()["businesses"], 2)

	res = root.do(http.MethodGet, "/overview?search=glob", nil)
	require.Len(t, res.data()["businesses"], 1)

	res = root.do(http.MethodGet, "/overview?search=zzz", nil)
	require.Equal(t, "no_results", res.data()["state"])

	res = root.do(http.MethodGet, "/business/"+acme, nil)
	require.Equal(t, http.StatusOK, res.status)
	require.Equal(t, "Acme", res.data()["business"].(map[string]any)["name"])

	res = root.do(http.MethodGet, "/settings/admins", nil)
	require.Equal(t, http.StatusOK, res.status)
	require.Len(t, res.data()["admins"], 1)

	// the login page bounces a signed-in admin to the overview
	res = root.do(http.MethodGet, "/login", nil)
	require.Equal(t, http.StatusFound, res.status)
	require.Equal(t, "/overview", res.location)
}

func TestSlugLookups(t *testing.T) {
	h := newHarness(t)
	root := h.rootBrowser()
	acme := createBusiness(t, root, "Café Shop", "café shop")
	globex := createBusiness(t, root, "Globex", "globex")

	res := root.do(http.MethodGet, "/business/slug/caf%C3%A9%20shop", nil)
	require.Equal(t, http.StatusOK, res.status)
	require.Equal(t, acme, res.data()["_id"])

	res = root.do(http.MethodPost, "/business/"+acme+"/blog", map[string]any{
		"title": "Opening day", "slug": "opening day", "content": "Doors open at nine.",
	})
	require.Equal(t, http.StatusCreated, res.status)

	res = root.do(http.MethodGet, "/business/"+acme+"/blog/slug/opening%20day", nil)
	require.Equal(t, http.StatusOK, res.status)
	require.Equal(t, "Opening day", res.data()["title"])

	// a post is only found under the business that owns it
	res = root.do(http.MethodGet, "/business/"+globex+"/blog/slug/opening%20day", nil)
	require.Equal(t, http.StatusNotFound, res.status)

	res = root.do(http.MethodGet, "/business/slug/missing", nil)
	require.Equal(t, http.StatusNotFound, res.status)
}

func TestPlainAdminIsScopedToAllowlist(t *testing.T) {
	h := newHarness(t)
	root := h.rootBrowser()
	acme := createBusiness(t, root, "Acme", "acme")
	globex := createBusiness(t, root, "Globex", "globex")

	res := root.do(http.MethodPost, "/settings/create-admin", map[string]any{
		"email":       "plain@example.com",
		"password":    "plain-password",
		"firstName":   "Plain",
		"lastName":    "Admin",
		"role":        "admin",
		"businessIds": []string{acme},
	})
	require.Equal(t, http.StatusCreated, res.status)

	plain := h.browser()
	require.Equal(t, http.StatusOK, plain.loginAdmin("plain@example.com", "plain-password").status)

	res = plain.do(http.MethodGet, "/overview", nil)
	require.Equal(t, http.StatusOK, res.status)
	businesses := res.data()["businesses"].([]any)
	require.Len(t, businesses, 1)
	require.Equal(t, acme, businesses[0].(map[string]any)["_id"])
	require.Equal(t, false, res.data()["canCreate"])

	res = plain.do(http.MethodGet, "/business/"+acme, nil)
	require.Equal(t, http.StatusOK, res.status)

	res = plain.do(http.MethodGet, "/business/"+globex, nil)
	require.Equal(t, http.StatusForbidden, res.status)
	require.Equal(t, "NO_BUSINESS_ACCESS", res.errorCode())
	require.Equal(t, 1, h.countEvents(events.EventAccessDenied))

	// privilege shortfall lands on the overview, not the login page
	res = plain.do(http.MethodGet, "/settings/admins", nil)
	require.Equal(t, http.StatusFound, res.status)
	require.Equal(t, "/overview", res.location)

	res = plain.do(http.MethodPost, "/businesses", map[string]any{"name": "Initech", "slug": "initech"})
	require.Equal(t, http.StatusForbidden, res.status)
}

func TestAdminWithoutBusinessesGetsNoAccessState(t *testing.T) {
	h := newHarness(t)
	root := h.rootBrowser()
	createBusiness(t, root, "Acme", "acme")

	res := root.do(http.MethodPost, "/settings/create-admin", map[string]any{
		"email":     "idle@example.com",
		"password":  "idle-password",
		"firstName": "Idle",
		"lastName":  "Admin",
	})
	require.Equal(t, http.StatusCreated, res.status)

	idle := h.browser()
	require.Equal(t, http.StatusOK, idle.loginAdmin("idle@example.com", "idle-password").status)
	res = idle.do(http.MethodGet, "/overview", nil)
	require.Equal(t, http.StatusOK, res.status)
	require.Equal(t, "no_access", res.data()["state"])
}

func TestRevokedTokenForcesLogout(t *testing.T) {
	h := newHarness(t)
	root := h.rootBrowser()

	res := root.do(http.MethodPost, "/settings/create-admin", map[string]any{
		"email":     "temp@example.com",
		"password":  "temp-password",
		"firstName": "Temp",
		"lastName":  "Admin",
	})
	require.Equal(t, http.StatusCreated, res.status)
	tempID := res.data()["_id"].(string)

	temp := h.browser()
	require.Equal(t, http.StatusOK, temp.loginAdmin("temp@example.com", "temp-password").status)
	require.Equal(t, http.StatusOK, temp.do(http.MethodGet, "/overview", nil).status)

	res = root.do(http.MethodDelete, "/settings/admins/"+tempID, nil)
	require.Equal(t, http.StatusOK, res.status)

	// the cached identity is still fresh, so the first backend call discovers the revocation
	res = temp.do(http.MethodGet, "/overview", nil)
	require.Equal(t, http.StatusFound, res.status)
	require.Equal(t, "/login", res.location)
	require.Equal(t, "session_expired", res.body["state"])
	require.Empty(t, temp.cookies["admin_token"])
	require.Equal(t, 1, h.countEvents(events.EventSessionExpired))
	require.Equal(t, int64(1), h.metrics.Snapshot().ForcedLogouts["admin"])

	res = temp.do(http.MethodGet, "/overview", nil)
	require.Equal(t, http.StatusFound, res.status)
	require.Equal(t, "/login", res.location)

	// the other browser is unaffected
	require.Equal(t, http.StatusOK, root.do(http.MethodGet, "/overview", nil).status)
}

func TestLogoutIsIdempotent(t *testing.T) {
	h := newHarness(t)
	root := h.rootBrowser()

	res := root.do(http.MethodPost, "/logout", nil)
	require.Equal(t, http.StatusSeeOther, res.status)
	require.Equal(t, "/login", res.location)
	require.Equal(t, 1, h.countEvents(events.EventLoggedOut))

	res = root.do(http.MethodPost, "/logout", nil)
	require.Equal(t, http.StatusSeeOther, res.status)
	require.Equal(t, 1, h.countEvents(events.EventLoggedOut))

	res = root.do(http.MethodGet, "/overview", nil)
	require.Equal(t, http.StatusFound, res.status)
}

func TestStaffPortalRunsOnItsOwnCredential(t *testing.T) {
	h := newHarness(t)
	root := h.rootBrowser()
	acme := createBusiness(t, root, "Acme", "acme")

	res := root.do(http.MethodPost, "/business/"+acme+"/staff", map[string]any{
		"firstName":      "Sam",
		"lastName":       "Worker",
		"email":          "sam@example.com",
		"password":       "sam-password",
		"position":       "Barista",
		"dateHired":      "2024-01-02T00:00:00Z",
		"employmentType": "full-time",
	})
	require.Equal(t, http.StatusCreated, res.status)

	// the same browser signs into the staff domain; the admin session survives
	res = root.do(http.MethodPost, "/login/staff", map[string]string{"email": "sam@example.com", "password": "sam-password"})
	require.Equal(t, http.StatusOK, res.status)
	require.Equal(t, "/dashboard", res.data()["redirect"])

	res = root.do(http.MethodGet, "/dashboard", nil)
	require.Equal(t, http.StatusOK, res.status)
	require.Equal(t, "SW", res.data()["viewer"].(map[string]any)["initials"])
	require.Nil(t, res.data()["current"])

	require.Equal(t, http.StatusCreated, root.do(http.MethodPost, "/attendance/clock-in", nil).status)
	require.Equal(t, http.StatusBadRequest, root.do(http.MethodPost, "/attendance/clock-in", nil).status)

	res = root.do(http.MethodGet, "/dashboard", nil)
	require.NotNil(t, res.data()["current"])

	require.Equal(t, http.StatusOK, root.do(http.MethodPost, "/attendance/clock-out", nil).status)
	res = root.do(http.MethodGet, "/attendance", nil)
	require.Equal(t, http.StatusOK, res.status)
	require.Len(t, res.body["data"], 1)

	require.Equal(t, http.StatusOK, root.do(http.MethodGet, "/overview", nil).status)

	// signing out of staff leaves the admin slot alone
	require.Equal(t, http.StatusSeeOther, root.do(http.MethodPost, "/staff/logout", nil).status)
	require.Equal(t, http.StatusFound, root.do(http.MethodGet, "/dashboard", nil).status)
	require.Equal(t, http.StatusOK, root.do(http.MethodGet, "/overview", nil).status)
}

func TestStaffCannotReachAdminPages(t *testing.T) {
	h := newHarness(t)
	root := h.rootBrowser()
	acme := createBusiness(t, root, "Acme", "acme")
	res := root.do(http.MethodPost, "/business/"+acme+"/staff", map[string]any{
		"firstName":      "Sam",
		"lastName":       "Worker",
		"email":          "sam@example.com",
		"password":       "sam-password",
		"position":       "Barista",
		"dateHired":      "2024-01-02T00:00:00Z",
		"employmentType": "part-time",
	})
	require.Equal(t, http.StatusCreated, res.status)

	staff := h.browser()
	res = staff.do(http.MethodPost, "/login/staff", map[string]string{"email": "sam@example.com", "password": "sam-password"})
	require.Equal(t, http.StatusOK, res.status)

	res = staff.do(http.MethodGet, "/overview", nil)
	require.Equal(t, http.StatusFound, res.status)
	require.Equal(t, "/login", res.location)

	res = staff.do(http.MethodGet, "/login", nil)
	require.Equal(t, http.StatusFound, res.status)
	require.Equal(t, "/dashboard", res.location)
}

func TestHealthSkipsWorkspace(t *testing.T) {
	h := newHarness(t)
	b := h.browser()
	res := b.do(http.MethodGet, "/health/live", nil)
	require.Equal(t, http.StatusOK, res.status)
	require.Empty(t, b.cookies)
}
