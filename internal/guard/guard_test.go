package guard_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/bizdash/internal/domain"
	"github.com/spec-kit/bizdash/internal/guard"
	"github.com/spec-kit/bizdash/internal/session"
)

func TestDecideRequireAuthenticated(t *testing.T) {
	require.Equal(t, guard.Redirect("/login"), guard.Decide(guard.RequireAuthenticated, guard.View{}))
	require.Equal(t, guard.Allowed(), guard.Decide(guard.RequireAuthenticated, guard.View{Authenticated: true}))
}

func TestDecideRequireSuperAdmin(t *testing.T) {
	require.Equal(t, guard.Redirect("/login"), guard.Decide(guard.RequireSuperAdmin, guard.View{}))
	require.Equal(t, guard.Redirect("/login"), guard.Decide(guard.RequireSuperAdmin, guard.View{SuperAdmin: true}))
	require.Equal(t, guard.Redirect("/overview"), guard.Decide(guard.RequireSuperAdmin, guard.View{Authenticated: true}))
	require.Equal(t, guard.Allowed(), guard.Decide(guard.RequireSuperAdmin, guard.View{Authenticated: true, SuperAdmin: true}))
}

func TestDecideRequireStaff(t *testing.T) {
	require.Equal(t, guard.Redirect("/login"), guard.Decide(guard.RequireStaff, guard.View{}))
	require.True(t, guard.Decide(guard.RequireStaff, guard.View{Authenticated: true}).Allow)
}

func TestGateStateMachine(t *testing.T) {
	gate := guard.NewGate(guard.RequireSuperAdmin)
	require.Equal(t, guard.Checking, gate.State())

	d := gate.Evaluate(guard.View{Authenticated: true})
	require.Equal(t, "/overview", d.RedirectTo)
	require.Equal(t, guard.Redirecting, gate.State())

	// terminal until reset, even if the session changes meanwhile
	d = gate.Evaluate(guard.View{Authenticated: true, SuperAdmin: true})
	require.False(t, d.Allow)

	gate.Reset()
	require.Equal(t, guard.Checking, gate.State())
	d = gate.Evaluate(guard.View{Authenticated: true, SuperAdmin: true})
	require.True(t, d.Allow)
	require.Equal(t, guard.Allowing, gate.State())
}

func TestViewsFromSessions(t *testing.T) {
	ctx := context.Background()
	admin := session.NewAdminSession(session.Options{})
	require.Equal(t, guard.View{}, guard.AdminView(admin))

	admin.SetIdentity(ctx, domain.Admin{ID: "a", Role: domain.AdminRoleSuperAdmin})
	require.Equal(t, guard.View{Authenticated: true, SuperAdmin: true}, guard.AdminView(admin))

	staff := session.NewStaffSession(session.Options{})
	staff.SetIdentity(ctx, domain.Staff{ID: "s", BusinessID: "b1"})
	require.Equal(t, guard.View{Authenticated: true}, guard.StaffView(staff))
	require.Equal(t, guard.View{}, guard.AdminView(nil))
}

func newGuardedApp(view guard.View) *fiber.App {
	app := fiber.New()
	app.Get("/settings", guard.Middleware(guard.RequireSuperAdmin, func(*fiber.Ctx) guard.View { return view }),
		func(c *fiber.Ctx) error { return c.SendString("protected settings") })
	return app
}

func TestMiddlewareRedirectsWithoutRendering(t *testing.T) {
	cases := []struct {
		name     string
		view     guard.View
		location string
	}{
		{"anonymous", guard.View{}, "/login"},
		{"plain admin", guard.View{Authenticated: true}, "/overview"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := newGuardedApp(tc.view).Test(httptest.NewRequest(http.MethodGet, "/settings", nil))
			require.NoError(t, err)
			require.Equal(t, http.StatusFound, resp.StatusCode)
			require.Equal(t, tc.location, resp.Header.Get("Location"))
			body, _ := io.ReadAll(resp.Body)
			require.NotContains(t, string(body), "protected settings")
		})
	}
}

func TestMiddlewareAllowsSuperAdmin(t *testing.T) {
	resp, err := newGuardedApp(guard.View{Authenticated: true, SuperAdmin: true}).
		Test(httptest.NewRequest(http.MethodGet, "/settings", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	require.Equal(t, "protected settings", string(body))
}
