package credential_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/bizdash/internal/credential"
	"github.com/spec-kit/bizdash/internal/domain"
)

func TestCookieStoreWritesScopedCookies(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		store := credential.NewCookieStore(c, credential.CookieOptions{})
		store.Set(domain.DomainStaff, "staff-token")

		admin, adminOK := store.Get(domain.DomainAdmin)
		staff, staffOK := store.Get(domain.DomainStaff)
		return c.JSON(fiber.Map{"admin": admin, "adminOK": adminOK, "staff": staff, "staffOK": staffOK})
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "admin_token", Value: "admin-token"})
	resp, err := app.Test(req)
	require.NoError(t, err)

	var staffCookie *http.Cookie
	for _, ck := range resp.Cookies() {
		require.NotEqual(t, "admin_token", ck.Name)
		if ck.Name == "staff_token" {
			staffCookie = ck
		}
	}
	require.NotNil(t, staffCookie)
	require.Equal(t, "staff-token", staffCookie.Value)
	require.Equal(t, "/", staffCookie.Path)
	require.Equal(t, http.SameSiteLaxMode, staffCookie.SameSite)
	require.True(t, staffCookie.HttpOnly)
}

func TestCookieStoreClearShadowsRequestCookie(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		store := credential.NewCookieStore(c, credential.CookieOptions{})
		before, _ := store.Get(domain.DomainAdmin)
		store.Clear(domain.DomainAdmin)
		_, after := store.Get(domain.DomainAdmin)
		return c.JSON(fiber.Map{"before": before, "after": after})
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "admin_token", Value: "admin-token"})
	resp, err := app.Test(req)
	require.NoError(t, err)

	var cleared bool
	for _, ck := range resp.Cookies() {
		if ck.Name == "admin_token" {
			cleared = ck.Value == "" && ck.Expires.Unix() <= 0
		}
	}
	require.True(t, cleared)
}
