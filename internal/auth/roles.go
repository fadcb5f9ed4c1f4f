package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/bizdash/pkg/util"
)

// RequireAdmin ensures an admin is authenticated.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Admin == nil {
			return apperrors.NewForbidden("admin required")
		}
		return c.Next()
	}
}

// RequireSuperAdmin ensures the admin principal holds the super-admin role.
func RequireSuperAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Admin == nil {
			return apperrors.NewForbidden("admin required")
		}
		if !principal.Admin.IsSuperAdmin() {
			return apperrors.NewForbidden("super-admin role required")
		}
		return c.Next()
	}
}

// RequireStaff ensures a staff member is authenticated.
func RequireStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Staff == nil {
			return apperrors.NewForbidden("staff required")
		}
		return c.Next()
	}
}
