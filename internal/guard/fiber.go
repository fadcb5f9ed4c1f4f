package guard

import (
	"github.com/gofiber/fiber/v2"
)

// ViewFunc extracts the guard view from a request.
type ViewFunc func(c *fiber.Ctx) View

// Middleware runs a fresh Gate per request. On a redirect the protected handler
// never runs; the response is a 302 with a small fallback body.
func Middleware(p Policy, view ViewFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		gate := NewGate(p)
		decision := gate.Evaluate(view(c))
		if decision.Allow {
			return c.Next()
		}
		c.Location(decision.RedirectTo)
		c.Set(fiber.HeaderCacheControl, "no-store")
		return c.Status(fiber.StatusFound).JSON(fiber.Map{
			"state":    gate.State().String(),
			"redirect": decision.RedirectTo,
		})
	}
}
