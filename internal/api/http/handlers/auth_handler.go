package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bizdash/internal/api/dto"
	"github.com/spec-kit/bizdash/internal/guard"
	"github.com/spec-kit/bizdash/internal/service"
)

// StaffLandingPath is where a staff member lands after signing in.
const StaffLandingPath = "/dashboard"

// AuthHandler exposes the login, registration and logout endpoints of both domains.
type AuthHandler struct {
	admin *service.AuthService
	staff *service.StaffAuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(admin *service.AuthService, staff *service.StaffAuthService) *AuthHandler {
	return &AuthHandler{admin: admin, staff: staff}
}

// LoginPage GET /login. A signed-in browser is sent to its landing page.
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	ws, err := current(c)
	if err != nil {
		return err
	}
	switch {
	case ws.Admin.IsAuthenticated():
		return redirect(c, guard.LandingPath)
	case ws.Staff.IsAuthenticated():
		return redirect(c, StaffLandingPath)
	}
	// the loading flag lives for one request only, so the page never carries it
	return data(c, http.StatusOK, fiber.Map{"state": "login"})
}

// Login POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	ws, err := current(c)
	if err != nil {
		return err
	}
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	admin, err := h.admin.Login(c.UserContext(), ws, req)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, fiber.Map{"admin": admin, "redirect": guard.LandingPath})
}

// LoginStaff POST /login/staff.
func (h *AuthHandler) LoginStaff(c *fiber.Ctx) error {
	ws, err := current(c)
	if err != nil {
		return err
	}
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	staff, err := h.staff.Login(c.UserContext(), ws, req)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, fiber.Map{"staff": staff, "redirect": StaffLandingPath})
}

// Register POST /register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	ws, err := current(c)
	if err != nil {
		return err
	}
	var req dto.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	admin, err := h.admin.Register(c.UserContext(), ws, req)
	if err != nil {
		return err
	}
	return data(c, http.StatusCreated, fiber.Map{"admin": admin, "redirect": guard.LoginPath})
}

// Logout POST /logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	ws, err := current(c)
	if err != nil {
		return err
	}
	h.admin.Logout(c.UserContext(), ws)
	return redirectAfterPost(c, guard.LoginPath, fiber.Map{"message": "logged out"})
}

// LogoutStaff POST /staff/logout.
func (h *AuthHandler) LogoutStaff(c *fiber.Ctx) error {
	ws, err := current(c)
	if err != nil {
		return err
	}
	h.staff.Logout(c.UserContext(), ws)
	return redirectAfterPost(c, guard.LoginPath, fiber.Map{"message": "logged out"})
}

func redirect(c *fiber.Ctx, path string) error {
	c.Location(path)
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Status(fiber.StatusFound).JSON(fiber.Map{"redirect": path})
}
