package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bizdash/internal/api/dto"
	"github.com/spec-kit/bizdash/internal/service"
)

// SettingsHandler serves admin management under /settings.
type SettingsHandler struct {
	admins *service.AdminService
}

// NewSettingsHandler constructs handler.
func NewSettingsHandler(admins *service.AdminService) *SettingsHandler {
	return &SettingsHandler{admins: admins}
}

// ListAdmins GET /settings/admins.
func (h *SettingsHandler) ListAdmins(c *fiber.Ctx) error {
	ws, err := current(c)
	if err != nil {
		return err
	}
	admins, err := h.admins.List(c.UserContext(), ws)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, fiber.Map{"viewer": adminViewer(ws), "admins": admins})
}

// CreateAdmin POST /settings/create-admin.
func (h *SettingsHandler) CreateAdmin(c *fiber.Ctx) error {
	ws, err := current(c)
	if err != nil {
		return err
	}
	var req dto.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	admin, err := h.admins.Create(c.UserContext(), ws, req)
	if err != nil {
		return err
	}
	return data(c, http.StatusCreated, admin)
}

// GetAdmin GET /settings/admins/:id.
func (h *SettingsHandler) GetAdmin(c *fiber.Ctx) error {
	ws, err := current(c)
	if err != nil {
		return err
	}
	admin, err := h.admins.Get(c.UserContext(), ws, c.Params("id"))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, admin)
}

// UpdateAdmin PUT /settings/admins/:id.
func (h *SettingsHandler) UpdateAdmin(c *fiber.Ctx) error {
	ws, err := current(c)
	if err != nil {
		return err
	}
	var req dto.UpdateAdminRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	admin, err := h.admins.Update(c.UserContext(), ws, c.Params("id"), req)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, admin)
}

// DeleteAdmin DELETE /settings/admins/:id.
func (h *SettingsHandler) DeleteAdmin(c *fiber.Ctx) error {
	ws, err := current(c)
	if err != nil {
		return err
	}
	resp, err := h.admins.Delete(c.UserContext(), ws, c.Params("id"))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, resp)
}
