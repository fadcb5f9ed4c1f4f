package handlers

import (
	"io"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bizdash/internal/api/dto"
	"github.com/spec-kit/bizdash/internal/service"
)

// StaffHandler serves the staff roster of a business.
type StaffHandler struct {
	service *service.StaffService
}

// NewStaffHandler constructs handler.
func NewStaffHandler(svc *service.StaffService) *StaffHandler {
	return &StaffHandler{service: svc}
}

// List GET /business/:id/staff.
func (h *StaffHandler) List(c *fiber.Ctx) error {
	ws, err := current(c)
	if err != nil {
		return err
	}
	var q dto.StaffQuery
	if err := parseQuery(c, &q); err != nil {
		return err
	}
	page, err := h.service.List(c.UserContext(), ws, c.Params("id"), q)
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// Create POST /business/:id/staff.
func (h *StaffHandler) Create(c *fiber.Ctx) error {
	ws, err := current(c)
	if err != nil {
		return err
	}
	var req dto.CreateStaffRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	member, err := h.service.Create(c.UserContext(), ws, c.Params("id"), req)
	if err != nil {
		return err
	}
	return data(c, http.StatusCreated, member)
}

// Get GET /business/:id/staff/:staffId.
func (h *StaffHandler) Get(c *fiber.Ctx) error {
	ws, err := current(c)
	if err != nil {
		return err
	}
	member, err := h.service.Get(c.UserContext(), ws, c.Params("id"), c.Params("staffId"))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, member)
}

// Update PUT /business/:id/staff/:staffId.
func (h *StaffHandler) Update(c *fiber.Ctx) error {
	ws, err := current(c)
	if err != nil {
		return err
	}
	var req dto.UpdateStaffRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	member, err := h.service.Update(c.UserContext(), ws, c.Params("id"), c.Params("staffId"), req)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, member)
}

// Delete DELETE /business/:id/staff/:staffId.
func (h *StaffHandler) Delete(c *fiber.Ctx) error {
	ws, err := current(c)
	if err != nil {
		return err
	}
	resp, err := h.service.Delete(c.UserContext(), ws, c.Params("id"), c.Params("staffId"))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, resp)
}

// UploadPhoto POST /business/:id/staff/:staffId/photo.
func (h *StaffHandler) UploadPhoto(c *fiber.Ctx) error {
	ws, err := current(c)
	if err != nil {
		return err
	}
	return withUpload(c, func(filename string, file io.Reader) error {
		resp, err := h.service.UploadPhoto(c.UserContext(), ws, c.Params("id"), c.Params("staffId"), filename, file)
		if err != nil {
			return err
		}
		return data(c, http.StatusOK, resp)
	})
}

// UploadDocument POST /business/:id/staff/:staffId/documents.
func (h *StaffHandler) UploadDocument(c *fiber.Ctx) error {
	ws, err := current(c)
	if err != nil {
		return err
	}
	return withUpload(c, func(filename string, file io.Reader) error {
		resp, err := h.service.UploadDocument(c.UserContext(), ws, c.Params("id"), c.Params("staffId"), filename, file)
		if err != nil {
			return err
		}
		return data(c, http.StatusOK, resp)
	})
}
