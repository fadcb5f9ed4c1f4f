package handlers

import (
	"io"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bizdash/internal/api/dto"
	"github.com/spec-kit/bizdash/internal/service"
)

// BusinessHandler serves the overview and business detail pages.
type BusinessHandler struct {
	service *service.BusinessService
}

// NewBusinessHandler constructs handler.
func NewBusinessHandler(svc *service.BusinessService) *BusinessHandler {
	return &BusinessHandler{service: svc}
}

// Overview GET /overview?search=.
//
// A plain admin with no visible business gets the no_access state instead of
// an empty grid.
func (h *BusinessHandler) Overview(c *fiber.Ctx) error {
	ws, err := current(c)
	if err != nil {
		return err
	}
	search := c.Query("search")
	businesses, err := h.service.List(c.UserContext(), ws, search)
	if err != nil {
		return err
	}
	state := "ready"
	if len(businesses) == 0 {
		switch {
		case search != "":
			state = "no_results"
		case !ws.Admin.IsSuperAdmin():
			state = "no_access"
		default:
			state = "empty"
		}
	}
	return data(c, http.StatusOK, fiber.Map{
		"viewer":     adminViewer(ws),
		"state":      state,
		"search":     search,
		"businesses": businesses,
		"canCreate":  ws.Admin.IsSuperAdmin(),
	})
}

// Create POST /businesses.
func (h *BusinessHandler) Create(c *fiber.Ctx) error {
	ws, err := current(c)
	if err != nil {
		return err
	}
	var req dto.CreateBusinessRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	business, err := h.service.Create(c.UserContext(), ws, req)
	if err != nil {
		return err
	}
	return data(c, http.StatusCreated, business)
}

// Get GET /business/:id. Query parameters page the blog and staff panels.
func (h *BusinessHandler) Get(c *fiber.Ctx) error {
	ws, err := current(c)
	if err != nil {
		return err
	}
	var blogs dto.BlogQuery
	if err := parseQuery(c, &blogs); err != nil {
		return err
	}
	var staff dto.StaffQuery
	if err := parseQuery(c, &staff); err != nil {
		return err
	}
	// the blog status filter does not apply to the staff panel
	staff.Status = c.Query("staffStatus")

	page, err := h.service.Page(c.UserContext(), ws, c.Params("id"), blogs, staff)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, fiber.Map{
		"viewer":   adminViewer(ws),
		"business": page.Business,
		"blogs":    page.Blogs,
		"staff":    page.Staff,
	})
}

// GetBySlug GET /business/slug/:slug returns the business alone, without the
// blog and staff panels.
func (h *BusinessHandler) GetBySlug(c *fiber.Ctx) error {
	ws, err := current(c)
	if err != nil {
		return err
	}
	business, err := h.service.GetBySlug(c.UserContext(), ws, c.Params("slug"))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, business)
}

// Update PUT /business/:id.
func (h *BusinessHandler) Update(c *fiber.Ctx) error {
	ws, err := current(c)
	if err != nil {
		return err
	}
	var req dto.UpdateBusinessRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	business, err := h.service.Update(c.UserContext(), ws, c.Params("id"), req)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, business)
}

// Delete DELETE /business/:id.
func (h *BusinessHandler) Delete(c *fiber.Ctx) error {
	ws, err := current(c)
	if err != nil {
		return err
	}
	resp, err := h.service.Delete(c.UserContext(), ws, c.Params("id"))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, resp)
}

// UploadLogo POST /business/:id/logo (multipart field "file").
func (h *BusinessHandler) UploadLogo(c *fiber.Ctx) error {
	ws, err := current(c)
	if err != nil {
		return err
	}
	return withUpload(c, func(filename string, file io.Reader) error {
		resp, err := h.service.UploadLogo(c.UserContext(), ws, c.Params("id"), filename, file)
		if err != nil {
			return err
		}
		return data(c, http.StatusOK, resp)
	})
}
