package handlers

import (
	"io"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bizdash/internal/api/dto"
	"github.com/spec-kit/bizdash/internal/service"
)

// BlogHandler serves /business/:id/blog.
type BlogHandler struct {
	service *service.BlogService
}

// NewBlogHandler constructs handler.
func NewBlogHandler(svc *service.BlogService) *BlogHandler {
	return &BlogHandler{service: svc}
}

// List GET /business/:id/blog?search=&page=&limit=&status=.
func (h *BlogHandler) List(c *fiber.Ctx) error {
	ws, err := current(c)
	if err != nil {
		return err
	}
	var q dto.BlogQuery
	if err := parseQuery(c, &q); err != nil {
		return err
	}
	page, err := h.service.List(c.UserContext(), ws, c.Params("id"), q)
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// Create POST /business/:id/blog.
func (h *BlogHandler) Create(c *fiber.Ctx) error {
	ws, err := current(c)
	if err != nil {
		return err
	}
	var req dto.CreateBlogRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	blog, err := h.service.Create(c.UserContext(), ws, c.Params("id"), req)
	if err != nil {
		return err
	}
	return data(c, http.StatusCreated, blog)
}

// Get GET /business/:id/blog/:blogId.
func (h *BlogHandler) Get(c *fiber.Ctx) error {
	ws, err := current(c)
	if err != nil {
		return err
	}
	blog, err := h.service.Get(c.UserContext(), ws, c.Params("id"), c.Params("blogId"))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, blog)
}

// GetBySlug GET /business/:id/blog/slug/:slug.
func (h *BlogHandler) GetBySlug(c *fiber.Ctx) error {
	ws, err := current(c)
	if err != nil {
		return err
	}
	blog, err := h.service.GetBySlug(c.UserContext(), ws, c.Params("id"), c.Params("slug"))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, blog)
}

// Update PUT /business/:id/blog/:blogId.
func (h *BlogHandler) Update(c *fiber.Ctx) error {
	ws, err := current(c)
	if err != nil {
		return err
	}
	var req dto.UpdateBlogRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	blog, err := h.service.Update(c.UserContext(), ws, c.Params("id"), c.Params("blogId"), req)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, blog)
}

// Delete DELETE /business/:id/blog/:blogId.
func (h *BlogHandler) Delete(c *fiber.Ctx) error {
	ws, err := current(c)
	if err != nil {
		return err
	}
	resp, err := h.service.Delete(c.UserContext(), ws, c.Params("id"), c.Params("blogId"))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, resp)
}

// UploadFeaturedImage POST /business/:id/blog/:blogId/featured-image.
func (h *BlogHandler) UploadFeaturedImage(c *fiber.Ctx) error {
	ws, err := current(c)
	if err != nil {
		return err
	}
	return withUpload(c, func(filename string, file io.Reader) error {
		resp, err := h.service.UploadFeaturedImage(c.UserContext(), ws, c.Params("id"), c.Params("blogId"), filename, file)
		if err != nil {
			return err
		}
		return data(c, http.StatusOK, resp)
	})
}
