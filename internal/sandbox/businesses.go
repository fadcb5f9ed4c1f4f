package sandbox

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/bizdash/internal/access"
	"github.com/spec-kit/bizdash/internal/api/dto"
	"github.com/spec-kit/bizdash/internal/domain"
	"github.com/spec-kit/bizdash/internal/repository"
	apperrors "github.com/spec-kit/bizdash/pkg/util"
)

// listBusinesses returns only what the caller may see.
func (s *Server) listBusinesses(c *fiber.Ctx) error {
	all, err := s.repos.Businesses.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(access.Filter(principal(c).Identity(), all))
}

func (s *Server) createBusiness(c *fiber.Ctx) error {
	var req dto.CreateBusinessRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	now := s.now()
	b := &domain.Business{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Logo:        req.Logo,
		Website:     req.Website,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}
	if err := s.repos.Businesses.Create(c.UserContext(), b); err != nil {
		return conflict(err, "slug already in use")
	}
	return c.Status(http.StatusCreated).JSON(b)
}

// business loads an active business the caller may access.
func (s *Server) business(c *fiber.Ctx, id string) (*domain.Business, error) {
	if err := requireBusiness(c, id); err != nil {
		return nil, err
	}
	b, err := s.repos.Businesses.GetByID(c.UserContext(), id)
	if err != nil {
		return nil, notFound(err, "business", id)
	}
	if !b.IsActive {
		return nil, apperrors.NewNotFound("business", map[string]any{"id": id})
	}
	return b, nil
}

func (s *Server) getBusiness(c *fiber.Ctx) error {
	b, err := s.business(c, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(b)
}

func (s *Server) getBusinessBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	b, err := s.repos.Businesses.GetBySlug(c.UserContext(), slug)
	if err != nil {
		return notFound(err, "business", slug)
	}
	if err := requireBusiness(c, b.ID); err != nil {
		return err
	}
	if !b.IsActive {
		return apperrors.NewNotFound("business", map[string]any{"slug": slug})
	}
	return c.JSON(b)
}

func (s *Server) updateBusiness(c *fiber.Ctx) error {
	b, err := s.business(c, c.Params("id"))
	if err != nil {
		return err
	}
	var req dto.UpdateBusinessRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	if req.Name != nil {
		b.Name = *req.Name
	}
	if req.Slug != nil {
		b.Slug = *req.Slug
	}
	if req.Description != nil {
		b.Description = req.Description
	}
	if req.Logo != nil {
		b.Logo = req.Logo
	}
	if req.Website != nil {
		b.Website = req.Website
	}
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}
	b.UpdatedAt = s.now()
	if err := s.repos.Businesses.Update(c.UserContext(), b); err != nil {
		return conflict(err, "slug already in use")
	}
	return c.JSON(b)
}

func (s *Server) deleteBusiness(c *fiber.Ctx) error {
	b, err := s.business(c, c.Params("id"))
	if err != nil {
		return err
	}
	b.IsActive = false
	b.UpdatedAt = s.now()
	if err := s.repos.Businesses.Update(c.UserContext(), b); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Business deleted successfully"})
}

func (s *Server) uploadLogo(c *fiber.Ctx) error {
	b, err := s.business(c, c.Params("id"))
	if err != nil {
		return err
	}
	url, err := s.store(c, "businesses/"+b.ID+"/logo")
	if err != nil {
		return err
	}
	b.Logo = &url
	b.UpdatedAt = s.now()
	if err := s.repos.Businesses.Update(c.UserContext(), b); err != nil {
		return err
	}
	return c.JSON(dto.UploadLogoResponse{Message: "Logo uploaded successfully", Logo: url, Business: *b})
}

func (s *Server) listBusinessBlogs(c *fiber.Ctx) error {
	b, err := s.business(c, c.Params("id"))
	if err != nil {
		return err
	}
	var q dto.BlogQuery
	if err := c.QueryParser(&q); err != nil {
		return apperrors.NewValidationError("invalid query", nil)
	}
	if err := dto.Validate(q); err != nil {
		return err
	}
	filter := repository.BlogFilter{BusinessID: b.ID, Search: q.Search}
	if q.Status != "" && q.Status != "all" {
		status := domain.BlogStatus(q.Status)
		filter.Status = &status
	}
	pageNo, limit := pageParams(q.Page, q.Limit)
	filter.Limit, filter.Offset = limit, (pageNo-1)*limit

	blogs, total, err := s.repos.Blogs.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(domain.BlogPage{Data: blogs, Pagination: domain.NewPagination(pageNo, limit, total)})
}

func (s *Server) listBusinessStaff(c *fiber.Ctx) error {
	b, err := s.business(c, c.Params("id"))
	if err != nil {
		return err
	}
	var q dto.StaffQuery
	if err := c.QueryParser(&q); err != nil {
		return apperrors.NewValidationError("invalid query", nil)
	}
	if err := dto.Validate(q); err != nil {
		return err
	}
	filter := repository.StaffFilter{BusinessID: b.ID, Search: q.Search}
	if q.Status != "" {
		status := domain.StaffStatus(q.Status)
		filter.Status = &status
	}
	if q.EmploymentType != "" {
		et := domain.EmploymentType(q.EmploymentType)
		filter.EmploymentType = &et
	}
	pageNo, limit := pageParams(q.Page, q.Limit)
	filter.Limit, filter.Offset = limit, (pageNo-1)*limit

	staff, total, err := s.repos.Staff.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(domain.StaffPage{Data: staff, Pagination: domain.NewPagination(pageNo, limit, total)})
}

func pageParams(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
