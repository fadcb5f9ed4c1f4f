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

// listBlogs spans every business the caller can access, optionally narrowed
// by ?businessId and ?status.
func (s *Server) listBlogs(c *fiber.Ctx) error {
	filter := repository.BlogFilter{BusinessID: c.Query("businessId"), Limit: 1 << 20}
	if filter.BusinessID != "" {
		if err := requireBusiness(c, filter.BusinessID); err != nil {
			return err
		}
	}
	switch status := domain.BlogStatus(c.Query("status")); status {
	case "", "all":
	case domain.BlogStatusDraft, domain.BlogStatusPublished:
		filter.Status = &status
	default:
		return apperrors.NewValidationError("invalid status", map[string]any{"status": "oneof"})
	}

	blogs, _, err := s.repos.Blogs.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	identity := principal(c).Identity()
	visible := make([]domain.Blog, 0, len(blogs))
	for _, b := range blogs {
		if access.CanAccess(identity, b.BusinessID) {
			visible = append(visible, b)
		}
	}
	return c.JSON(visible)
}

func (s *Server) createBlog(c *fiber.Ctx) error {
	var req dto.CreateBlogRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	if req.BusinessID == "" {
		return apperrors.NewValidationError("businessId is required", map[string]any{"businessId": "required"})
	}
	if _, err := s.business(c, req.BusinessID); err != nil {
		return err
	}

	now := s.now()
	blog := &domain.Blog{
		ID:            uuid.NewString(),
		Title:         req.Title,
		Slug:          req.Slug,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		FeaturedImage: req.FeaturedImage,
		BusinessID:    req.BusinessID,
		AuthorID:      principal(c).Admin.ID,
		Status:        domain.BlogStatusDraft,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if req.Status != nil {
		blog.Status = *req.Status
	}
	if req.IsActive != nil {
		blog.IsActive = *req.IsActive
	}
	if blog.Status == domain.BlogStatusPublished {
		blog.PublishedAt = &now
	}
	if err := s.repos.Blogs.Create(c.UserContext(), blog); err != nil {
		return conflict(err, "slug already in use")
	}
	return c.Status(http.StatusCreated).JSON(blog)
}

// blog loads an active post whose business the caller may access.
func (s *Server) blog(c *fiber.Ctx, id string) (*domain.Blog, error) {
	blog, err := s.repos.Blogs.GetByID(c.UserContext(), id)
	if err != nil {
		return nil, notFound(err, "blog", id)
	}
	if err := requireBusiness(c, blog.BusinessID); err != nil {
		return nil, err
	}
	if !blog.IsActive {
		return nil, apperrors.NewNotFound("blog", map[string]any{"id": id})
	}
	return blog, nil
}

func (s *Server) getBlog(c *fiber.Ctx) error {
	blog, err := s.blog(c, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(blog)
}

func (s *Server) getBlogBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	blog, err := s.repos.Blogs.GetBySlug(c.UserContext(), slug)
	if err != nil {
		return notFound(err, "blog", slug)
	}
	if err := requireBusiness(c, blog.BusinessID); err != nil {
		return err
	}
	if !blog.IsActive {
		return apperrors.NewNotFound("blog", map[string]any{"slug": slug})
	}
	return c.JSON(blog)
}

func (s *Server) updateBlog(c *fiber.Ctx) error {
	blog, err := s.blog(c, c.Params("id"))
	if err != nil {
		return err
	}
	var req dto.UpdateBlogRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	now := s.now()
	if req.Title != nil {
		blog.Title = *req.Title
	}
	if req.Slug != nil {
		blog.Slug = *req.Slug
	}
	if req.Content != nil {
		blog.Content = *req.Content
	}
	if req.Excerpt != nil {
		blog.Excerpt = req.Excerpt
	}
	if req.FeaturedImage != nil {
		blog.FeaturedImage = req.FeaturedImage
	}
	if req.Status != nil {
		if *req.Status == domain.BlogStatusPublished && blog.PublishedAt == nil {
			blog.PublishedAt = &now
		}
		blog.Status = *req.Status
	}
	if req.IsActive != nil {
		blog.IsActive = *req.IsActive
	}
	blog.UpdatedAt = now
	if err := s.repos.Blogs.Update(c.UserContext(), blog); err != nil {
		return conflict(err, "slug already in use")
	}
	return c.JSON(blog)
}

func (s *Server) deleteBlog(c *fiber.Ctx) error {
	blog, err := s.blog(c, c.Params("id"))
	if err != nil {
		return err
	}
	blog.IsActive = false
	blog.UpdatedAt = s.now()
	if err := s.repos.Blogs.Update(c.UserContext(), blog); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Blog deleted successfully"})
}

func (s *Server) uploadFeaturedImage(c *fiber.Ctx) error {
	blog, err := s.blog(c, c.Params("id"))
	if err != nil {
		return err
	}
	url, err := s.store(c, "blogs/"+blog.ID)
	if err != nil {
		return err
	}
	blog.FeaturedImage = &url
	blog.UpdatedAt = s.now()
	if err := s.repos.Blogs.Update(c.UserContext(), blog); err != nil {
		return err
	}
	return c.JSON(dto.UploadFeaturedImageResponse{
		Message:       "Featured image uploaded successfully",
		FeaturedImage: url,
		Blog:          *blog,
	})
}
