package service

import (
	"context"
	"io"

	"github.com/spec-kit/bizdash/internal/api/dto"
	"github.com/spec-kit/bizdash/internal/backend"
	"github.com/spec-kit/bizdash/internal/domain"
	"github.com/spec-kit/bizdash/internal/workspace"
	apperrors "github.com/spec-kit/bizdash/pkg/util"
)

// BlogService manages the posts of one business. Every call is scoped by the
// business id in the route; a post belonging to another business is reported
// as not found.
type BlogService struct {
	scope
}

func NewBlogService(deps Dependencies) *BlogService {
	return &BlogService{scope: scope{deps: deps.withDefaults()}}
}

func (s *BlogService) List(ctx context.Context, ws *workspace.Workspace, businessID string, q dto.BlogQuery) (*domain.BlogPage, error) {
	if _, err := s.authorize(ctx, ws, businessID, "blog.list"); err != nil {
		return nil, err
	}
	if err := dto.Validate(q); err != nil {
		return nil, err
	}
	return backend.NewBlogsAPI(ws.AdminAPI).ListByBusiness(ctx, businessID, q)
}

func (s *BlogService) Get(ctx context.Context, ws *workspace.Workspace, businessID, blogID string) (*domain.Blog, error) {
	if _, err := s.authorize(ctx, ws, businessID, "blog.get"); err != nil {
		return nil, err
	}
	return s.owned(ctx, ws, businessID, blogID)
}

// GetBySlug finds a post of businessID by its slug.
func (s *BlogService) GetBySlug(ctx context.Context, ws *workspace.Workspace, businessID, slug string) (*domain.Blog, error) {
	if _, err := s.authorize(ctx, ws, businessID, "blog.get"); err != nil {
		return nil, err
	}
	blog, err := backend.NewBlogsAPI(ws.AdminAPI).GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if blog.BusinessID != businessID {
		return nil, apperrors.NewNotFound("blog", map[string]any{"slug": slug})
	}
	return blog, nil
}

func (s *BlogService) owned(ctx context.Context, ws *workspace.Workspace, businessID, blogID string) (*domain.Blog, error) {
	blog, err := backend.NewBlogsAPI(ws.AdminAPI).Get(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if blog.BusinessID != businessID {
		return nil, apperrors.NewNotFound("blog", map[string]any{"id": blogID})
	}
	return blog, nil
}

// Create files the post under businessID whatever the payload says.
func (s *BlogService) Create(ctx context.Context, ws *workspace.Workspace, businessID string, req dto.CreateBlogRequest) (*domain.Blog, error) {
	if _, err := s.authorize(ctx, ws, businessID, "blog.create"); err != nil {
		return nil, err
	}
	req.BusinessID = businessID
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	return backend.NewBlogsAPI(ws.AdminAPI).Create(ctx, req)
}

func (s *BlogService) Update(ctx context.Context, ws *workspace.Workspace, businessID, blogID string, req dto.UpdateBlogRequest) (*domain.Blog, error) {
	if _, err := s.Get(ctx, ws, businessID, blogID); err != nil {
		return nil, err
	}
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	return backend.NewBlogsAPI(ws.AdminAPI).Update(ctx, blogID, req)
}

func (s *BlogService) Delete(ctx context.Context, ws *workspace.Workspace, businessID, blogID string) (*dto.MessageResponse, error) {
	if _, err := s.Get(ctx, ws, businessID, blogID); err != nil {
		return nil, err
	}
	return backend.NewBlogsAPI(ws.AdminAPI).Delete(ctx, blogID)
}

func (s *BlogService) UploadFeaturedImage(ctx context.Context, ws *workspace.Workspace, businessID, blogID, filename string, file io.Reader) (*dto.UploadFeaturedImageResponse, error) {
	if _, err := s.Get(ctx, ws, businessID, blogID); err != nil {
		return nil, err
	}
	return backend.NewBlogsAPI(ws.AdminAPI).UploadFeaturedImage(ctx, blogID, filename, file)
}
