package service

import (
	"context"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/bizdash/internal/access"
	"github.com/spec-kit/bizdash/internal/api/dto"
	"github.com/spec-kit/bizdash/internal/backend"
	"github.com/spec-kit/bizdash/internal/domain"
	"github.com/spec-kit/bizdash/internal/workspace"
)

// BusinessService backs the overview and business detail pages.
type BusinessService struct {
	scope
}

func NewBusinessService(deps Dependencies) *BusinessService {
	return &BusinessService{scope: scope{deps: deps.withDefaults()}}
}

// BusinessPage is everything the business detail page shows.
type BusinessPage struct {
	Business domain.Business   `json:"business"`
	Blogs    *domain.BlogPage  `json:"blogs"`
	Staff    *domain.StaffPage `json:"staff"`
}

// List returns the businesses the signed-in admin may see whose name or
// description contains search, ignoring case.
func (s *BusinessService) List(ctx context.Context, ws *workspace.Workspace, search string) ([]domain.Business, error) {
	admin, err := currentAdmin(ws)
	if err != nil {
		return nil, err
	}
	all, err := backend.NewBusinessesAPI(ws.AdminAPI).List(ctx)
	if err != nil {
		return nil, err
	}
	visible := access.Filter(admin, all)

	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return visible, nil
	}
	out := visible[:0]
	for _, b := range visible {
		if matches(b, needle) {
			out = append(out, b)
		}
	}
	return out, nil
}

func matches(b domain.Business, needle string) bool {
	if strings.Contains(strings.ToLower(b.Name), needle) {
		return true
	}
	return b.Description != nil && strings.Contains(strings.ToLower(*b.Description), needle)
}

func (s *BusinessService) Get(ctx context.Context, ws *workspace.Workspace, id string) (*domain.Business, error) {
	if _, err := s.authorize(ctx, ws, id, "business.get"); err != nil {
		return nil, err
	}
	return backend.NewBusinessesAPI(ws.AdminAPI).Get(ctx, id)
}

// GetBySlug resolves the slug first since the policy is keyed by id.
func (s *BusinessService) GetBySlug(ctx context.Context, ws *workspace.Workspace, slug string) (*domain.Business, error) {
	if _, err := currentAdmin(ws); err != nil {
		return nil, err
	}
	business, err := backend.NewBusinessesAPI(ws.AdminAPI).GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorize(ctx, ws, business.ID, "business.get"); err != nil {
		return nil, err
	}
	return business, nil
}

// Page loads the business with the first page of its blogs and staff concurrently.
func (s *BusinessService) Page(ctx context.Context, ws *workspace.Workspace, id string, blogs dto.BlogQuery, staff dto.StaffQuery) (*BusinessPage, error) {
	if _, err := s.authorize(ctx, ws, id, "business.page"); err != nil {
		return nil, err
	}
	if err := dto.Validate(blogs); err != nil {
		return nil, err
	}
	if err := dto.Validate(staff); err != nil {
		return nil, err
	}

	var page BusinessPage
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b, err := backend.NewBusinessesAPI(ws.AdminAPI).Get(gctx, id)
		if err != nil {
			return err
		}
		page.Business = *b
		return nil
	})
	g.Go(func() error {
		p, err := backend.NewBlogsAPI(ws.AdminAPI).ListByBusiness(gctx, id, blogs)
		page.Blogs = p
		return err
	})
	g.Go(func() error {
		p, err := backend.NewStaffAPI(ws.AdminAPI).ListByBusiness(gctx, id, staff)
		page.Staff = p
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &page, nil
}

// Create is reserved to super-admins: a plain admin could never see the result.
func (s *BusinessService) Create(ctx context.Context, ws *workspace.Workspace, req dto.CreateBusinessRequest) (*domain.Business, error) {
	if _, err := requireSuperAdmin(ws); err != nil {
		return nil, err
	}
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	return backend.NewBusinessesAPI(ws.AdminAPI).Create(ctx, req)
}

func (s *BusinessService) Update(ctx context.Context, ws *workspace.Workspace, id string, req dto.UpdateBusinessRequest) (*domain.Business, error) {
	if _, err := s.authorize(ctx, ws, id, "business.update"); err != nil {
		return nil, err
	}
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	return backend.NewBusinessesAPI(ws.AdminAPI).Update(ctx, id, req)
}

func (s *BusinessService) Delete(ctx context.Context, ws *workspace.Workspace, id string) (*dto.MessageResponse, error) {
	if _, err := s.authorize(ctx, ws, id, "business.delete"); err != nil {
		return nil, err
	}
	return backend.NewBusinessesAPI(ws.AdminAPI).Delete(ctx, id)
}

func (s *BusinessService) UploadLogo(ctx context.Context, ws *workspace.Workspace, id, filename string, file io.Reader) (*dto.UploadLogoResponse, error) {
	if _, err := s.authorize(ctx, ws, id, "business.logo"); err != nil {
		return nil, err
	}
	return backend.NewBusinessesAPI(ws.AdminAPI).UploadLogo(ctx, id, filename, file)
}
