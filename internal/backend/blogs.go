package backend

import (
	"context"
	"io"
	"net/url"

	"github.com/spec-kit/bizdash/internal/api/dto"
	"github.com/spec-kit/bizdash/internal/domain"
	"github.com/spec-kit/bizdash/internal/gateway"
)

// BlogsAPI covers /blogs and /businesses/:id/blogs.
type BlogsAPI struct {
	gw *gateway.Client
}

func NewBlogsAPI(gw *gateway.Client) *BlogsAPI {
	return &BlogsAPI{gw: gw}
}

// List returns blogs filtered by business and status. Empty filters are omitted.
func (a *BlogsAPI) List(ctx context.Context, businessID, status string) ([]domain.Blog, error) {
	query := url.Values{}
	if businessID != "" {
		query.Set("businessId", businessID)
	}
	if status != "" {
		query.Set("status", status)
	}
	var blogs []domain.Blog
	if err := a.gw.Get(ctx, "/blogs", query, &blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

// ListByBusiness returns one page of a business's blogs.
func (a *BlogsAPI) ListByBusiness(ctx context.Context, businessID string, q dto.BlogQuery) (*domain.BlogPage, error) {
	var page domain.BlogPage
	if err := a.gw.Get(ctx, "/businesses/"+escape(businessID)+"/blogs", q.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (a *BlogsAPI) Get(ctx context.Context, id string) (*domain.Blog, error) {
	var blog domain.Blog
	if err := a.gw.Get(ctx, "/blogs/"+escape(id), nil, &blog); err != nil {
		return nil, err
	}
	return &blog, nil
}

func (a *BlogsAPI) GetBySlug(ctx context.Context, slug string) (*domain.Blog, error) {
	var blog domain.Blog
	if err := a.gw.Get(ctx, "/blogs/slug/"+escape(slug), nil, &blog); err != nil {
		return nil, err
	}
	return &blog, nil
}

func (a *BlogsAPI) Create(ctx context.Context, req dto.CreateBlogRequest) (*domain.Blog, error) {
	var blog domain.Blog
	if err := a.gw.Post(ctx, "/blogs", req, &blog); err != nil {
		return nil, err
	}
	return &blog, nil
}

func (a *BlogsAPI) Update(ctx context.Context, id string, req dto.UpdateBlogRequest) (*domain.Blog, error) {
	var blog domain.Blog
	if err := a.gw.Put(ctx, "/blogs/"+escape(id), req, &blog); err != nil {
		return nil, err
	}
	return &blog, nil
}

// Delete soft-deletes a blog.
func (a *BlogsAPI) Delete(ctx context.Context, id string) (*dto.MessageResponse, error) {
	var resp dto.MessageResponse
	if err := a.gw.Delete(ctx, "/blogs/"+escape(id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *BlogsAPI) UploadFeaturedImage(ctx context.Context, id, filename string, file io.Reader) (*dto.UploadFeaturedImageResponse, error) {
	var resp dto.UploadFeaturedImageResponse
	if err := a.gw.Upload(ctx, "/blogs/"+escape(id)+"/featured-image", filename, file, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
