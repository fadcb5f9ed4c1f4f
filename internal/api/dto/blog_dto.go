package dto

import (
	"net/url"
	"strconv"

	"github.com/spec-kit/bizdash/internal/domain"
)

// BlogQuery filters GET /businesses/:id/blogs.
type BlogQuery struct {
	Search string `query:"search"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
	Status string `query:"status" validate:"omitempty,oneof=draft published all"`
}

// Values encodes the query with the dashboard defaults (page 1, limit 10, status all).
func (q BlogQuery) Values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	page, limit, status := q.Page, q.Limit, q.Status
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	if status == "" {
		status = "all"
	}
	v.Set("page", strconv.Itoa(page))
	v.Set("limit", strconv.Itoa(limit))
	v.Set("status", status)
	return v
}

// CreateBlogRequest payload.
type CreateBlogRequest struct {
	Title         string             `json:"title" validate:"required,max=200"`
	Slug          string             `json:"slug" validate:"required,max=200"`
	Content       string             `json:"content" validate:"required"`
	Excerpt       *string            `json:"excerpt,omitempty"`
	FeaturedImage *string            `json:"featuredImage,omitempty"`
	BusinessID    string             `json:"businessId"`
	Status        *domain.BlogStatus `json:"status,omitempty" validate:"omitempty,oneof=draft published"`
	IsActive      *bool              `json:"isActive,omitempty"`
}

// UpdateBlogRequest is a partial update.
type UpdateBlogRequest struct {
	Title         *string            `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Slug          *string            `json:"slug,omitempty" validate:"omitempty,min=1,max=200"`
	Content       *string            `json:"content,omitempty"`
	Excerpt       *string            `json:"excerpt,omitempty"`
	FeaturedImage *string            `json:"featuredImage,omitempty"`
	Status        *domain.BlogStatus `json:"status,omitempty" validate:"omitempty,oneof=draft published"`
	IsActive      *bool              `json:"isActive,omitempty"`
}

// UploadFeaturedImageResponse is returned by POST /blogs/:id/featured-image.
type UploadFeaturedImageResponse struct {
	Message       string      `json:"message"`
	FeaturedImage string      `json:"featuredImage"`
	Blog          domain.Blog `json:"blog"`
}
