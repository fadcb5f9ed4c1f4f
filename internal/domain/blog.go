package domain

import "time"

// BlogStatus represents publication state.
type BlogStatus string

const (
	BlogStatusDraft     BlogStatus = "draft"
	BlogStatusPublished BlogStatus = "published"
)

// Blog is a post owned by one business.
type Blog struct {
	ID            string     `json:"_id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Content       string     `json:"content"`
	Excerpt       *string    `json:"excerpt,omitempty"`
	FeaturedImage *string    `json:"featuredImage,omitempty"`
	BusinessID    string     `json:"businessId"`
	AuthorID      string     `json:"authorId"`
	Status        BlogStatus `json:"status"`
	PublishedAt   *time.Time `json:"publishedAt,omitempty"`
	IsActive      bool       `json:"isActive"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	TotalItems  int  `json:"totalItems"`
	TotalPages  int  `json:"totalPages"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// NewPagination derives page metadata from a total count.
func NewPagination(page, limit, total int) Pagination {
	if limit <= 0 {
		limit = 10
	}
	if page <= 0 {
		page = 1
	}
	pages := (total + limit - 1) / limit
	return Pagination{
		Page:        page,
		Limit:       limit,
		TotalItems:  total,
		TotalPages:  pages,
		HasNextPage: page < pages,
		HasPrevPage: page > 1,
	}
}

// BlogPage is a paginated blog listing.
type BlogPage struct {
	Data       []Blog     `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// StaffPage is a paginated staff listing.
type StaffPage struct {
	Data       []Staff    `json:"data"`
	Pagination Pagination `json:"pagination"`
}
