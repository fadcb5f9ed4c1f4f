package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/bizdash/internal/domain"
)

type blogRepository struct {
	pool *pgxpool.Pool
}

// NewBlogRepository instantiates the repository.
func NewBlogRepository(pool *pgxpool.Pool) BlogRepository {
	return &blogRepository{pool: pool}
}

const blogColumns = `id, title, slug, content, excerpt, featured_image, business_id, author_id, status, published_at, is_active, created_at, updated_at`

func scanBlog(row pgx.Row) (*domain.Blog, error) {
	var b domain.Blog
	if err := row.Scan(
		&b.ID,
		&b.Title,
		&b.Slug,
		&b.Content,
		&b.Excerpt,
		&b.FeaturedImage,
		&b.BusinessID,
		&b.AuthorID,
		&b.Status,
		&b.PublishedAt,
		&b.IsActive,
		&b.CreatedAt,
		&b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *blogRepository) Create(ctx context.Context, b *domain.Blog) error {
	const query = `
        INSERT INTO blogs (` + blogColumns + `)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`

	_, err := r.pool.Exec(ctx, query,
		b.ID, b.Title, b.Slug, b.Content, b.Excerpt, b.FeaturedImage, b.BusinessID, b.AuthorID,
		b.Status, b.PublishedAt, b.IsActive, b.CreatedAt, b.UpdatedAt)
	return mapPgError(err)
}

func (r *blogRepository) Update(ctx context.Context, b *domain.Blog) error {
	const query = `
        UPDATE blogs
        SET title=$1, slug=$2, content=$3, excerpt=$4, featured_image=$5, status=$6, published_at=$7, is_active=$8, updated_at=$9
        WHERE id=$10`

	cmd, err := r.pool.Exec(ctx, query,
		b.Title, b.Slug, b.Content, b.Excerpt, b.FeaturedImage, b.Status, b.PublishedAt, b.IsActive, b.UpdatedAt, b.ID)
	if err != nil {
		return mapPgError(err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *blogRepository) GetByID(ctx context.Context, id string) (*domain.Blog, error) {
	return scanBlog(r.pool.QueryRow(ctx, `SELECT `+blogColumns+` FROM blogs WHERE id=$1`, id))
}

func (r *blogRepository) GetBySlug(ctx context.Context, slug string) (*domain.Blog, error) {
	return scanBlog(r.pool.QueryRow(ctx, `SELECT `+blogColumns+` FROM blogs WHERE slug=$1`, slug))
}

func (r *blogRepository) List(ctx context.Context, filter BlogFilter) ([]domain.Blog, int, error) {
	args := []any{}
	clauses := []string{"is_active"}

	if filter.BusinessID != "" {
		args = append(args, filter.BusinessID)
		clauses = append(clauses, fmt.Sprintf("business_id=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		clauses = append(clauses, fmt.Sprintf("(title ILIKE $%d OR content ILIKE $%d)", len(args), len(args)))
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM blogs`+where(clauses), args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := pageBounds(filter.Limit, filter.Offset)
	query := `SELECT ` + blogColumns + ` FROM blogs` + where(clauses) +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT %d OFFSET %d", limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	result := []domain.Blog{}
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *b)
	}
	return result, total, rows.Err()
}
