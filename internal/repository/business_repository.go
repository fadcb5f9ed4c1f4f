package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/bizdash/internal/domain"
)

type businessRepository struct {
	pool *pgxpool.Pool
}

// NewBusinessRepository instantiates the repository.
func NewBusinessRepository(pool *pgxpool.Pool) BusinessRepository {
	return &businessRepository{pool: pool}
}

const businessColumns = `id, name, slug, description, logo, website, is_active, created_at, updated_at`

func scanBusiness(row pgx.Row) (*domain.Business, error) {
	var b domain.Business
	if err := row.Scan(
		&b.ID,
		&b.Name,
		&b.Slug,
		&b.Description,
		&b.Logo,
		&b.Website,
		&b.IsActive,
		&b.CreatedAt,
		&b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *businessRepository) Create(ctx context.Context, b *domain.Business) error {
	const query = `
        INSERT INTO businesses (` + businessColumns + `)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`

	_, err := r.pool.Exec(ctx, query,
		b.ID, b.Name, b.Slug, b.Description, b.Logo, b.Website, b.IsActive, b.CreatedAt, b.UpdatedAt)
	return mapPgError(err)
}

func (r *businessRepository) Update(ctx context.Context, b *domain.Business) error {
	const query = `
        UPDATE businesses
        SET name=$1, slug=$2, description=$3, logo=$4, website=$5, is_active=$6, updated_at=$7
        WHERE id=$8`

	cmd, err := r.pool.Exec(ctx, query,
		b.Name, b.Slug, b.Description, b.Logo, b.Website, b.IsActive, b.UpdatedAt, b.ID)
	if err != nil {
		return mapPgError(err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *businessRepository) GetByID(ctx context.Context, id string) (*domain.Business, error) {
	return scanBusiness(r.pool.QueryRow(ctx, `SELECT `+businessColumns+` FROM businesses WHERE id=$1`, id))
}

func (r *businessRepository) GetBySlug(ctx context.Context, slug string) (*domain.Business, error) {
	return scanBusiness(r.pool.QueryRow(ctx, `SELECT `+businessColumns+` FROM businesses WHERE slug=$1`, slug))
}

func (r *businessRepository) List(ctx context.Context) ([]domain.Business, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+businessColumns+` FROM businesses WHERE is_active ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Business
	for rows.Next() {
		b, err := scanBusiness(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *b)
	}
	return result, rows.Err()
}
