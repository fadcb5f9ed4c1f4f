package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/bizdash/internal/domain"
)

type staffRepository struct {
	pool *pgxpool.Pool
}

// NewStaffRepository instantiates the repository.
func NewStaffRepository(pool *pgxpool.Pool) StaffRepository {
	return &staffRepository{pool: pool}
}

const staffColumns = `id, first_name, last_name, email, password_hash, phone, position, department, date_hired,
        salary, salary_type, employment_type, business_id, status, notes, photo_url, documents, is_active, created_at, updated_at`

func scanStaff(row pgx.Row) (*domain.Staff, error) {
	var s domain.Staff
	if err := row.Scan(
		&s.ID,
		&s.FirstName,
		&s.LastName,
		&s.Email,
		&s.PasswordHash,
		&s.Phone,
		&s.Position,
		&s.Department,
		&s.DateHired,
		&s.Salary,
		&s.SalaryType,
		&s.EmploymentType,
		&s.BusinessID,
		&s.Status,
		&s.Notes,
		&s.PhotoURL,
		&s.Documents,
		&s.IsActive,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *staffRepository) Create(ctx context.Context, s *domain.Staff) error {
	const query = `
        INSERT INTO staff (` + staffColumns + `)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)`

	_, err := r.pool.Exec(ctx, query,
		s.ID, s.FirstName, s.LastName, s.Email, s.PasswordHash, s.Phone, s.Position, s.Department, s.DateHired,
		s.Salary, s.SalaryType, s.EmploymentType, s.BusinessID, s.Status, s.Notes, s.PhotoURL, s.Documents,
		s.IsActive, s.CreatedAt, s.UpdatedAt)
	return mapPgError(err)
}

func (r *staffRepository) Update(ctx context.Context, s *domain.Staff) error {
	const query = `
        UPDATE staff
        SET first_name=$1, last_name=$2, email=$3, password_hash=$4, phone=$5, position=$6, department=$7,
            date_hired=$8, salary=$9, salary_type=$10, employment_type=$11, status=$12, notes=$13,
            photo_url=$14, documents=$15, is_active=$16, updated_at=$17
        WHERE id=$18`

	cmd, err := r.pool.Exec(ctx, query,
		s.FirstName, s.LastName, s.Email, s.PasswordHash, s.Phone, s.Position, s.Department,
		s.DateHired, s.Salary, s.SalaryType, s.EmploymentType, s.Status, s.Notes,
		s.PhotoURL, s.Documents, s.IsActive, s.UpdatedAt, s.ID)
	if err != nil {
		return mapPgError(err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *staffRepository) GetByID(ctx context.Context, id string) (*domain.Staff, error) {
	return scanStaff(r.pool.QueryRow(ctx, `SELECT `+staffColumns+` FROM staff WHERE id=$1`, id))
}

func (r *staffRepository) GetByEmail(ctx context.Context, email string) (*domain.Staff, error) {
	return scanStaff(r.pool.QueryRow(ctx, `SELECT `+staffColumns+` FROM staff WHERE lower(email)=lower($1)`, email))
}

func (r *staffRepository) List(ctx context.Context, filter StaffFilter) ([]domain.Staff, int, error) {
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
	if filter.EmploymentType != nil {
		args = append(args, *filter.EmploymentType)
		clauses = append(clauses, fmt.Sprintf("employment_type=$%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		clauses = append(clauses, fmt.Sprintf("(first_name ILIKE $%d OR last_name ILIKE $%d OR email ILIKE $%d OR position ILIKE $%d)", n, n, n, n))
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM staff`+where(clauses), args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := pageBounds(filter.Limit, filter.Offset)
	query := `SELECT ` + staffColumns + ` FROM staff` + where(clauses) +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT %d OFFSET %d", limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	result := []domain.Staff{}
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *s)
	}
	return result, total, rows.Err()
}
