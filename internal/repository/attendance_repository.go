package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/bizdash/internal/domain"
)

type attendanceRepository struct {
	pool *pgxpool.Pool
}

// NewAttendanceRepository instantiates the repository.
func NewAttendanceRepository(pool *pgxpool.Pool) AttendanceRepository {
	return &attendanceRepository{pool: pool}
}

const attendanceColumns = `id, staff_id, business_id, clock_in, clock_out, hours_worked, status, notes,
        admin_notes, approved_by, approved_at, is_active, created_at, updated_at`

func scanAttendance(row pgx.Row) (*domain.Attendance, error) {
	var a domain.Attendance
	if err := row.Scan(
		&a.ID,
		&a.StaffID,
		&a.BusinessID,
		&a.ClockIn,
		&a.ClockOut,
		&a.HoursWorked,
		&a.Status,
		&a.Notes,
		&a.AdminNotes,
		&a.ApprovedBy,
		&a.ApprovedAt,
		&a.IsActive,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *attendanceRepository) Create(ctx context.Context, a *domain.Attendance) error {
	const query = `
        INSERT INTO attendance (` + attendanceColumns + `)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`

	_, err := r.pool.Exec(ctx, query,
		a.ID, a.StaffID, a.BusinessID, a.ClockIn, a.ClockOut, a.HoursWorked, a.Status, a.Notes,
		a.AdminNotes, a.ApprovedBy, a.ApprovedAt, a.IsActive, a.CreatedAt, a.UpdatedAt)
	return mapPgError(err)
}

func (r *attendanceRepository) Update(ctx context.Context, a *domain.Attendance) error {
	const query = `
        UPDATE attendance
        SET clock_out=$1, hours_worked=$2, status=$3, notes=$4, admin_notes=$5, approved_by=$6,
            approved_at=$7, is_active=$8, updated_at=$9
        WHERE id=$10`

	cmd, err := r.pool.Exec(ctx, query,
		a.ClockOut, a.HoursWorked, a.Status, a.Notes, a.AdminNotes, a.ApprovedBy,
		a.ApprovedAt, a.IsActive, a.UpdatedAt, a.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *attendanceRepository) GetOpen(ctx context.Context, staffID string) (*domain.Attendance, error) {
	const query = `SELECT ` + attendanceColumns + ` FROM attendance
        WHERE staff_id=$1 AND clock_out IS NULL AND is_active
        ORDER BY clock_in DESC LIMIT 1`
	return scanAttendance(r.pool.QueryRow(ctx, query, staffID))
}

func (r *attendanceRepository) List(ctx context.Context, filter AttendanceFilter) ([]domain.Attendance, error) {
	args := []any{}
	clauses := []string{"is_active"}

	if filter.StaffID != "" {
		args = append(args, filter.StaffID)
		clauses = append(clauses, fmt.Sprintf("staff_id=$%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		clauses = append(clauses, fmt.Sprintf("clock_in>=$%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		clauses = append(clauses, fmt.Sprintf("clock_in<$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}

	rows, err := r.pool.Query(ctx, `SELECT `+attendanceColumns+` FROM attendance`+where(clauses)+` ORDER BY clock_in DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Attendance{}
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}
	return result, rows.Err()
}

// NewPostgresSet wires every repository to pool.
func NewPostgresSet(pool *pgxpool.Pool) Set {
	return Set{
		Admins:     NewAdminRepository(pool),
		Businesses: NewBusinessRepository(pool),
		Blogs:      NewBlogRepository(pool),
		Staff:      NewStaffRepository(pool),
		Attendance: NewAttendanceRepository(pool),
	}
}
