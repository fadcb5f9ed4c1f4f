// Package repository persists the sandbox backend's records, either in
// Postgres through pgx or in memory. Missing rows are reported as
// pgx.ErrNoRows by both implementations.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/bizdash/internal/domain"
)

// ErrDuplicate reports a unique constraint violation (email or slug).
var ErrDuplicate = errors.New("duplicate key")

// ErrNotFirst reports that CreateFirst found admins already present.
var ErrNotFirst = errors.New("admins already exist")

// AdminRepository handles persistence for admins.
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) error
	// CreateFirst inserts admin only while no admin exists, as one atomic step.
	CreateFirst(ctx context.Context, admin *domain.Admin) error
	Update(ctx context.Context, admin *domain.Admin) error
	GetByID(ctx context.Context, id string) (*domain.Admin, error)
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
	// List returns active admins, newest first.
	List(ctx context.Context) ([]domain.Admin, error)
	// Count includes deactivated admins.
	Count(ctx context.Context) (int, error)
}

// BusinessRepository handles persistence for businesses.
type BusinessRepository interface {
	Create(ctx context.Context, business *domain.Business) error
	Update(ctx context.Context, business *domain.Business) error
	GetByID(ctx context.Context, id string) (*domain.Business, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Business, error)
	// List returns active businesses ordered by name.
	List(ctx context.Context) ([]domain.Business, error)
}

// BlogRepository handles persistence for blog posts.
type BlogRepository interface {
	Create(ctx context.Context, blog *domain.Blog) error
	Update(ctx context.Context, blog *domain.Blog) error
	GetByID(ctx context.Context, id string) (*domain.Blog, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Blog, error)
	List(ctx context.Context, filter BlogFilter) ([]domain.Blog, int, error)
}

// BlogFilter defines query params for blog listing. Only active posts are listed.
type BlogFilter struct {
	BusinessID string
	Search     string
	Status     *domain.BlogStatus
	Limit      int
	Offset     int
}

// StaffRepository handles persistence for staff members.
type StaffRepository interface {
	Create(ctx context.Context, staff *domain.Staff) error
	Update(ctx context.Context, staff *domain.Staff) error
	GetByID(ctx context.Context, id string) (*domain.Staff, error)
	GetByEmail(ctx context.Context, email string) (*domain.Staff, error)
	List(ctx context.Context, filter StaffFilter) ([]domain.Staff, int, error)
}

// StaffFilter defines query params for staff listing. Only active members are listed.
type StaffFilter struct {
	BusinessID     string
	Search         string
	Status         *domain.StaffStatus
	EmploymentType *domain.EmploymentType
	Limit          int
	Offset         int
}

// AttendanceRepository handles persistence for attendance records.
type AttendanceRepository interface {
	Create(ctx context.Context, record *domain.Attendance) error
	Update(ctx context.Context, record *domain.Attendance) error
	// GetOpen returns the staff member's record without a clock-out.
	GetOpen(ctx context.Context, staffID string) (*domain.Attendance, error)
	// List returns records newest first.
	List(ctx context.Context, filter AttendanceFilter) ([]domain.Attendance, error)
}

// AttendanceFilter narrows attendance listing. From and To bound ClockIn, To exclusive.
type AttendanceFilter struct {
	StaffID string
	From    *time.Time
	To      *time.Time
	Status  *domain.AttendanceStatus
}

// Set bundles one implementation of every repository.
type Set struct {
	Admins     AdminRepository
	Businesses BusinessRepository
	Blogs      BlogRepository
	Staff      StaffRepository
	Attendance AttendanceRepository
}

func pageBounds(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.ConstraintName)
	}
	return err
}

// where joins accumulated clauses.
func where(clauses []string) string {
	if len(clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(clauses, " AND ")
}
