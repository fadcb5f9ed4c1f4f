package repository

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bizdash/internal/domain"
)

// MemoryStore keeps every sandbox record in process. It backs local runs
// without POSTGRES_DSN and the integration tests.
type MemoryStore struct {
	mu         sync.RWMutex
	admins     map[string]domain.Admin
	businesses map[string]domain.Business
	blogs      map[string]domain.Blog
	staff      map[string]domain.Staff
	attendance map[string]domain.Attendance
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		admins:     map[string]domain.Admin{},
		businesses: map[string]domain.Business{},
		blogs:      map[string]domain.Blog{},
		staff:      map[string]domain.Staff{},
		attendance: map[string]domain.Attendance{},
	}
}

// Set exposes the store through the repository interfaces.
func (m *MemoryStore) Set() Set {
	return Set{
		Admins:     memAdmins{m},
		Businesses: memBusinesses{m},
		Blogs:      memBlogs{m},
		Staff:      memStaff{m},
		Attendance: memAttendance{m},
	}
}

func page[T any](items []T, limit, offset int) []T {
	limit, offset = pageBounds(limit, offset)
	if offset >= len(items) {
		return []T{}
	}
	end := min(offset+limit, len(items))
	return items[offset:end]
}

func containsFold(s, needle string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(needle))
}

type memAdmins struct{ m *MemoryStore }

func (r memAdmins) Create(_ context.Context, a *domain.Admin) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, existing := range r.m.admins {
		if strings.EqualFold(existing.Email, a.Email) {
			return fmt.Errorf("%w: admins_email_key", ErrDuplicate)
		}
	}
	cp := *a
	cp.BusinessIDs = slices.Clone(a.BusinessIDs)
	r.m.admins[a.ID] = cp
	return nil
}

func (r memAdmins) CreateFirst(_ context.Context, a *domain.Admin) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if len(r.m.admins) > 0 {
		return ErrNotFirst
	}
	cp := *a
	cp.BusinessIDs = slices.Clone(a.BusinessIDs)
	r.m.admins[a.ID] = cp
	return nil
}

func (r memAdmins) Update(_ context.Context, a *domain.Admin) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.admins[a.ID]; !ok {
		return pgx.ErrNoRows
	}
	for id, existing := range r.m.admins {
		if id != a.ID && strings.EqualFold(existing.Email, a.Email) {
			return fmt.Errorf("%w: admins_email_key", ErrDuplicate)
		}
	}
	cp := *a
	cp.BusinessIDs = slices.Clone(a.BusinessIDs)
	r.m.admins[a.ID] = cp
	return nil
}

func (r memAdmins) GetByID(_ context.Context, id string) (*domain.Admin, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	a, ok := r.m.admins[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	a.BusinessIDs = slices.Clone(a.BusinessIDs)
	return &a, nil
}

func (r memAdmins) GetByEmail(_ context.Context, email string) (*domain.Admin, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	for _, a := range r.m.admins {
		if strings.EqualFold(a.Email, email) {
			a.BusinessIDs = slices.Clone(a.BusinessIDs)
			return &a, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r memAdmins) List(_ context.Context) ([]domain.Admin, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	out := []domain.Admin{}
	for _, a := range r.m.admins {
		if a.IsActive {
			a.BusinessIDs = slices.Clone(a.BusinessIDs)
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r memAdmins) Count(_ context.Context) (int, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	return len(r.m.admins), nil
}

type memBusinesses struct{ m *MemoryStore }

func (r memBusinesses) Create(_ context.Context, b *domain.Business) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, existing := range r.m.businesses {
		if existing.Slug == b.Slug {
			return fmt.Errorf("%w: businesses_slug_key", ErrDuplicate)
		}
	}
	r.m.businesses[b.ID] = *b
	return nil
}

func (r memBusinesses) Update(_ context.Context, b *domain.Business) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.businesses[b.ID]; !ok {
		return pgx.ErrNoRows
	}
	for id, existing := range r.m.businesses {
		if id != b.ID && existing.Slug == b.Slug {
			return fmt.Errorf("%w: businesses_slug_key", ErrDuplicate)
		}
	}
	r.m.businesses[b.ID] = *b
	return nil
}

func (r memBusinesses) GetByID(_ context.Context, id string) (*domain.Business, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	b, ok := r.m.businesses[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &b, nil
}

func (r memBusinesses) GetBySlug(_ context.Context, slug string) (*domain.Business, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	for _, b := range r.m.businesses {
		if b.Slug == slug {
			return &b, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r memBusinesses) List(_ context.Context) ([]domain.Business, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	out := []domain.Business{}
	for _, b := range r.m.businesses {
		if b.IsActive {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type memBlogs struct{ m *MemoryStore }

func (r memBlogs) Create(_ context.Context, b *domain.Blog) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, existing := range r.m.blogs {
		if existing.Slug == b.Slug {
			return fmt.Errorf("%w: blogs_slug_key", ErrDuplicate)
		}
	}
	r.m.blogs[b.ID] = *b
	return nil
}

func (r memBlogs) Update(_ context.Context, b *domain.Blog) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.blogs[b.ID]; !ok {
		return pgx.ErrNoRows
	}
	for id, existing := range r.m.blogs {
		if id != b.ID && existing.Slug == b.Slug {
			return fmt.Errorf("%w: blogs_slug_key", ErrDuplicate)
		}
	}
	r.m.blogs[b.ID] = *b
	return nil
}

func (r memBlogs) GetByID(_ context.Context, id string) (*domain.Blog, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	b, ok := r.m.blogs[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &b, nil
}

func (r memBlogs) GetBySlug(_ context.Context, slug string) (*domain.Blog, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	for _, b := range r.m.blogs {
		if b.Slug == slug {
			return &b, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r memBlogs) List(_ context.Context, f BlogFilter) ([]domain.Blog, int, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	matched := []domain.Blog{}
	for _, b := range r.m.blogs {
		switch {
		case !b.IsActive:
		case f.BusinessID != "" && b.BusinessID != f.BusinessID:
		case f.Status != nil && b.Status != *f.Status:
		case f.Search != "" && !containsFold(b.Title, f.Search) && !containsFold(b.Content, f.Search):
		default:
			matched = append(matched, b)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	return page(matched, f.Limit, f.Offset), len(matched), nil
}

type memStaff struct{ m *MemoryStore }

func (r memStaff) Create(_ context.Context, s *domain.Staff) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, existing := range r.m.staff {
		if strings.EqualFold(existing.Email, s.Email) {
			return fmt.Errorf("%w: staff_email_key", ErrDuplicate)
		}
	}
	cp := *s
	cp.Documents = slices.Clone(s.Documents)
	r.m.staff[s.ID] = cp
	return nil
}

func (r memStaff) Update(_ context.Context, s *domain.Staff) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.staff[s.ID]; !ok {
		return pgx.ErrNoRows
	}
	for id, existing := range r.m.staff {
		if id != s.ID && strings.EqualFold(existing.Email, s.Email) {
			return fmt.Errorf("%w: staff_email_key", ErrDuplicate)
		}
	}
	cp := *s
	cp.Documents = slices.Clone(s.Documents)
	r.m.staff[s.ID] = cp
	return nil
}

func (r memStaff) GetByID(_ context.Context, id string) (*domain.Staff, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	s, ok := r.m.staff[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	s.Documents = slices.Clone(s.Documents)
	return &s, nil
}

func (r memStaff) GetByEmail(_ context.Context, email string) (*domain.Staff, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	for _, s := range r.m.staff {
		if strings.EqualFold(s.Email, email) {
			s.Documents = slices.Clone(s.Documents)
			return &s, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r memStaff) List(_ context.Context, f StaffFilter) ([]domain.Staff, int, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	matched := []domain.Staff{}
	for _, s := range r.m.staff {
		switch {
		case !s.IsActive:
		case f.BusinessID != "" && s.BusinessID != f.BusinessID:
		case f.Status != nil && s.Status != *f.Status:
		case f.EmploymentType != nil && s.EmploymentType != *f.EmploymentType:
		case f.Search != "" && !staffMatches(s, f.Search):
		default:
			s.Documents = slices.Clone(s.Documents)
			matched = append(matched, s)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	return page(matched, f.Limit, f.Offset), len(matched), nil
}

func staffMatches(s domain.Staff, needle string) bool {
	return containsFold(s.FirstName, needle) || containsFold(s.LastName, needle) ||
		containsFold(s.Email, needle) || containsFold(s.Position, needle)
}

type memAttendance struct{ m *MemoryStore }

func (r memAttendance) Create(_ context.Context, a *domain.Attendance) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.attendance[a.ID] = *a
	return nil
}

func (r memAttendance) Update(_ context.Context, a *domain.Attendance) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.attendance[a.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.m.attendance[a.ID] = *a
	return nil
}

func (r memAttendance) GetOpen(_ context.Context, staffID string) (*domain.Attendance, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	var open *domain.Attendance
	for _, a := range r.m.attendance {
		if a.StaffID != staffID || !a.IsActive || !a.Open() {
			continue
		}
		if open == nil || a.ClockIn.After(open.ClockIn) {
			rec := a
			open = &rec
		}
	}
	if open == nil {
		return nil, pgx.ErrNoRows
	}
	return open, nil
}

func (r memAttendance) List(_ context.Context, f AttendanceFilter) ([]domain.Attendance, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	out := []domain.Attendance{}
	for _, a := range r.m.attendance {
		switch {
		case !a.IsActive:
		case f.StaffID != "" && a.StaffID != f.StaffID:
		case f.From != nil && a.ClockIn.Before(*f.From):
		case f.To != nil && !a.ClockIn.Before(*f.To):
		case f.Status != nil && a.Status != *f.Status:
		default:
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClockIn.After(out[j].ClockIn) })
	return out, nil
}
