package repository_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/bizdash/internal/domain"
	"github.com/spec-kit/bizdash/internal/repository"
)

func TestMemoryAdminsRejectDuplicateEmail(t *testing.T) {
	repos := repository.NewMemoryStore().Set()
	ctx := context.Background()

	require.NoError(t, repos.Admins.Create(ctx, &domain.Admin{ID: "a1", Email: "Root@Example.com", IsActive: true}))
	err := repos.Admins.Create(ctx, &domain.Admin{ID: "a2", Email: "root@example.com"})
	require.ErrorIs(t, err, repository.ErrDuplicate)

	n, err := repos.Admins.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	_, err = repos.Admins.GetByID(ctx, "missing")
	require.True(t, errors.Is(err, pgx.ErrNoRows))
}

func TestMemoryCreateFirstAdmitsOneAdmin(t *testing.T) {
	repos := repository.NewMemoryStore().Set()
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repos.Admins.CreateFirst(ctx, &domain.Admin{ID: fmt.Sprintf("a%d", i), Email: fmt.Sprintf("a%d@example.com", i)})
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		require.ErrorIs(t, err, repository.ErrNotFirst)
	}
	require.Equal(t, 1, created)

	n, err := repos.Admins.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestMemoryBlogListFiltersAndPages(t *testing.T) {
	repos := repository.NewMemoryStore().Set()
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	for i, seed := range []struct {
		id, business string
		status       domain.BlogStatus
		active       bool
	}{
		{"p1", "b1", domain.BlogStatusDraft, true},
		{"p2", "b1", domain.BlogStatusPublished, true},
		{"p3", "b1", domain.BlogStatusPublished, false},
		{"p4", "b2", domain.BlogStatusPublished, true},
		{"p5", "b1", domain.BlogStatusPublished, true},
	} {
		require.NoError(t, repos.Blogs.Create(ctx, &domain.Blog{
			ID: seed.id, Slug: seed.id, Title: "Post " + seed.id, BusinessID: seed.business,
			Status: seed.status, IsActive: seed.active, CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	published := domain.BlogStatusPublished
	items, total, err := repos.Blogs.List(ctx, repository.BlogFilter{BusinessID: "b1", Status: &published, Limit: 1})
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Len(t, items, 1)
	require.Equal(t, "p5", items[0].ID)

	items, _, err = repos.Blogs.List(ctx, repository.BlogFilter{BusinessID: "b1", Search: "POST P1"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "p1", items[0].ID)
}

func TestMemoryAttendanceOpenShift(t *testing.T) {
	repos := repository.NewMemoryStore().Set()
	ctx := context.Background()
	in := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	out := in.Add(8 * time.Hour)

	require.NoError(t, repos.Attendance.Create(ctx, &domain.Attendance{ID: "r1", StaffID: "s1", ClockIn: in, ClockOut: &out, IsActive: true}))
	_, err := repos.Attendance.GetOpen(ctx, "s1")
	require.ErrorIs(t, err, pgx.ErrNoRows)

	require.NoError(t, repos.Attendance.Create(ctx, &domain.Attendance{ID: "r2", StaffID: "s1", ClockIn: in.Add(24 * time.Hour), IsActive: true}))
	open, err := repos.Attendance.GetOpen(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, "r2", open.ID)

	from := in.Add(12 * time.Hour)
	records, err := repos.Attendance.List(ctx, repository.AttendanceFilter{StaffID: "s1", From: &from})
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "r2", records[0].ID)
}
