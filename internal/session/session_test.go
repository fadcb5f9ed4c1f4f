package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/bizdash/internal/credential"
	"github.com/spec-kit/bizdash/internal/domain"
	"github.com/spec-kit/bizdash/internal/session"
)

func plainAdmin() domain.Admin {
	return domain.Admin{
		ID:          "a1",
		Email:       "ada@example.com",
		FirstName:   "ada",
		LastName:    "lovelace",
		Role:        domain.AdminRoleAdmin,
		BusinessIDs: []string{"b1", "b2"},
		IsActive:    true,
	}
}

func TestSetIdentityAuthenticates(t *testing.T) {
	ctx := context.Background()
	s := session.NewAdminSession(session.Options{})

	require.False(t, s.IsAuthenticated())
	s.SetIdentity(ctx, plainAdmin())

	require.True(t, s.IsAuthenticated())
	got, ok := s.Identity()
	require.True(t, ok)
	require.Equal(t, "a1", got.ID)
	require.Equal(t, "ada lovelace", s.FullName())
	require.Equal(t, "AL", s.Initials())
}

func TestDisplayHelpersEmptyWithoutIdentity(t *testing.T) {
	s := session.NewStaffSession(session.Options{})
	require.Equal(t, "", s.FullName())
	require.Equal(t, "", s.Initials())
	_, ok := s.BusinessID()
	require.False(t, ok)
}

func TestLogoutClearsCredentialAndIdentity(t *testing.T) {
	ctx := context.Background()
	creds := credential.NewMemoryStore(nil)
	creds.Set(domain.DomainAdmin, "admin-token")
	creds.Set(domain.DomainStaff, "staff-token")
	s := session.NewAdminSession(session.Options{Credentials: creds})
	s.SetIdentity(ctx, plainAdmin())

	s.Logout(ctx)

	require.False(t, s.IsAuthenticated())
	_, ok := s.Identity()
	require.False(t, ok)
	_, ok = creds.Get(domain.DomainAdmin)
	require.False(t, ok)
	staffToken, ok := creds.Get(domain.DomainStaff)
	require.True(t, ok)
	require.Equal(t, "staff-token", staffToken)
}

func TestLogoutIsIdempotent(t *testing.T) {
	ctx := context.Background()
	persister := session.NewMemoryPersister()
	creds := credential.NewMemoryStore(nil)
	s := session.NewAdminSession(session.Options{Credentials: creds, Persister: persister, BrowserID: "br"})
	s.SetIdentity(ctx, plainAdmin())

	s.Logout(ctx)
	once, err := persister.Load(ctx, "admin-storage:br")
	require.NoError(t, err)

	s.Logout(ctx)
	twice, err := persister.Load(ctx, "admin-storage:br")
	require.NoError(t, err)

	require.JSONEq(t, string(once), string(twice))
	require.False(t, s.IsAuthenticated())
}

func TestSnapshotSurvivesReloadWithoutLoadingFlag(t *testing.T) {
	ctx := context.Background()
	persister := session.NewMemoryPersister()
	first := session.NewAdminSession(session.Options{Persister: persister, BrowserID: "br"})
	first.SetLoading(true)
	first.SetIdentity(ctx, plainAdmin())

	reloaded := session.NewAdminSession(session.Options{Persister: persister, BrowserID: "br"})
	reloaded.Load(ctx)

	require.True(t, reloaded.IsAuthenticated())
	require.False(t, reloaded.IsLoading())
	got, ok := reloaded.Identity()
	require.True(t, ok)
	require.Equal(t, []string{"b1", "b2"}, got.BusinessIDs)

	raw, err := persister.Load(ctx, "admin-storage:br")
	require.NoError(t, err)
	require.NotContains(t, string(raw), "token")
	require.NotContains(t, string(raw), "isLoading")
}

func TestBrowsersDoNotShareSnapshots(t *testing.T) {
	ctx := context.Background()
	persister := session.NewMemoryPersister()
	a := session.NewAdminSession(session.Options{Persister: persister, BrowserID: "one"})
	a.SetIdentity(ctx, plainAdmin())

	b := session.NewAdminSession(session.Options{Persister: persister, BrowserID: "two"})
	b.Load(ctx)
	require.False(t, b.IsAuthenticated())
}

type failingPersister struct{}

func (failingPersister) Load(context.Context, string) ([]byte, error) {
	return nil, errors.New("storage down")
}

func (failingPersister) Save(context.Context, string, []byte) error {
	return errors.New("storage down")
}

func TestUnavailableStorageDegradesToAnonymous(t *testing.T) {
	ctx := context.Background()
	s := session.NewAdminSession(session.Options{Persister: failingPersister{}})
	s.Load(ctx)
	require.False(t, s.IsAuthenticated())

	s.SetIdentity(ctx, plainAdmin())
	require.True(t, s.IsAuthenticated())
}

func TestRoleHelpers(t *testing.T) {
	ctx := context.Background()
	s := session.NewAdminSession(session.Options{})
	require.False(t, s.IsSuperAdmin())
	require.False(t, s.HasBusinessAccess("b1"))

	s.SetIdentity(ctx, plainAdmin())
	require.False(t, s.IsSuperAdmin())
	require.True(t, s.HasBusinessAccess("b1"))
	require.False(t, s.HasBusinessAccess("b3"))

	super := plainAdmin()
	super.Role = domain.AdminRoleSuperAdmin
	super.BusinessIDs = nil
	s.SetIdentity(ctx, super)
	require.True(t, s.IsSuperAdmin())
	require.True(t, s.HasBusinessAccess("b3"))
	require.Equal(t, domain.AdminRoleSuperAdmin, s.Role())
}

func TestStaffSessionScope(t *testing.T) {
	ctx := context.Background()
	s := session.NewStaffSession(session.Options{})
	s.SetIdentity(ctx, domain.Staff{ID: "s1", FirstName: "grace", LastName: "hopper", BusinessID: "b1"})

	id, ok := s.BusinessID()
	require.True(t, ok)
	require.Equal(t, "b1", id)
	require.True(t, s.HasBusinessAccess("b1"))
	require.False(t, s.HasBusinessAccess("b2"))
	require.Equal(t, "GH", s.Initials())
}

func TestStaleWindow(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	s := session.NewAdminSession(session.Options{Now: func() time.Time { return now }})
	require.True(t, s.Stale(5*time.Minute))

	s.SetIdentity(ctx, plainAdmin())
	require.False(t, s.Stale(5*time.Minute))

	now = now.Add(6 * time.Minute)
	require.True(t, s.Stale(5*time.Minute))
}
