package credential_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/bizdash/internal/credential"
	"github.com/spec-kit/bizdash/internal/domain"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestSetThenGetReturnsToken(t *testing.T) {
	store := credential.NewMemoryStore(nil)

	store.Set(domain.DomainAdmin, "tok-1")
	got, ok := store.Get(domain.DomainAdmin)
	require.True(t, ok)
	require.Equal(t, "tok-1", got)
}

func TestGetAfterClearIsAbsent(t *testing.T) {
	store := credential.NewMemoryStore(nil)
	store.Set(domain.DomainAdmin, "tok-1")

	store.Clear(domain.DomainAdmin)
	_, ok := store.Get(domain.DomainAdmin)
	require.False(t, ok)
}

func TestDomainsDoNotOverwriteEachOther(t *testing.T) {
	store := credential.NewMemoryStore(nil)
	store.Set(domain.DomainAdmin, "admin-token")

	store.Set(domain.DomainStaff, "staff-token")
	got, ok := store.Get(domain.DomainAdmin)
	require.True(t, ok)
	require.Equal(t, "admin-token", got)

	store.Clear(domain.DomainStaff)
	got, ok = store.Get(domain.DomainAdmin)
	require.True(t, ok)
	require.Equal(t, "admin-token", got)
}

func TestTokenExpiresAfterSevenDays(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)}
	store := credential.NewMemoryStore(clock.Now)
	store.Set(domain.DomainStaff, "tok")

	exp, ok := store.ExpiresAt(domain.DomainStaff)
	require.True(t, ok)
	require.Equal(t, clock.t.Add(7*24*time.Hour), exp)

	clock.Advance(7*24*time.Hour - time.Second)
	_, ok = store.Get(domain.DomainStaff)
	require.True(t, ok)

	clock.Advance(time.Second)
	_, ok = store.Get(domain.DomainStaff)
	require.False(t, ok)
}

func TestCookieNamesAreDistinct(t *testing.T) {
	require.Equal(t, "admin_token", credential.CookieName(domain.DomainAdmin))
	require.Equal(t, "staff_token", credential.CookieName(domain.DomainStaff))
}
