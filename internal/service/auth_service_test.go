package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/bizdash/internal/credential"
	"github.com/spec-kit/bizdash/internal/domain"
	"github.com/spec-kit/bizdash/internal/gateway"
	"github.com/spec-kit/bizdash/internal/session"
)

type meStub struct {
	calls int
	admin *domain.Admin
	err   error
}

func (m *meStub) me(context.Context) (*domain.Admin, error) {
	m.calls++
	return m.admin, m.err
}

func newAdminStore(creds credential.Provider, now func() time.Time) *session.Store[domain.Admin] {
	return session.New[domain.Admin](domain.DomainAdmin, session.Options{Credentials: creds, Now: now})
}

func TestRehydrateWithoutCredentialDiscardsSnapshot(t *testing.T) {
	ctx := context.Background()
	creds := credential.NewMemoryStore(nil)
	store := newAdminStore(creds, nil)
	store.SetIdentity(ctx, domain.Admin{ID: "a1"})

	stub := &meStub{}
	require.NoError(t, rehydrate(ctx, store, creds, time.Minute, stub.me, zap.NewNop()))
	require.False(t, store.IsAuthenticated())
	require.Zero(t, stub.calls)
}

func TestRehydrateTrustsFreshSnapshot(t *testing.T) {
	ctx := context.Background()
	creds := credential.NewMemoryStore(nil)
	creds.Set(domain.DomainAdmin, "token")
	store := newAdminStore(creds, nil)
	store.SetIdentity(ctx, domain.Admin{ID: "a1"})

	stub := &meStub{}
	require.NoError(t, rehydrate(ctx, store, creds, time.Minute, stub.me, zap.NewNop()))
	require.True(t, store.IsAuthenticated())
	require.Zero(t, stub.calls)
}

func TestRehydrateRefreshesStaleSnapshot(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	clock := func() time.Time { return now }
	creds := credential.NewMemoryStore(clock)
	creds.Set(domain.DomainAdmin, "token")
	store := newAdminStore(creds, clock)
	store.SetIdentity(ctx, domain.Admin{ID: "a1", FirstName: "Old"})

	now = now.Add(10 * time.Minute)
	stub := &meStub{admin: &domain.Admin{ID: "a1", FirstName: "New"}}
	require.NoError(t, rehydrate(ctx, store, creds, 5*time.Minute, stub.me, zap.NewNop()))
	require.Equal(t, 1, stub.calls)

	admin, ok := store.Identity()
	require.True(t, ok)
	require.Equal(t, "New", admin.FirstName)
	require.False(t, store.Stale(5*time.Minute))
	require.False(t, store.IsLoading())
}

func TestRehydrateOutcomes(t *testing.T) {
	tests := []struct {
		name       string
		cached     bool
		err        error
		wantErr    bool
		wantAuthed bool
	}{
		{name: "expired token", cached: false, err: fmt.Errorf("get: %w", gateway.ErrSessionExpired), wantAuthed: false},
		{name: "transport failure keeps cache", cached: true, err: fmt.Errorf("%w: dial", gateway.ErrTransport), wantAuthed: true},
		{name: "transport failure without cache", cached: false, err: fmt.Errorf("%w: dial", gateway.ErrTransport), wantErr: true},
		{name: "server error", cached: true, err: errors.New("boom"), wantErr: true, wantAuthed: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			now := time.Now()
			clock := func() time.Time { return now }
			creds := credential.NewMemoryStore(clock)
			creds.Set(domain.DomainAdmin, "token")
			store := newAdminStore(creds, clock)
			if tt.cached {
				store.SetIdentity(ctx, domain.Admin{ID: "a1"})
				now = now.Add(time.Hour)
			}

			stub := &meStub{err: tt.err}
			err := rehydrate(ctx, store, creds, time.Minute, stub.me, zap.NewNop())
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, tt.wantAuthed, store.IsAuthenticated())
			require.Equal(t, 1, stub.calls)
		})
	}
}
