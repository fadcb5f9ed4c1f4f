package workspace

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/bizdash/internal/credential"
	"github.com/spec-kit/bizdash/internal/domain"
	"github.com/spec-kit/bizdash/internal/events"
	"github.com/spec-kit/bizdash/internal/gateway"
	"github.com/spec-kit/bizdash/internal/observability"
	"github.com/spec-kit/bizdash/internal/session"
)

func TestSnapshotsAreSharedPerBrowser(t *testing.T) {
	persister := session.NewMemoryPersister()
	f := NewFactory(Options{BaseURL: "http://backend.test", Persister: persister})
	ctx := context.Background()

	creds := credential.NewMemoryStore(nil)
	creds.Set(domain.DomainAdmin, "token")
	ws, err := f.Assemble(ctx, "browser-a", creds)
	require.NoError(t, err)
	ws.Admin.SetIdentity(ctx, domain.Admin{ID: "a1", FirstName: "Ada", LastName: "Lovelace", Role: domain.AdminRoleSuperAdmin})

	again, err := f.Assemble(ctx, "browser-a", creds)
	require.NoError(t, err)
	require.True(t, again.Admin.IsAuthenticated())
	require.Equal(t, "AL", again.Admin.Initials())
	require.False(t, again.Staff.IsAuthenticated())

	other, err := f.Assemble(ctx, "browser-b", credential.NewMemoryStore(nil))
	require.NoError(t, err)
	require.False(t, other.Admin.IsAuthenticated())
}

func TestExpiredTokenDiscardsOnlyItsDomain(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid token"}`))
	}))
	defer backend.Close()

	dispatcher := events.NewInMemoryDispatcher()
	var expired []events.Event
	dispatcher.Subscribe(events.EventSessionExpired, func(_ context.Context, e events.Event) error {
		expired = append(expired, e)
		return nil
	})
	metrics := observability.NewMetrics()
	f := NewFactory(Options{BaseURL: backend.URL, Metrics: metrics, Dispatcher: dispatcher})
	ctx := context.Background()

	creds := credential.NewMemoryStore(nil)
	creds.Set(domain.DomainAdmin, "admin-token")
	creds.Set(domain.DomainStaff, "staff-token")
	ws, err := f.Assemble(ctx, "browser", creds)
	require.NoError(t, err)
	ws.Admin.SetIdentity(ctx, domain.Admin{ID: "a1"})
	ws.Staff.SetIdentity(ctx, domain.Staff{ID: "s1"})

	_, ok := ws.Redirect()
	require.False(t, ok)

	err = ws.AdminAPI.Get(ctx, "/businesses", nil, nil)
	require.ErrorIs(t, err, gateway.ErrSessionExpired)

	path, ok := ws.Redirect()
	require.True(t, ok)
	require.Equal(t, "/login", path)
	d, _ := ws.Expired()
	require.Equal(t, domain.DomainAdmin, d)

	require.False(t, ws.Admin.IsAuthenticated())
	_, ok = creds.Get(domain.DomainAdmin)
	require.False(t, ok)

	require.True(t, ws.Staff.IsAuthenticated())
	_, ok = creds.Get(domain.DomainStaff)
	require.True(t, ok)

	require.Len(t, expired, 1)
	require.Equal(t, "browser", expired[0].Actor.BrowserID)
	require.Equal(t, int64(1), metrics.Snapshot().ForcedLogouts["admin"])
}

func TestLoginEndpointFailureIsNotAnExpiry(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer backend.Close()

	f := NewFactory(Options{BaseURL: backend.URL})
	ws, err := f.Assemble(context.Background(), "browser", credential.NewMemoryStore(nil))
	require.NoError(t, err)

	err = ws.AdminAPI.Post(context.Background(), "/admin/login", map[string]string{"email": "x"}, nil)
	require.ErrorIs(t, err, gateway.ErrInvalidCredentials)
	_, ok := ws.Redirect()
	require.False(t, ok)
}

func TestConcurrentExpiryLogsOutOnce(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer backend.Close()

	dispatcher := events.NewInMemoryDispatcher()
	var mu sync.Mutex
	expired := 0
	dispatcher.Subscribe(events.EventSessionExpired, func(context.Context, events.Event) error {
		mu.Lock()
		expired++
		mu.Unlock()
		return nil
	})
	metrics := observability.NewMetrics()
	f := NewFactory(Options{BaseURL: backend.URL, Metrics: metrics, Dispatcher: dispatcher})
	ctx := context.Background()

	creds := credential.NewMemoryStore(nil)
	creds.Set(domain.DomainAdmin, "admin-token")
	ws, err := f.Assemble(ctx, "browser", creds)
	require.NoError(t, err)
	ws.Admin.SetIdentity(ctx, domain.Admin{ID: "a1"})

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = ws.AdminAPI.Get(ctx, "/businesses", nil, nil)
		}()
	}
	wg.Wait()

	require.Equal(t, 1, expired)
	require.Equal(t, int64(1), metrics.Snapshot().ForcedLogouts["admin"])
	require.False(t, ws.Admin.IsAuthenticated())
}
