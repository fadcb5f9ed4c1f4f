package gateway_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/bizdash/internal/credential"
	"github.com/spec-kit/bizdash/internal/domain"
	"github.com/spec-kit/bizdash/internal/gateway"
)

type recordingNavigator struct {
	targets []string
}

func (n *recordingNavigator) Navigate(path string) { n.targets = append(n.targets, path) }

type backend struct {
	server      *httptest.Server
	lastAuth    string
	lastReqID   string
	lastRawPath string
	statusByURL map[string]int
	bodyByURL   map[string]string
}

func newBackend(t *testing.T) *backend {
	b := &backend{statusByURL: map[string]int{}, bodyByURL: map[string]string{}}
	b.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.lastAuth = r.Header.Get("Authorization")
		b.lastReqID = r.Header.Get("X-Request-Id")
		b.lastRawPath = r.URL.EscapedPath()
		status := http.StatusOK
		if s, ok := b.statusByURL[r.URL.Path]; ok {
			status = s
		}
		body := `{"ok":true}`
		if s, ok := b.bodyByURL[r.URL.Path]; ok {
			body = s
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(b.server.Close)
	return b
}

func newClient(t *testing.T, d domain.Domain, baseURL string, creds credential.Provider, nav gateway.Navigator) *gateway.Client {
	t.Helper()
	client, err := gateway.New(gateway.Config{Domain: d, BaseURL: baseURL}, creds, nav)
	require.NoError(t, err)
	return client
}

func TestAttachesBearerTokenWhenPresent(t *testing.T) {
	b := newBackend(t)
	creds := credential.NewMemoryStore(nil)
	client := newClient(t, domain.DomainAdmin, b.server.URL, creds, &recordingNavigator{})

	require.NoError(t, client.Get(context.Background(), "/businesses", nil, nil))
	require.Empty(t, b.lastAuth)

	creds.Set(domain.DomainAdmin, "tok-admin")
	creds.Set(domain.DomainStaff, "tok-staff")
	require.NoError(t, client.Get(context.Background(), "/businesses", nil, nil))
	require.Equal(t, "Bearer tok-admin", b.lastAuth)
}

func TestStaffClientUsesStaffToken(t *testing.T) {
	b := newBackend(t)
	creds := credential.NewMemoryStore(nil)
	creds.Set(domain.DomainAdmin, "tok-admin")
	creds.Set(domain.DomainStaff, "tok-staff")
	client := newClient(t, domain.DomainStaff, b.server.URL, creds, &recordingNavigator{})

	require.NoError(t, client.Get(context.Background(), "/staff/me", nil, nil))
	require.Equal(t, "Bearer tok-staff", b.lastAuth)
}

func TestUnauthorizedOnLoginEndpointsPassesThrough(t *testing.T) {
	cases := []struct {
		domain domain.Domain
		path   string
	}{
		{domain.DomainAdmin, "/admin/login"},
		{domain.DomainAdmin, "/admin/register"},
		{domain.DomainStaff, "/staff/login"},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			b := newBackend(t)
			b.statusByURL[tc.path] = http.StatusUnauthorized
			b.bodyByURL[tc.path] = `{"error":"Invalid email or password"}`
			creds := credential.NewMemoryStore(nil)
			creds.Set(tc.domain, "existing")
			nav := &recordingNavigator{}
			client := newClient(t, tc.domain, b.server.URL, creds, nav)

			err := client.Post(context.Background(), tc.path, map[string]string{"email": "x"}, nil)

			require.ErrorIs(t, err, gateway.ErrInvalidCredentials)
			require.NotErrorIs(t, err, gateway.ErrSessionExpired)
			var apiErr *gateway.APIError
			require.True(t, errors.As(err, &apiErr))
			require.Equal(t, "Invalid email or password", apiErr.Message)
			require.Empty(t, nav.targets)
			token, ok := creds.Get(tc.domain)
			require.True(t, ok)
			require.Equal(t, "existing", token)
		})
	}
}

func TestUnauthorizedElsewhereClearsAndRedirects(t *testing.T) {
	b := newBackend(t)
	b.statusByURL["/admin/me"] = http.StatusUnauthorized
	creds := credential.NewMemoryStore(nil)
	creds.Set(domain.DomainAdmin, "stale")
	creds.Set(domain.DomainStaff, "staff-ok")
	nav := &recordingNavigator{}
	client := newClient(t, domain.DomainAdmin, b.server.URL, creds, nav)

	err := client.Get(context.Background(), "/admin/me", nil, nil)

	require.ErrorIs(t, err, gateway.ErrSessionExpired)
	require.Equal(t, []string{"/login"}, nav.targets)
	_, ok := creds.Get(domain.DomainAdmin)
	require.False(t, ok)
	_, ok = creds.Get(domain.DomainStaff)
	require.True(t, ok)
}

func TestStaffLoginPathIsNotExemptForAdminClient(t *testing.T) {
	b := newBackend(t)
	b.statusByURL["/staff/login"] = http.StatusUnauthorized
	creds := credential.NewMemoryStore(nil)
	creds.Set(domain.DomainAdmin, "tok")
	nav := &recordingNavigator{}
	client := newClient(t, domain.DomainAdmin, b.server.URL, creds, nav)

	err := client.Post(context.Background(), "/staff/login", nil, nil)
	require.ErrorIs(t, err, gateway.ErrSessionExpired)
	require.Len(t, nav.targets, 1)
}

func TestForbiddenKeepsSession(t *testing.T) {
	b := newBackend(t)
	b.statusByURL["/blogs"] = http.StatusForbidden
	b.bodyByURL["/blogs"] = `{"message":"not your business"}`
	creds := credential.NewMemoryStore(nil)
	creds.Set(domain.DomainAdmin, "tok")
	nav := &recordingNavigator{}
	client := newClient(t, domain.DomainAdmin, b.server.URL, creds, nav)

	err := client.Post(context.Background(), "/blogs", map[string]string{"title": "x"}, nil)

	require.ErrorIs(t, err, gateway.ErrForbidden)
	var apiErr *gateway.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, "not your business", apiErr.Message)
	require.Empty(t, nav.targets)
	_, ok := creds.Get(domain.DomainAdmin)
	require.True(t, ok)
}

func TestTransportFailureIsWrapped(t *testing.T) {
	b := newBackend(t)
	url := b.server.URL
	b.server.Close()
	client := newClient(t, domain.DomainAdmin, url, credential.NewMemoryStore(nil), &recordingNavigator{})

	err := client.Get(context.Background(), "/businesses", nil, nil)
	require.ErrorIs(t, err, gateway.ErrTransport)
}

func TestDecodesJSONAndPropagatesRequestID(t *testing.T) {
	b := newBackend(t)
	b.bodyByURL["/admin/me"] = `{"_id":"a1","email":"a@example.com","role":"admin","businessIds":["b1"]}`
	client := newClient(t, domain.DomainAdmin, b.server.URL, credential.NewMemoryStore(nil), &recordingNavigator{})

	var admin domain.Admin
	ctx := gateway.WithRequestID(context.Background(), "req-42")
	require.NoError(t, client.Get(ctx, "/admin/me", nil, &admin))
	require.Equal(t, "a1", admin.ID)
	require.Equal(t, []string{"b1"}, admin.BusinessIDs)
	require.Equal(t, "req-42", b.lastReqID)
}

func TestUploadSendsMultipartFile(t *testing.T) {
	var gotName, gotContent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err == nil {
			data, _ := io.ReadAll(file)
			gotName, gotContent = header.Filename, string(data)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	}))
	defer server.Close()
	client := newClient(t, domain.DomainAdmin, server.URL, credential.NewMemoryStore(nil), &recordingNavigator{})

	var out map[string]string
	err := client.Upload(context.Background(), "/blogs/1/featured-image", "cover.png", strings.NewReader("PNG"), &out)
	require.NoError(t, err)
	require.Equal(t, "cover.png", gotName)
	require.Equal(t, "PNG", gotContent)
	require.Equal(t, "ok", out["message"])
}

func TestRejectsUnknownDomain(t *testing.T) {
	_, err := gateway.New(gateway.Config{Domain: "guest", BaseURL: "http://x"}, credential.NewMemoryStore(nil), nil)
	require.Error(t, err)
}

func TestEscapedSegmentsAreSentOnce(t *testing.T) {
	b := newBackend(t)
	client := newClient(t, domain.DomainAdmin, b.server.URL+"/api", credential.NewMemoryStore(nil), &recordingNavigator{})

	path := "/businesses/slug/" + url.PathEscape("café shop")
	require.NoError(t, client.Get(context.Background(), path, nil, nil))
	require.Equal(t, "/api/businesses/slug/caf%C3%A9%20shop", b.lastRawPath)

	require.NoError(t, client.Get(context.Background(), "/blogs/"+url.PathEscape("a/b"), nil, nil))
	require.Equal(t, "/api/blogs/a%2Fb", b.lastRawPath)
}

func TestLookalikeLoginPathIsNotExempt(t *testing.T) {
	b := newBackend(t)
	b.statusByURL["/xadmin/login"] = http.StatusUnauthorized
	creds := credential.NewMemoryStore(nil)
	creds.Set(domain.DomainAdmin, "tok")
	nav := &recordingNavigator{}
	client := newClient(t, domain.DomainAdmin, b.server.URL, creds, nav)

	err := client.Post(context.Background(), "/xadmin/login", map[string]string{}, nil)
	require.ErrorIs(t, err, gateway.ErrSessionExpired)
	require.Equal(t, []string{"/login"}, nav.targets)
	_, ok := creds.Get(domain.DomainAdmin)
	require.False(t, ok)
}

func TestLoginUnderBasePathIsExempt(t *testing.T) {
	b := newBackend(t)
	b.statusByURL["/api/admin/login"] = http.StatusUnauthorized
	nav := &recordingNavigator{}
	client := newClient(t, domain.DomainAdmin, b.server.URL+"/api", credential.NewMemoryStore(nil), nav)

	err := client.Post(context.Background(), "/admin/login", map[string]string{}, nil)
	require.ErrorIs(t, err, gateway.ErrInvalidCredentials)
	require.Empty(t, nav.targets)
}
