package gateway

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/bizdash/internal/credential"
	"github.com/spec-kit/bizdash/internal/domain"
)

const requestIDHeader = "X-Request-Id"

type requestIDKey struct{}

// WithRequestID tags ctx so outgoing backend calls carry the inbound request id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Navigator performs the hard navigation that follows an expired session.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

// authTransport attaches the domain's bearer token and turns a 401 from a
// non-auth endpoint into a forced logout.
type authTransport struct {
	base          http.RoundTripper
	domain        domain.Domain
	creds         credential.Provider
	nav           Navigator
	loginPath     string
	basePath      string
	authEndpoints []string
	logger        *zap.Logger
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	if token, ok := t.creds.Get(t.domain); ok {
		out.Header.Set("Authorization", "Bearer "+token)
	} else {
		out.Header.Del("Authorization")
	}
	if id := requestIDFrom(req.Context()); id != "" {
		out.Header.Set(requestIDHeader, id)
	}

	resp, err := t.base.RoundTrip(out)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && !t.isAuthEndpoint(out.URL.Path) {
		t.logger.Info("session expired; forcing logout",
			zap.String("domain", string(t.domain)),
			zap.String("path", out.URL.Path))
		t.creds.Clear(t.domain)
		if t.nav != nil {
			t.nav.Navigate(t.loginPath)
		}
	}
	return resp, nil
}

func (t *authTransport) isAuthEndpoint(path string) bool {
	if t.basePath != "" {
		rel, ok := strings.CutPrefix(path, t.basePath)
		if !ok {
			return false
		}
		path = rel
	}
	return matchesAuthEndpoint(path, t.authEndpoints)
}

// matchesAuthEndpoint compares a path relative to the backend base URL.
func matchesAuthEndpoint(path string, endpoints []string) bool {
	path = "/" + strings.Trim(path, "/")
	for _, ep := range endpoints {
		if path == ep {
			return true
		}
	}
	return false
}

// DefaultAuthEndpoints are the paths whose 401 means bad credentials, not expiry.
func DefaultAuthEndpoints(d domain.Domain) []string {
	switch d {
	case domain.DomainAdmin:
		return []string{"/admin/login", "/admin/register"}
	case domain.DomainStaff:
		return []string{"/staff/login"}
	default:
		return nil
	}
}
