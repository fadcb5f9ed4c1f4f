// Package gateway is the single HTTP client each identity domain uses to reach
// the REST backend.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/bizdash/internal/credential"
	"github.com/spec-kit/bizdash/internal/domain"
)

// Config describes one domain's client.
type Config struct {
	Domain  domain.Domain
	BaseURL string
	// LoginPath is where the navigator is sent after a session expires.
	LoginPath string
	// AuthEndpoints default to DefaultAuthEndpoints(Domain).
	AuthEndpoints []string
	// Transport is shared between clients; nil means http.DefaultTransport.
	Transport http.RoundTripper
	Timeout   time.Duration
	Logger    *zap.Logger
}

// Client issues JSON requests against the backend.
type Client struct {
	domain        domain.Domain
	base          *url.URL
	http          *http.Client
	authEndpoints []string
	logger        *zap.Logger
}

// New builds a client that reads and clears credentials through creds and
// reports expired sessions to nav.
func New(cfg Config, creds credential.Provider, nav Navigator) (*Client, error) {
	if !cfg.Domain.Valid() {
		return nil, fmt.Errorf("gateway: unknown domain %q", cfg.Domain)
	}
	if creds == nil {
		return nil, errors.New("gateway: credential provider required")
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("gateway: parse base url: %w", err)
	}
	if cfg.LoginPath == "" {
		cfg.LoginPath = "/login"
	}
	if cfg.AuthEndpoints == nil {
		cfg.AuthEndpoints = DefaultAuthEndpoints(cfg.Domain)
	}
	if cfg.Transport == nil {
		cfg.Transport = http.DefaultTransport
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Client{
		domain:        cfg.Domain,
		base:          base,
		authEndpoints: cfg.AuthEndpoints,
		logger:        cfg.Logger,
		http: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &authTransport{
				base:          cfg.Transport,
				domain:        cfg.Domain,
				creds:         creds,
				nav:           nav,
				loginPath:     cfg.LoginPath,
				basePath:      base.Path,
				authEndpoints: cfg.AuthEndpoints,
				logger:        cfg.Logger,
			},
		},
	}, nil
}

// Domain returns the identity domain the client authenticates as.
func (c *Client) Domain() domain.Domain { return c.domain }

// Get issues a GET and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, out)
}

// Do sends one request. A nil body sends no payload; a nil out discards the response.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(path, query), reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, path, out)
}

// Upload posts a single file as multipart form field "file".
func (c *Client) Upload(ctx context.Context, path, filename string, file io.Reader, out any) error {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("build upload %s: %w", path, err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("read upload %s: %w", path, err)
	}
	if err := form.Close(); err != nil {
		return fmt.Errorf("build upload %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resolve(path, nil), &buf)
	if err != nil {
		return fmt.Errorf("build upload %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", form.FormDataContentType())
	return c.send(req, path, out)
}

func (c *Client) send(req *http.Request, path string, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrTransport, req.Method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || resp.StatusCode == http.StatusNoContent {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s %s: %w", req.Method, path, err)
		}
		return nil
	}

	return c.classify(req.Method, path, resp)
}

func (c *Client) classify(method, path string, resp *http.Response) error {
	var body errorBody
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	_ = json.Unmarshal(raw, &body)

	apiErr := &APIError{Method: method, Path: path, Status: resp.StatusCode, Message: body.text(resp.StatusCode)}
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if matchesAuthEndpoint(path, c.authEndpoints) {
			apiErr.kind = ErrInvalidCredentials
		} else {
			apiErr.kind = ErrSessionExpired
		}
	case http.StatusForbidden:
		apiErr.kind = ErrForbidden
	}
	if resp.StatusCode >= 500 {
		c.logger.Warn("backend error",
			zap.String("domain", string(c.domain)),
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
	}
	return apiErr
}

// resolve joins path onto the base URL. path is already escaped: segments
// built from ids and slugs are escaped by their callers.
func (c *Client) resolve(path string, query url.Values) string {
	u := *c.base
	raw := strings.TrimRight(c.base.EscapedPath(), "/") + "/" + strings.TrimLeft(path, "/")
	if unescaped, err := url.PathUnescape(raw); err == nil {
		u.Path, u.RawPath = unescaped, raw
	} else {
		u.Path, u.RawPath = raw, ""
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}
