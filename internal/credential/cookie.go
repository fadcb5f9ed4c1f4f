package credential

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bizdash/internal/domain"
)

// CookieOptions tune the response cookies written by CookieStore.
type CookieOptions struct {
	Domain string
	Secure bool
}

// CookieStore is a Provider bound to one fiber request. Reads come from the request
// cookies; writes go to the response and shadow the request value for the rest of
// the request so a Set or Clear is visible to later Gets. Backend calls made
// concurrently within one request may share a store.
type CookieStore struct {
	mu      sync.Mutex
	c       *fiber.Ctx
	opts    CookieOptions
	now     func() time.Time
	written map[domain.Domain]string
}

// NewCookieStore binds a store to c.
func NewCookieStore(c *fiber.Ctx, opts CookieOptions) *CookieStore {
	return &CookieStore{c: c, opts: opts, now: time.Now, written: make(map[domain.Domain]string)}
}

// Set writes the token cookie with a 7-day expiry.
func (s *CookieStore) Set(d domain.Domain, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.written[d] = token
	s.c.Cookie(&fiber.Cookie{
		Name:     CookieName(d),
		Value:    token,
		Path:     "/",
		Domain:   s.opts.Domain,
		Expires:  s.now().Add(TTL),
		Secure:   s.opts.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Get returns the token for d, honouring writes made earlier in this request.
func (s *CookieStore) Get(d domain.Domain) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token, ok := s.written[d]; ok {
		return token, token != ""
	}
	token := s.c.Cookies(CookieName(d))
	return token, token != ""
}

// Clear expires the token cookie immediately.
func (s *CookieStore) Clear(d domain.Domain) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.written[d] = ""
	s.c.Cookie(&fiber.Cookie{
		Name:     CookieName(d),
		Value:    "",
		Path:     "/",
		Domain:   s.opts.Domain,
		Expires:  time.Unix(0, 0),
		Secure:   s.opts.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
