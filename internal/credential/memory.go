package credential

import (
	"sync"
	"time"

	"github.com/spec-kit/bizdash/internal/domain"
)

type entry struct {
	token     string
	expiresAt time.Time
}

// MemoryStore keeps tokens in process memory with absolute expiry.
type MemoryStore struct {
	mu      sync.Mutex
	now     func() time.Time
	entries map[string]entry
}

// NewMemoryStore builds a store. A nil clock defaults to time.Now.
func NewMemoryStore(now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{now: now, entries: make(map[string]entry)}
}

// Set stores token for d until now + TTL.
func (s *MemoryStore) Set(d domain.Domain, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[CookieName(d)] = entry{token: token, expiresAt: s.now().Add(TTL)}
}

// Get returns the token when present and unexpired. Expired entries are dropped.
func (s *MemoryStore) Get(d domain.Domain) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := CookieName(d)
	e, ok := s.entries[key]
	if !ok {
		return "", false
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.entries, key)
		return "", false
	}
	return e.token, true
}

// Clear removes the token of d.
func (s *MemoryStore) Clear(d domain.Domain) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, CookieName(d))
}

// ExpiresAt reports the absolute expiry of the token of d.
func (s *MemoryStore) ExpiresAt(d domain.Domain) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[CookieName(d)]
	return e.expiresAt, ok
}
