// Package credential stores the opaque bearer token of each identity domain.
package credential

import (
	"time"

	"github.com/spec-kit/bizdash/internal/domain"
)

// TTL is the fixed validity window of a stored token.
const TTL = 7 * 24 * time.Hour

// Getter reads the current token of a domain.
type Getter interface {
	Get(d domain.Domain) (string, bool)
}

// Clearer drops the token of a domain.
type Clearer interface {
	Clear(d domain.Domain)
}

// Provider is the full credential store contract. None of its operations fail;
// an unavailable backing store behaves as if no token were present.
type Provider interface {
	Getter
	Clearer
	Set(d domain.Domain, token string)
}

// CookieName is the storage key for a domain. Admin and staff never share a key.
func CookieName(d domain.Domain) string {
	return string(d) + "_token"
}
