package events

import (
	"time"

	"github.com/spec-kit/bizdash/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLoggedIn       EventType = "session_logged_in"
	EventLoggedOut      EventType = "session_logged_out"
	EventSessionExpired EventType = "session_expired"
	EventAccessDenied   EventType = "business_access_denied"
)

// Actor encapsulates the identity an event is about.
type Actor struct {
	Domain    domain.Domain `json:"domain"`
	ID        string        `json:"id,omitempty"`
	Email     string        `json:"email,omitempty"`
	BrowserID string        `json:"browser_id,omitempty"`
}

// Event represents a session lifecycle event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Actor     Actor     `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// SessionExpiredPayload records where the forced logout sent the browser.
type SessionExpiredPayload struct {
	RedirectTo string `json:"redirect_to"`
}

// AccessDeniedPayload names the business the actor was refused.
type AccessDeniedPayload struct {
	BusinessID string `json:"business_id"`
	Operation  string `json:"operation"`
}
