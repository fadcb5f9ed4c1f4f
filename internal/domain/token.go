package domain

import "time"

// Token is a signed bearer credential as issued by the backend. The dashboard
// never inspects Value; it only stores and forwards it.
type Token struct {
	Value     string
	SubjectID string
	Subject   Domain
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token is past its expiry at now.
func (t Token) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && !now.Before(t.ExpiresAt)
}
