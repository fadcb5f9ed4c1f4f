package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Domain separates the admin and staff authentication universes.
type Domain string

const (
	DomainAdmin Domain = "admin"
	DomainStaff Domain = "staff"
)

// Valid reports whether d names a known identity domain.
func (d Domain) Valid() bool {
	return d == DomainAdmin || d == DomainStaff
}

// Identity is implemented by every record a session can hold.
type Identity interface {
	IdentityDomain() Domain
	FullName() string
	Initials() string
}

func fullName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}

func initials(first, last string) string {
	var b strings.Builder
	for _, part := range []string{first, last} {
		r, size := utf8.DecodeRuneInString(part)
		if size == 0 || r == utf8.RuneError {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
