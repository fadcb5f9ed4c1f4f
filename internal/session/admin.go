package session

import (
	"github.com/spec-kit/bizdash/internal/access"
	"github.com/spec-kit/bizdash/internal/domain"
)

// AdminSession is the admin-domain store plus role helpers.
type AdminSession struct {
	*Store[domain.Admin]
}

// NewAdminSession builds an empty admin session.
func NewAdminSession(opts Options) *AdminSession {
	return &AdminSession{Store: New[domain.Admin](domain.DomainAdmin, opts)}
}

// IsSuperAdmin is true only for an authenticated super-admin.
func (s *AdminSession) IsSuperAdmin() bool {
	admin, ok := s.Identity()
	return ok && admin.IsSuperAdmin()
}

// HasBusinessAccess applies the tenancy policy to the current admin.
func (s *AdminSession) HasBusinessAccess(businessID string) bool {
	admin, ok := s.Identity()
	if !ok {
		return false
	}
	return access.CanAccess(admin, businessID)
}

// Role returns the current admin role, empty without identity.
func (s *AdminSession) Role() domain.AdminRole {
	admin, ok := s.Identity()
	if !ok {
		return ""
	}
	return admin.Role
}
