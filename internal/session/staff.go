package session

import (
	"github.com/spec-kit/bizdash/internal/access"
	"github.com/spec-kit/bizdash/internal/domain"
)

// StaffSession is the staff-domain store.
type StaffSession struct {
	*Store[domain.Staff]
}

// NewStaffSession builds an empty staff session.
func NewStaffSession(opts Options) *StaffSession {
	return &StaffSession{Store: New[domain.Staff](domain.DomainStaff, opts)}
}

// BusinessID returns the business employing the current staff member.
func (s *StaffSession) BusinessID() (string, bool) {
	staff, ok := s.Identity()
	if !ok {
		return "", false
	}
	return staff.BusinessID, true
}

// HasBusinessAccess is true only for the staff member's own business.
func (s *StaffSession) HasBusinessAccess(businessID string) bool {
	staff, ok := s.Identity()
	if !ok {
		return false
	}
	return access.CanAccess(staff, businessID)
}
