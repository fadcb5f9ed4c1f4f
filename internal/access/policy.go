// Package access holds the business-scope tenancy rule shared by the dashboard
// and the sandbox backend.
package access

import (
	"github.com/spec-kit/bizdash/internal/domain"
	apperrors "github.com/spec-kit/bizdash/pkg/util"
)

// CanAccess decides whether identity may read or mutate resources owned by businessID.
// Super-admins see every business, plain admins only their allowlist, staff only
// the business that employs them.
func CanAccess(identity domain.Identity, businessID string) bool {
	if businessID == "" {
		return false
	}
	switch id := identity.(type) {
	case domain.Admin:
		return id.IsSuperAdmin() || id.AssignedTo(businessID)
	case *domain.Admin:
		if id == nil {
			return false
		}
		return id.IsSuperAdmin() || id.AssignedTo(businessID)
	case domain.Staff:
		return id.BusinessID == businessID
	case *domain.Staff:
		if id == nil {
			return false
		}
		return id.BusinessID == businessID
	default:
		return false
	}
}

// Require returns a NO_BUSINESS_ACCESS error when CanAccess is false.
func Require(identity domain.Identity, businessID string) error {
	if !CanAccess(identity, businessID) {
		return apperrors.NewNoBusinessAccess(businessID)
	}
	return nil
}

// Filter keeps the businesses identity may see, preserving order.
func Filter(identity domain.Identity, businesses []domain.Business) []domain.Business {
	out := make([]domain.Business, 0, len(businesses))
	for _, b := range businesses {
		if CanAccess(identity, b.ID) {
			out = append(out, b)
		}
	}
	return out
}
