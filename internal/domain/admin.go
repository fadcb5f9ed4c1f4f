package domain

import (
	"slices"
	"time"
)

// AdminRole enumerates administrator roles.
type AdminRole string

const (
	AdminRoleSuperAdmin AdminRole = "super-admin"
	AdminRoleAdmin      AdminRole = "admin"
)

// Valid reports whether r is a known role.
func (r AdminRole) Valid() bool {
	return r == AdminRoleSuperAdmin || r == AdminRoleAdmin
}

// Admin is a dashboard administrator. BusinessIDs is the exhaustive allowlist for
// role admin and is ignored for super-admins.
type Admin struct {
	ID          string    `json:"_id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Role        AdminRole `json:"role"`
	BusinessIDs []string  `json:"businessIds"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	PasswordHash string `json:"-"`
}

func (Admin) IdentityDomain() Domain { return DomainAdmin }

func (a Admin) FullName() string { return fullName(a.FirstName, a.LastName) }

func (a Admin) Initials() string { return initials(a.FirstName, a.LastName) }

// IsSuperAdmin reports whether the admin bypasses the business allowlist.
func (a Admin) IsSuperAdmin() bool {
	return a.Role == AdminRoleSuperAdmin
}

// AssignedTo reports whether businessID is in the admin's allowlist.
func (a Admin) AssignedTo(businessID string) bool {
	return slices.Contains(a.BusinessIDs, businessID)
}
