package access_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/bizdash/internal/access"
	"github.com/spec-kit/bizdash/internal/domain"
	apperrors "github.com/spec-kit/bizdash/pkg/util"
)

func TestSuperAdminAccessesEveryBusiness(t *testing.T) {
	admin := domain.Admin{ID: "a1", Role: domain.AdminRoleSuperAdmin, BusinessIDs: []string{"b1"}}

	for _, id := range []string{"b1", "b2", "b3", "unknown"} {
		require.True(t, access.CanAccess(admin, id), id)
	}
}

func TestPlainAdminLimitedToAllowlist(t *testing.T) {
	admin := &domain.Admin{ID: "a2", Role: domain.AdminRoleAdmin, BusinessIDs: []string{"b1", "b2"}}

	require.True(t, access.CanAccess(admin, "b1"))
	require.True(t, access.CanAccess(admin, "b2"))
	require.False(t, access.CanAccess(admin, "b3"))
	require.False(t, access.CanAccess(admin, ""))
}

func TestStaffScopedToOneBusiness(t *testing.T) {
	staff := domain.Staff{ID: "s1", BusinessID: "b1"}

	require.True(t, access.CanAccess(staff, "b1"))
	require.False(t, access.CanAccess(staff, "b2"))
}

func TestNoIdentityHasNoAccess(t *testing.T) {
	var admin *domain.Admin
	require.False(t, access.CanAccess(nil, "b1"))
	require.False(t, access.CanAccess(admin, "b1"))
}

func TestRequireReturnsNoBusinessAccess(t *testing.T) {
	admin := domain.Admin{Role: domain.AdminRoleAdmin, BusinessIDs: []string{"b1", "b2"}}

	require.NoError(t, access.Require(admin, "b1"))

	err := access.Require(admin, "b3")
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	require.Equal(t, "NO_BUSINESS_ACCESS", domainErr.Code)
	require.Equal(t, 403, domainErr.HTTPStatus)
}

func TestFilterKeepsOrder(t *testing.T) {
	admin := domain.Admin{Role: domain.AdminRoleAdmin, BusinessIDs: []string{"b3", "b1"}}
	all := []domain.Business{{ID: "b1"}, {ID: "b2"}, {ID: "b3"}}

	got := access.Filter(admin, all)
	require.Len(t, got, 2)
	require.Equal(t, "b1", got[0].ID)
	require.Equal(t, "b3", got[1].ID)
}
