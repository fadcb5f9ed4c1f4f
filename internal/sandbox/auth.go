package sandbox

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bizdash/internal/api/dto"
	"github.com/spec-kit/bizdash/internal/auth"
	"github.com/spec-kit/bizdash/internal/domain"
	"github.com/spec-kit/bizdash/internal/repository"
	apperrors "github.com/spec-kit/bizdash/pkg/util"
)

const invalidLogin = "Invalid email or password"

type registerInput = dto.RegisterRequest

func (s *Server) adminLogin(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	admin, err := s.repos.Admins.GetByEmail(c.UserContext(), req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewInvalidCredentials(invalidLogin)
		}
		return err
	}
	if !admin.IsActive || auth.ComparePassword(admin.PasswordHash, req.Password) != nil {
		return apperrors.NewInvalidCredentials(invalidLogin)
	}

	token, err := s.tokens.Issue(admin.ID, domain.DomainAdmin)
	if err != nil {
		return err
	}
	return c.JSON(dto.AdminLoginResponse{Token: token.Value, Admin: *admin})
}

// adminRegister is open while no admin exists; the first admin becomes the
// super-admin. Afterwards only a super-admin may register admins.
func (s *Server) adminRegister(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	bootstrap := false
	if p := principal(c); p == nil || p.Admin == nil || !p.Admin.IsSuperAdmin() {
		n, err := s.repos.Admins.Count(c.UserContext())
		if err != nil {
			return err
		}
		if n > 0 {
			return apperrors.NewForbidden("super-admin role required")
		}
		bootstrap = true
	}

	admin, err := s.createAdmin(c.UserContext(), req, bootstrap)
	if errors.Is(err, repository.ErrNotFirst) {
		// another registration won the bootstrap race
		return apperrors.NewForbidden("super-admin role required")
	}
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(admin)
}

func (s *Server) createAdmin(ctx context.Context, req registerInput, bootstrap bool) (*domain.Admin, error) {
	hash, err := auth.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	role := domain.AdminRoleAdmin
	if req.Role != nil {
		role = *req.Role
	}
	if bootstrap {
		role = domain.AdminRoleSuperAdmin
	}
	businessIDs := req.BusinessIDs
	if businessIDs == nil {
		businessIDs = []string{}
	}

	now := s.now()
	admin := &domain.Admin{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         role,
		BusinessIDs:  businessIDs,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
		PasswordHash: hash,
	}
	create := s.repos.Admins.Create
	if bootstrap {
		create = s.repos.Admins.CreateFirst
	}
	if err := create(ctx, admin); err != nil {
		return nil, conflict(err, "email already registered")
	}
	return admin, nil
}

func (s *Server) adminMe(c *fiber.Ctx) error {
	return c.JSON(principal(c).Admin)
}

func (s *Server) staffLogin(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	staff, err := s.repos.Staff.GetByEmail(c.UserContext(), req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewInvalidCredentials(invalidLogin)
		}
		return err
	}
	if !staff.IsActive || staff.Status == domain.StaffStatusTerminated ||
		auth.ComparePassword(staff.PasswordHash, req.Password) != nil {
		return apperrors.NewInvalidCredentials(invalidLogin)
	}

	token, err := s.tokens.Issue(staff.ID, domain.DomainStaff)
	if err != nil {
		return err
	}
	return c.JSON(dto.StaffLoginResponse{Token: token.Value, Staff: *staff})
}

func (s *Server) staffMe(c *fiber.Ctx) error {
	return c.JSON(principal(c).Staff)
}
