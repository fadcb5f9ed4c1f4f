package sandbox

import (
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bizdash/internal/api/dto"
	"github.com/spec-kit/bizdash/internal/domain"
	apperrors "github.com/spec-kit/bizdash/pkg/util"
)

func (s *Server) listAdmins(c *fiber.Ctx) error {
	admins, err := s.repos.Admins.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(admins)
}

func (s *Server) activeAdmin(c *fiber.Ctx, id string) (*domain.Admin, error) {
	admin, err := s.repos.Admins.GetByID(c.UserContext(), id)
	if err != nil {
		return nil, notFound(err, "admin", id)
	}
	if !admin.IsActive {
		return nil, apperrors.NewNotFound("admin", map[string]any{"id": id})
	}
	return admin, nil
}

func (s *Server) getAdmin(c *fiber.Ctx) error {
	admin, err := s.activeAdmin(c, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(admin)
}

func (s *Server) updateAdmin(c *fiber.Ctx) error {
	admin, err := s.activeAdmin(c, c.Params("id"))
	if err != nil {
		return err
	}
	var req dto.UpdateAdminRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	if req.Email != nil {
		admin.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.FirstName != nil {
		admin.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		admin.LastName = *req.LastName
	}
	if req.Role != nil {
		if admin.ID == principal(c).Admin.ID && *req.Role != domain.AdminRoleSuperAdmin {
			return apperrors.NewForbidden("cannot demote yourself")
		}
		admin.Role = *req.Role
	}
	if req.BusinessIDs != nil {
		admin.BusinessIDs = slices.Clone(*req.BusinessIDs)
	}
	if req.IsActive != nil {
		admin.IsActive = *req.IsActive
	}
	admin.UpdatedAt = s.now()

	if err := s.repos.Admins.Update(c.UserContext(), admin); err != nil {
		return conflict(err, "email already registered")
	}
	return c.JSON(admin)
}

func (s *Server) deleteAdmin(c *fiber.Ctx) error {
	admin, err := s.activeAdmin(c, c.Params("id"))
	if err != nil {
		return err
	}
	if admin.ID == principal(c).Admin.ID {
		return apperrors.NewForbidden("cannot delete your own account")
	}
	admin.IsActive = false
	admin.UpdatedAt = s.now()
	if err := s.repos.Admins.Update(c.UserContext(), admin); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Admin deleted successfully"})
}
