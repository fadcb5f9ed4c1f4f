package sandbox

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/bizdash/internal/api/dto"
	"github.com/spec-kit/bizdash/internal/auth"
	"github.com/spec-kit/bizdash/internal/domain"
	apperrors "github.com/spec-kit/bizdash/pkg/util"
)

func (s *Server) createStaff(c *fiber.Ctx) error {
	var req dto.CreateStaffRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	if req.BusinessID == "" {
		return apperrors.NewValidationError("businessId is required", map[string]any{"businessId": "required"})
	}
	if _, err := s.business(c, req.BusinessID); err != nil {
		return err
	}
	hash, err := s.hashOptional(req.Password)
	if err != nil {
		return err
	}

	now := s.now()
	member := &domain.Staff{
		ID:             uuid.NewString(),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:          req.Phone,
		Position:       req.Position,
		Department:     req.Department,
		DateHired:      req.DateHired,
		Salary:         req.Salary,
		SalaryType:     req.SalaryType,
		EmploymentType: req.EmploymentType,
		BusinessID:     req.BusinessID,
		Status:         domain.StaffStatusActive,
		Notes:          req.Notes,
		Documents:      []string{},
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
		PasswordHash:   hash,
	}
	if req.Status != nil {
		member.Status = *req.Status
	}
	if err := s.repos.Staff.Create(c.UserContext(), member); err != nil {
		return conflict(err, "email already registered")
	}
	return c.Status(http.StatusCreated).JSON(member)
}

// member loads an active staff record whose business the caller may access.
func (s *Server) member(c *fiber.Ctx, id string) (*domain.Staff, error) {
	member, err := s.repos.Staff.GetByID(c.UserContext(), id)
	if err != nil {
		return nil, notFound(err, "staff", id)
	}
	if err := requireBusiness(c, member.BusinessID); err != nil {
		return nil, err
	}
	if !member.IsActive {
		return nil, apperrors.NewNotFound("staff", map[string]any{"id": id})
	}
	return member, nil
}

func (s *Server) getStaff(c *fiber.Ctx) error {
	member, err := s.member(c, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(member)
}

func (s *Server) updateStaff(c *fiber.Ctx) error {
	member, err := s.member(c, c.Params("id"))
	if err != nil {
		return err
	}
	var req dto.UpdateStaffRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	if req.FirstName != nil {
		member.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		member.LastName = *req.LastName
	}
	if req.Email != nil {
		member.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Password != nil {
		hash, err := s.hashOptional(*req.Password)
		if err != nil {
			return err
		}
		member.PasswordHash = hash
	}
	if req.Phone != nil {
		member.Phone = req.Phone
	}
	if req.Position != nil {
		member.Position = *req.Position
	}
	if req.Department != nil {
		member.Department = req.Department
	}
	if req.DateHired != nil {
		member.DateHired = *req.DateHired
	}
	if req.Salary != nil {
		member.Salary = req.Salary
	}
	if req.SalaryType != nil {
		member.SalaryType = req.SalaryType
	}
	if req.EmploymentType != nil {
		member.EmploymentType = *req.EmploymentType
	}
	if req.Status != nil {
		member.Status = *req.Status
	}
	if req.Notes != nil {
		member.Notes = req.Notes
	}
	if req.IsActive != nil {
		member.IsActive = *req.IsActive
	}
	member.UpdatedAt = s.now()

	if err := s.repos.Staff.Update(c.UserContext(), member); err != nil {
		return conflict(err, "email already registered")
	}
	return c.JSON(member)
}

func (s *Server) deleteStaff(c *fiber.Ctx) error {
	member, err := s.member(c, c.Params("id"))
	if err != nil {
		return err
	}
	member.IsActive = false
	member.UpdatedAt = s.now()
	if err := s.repos.Staff.Update(c.UserContext(), member); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Staff deleted successfully"})
}

func (s *Server) uploadStaffPhoto(c *fiber.Ctx) error {
	member, err := s.member(c, c.Params("id"))
	if err != nil {
		return err
	}
	url, err := s.store(c, "staff/"+member.ID+"/photo")
	if err != nil {
		return err
	}
	member.PhotoURL = &url
	member.UpdatedAt = s.now()
	if err := s.repos.Staff.Update(c.UserContext(), member); err != nil {
		return err
	}
	return c.JSON(dto.UploadPhotoResponse{Message: "Photo uploaded successfully", PhotoURL: url, Staff: *member})
}

func (s *Server) uploadStaffDocument(c *fiber.Ctx) error {
	member, err := s.member(c, c.Params("id"))
	if err != nil {
		return err
	}
	url, err := s.store(c, "staff/"+member.ID+"/documents")
	if err != nil {
		return err
	}
	member.Documents = append(member.Documents, url)
	member.UpdatedAt = s.now()
	if err := s.repos.Staff.Update(c.UserContext(), member); err != nil {
		return err
	}
	return c.JSON(dto.UploadDocumentResponse{Message: "Document uploaded successfully", DocumentURL: url, Staff: *member})
}

// hashOptional leaves the hash empty when no password is given; such staff
// cannot log in.
func (s *Server) hashOptional(password string) (string, error) {
	if password == "" {
		return "", nil
	}
	return auth.HashPassword(password, s.bcryptCost)
}
