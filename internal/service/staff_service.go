package service

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/spec-kit/bizdash/internal/api/dto"
	"github.com/spec-kit/bizdash/internal/backend"
	"github.com/spec-kit/bizdash/internal/domain"
	"github.com/spec-kit/bizdash/internal/workspace"
	apperrors "github.com/spec-kit/bizdash/pkg/util"
)

// StaffService manages the roster of one business, scoped like BlogService.
type StaffService struct {
	scope
}

func NewStaffService(deps Dependencies) *StaffService {
	return &StaffService{scope: scope{deps: deps.withDefaults()}}
}

func (s *StaffService) List(ctx context.Context, ws *workspace.Workspace, businessID string, q dto.StaffQuery) (*domain.StaffPage, error) {
	if _, err := s.authorize(ctx, ws, businessID, "staff.list"); err != nil {
		return nil, err
	}
	if err := dto.Validate(q); err != nil {
		return nil, err
	}
	return backend.NewStaffAPI(ws.AdminAPI).ListByBusiness(ctx, businessID, q)
}

func (s *StaffService) Get(ctx context.Context, ws *workspace.Workspace, businessID, staffID string) (*domain.Staff, error) {
	if _, err := s.authorize(ctx, ws, businessID, "staff.get"); err != nil {
		return nil, err
	}
	member, err := backend.NewStaffAPI(ws.AdminAPI).Get(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if member.BusinessID != businessID {
		return nil, apperrors.NewNotFound("staff", map[string]any{"id": staffID})
	}
	return member, nil
}

func (s *StaffService) Create(ctx context.Context, ws *workspace.Workspace, businessID string, req dto.CreateStaffRequest) (*domain.Staff, error) {
	admin, err := s.authorize(ctx, ws, businessID, "staff.create")
	if err != nil {
		return nil, err
	}
	req.BusinessID = businessID
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	created, err := backend.NewStaffAPI(ws.AdminAPI).Create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.deps.Logger.Info("staff created",
		zap.String("staff_id", created.ID),
		zap.String("business_id", businessID),
		zap.String("by", admin.ID))
	return created, nil
}

func (s *StaffService) Update(ctx context.Context, ws *workspace.Workspace, businessID, staffID string, req dto.UpdateStaffRequest) (*domain.Staff, error) {
	if _, err := s.Get(ctx, ws, businessID, staffID); err != nil {
		return nil, err
	}
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	return backend.NewStaffAPI(ws.AdminAPI).Update(ctx, staffID, req)
}

func (s *StaffService) Delete(ctx context.Context, ws *workspace.Workspace, businessID, staffID string) (*dto.MessageResponse, error) {
	if _, err := s.Get(ctx, ws, businessID, staffID); err != nil {
		return nil, err
	}
	return backend.NewStaffAPI(ws.AdminAPI).Delete(ctx, staffID)
}

func (s *StaffService) UploadPhoto(ctx context.Context, ws *workspace.Workspace, businessID, staffID, filename string, file io.Reader) (*dto.UploadPhotoResponse, error) {
	if _, err := s.Get(ctx, ws, businessID, staffID); err != nil {
		return nil, err
	}
	return backend.NewStaffAPI(ws.AdminAPI).UploadPhoto(ctx, staffID, filename, file)
}

func (s *StaffService) UploadDocument(ctx context.Context, ws *workspace.Workspace, businessID, staffID, filename string, file io.Reader) (*dto.UploadDocumentResponse, error) {
	if _, err := s.Get(ctx, ws, businessID, staffID); err != nil {
		return nil, err
	}
	return backend.NewStaffAPI(ws.AdminAPI).UploadDocument(ctx, staffID, filename, file)
}
