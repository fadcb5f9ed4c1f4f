package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/bizdash/internal/api/dto"
	"github.com/spec-kit/bizdash/internal/backend"
	"github.com/spec-kit/bizdash/internal/domain"
	"github.com/spec-kit/bizdash/internal/workspace"
)

// AttendanceService is the staff portal. It talks to the backend as the staff domain.
type AttendanceService struct {
	deps Dependencies
}

func NewAttendanceService(deps Dependencies) *AttendanceService {
	return &AttendanceService{deps: deps.withDefaults()}
}

// StaffDashboard is the landing view of the staff portal.
type StaffDashboard struct {
	Staff   domain.Staff        `json:"staff"`
	Current *domain.Attendance  `json:"current"`
	Recent  []domain.Attendance `json:"recent"`
}

const recentShifts = 5

func (s *AttendanceService) ClockIn(ctx context.Context, ws *workspace.Workspace, req dto.ClockRequest) (*dto.ClockResponse, error) {
	staff, err := currentStaff(ws)
	if err != nil {
		return nil, err
	}
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	resp, err := backend.NewAttendanceAPI(ws.StaffAPI).ClockIn(ctx, req)
	if err != nil {
		return nil, err
	}
	s.deps.Logger.Info("clocked in", zap.String("staff_id", staff.ID), zap.String("attendance_id", resp.ID))
	return resp, nil
}

func (s *AttendanceService) ClockOut(ctx context.Context, ws *workspace.Workspace, req dto.ClockRequest) (*dto.ClockResponse, error) {
	staff, err := currentStaff(ws)
	if err != nil {
		return nil, err
	}
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	resp, err := backend.NewAttendanceAPI(ws.StaffAPI).ClockOut(ctx, req)
	if err != nil {
		return nil, err
	}
	s.deps.Logger.Info("clocked out", zap.String("staff_id", staff.ID), zap.String("attendance_id", resp.ID))
	return resp, nil
}

// Mine lists the signed-in staff member's records, newest first as the backend returns them.
func (s *AttendanceService) Mine(ctx context.Context, ws *workspace.Workspace, q dto.AttendanceQuery) ([]domain.Attendance, error) {
	if _, err := currentStaff(ws); err != nil {
		return nil, err
	}
	if err := dto.Validate(q); err != nil {
		return nil, err
	}
	return backend.NewAttendanceAPI(ws.StaffAPI).Mine(ctx, q)
}

// Current returns the open shift, or nil when the staff member is clocked out.
func (s *AttendanceService) Current(ctx context.Context, ws *workspace.Workspace) (*domain.Attendance, error) {
	records, err := s.Mine(ctx, ws, dto.AttendanceQuery{})
	if err != nil {
		return nil, err
	}
	return openShift(records), nil
}

// Dashboard combines the staff profile, the open shift and the latest records.
func (s *AttendanceService) Dashboard(ctx context.Context, ws *workspace.Workspace) (*StaffDashboard, error) {
	staff, err := currentStaff(ws)
	if err != nil {
		return nil, err
	}
	records, err := s.Mine(ctx, ws, dto.AttendanceQuery{})
	if err != nil {
		return nil, err
	}
	recent := records
	if len(recent) > recentShifts {
		recent = recent[:recentShifts]
	}
	return &StaffDashboard{Staff: staff, Current: openShift(records), Recent: recent}, nil
}

func openShift(records []domain.Attendance) *domain.Attendance {
	for i := range records {
		if records[i].Open() {
			rec := records[i]
			return &rec
		}
	}
	return nil
}
