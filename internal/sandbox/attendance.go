package sandbox

import (
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bizdash/internal/api/dto"
	"github.com/spec-kit/bizdash/internal/domain"
	"github.com/spec-kit/bizdash/internal/repository"
	apperrors "github.com/spec-kit/bizdash/pkg/util"
)

func (s *Server) clockIn(c *fiber.Ctx) error {
	var req dto.ClockRequest
	if len(c.Body()) > 0 {
		if err := bind(c, &req); err != nil {
			return err
		}
	}
	me := principal(c).Staff

	open, err := s.repos.Attendance.GetOpen(c.UserContext(), me.ID)
	switch {
	case err == nil && open != nil:
		return apperrors.NewValidationError("already clocked in", map[string]any{"attendanceId": open.ID})
	case err != nil && !errors.Is(err, pgx.ErrNoRows):
		return err
	}

	now := s.now()
	record := &domain.Attendance{
		ID:         uuid.NewString(),
		StaffID:    me.ID,
		BusinessID: me.BusinessID,
		ClockIn:    now,
		Status:     domain.AttendancePending,
		Notes:      req.Notes,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repos.Attendance.Create(c.UserContext(), record); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return apperrors.NewValidationError("already clocked in", nil)
		}
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.ClockResponse{Attendance: *record, Message: "Clocked in successfully"})
}

func (s *Server) clockOut(c *fiber.Ctx) error {
	var req dto.ClockRequest
	if len(c.Body()) > 0 {
		if err := bind(c, &req); err != nil {
			return err
		}
	}
	me := principal(c).Staff

	record, err := s.repos.Attendance.GetOpen(c.UserContext(), me.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewValidationError("not clocked in", nil)
		}
		return err
	}

	now := s.now()
	hours := math.Round(now.Sub(record.ClockIn).Hours()*100) / 100
	record.ClockOut = &now
	record.HoursWorked = &hours
	if req.Notes != nil {
		record.Notes = req.Notes
	}
	record.UpdatedAt = now
	if err := s.repos.Attendance.Update(c.UserContext(), record); err != nil {
		return err
	}
	return c.JSON(dto.ClockResponse{Attendance: *record, Message: "Clocked out successfully"})
}

// myAttendance lists the caller's records. endDate is inclusive.
func (s *Server) myAttendance(c *fiber.Ctx) error {
	var q dto.AttendanceQuery
	if err := c.QueryParser(&q); err != nil {
		return apperrors.NewValidationError("invalid query", nil)
	}
	if err := dto.Validate(q); err != nil {
		return err
	}

	filter := repository.AttendanceFilter{StaffID: principal(c).Staff.ID}
	if q.StartDate != "" {
		from, _ := time.Parse(time.DateOnly, q.StartDate)
		filter.From = &from
	}
	if q.EndDate != "" {
		to, _ := time.Parse(time.DateOnly, q.EndDate)
		to = to.Add(24 * time.Hour)
		filter.To = &to
	}
	if q.Status != "" {
		status := domain.AttendanceStatus(q.Status)
		filter.Status = &status
	}

	records, err := s.repos.Attendance.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	if records == nil {
		records = []domain.Attendance{}
	}
	return c.JSON(records)
}
