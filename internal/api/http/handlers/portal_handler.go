package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bizdash/internal/api/dto"
	"github.com/spec-kit/bizdash/internal/service"
)

// PortalHandler serves the staff portal.
type PortalHandler struct {
	attendance *service.AttendanceService
}

// NewPortalHandler constructs handler.
func NewPortalHandler(attendance *service.AttendanceService) *PortalHandler {
	return &PortalHandler{attendance: attendance}
}

// Dashboard GET /dashboard.
func (h *PortalHandler) Dashboard(c *fiber.Ctx) error {
	ws, err := current(c)
	if err != nil {
		return err
	}
	dash, err := h.attendance.Dashboard(c.UserContext(), ws)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, fiber.Map{
		"viewer":  staffViewer(ws),
		"staff":   dash.Staff,
		"current": dash.Current,
		"recent":  dash.Recent,
	})
}

// Attendance GET /attendance?startDate=&endDate=&status=.
func (h *PortalHandler) Attendance(c *fiber.Ctx) error {
	ws, err := current(c)
	if err != nil {
		return err
	}
	var q dto.AttendanceQuery
	if err := parseQuery(c, &q); err != nil {
		return err
	}
	records, err := h.attendance.Mine(c.UserContext(), ws, q)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, records)
}

// ClockIn POST /attendance/clock-in.
func (h *PortalHandler) ClockIn(c *fiber.Ctx) error {
	ws, err := current(c)
	if err != nil {
		return err
	}
	var req dto.ClockRequest
	if len(c.Body()) > 0 {
		if err := parseBody(c, &req); err != nil {
			return err
		}
	}
	resp, err := h.attendance.ClockIn(c.UserContext(), ws, req)
	if err != nil {
		return err
	}
	return data(c, http.StatusCreated, resp)
}

// ClockOut POST /attendance/clock-out.
func (h *PortalHandler) ClockOut(c *fiber.Ctx) error {
	ws, err := current(c)
	if err != nil {
		return err
	}
	var req dto.ClockRequest
	if len(c.Body()) > 0 {
		if err := parseBody(c, &req); err != nil {
			return err
		}
	}
	resp, err := h.attendance.ClockOut(c.UserContext(), ws, req)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, resp)
}
