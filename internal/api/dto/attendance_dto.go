package dto

import (
	"net/url"

	"github.com/spec-kit/bizdash/internal/domain"
)

// ClockRequest is the optional body of clock-in and clock-out.
type ClockRequest struct {
	Notes *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// ClockResponse is the attendance record plus a human message.
type ClockResponse struct {
	domain.Attendance
	Message string `json:"message"`
}

// AttendanceQuery filters GET /attendance/me. Dates are YYYY-MM-DD.
type AttendanceQuery struct {
	StartDate string `query:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `query:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Status    string `query:"status" validate:"omitempty,oneof=pending approved rejected"`
}

// Values encodes only the populated filters.
func (q AttendanceQuery) Values() url.Values {
	v := url.Values{}
	if q.StartDate != "" {
		v.Set("startDate", q.StartDate)
	}
	if q.EndDate != "" {
		v.Set("endDate", q.EndDate)
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	return v
}
