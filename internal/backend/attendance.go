package backend

import (
	"context"

	"github.com/spec-kit/bizdash/internal/api/dto"
	"github.com/spec-kit/bizdash/internal/domain"
	"github.com/spec-kit/bizdash/internal/gateway"
)

// AttendanceAPI covers /attendance. It is served to the staff domain.
type AttendanceAPI struct {
	gw *gateway.Client
}

func NewAttendanceAPI(gw *gateway.Client) *AttendanceAPI {
	return &AttendanceAPI{gw: gw}
}

func (a *AttendanceAPI) ClockIn(ctx context.Context, req dto.ClockRequest) (*dto.ClockResponse, error) {
	var resp dto.ClockResponse
	if err := a.gw.Post(ctx, "/attendance/clock-in", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *AttendanceAPI) ClockOut(ctx context.Context, req dto.ClockRequest) (*dto.ClockResponse, error) {
	var resp dto.ClockResponse
	if err := a.gw.Post(ctx, "/attendance/clock-out", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Mine lists the caller's attendance records.
func (a *AttendanceAPI) Mine(ctx context.Context, q dto.AttendanceQuery) ([]domain.Attendance, error) {
	var records []domain.Attendance
	if err := a.gw.Get(ctx, "/attendance/me", q.Values(), &records); err != nil {
		return nil, err
	}
	return records, nil
}
