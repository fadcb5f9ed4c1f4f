package domain

import "time"

// AttendanceStatus represents review state of a shift.
type AttendanceStatus string

const (
	AttendancePending  AttendanceStatus = "pending"
	AttendanceApproved AttendanceStatus = "approved"
	AttendanceRejected AttendanceStatus = "rejected"
)

// Attendance is one clock-in/clock-out record.
type Attendance struct {
	ID          string           `json:"_id"`
	StaffID     string           `json:"staffId"`
	BusinessID  string           `json:"businessId"`
	ClockIn     time.Time        `json:"clockIn"`
	ClockOut    *time.Time       `json:"clockOut,omitempty"`
	HoursWorked *float64         `json:"hoursWorked,omitempty"`
	Status      AttendanceStatus `json:"status"`
	Notes       *string          `json:"notes,omitempty"`
	AdminNotes  *string          `json:"adminNotes,omitempty"`
	ApprovedBy  *string          `json:"approvedBy,omitempty"`
	ApprovedAt  *time.Time       `json:"approvedAt,omitempty"`
	IsActive    bool             `json:"isActive"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// Open reports whether the shift has not been clocked out yet.
func (a Attendance) Open() bool {
	return a.ClockOut == nil
}
