package domain

import "time"

// EmploymentType enumerates staff contracts.
type EmploymentType string

const (
	EmploymentFullTime EmploymentType = "full-time"
	EmploymentPartTime EmploymentType = "part-time"
	EmploymentContract EmploymentType = "contract"
)

// StaffStatus represents lifecycle states for a staff member.
type StaffStatus string

const (
	StaffStatusActive     StaffStatus = "active"
	StaffStatusOnLeave    StaffStatus = "on_leave"
	StaffStatusTerminated StaffStatus = "terminated"
)

// SalaryType enumerates pay periods.
type SalaryType string

const (
	SalaryHourly  SalaryType = "hourly"
	SalaryDaily   SalaryType = "daily"
	SalaryMonthly SalaryType = "monthly"
	SalaryAnnual  SalaryType = "annual"
)

// Staff is an employee of exactly one business.
type Staff struct {
	ID             string         `json:"_id"`
	FirstName      string         `json:"firstName"`
	LastName       string         `json:"lastName"`
	Email          string         `json:"email"`
	Phone          *string        `json:"phone,omitempty"`
	Position       string         `json:"position"`
	Department     *string        `json:"department,omitempty"`
	DateHired      time.Time      `json:"dateHired"`
	Salary         *float64       `json:"salary,omitempty"`
	SalaryType     *SalaryType    `json:"salaryType,omitempty"`
	EmploymentType EmploymentType `json:"employmentType"`
	BusinessID     string         `json:"businessId"`
	Status         StaffStatus    `json:"status"`
	Notes          *string        `json:"notes,omitempty"`
	PhotoURL       *string        `json:"photoUrl,omitempty"`
	Documents      []string       `json:"documents,omitempty"`
	IsActive       bool           `json:"isActive"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`

	PasswordHash string `json:"-"`
}

func (Staff) IdentityDomain() Domain { return DomainStaff }

func (s Staff) FullName() string { return fullName(s.FirstName, s.LastName) }

func (s Staff) Initials() string { return initials(s.FirstName, s.LastName) }
