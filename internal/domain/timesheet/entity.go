package timesheet

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
)

// Timesheet is a submitted block of work (usually a week) for one employee.
type Timesheet struct {
	ID          string
	EmployeeID  string
	CompanyID   string
	PeriodStart time.Time
	PeriodEnd   time.Time
	Status      Status
	ApprovedAt  *time.Time
	ApprovedBy  *string
	Entries     []Entry
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Entry is one worked day.
type Entry struct {
	ID               string
	TimesheetID      string
	WorkDate         time.Time
	RegularHours     decimal.Decimal
	OvertimeHours    decimal.Decimal
	EveningHours     decimal.Decimal
	NightHours       decimal.Decimal
	WeekendHours     decimal.Decimal
	HolidayHours     decimal.Decimal
	TravelKilometers decimal.Decimal
	Notes            *string
}
