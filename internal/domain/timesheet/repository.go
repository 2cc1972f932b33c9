package timesheet

import (
	"context"
	"time"
)

type TimesheetRepository interface {
	// GetApproved returns approved timesheets of the employee that overlap [from, to],
	// with all of their entries loaded.
	GetApproved(ctx context.Context, employeeID string, companyID string, from, to time.Time) ([]Timesheet, error)
}
