package employee

import (
	"context"
	"time"
)

// EmployeeRepository is the employee directory as seen by payroll.
// All methods include companyID parameter to prevent cross-company data access.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)

	// ListForPeriod returns the employees a payroll run must visit: everyone active, plus
	// anyone who left but has approved hours overlapping [start, end] or already holds a
	// calculation in the period.
	ListForPeriod(ctx context.Context, companyID string, periodID string, start, end time.Time) ([]Employee, error)
}
