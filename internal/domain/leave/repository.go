package leave

import "context"

// LeaveQuotaRepository - read access to leave_quotas for payslip snapshots
type LeaveQuotaRepository interface {
	GetByEmployeeYear(ctx context.Context, employeeID string, year int) ([]LeaveQuota, error)
}
