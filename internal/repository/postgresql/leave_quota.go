package postgresql

import (
	"context"
	"fmt"

	"github.com/SandeDesign/alloon-sub000/internal/domain/leave"
	"github.com/SandeDesign/alloon-sub000/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveQuotaRepositoryImpl struct {
	db *database.DB
}

func NewLeaveQuotaRepository(db *database.DB) leave.LeaveQuotaRepository {
	return &leaveQuotaRepositoryImpl{db: db}
}

// GetByEmployeeYear returns the balances printed on a payslip, one per leave type.
func (r *leaveQuotaRepositoryImpl) GetByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leave.LeaveQuota, error) {
	rows, err := GetQuerier(ctx, r.db).Query(ctx, `
		SELECT lq.id, lq.employee_id, lq.leave_type_id, lq.year, lt.name,
			   lq.opening_balance, lq.earned_quota, lq.rollover_quota, lq.adjustment_quota,
			   lq.used_quota, lq.pending_quota, lq.available_quota
		FROM leave_quotas lq
		JOIN leave_types lt ON lt.id = lq.leave_type_id
		WHERE lq.employee_id = $1 AND lq.year = $2
		ORDER BY lt.name
	`, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave balances: %w", err)
	}

	quotas, err := pgx.CollectRows(rows, scanLeaveQuota)
	if err != nil {
		return nil, fmt.Errorf("failed to collect leave balances: %w", err)
	}
	return quotas, nil
}

func scanLeaveQuota(row pgx.CollectableRow) (leave.LeaveQuota, error) {
	var q leave.LeaveQuota
	err := row.Scan(
		&q.ID, &q.EmployeeID, &q.LeaveTypeID, &q.Year, &q.LeaveTypeName,
		&q.OpeningBalance, &q.EarnedQuota, &q.RolloverQuota, &q.AdjustmentQuota,
		&q.UsedQuota, &q.PendingQuota, &q.AvailableQuota,
	)
	return q, err
}
