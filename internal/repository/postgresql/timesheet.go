package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/SandeDesign/alloon-sub000/internal/domain/timesheet"
	"github.com/SandeDesign/alloon-sub000/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type timesheetRepositoryImpl struct {
	db *database.DB
}

func NewTimesheetRepository(db *database.DB) timesheet.TimesheetRepository {
	return &timesheetRepositoryImpl{db: db}
}

// GetApproved implements timesheet.TimesheetRepository. Timesheets and entries are read in one
// query; entries outside [from, to] are still returned and clipped by the caller.
func (r *timesheetRepositoryImpl) GetApproved(ctx context.Context, employeeID string, companyID string, from, to time.Time) ([]timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT t.id, t.employee_id, t.company_id, t.period_start, t.period_end, t.status,
			   t.approved_at, t.approved_by, t.created_at, t.updated_at,
			   te.id, te.work_date, te.regular_hours, te.overtime_hours, te.evening_hours,
			   te.night_hours, te.weekend_hours, te.holiday_hours, te.travel_kilometers, te.notes
		FROM timesheets t
		LEFT JOIN timesheet_entries te ON te.timesheet_id = t.id
		WHERE t.employee_id = $1 AND t.company_id = $2 AND t.status = $3
		  AND t.period_start <= $5 AND t.period_end >= $4
		ORDER BY t.period_start, t.id, te.work_date
	`

	rows, err := q.Query(ctx, query, employeeID, companyID, timesheet.StatusApproved, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get approved timesheets: %w", err)
	}
	defer rows.Close()

	timesheets := make([]timesheet.Timesheet, 0)
	for rows.Next() {
		var ts timesheet.Timesheet
		var (
			entryID  *string
			workDate *time.Time
			entry    timesheet.Entry
			values   [7]decimal.NullDecimal
		)

		if err := rows.Scan(
			&ts.ID, &ts.EmployeeID, &ts.CompanyID, &ts.PeriodStart, &ts.PeriodEnd, &ts.Status,
			&ts.ApprovedAt, &ts.ApprovedBy, &ts.CreatedAt, &ts.UpdatedAt,
			&entryID, &workDate, &values[0], &values[1], &values[2],
			&values[3], &values[4], &values[5], &values[6], &entry.Notes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan timesheet: %w", err)
		}

		if n := len(timesheets); n == 0 || timesheets[n-1].ID != ts.ID {
			ts.Entries = make([]timesheet.Entry, 0)
			timesheets = append(timesheets, ts)
		}
		if entryID == nil {
			continue
		}

		entry.ID = *entryID
		entry.TimesheetID = ts.ID
		entry.WorkDate = *workDate
		entry.RegularHours = values[0].Decimal
		entry.OvertimeHours = values[1].Decimal
		entry.EveningHours = values[2].Decimal
		entry.NightHours = values[3].Decimal
		entry.WeekendHours = values[4].Decimal
		entry.HolidayHours = values[5].Decimal
		entry.TravelKilometers = values[6].Decimal

		last := &timesheets[len(timesheets)-1]
		last.Entries = append(last.Entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate timesheets: %w", err)
	}

	return timesheets, nil
}
