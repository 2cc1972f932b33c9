package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SandeDesign/alloon-sub000/internal/domain/payroll"
	"github.com/SandeDesign/alloon-sub000/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// rowScanner is satisfied by pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// ========== RATE SCHEDULE ==========

func (r *payrollRepository) GetRateSchedule(ctx context.Context, companyID string) (payroll.RateScheduleSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, base_rate, overtime_multiplier, evening_multiplier,
			   night_multiplier, weekend_multiplier, holiday_multiplier, created_at, updated_at
		FROM payroll_rate_schedules
		WHERE company_id = $1
	`

	var s payroll.RateScheduleSettings
	err := q.QueryRow(ctx, query, companyID).Scan(
		&s.ID, &s.CompanyID, &s.BaseRate, &s.OvertimeMultiplier, &s.EveningMultiplier,
		&s.NightMultiplier, &s.WeekendMultiplier, &s.HolidayMultiplier, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.RateScheduleSettings{}, payroll.ErrRateScheduleNotFound
		}
		return payroll.RateScheduleSettings{}, fmt.Errorf("failed to get rate schedule: %w", err)
	}

	return s, nil
}

func (r *payrollRepository) UpsertRateSchedule(ctx context.Context, settings payroll.RateScheduleSettings) (payroll.RateScheduleSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_rate_schedules (
			company_id, base_rate, overtime_multiplier, evening_multiplier,
			night_multiplier, weekend_multiplier, holiday_multiplier
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (company_id) DO UPDATE SET
			base_rate = EXCLUDED.base_rate,
			overtime_multiplier = EXCLUDED.overtime_multiplier,
			evening_multiplier = EXCLUDED.evening_multiplier,
			night_multiplier = EXCLUDED.night_multiplier,
			weekend_multiplier = EXCLUDED.weekend_multiplier,
			holiday_multiplier = EXCLUDED.holiday_multiplier,
			updated_at = NOW()
		RETURNING id, company_id, base_rate, overtime_multiplier, evening_multiplier,
			night_multiplier, weekend_multiplier, holiday_multiplier, created_at, updated_at
	`

	var s payroll.RateScheduleSettings
	err := q.QueryRow(ctx, query,
		settings.CompanyID, settings.BaseRate, settings.OvertimeMultiplier, settings.EveningMultiplier,
		settings.NightMultiplier, settings.WeekendMultiplier, settings.HolidayMultiplier,
	).Scan(
		&s.ID, &s.CompanyID, &s.BaseRate, &s.OvertimeMultiplier, &s.EveningMultiplier,
		&s.NightMultiplier, &s.WeekendMultiplier, &s.HolidayMultiplier, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return payroll.RateScheduleSettings{}, fmt.Errorf("failed to upsert rate schedule: %w", err)
	}

	return s, nil
}

// ========== PERIODS ==========

const periodColumns = `
	id, company_id, name, period_type, start_date, end_date, payment_date, status,
	employee_count, total_gross, total_net, total_tax, tax_table_version,
	calculated_at, approved_at, approved_by, paid_at, paid_by, created_by, created_at, updated_at
`

func scanPeriod(row rowScanner) (payroll.PayrollPeriod, error) {
	var p payroll.PayrollPeriod
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.Name, &p.PeriodType, &p.StartDate, &p.EndDate, &p.PaymentDate, &p.Status,
		&p.EmployeeCount, &p.TotalGross, &p.TotalNet, &p.TotalTax, &p.TaxTableVersion,
		&p.CalculatedAt, &p.ApprovedAt, &p.ApprovedBy, &p.PaidAt, &p.PaidBy, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *payrollRepository) CreatePeriod(ctx context.Context, period payroll.PayrollPeriod) (payroll.PayrollPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_periods (company_id, name, period_type, start_date, end_date, payment_date, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + periodColumns

	p, err := scanPeriod(q.QueryRow(ctx, query,
		period.CompanyID, period.Name, period.PeriodType, period.StartDate, period.EndDate,
		period.PaymentDate, period.Status, period.CreatedBy,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "ex_payroll_period_overlap" {
			return payroll.PayrollPeriod{}, payroll.ErrPeriodOverlaps
		}
		return payroll.PayrollPeriod{}, fmt.Errorf("failed to create payroll period: %w", err)
	}

	return p, nil
}

func (r *payrollRepository) GetPeriodByID(ctx context.Context, id string, companyID string) (payroll.PayrollPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + periodColumns + ` FROM payroll_periods WHERE id = $1 AND company_id = $2`

	p, err := scanPeriod(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollPeriod{}, payroll.ErrPeriodNotFound
		}
		return payroll.PayrollPeriod{}, fmt.Errorf("failed to get payroll period: %w", err)
	}

	return p, nil
}

// GetPeriodForUpdate locks the period row until the surrounding transaction ends. Status
// transitions and the totals step take this lock.
func (r *payrollRepository) GetPeriodForUpdate(ctx context.Context, id string, companyID string) (payroll.PayrollPeriod, error) {
	return r.lockPeriod(ctx, id, companyID, "FOR UPDATE")
}

// GetPeriodForShare blocks status transitions, not other calculation writers.
func (r *payrollRepository) GetPeriodForShare(ctx context.Context, id string, companyID string) (payroll.PayrollPeriod, error) {
	return r.lockPeriod(ctx, id, companyID, "FOR SHARE")
}

func (r *payrollRepository) lockPeriod(ctx context.Context, id string, companyID string, clause string) (payroll.PayrollPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + periodColumns + ` FROM payroll_periods WHERE id = $1 AND company_id = $2 ` + clause

	p, err := scanPeriod(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollPeriod{}, payroll.ErrPeriodNotFound
		}
		return payroll.PayrollPeriod{}, fmt.Errorf("failed to lock payroll period: %w", err)
	}

	return p, nil
}

func (r *payrollRepository) ListPeriods(ctx context.Context, companyID string, filter payroll.PeriodFilter) ([]payroll.PayrollPeriod, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := ` FROM payroll_periods WHERE company_id = $1`
	args := []interface{}{companyID}
	argIdx := 2

	if filter.Status != nil {
		baseQuery += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Year != nil {
		baseQuery += fmt.Sprintf(" AND EXTRACT(YEAR FROM start_date) = $%d", argIdx)
		args = append(args, *filter.Year)
		argIdx++
	}

	var totalCount int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*)"+baseQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll periods: %w", err)
	}

	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	offset := (filter.Page - 1) * filter.Limit

	selectQuery := fmt.Sprintf(`SELECT %s %s ORDER BY start_date DESC LIMIT $%d OFFSET $%d`,
		periodColumns, baseQuery, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll periods: %w", err)
	}
	defer rows.Close()

	periods := make([]payroll.PayrollPeriod, 0)
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll period: %w", err)
		}
		periods = append(periods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate payroll periods: %w", err)
	}

	return periods, totalCount, nil
}

func (r *payrollRepository) HasOverlappingPeriod(ctx context.Context, companyID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM payroll_periods
			WHERE company_id = $1 AND status <> 'superseded'
			  AND start_date <= $3 AND end_date >= $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, companyID, start, end).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check overlapping payroll periods: %w", err)
	}
	return exists, nil
}

// UpdatePeriodTotals only writes periods that may still be calculated. An approved, paid or
// superseded period yields ErrPeriodLocked.
func (r *payrollRepository) UpdatePeriodTotals(ctx context.Context, id string, companyID string, totals payroll.PeriodTotals, taxTableVersion string) (payroll.PayrollPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_periods
		SET employee_count = $3, total_gross = $4, total_net = $5, total_tax = $6,
			tax_table_version = $7, status = 'calculated', calculated_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND status IN ('draft', 'calculated')
		RETURNING ` + periodColumns

	p, err := scanPeriod(q.QueryRow(ctx, query,
		id, companyID, totals.EmployeeCount, totals.TotalGross, totals.TotalNet, totals.TotalTax, taxTableVersion,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollPeriod{}, r.missingOrLocked(ctx, id, companyID)
		}
		return payroll.PayrollPeriod{}, fmt.Errorf("failed to update payroll period totals: %w", err)
	}

	return p, nil
}

func (r *payrollRepository) missingOrLocked(ctx context.Context, id string, companyID string) error {
	if _, err := r.GetPeriodByID(ctx, id, companyID); err != nil {
		return err
	}
	return payroll.ErrPeriodLocked
}

// UpdatePeriodStatus stamps approved_* or paid_* according to the target status.
func (r *payrollRepository) UpdatePeriodStatus(ctx context.Context, id string, companyID string, status payroll.PeriodStatus, actorID *string) (payroll.PayrollPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_periods
		SET status = $3,
			approved_at = CASE WHEN $3 = 'approved' THEN NOW() ELSE approved_at END,
			approved_by = CASE WHEN $3 = 'approved' THEN $4::uuid ELSE approved_by END,
			paid_at = CASE WHEN $3 = 'paid' THEN NOW() ELSE paid_at END,
			paid_by = CASE WHEN $3 = 'paid' THEN $4::uuid ELSE paid_by END,
			updated_at = NOW()
		WHERE id = $1 AND company_id = $2
		RETURNING ` + periodColumns

	p, err := scanPeriod(q.QueryRow(ctx, query, id, companyID, string(status), actorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollPeriod{}, payroll.ErrPeriodNotFound
		}
		return payroll.PayrollPeriod{}, fmt.Errorf("failed to update payroll period status: %w", err)
	}

	return p, nil
}

func (r *payrollRepository) DeletePeriod(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM payroll_periods WHERE id = $1 AND company_id = $2 AND status = 'draft' RETURNING id`

	var deletedID string
	err := q.QueryRow(ctx, query, id, companyID).Scan(&deletedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.ErrCannotDeletePeriod
		}
		return fmt.Errorf("failed to delete payroll period: %w", err)
	}

	return nil
}

// ========== CALCULATIONS ==========

const calculationColumns = `
	pc.id, pc.employee_id, pc.company_id, pc.payroll_period_id, pc.period_start_date, pc.period_end_date,
	pc.regular_hours, pc.regular_rate, pc.regular_pay,
	pc.overtime_hours, pc.overtime_rate, pc.overtime_pay,
	pc.evening_hours, pc.evening_rate, pc.evening_pay,
	pc.night_hours, pc.night_rate, pc.night_pay,
	pc.weekend_hours, pc.weekend_rate, pc.weekend_pay,
	pc.holiday_hours, pc.holiday_rate, pc.holiday_pay,
	pc.travel_kilometers, pc.travel_rate, pc.travel_allowance, pc.other_earnings,
	pc.gross_pay, pc.income_tax, pc.social_security_employee, pc.social_security_employer,
	pc.health_insurance, pc.pension_employee, pc.pension_employer,
	pc.unemployment_insurance, pc.disability_insurance, pc.deductions, pc.net_pay,
	pc.vacation_accrual, pc.ytd_gross, pc.ytd_net, pc.ytd_tax,
	pc.status, pc.tax_table_version, pc.calculated_at, pc.calculated_by, pc.created_at, pc.updated_at,
	e.full_name, e.employee_code
`

func scanCalculation(row rowScanner) (payroll.PayrollCalculation, error) {
	var c payroll.PayrollCalculation
	var otherEarnings, deductions []byte
	err := row.Scan(
		&c.ID, &c.EmployeeID, &c.CompanyID, &c.PayrollPeriodID, &c.PeriodStartDate, &c.PeriodEndDate,
		&c.Regular.Hours, &c.Regular.Rate, &c.Regular.Pay,
		&c.Overtime.Hours, &c.Overtime.Rate, &c.Overtime.Pay,
		&c.Evening.Hours, &c.Evening.Rate, &c.Evening.Pay,
		&c.Night.Hours, &c.Night.Rate, &c.Night.Pay,
		&c.Weekend.Hours, &c.Weekend.Rate, &c.Weekend.Pay,
		&c.Holiday.Hours, &c.Holiday.Rate, &c.Holiday.Pay,
		&c.TravelKilometers, &c.TravelRate, &c.TravelAllowance, &otherEarnings,
		&c.GrossPay, &c.Taxes.IncomeTax, &c.Taxes.SocialSecurityEmployee, &c.Taxes.SocialSecurityEmployer,
		&c.Taxes.HealthInsurance, &c.Taxes.PensionEmployee, &c.Taxes.PensionEmployer,
		&c.Taxes.UnemploymentInsurance, &c.Taxes.DisabilityInsurance, &deductions, &c.NetPay,
		&c.VacationAccrual, &c.YTDGross, &c.YTDNet, &c.YTDTax,
		&c.Status, &c.TaxTableVersion, &c.CalculatedAt, &c.CalculatedBy, &c.CreatedAt, &c.UpdatedAt,
		&c.EmployeeName, &c.EmployeeCode,
	)
	if err != nil {
		return payroll.PayrollCalculation{}, err
	}

	if err := json.Unmarshal(otherEarnings, &c.OtherEarnings); err != nil {
		return payroll.PayrollCalculation{}, fmt.Errorf("failed to decode other earnings: %w", err)
	}
	if err := json.Unmarshal(deductions, &c.Deductions); err != nil {
		return payroll.PayrollCalculation{}, fmt.Errorf("failed to decode deductions: %w", err)
	}
	return c, nil
}

func marshalLines(lines []payroll.LineItem) ([]byte, error) {
	if lines == nil {
		lines = []payroll.LineItem{}
	}
	return json.Marshal(lines)
}

// UpsertCalculation writes the calculation keyed by (employee_id, payroll_period_id), so a
// re-run replaces the previous result in place and keeps its id. Approved, paid and superseded
// rows are left alone and reported as ErrPeriodLocked.
func (r *payrollRepository) UpsertCalculation(ctx context.Context, calc payroll.PayrollCalculation) (payroll.PayrollCalculation, error) {
	q := GetQuerier(ctx, r.db)

	otherEarnings, err := marshalLines(calc.OtherEarnings)
	if err != nil {
		return payroll.PayrollCalculation{}, fmt.Errorf("failed to encode other earnings: %w", err)
	}
	deductions, err := marshalLines(calc.Deductions)
	if err != nil {
		return payroll.PayrollCalculation{}, fmt.Errorf("failed to encode deductions: %w", err)
	}

	query := `
		WITH pc AS (
			INSERT INTO payroll_calculations (
				employee_id, company_id, payroll_period_id, period_start_date, period_end_date,
				regular_hours, regular_rate, regular_pay,
				overtime_hours, overtime_rate, overtime_pay,
				evening_hours, evening_rate, evening_pay,
				night_hours, night_rate, night_pay,
				weekend_hours, weekend_rate, weekend_pay,
				holiday_hours, holiday_rate, holiday_pay,
				travel_kilometers, travel_rate, travel_allowance, other_earnings,
				gross_pay, income_tax, social_security_employee, social_security_employer,
				health_insurance, pension_employee, pension_employer,
				unemployment_insurance, disability_insurance, deductions, net_pay,
				vacation_accrual, ytd_gross, ytd_net, ytd_tax,
				status, tax_table_version, calculated_at, calculated_by
			) VALUES (
				$1, $2, $3, $4, $5,
				$6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23,
				$24, $25, $26, $27,
				$28, $29, $30, $31, $32, $33, $34, $35, $36, $37, $38,
				$39, $40, $41, $42,
				$43, $44, $45, $46
			)
			ON CONFLICT (employee_id, payroll_period_id) DO UPDATE SET
				period_start_date = EXCLUDED.period_start_date,
				period_end_date = EXCLUDED.period_end_date,
				regular_hours = EXCLUDED.regular_hours, regular_rate = EXCLUDED.regular_rate, regular_pay = EXCLUDED.regular_pay,
				overtime_hours = EXCLUDED.overtime_hours, overtime_rate = EXCLUDED.overtime_rate, overtime_pay = EXCLUDED.overtime_pay,
				evening_hours = EXCLUDED.evening_hours, evening_rate = EXCLUDED.evening_rate, evening_pay = EXCLUDED.evening_pay,
				night_hours = EXCLUDED.night_hours, night_rate = EXCLUDED.night_rate, night_pay = EXCLUDED.night_pay,
				weekend_hours = EXCLUDED.weekend_hours, weekend_rate = EXCLUDED.weekend_rate, weekend_pay = EXCLUDED.weekend_pay,
				holiday_hours = EXCLUDED.holiday_hours, holiday_rate = EXCLUDED.holiday_rate, holiday_pay = EXCLUDED.holiday_pay,
				travel_kilometers = EXCLUDED.travel_kilometers, travel_rate = EXCLUDED.travel_rate,
				travel_allowance = EXCLUDED.travel_allowance, other_earnings = EXCLUDED.other_earnings,
				gross_pay = EXCLUDED.gross_pay, income_tax = EXCLUDED.income_tax,
				social_security_employee = EXCLUDED.social_security_employee,
				social_security_employer = EXCLUDED.social_security_employer,
				health_insurance = EXCLUDED.health_insurance,
				pension_employee = EXCLUDED.pension_employee, pension_employer = EXCLUDED.pension_employer,
				unemployment_insurance = EXCLUDED.unemployment_insurance,
				disability_insurance = EXCLUDED.disability_insurance,
				deductions = EXCLUDED.deductions, net_pay = EXCLUDED.net_pay,
				vacation_accrual = EXCLUDED.vacation_accrual,
				ytd_gross = EXCLUDED.ytd_gross, ytd_net = EXCLUDED.ytd_net, ytd_tax = EXCLUDED.ytd_tax,
				status = EXCLUDED.status, tax_table_version = EXCLUDED.tax_table_version,
				calculated_at = EXCLUDED.calculated_at, calculated_by = EXCLUDED.calculated_by,
				updated_at = NOW()
			WHERE payroll_calculations.status IN ('draft', 'calculated')
			RETURNING *
		)
		SELECT ` + calculationColumns + `
		FROM pc
		JOIN employees e ON pc.employee_id = e.id
	`

	c, err := scanCalculation(q.QueryRow(ctx, query,
		calc.EmployeeID, calc.CompanyID, calc.PayrollPeriodID, calc.PeriodStartDate, calc.PeriodEndDate,
		calc.Regular.Hours, calc.Regular.Rate, calc.Regular.Pay,
		calc.Overtime.Hours, calc.Overtime.Rate, calc.Overtime.Pay,
		calc.Evening.Hours, calc.Evening.Rate, calc.Evening.Pay,
		calc.Night.Hours, calc.Night.Rate, calc.Night.Pay,
		calc.Weekend.Hours, calc.Weekend.Rate, calc.Weekend.Pay,
		calc.Holiday.Hours, calc.Holiday.Rate, calc.Holiday.Pay,
		calc.TravelKilometers, calc.TravelRate, calc.TravelAllowance, otherEarnings,
		calc.GrossPay, calc.Taxes.IncomeTax, calc.Taxes.SocialSecurityEmployee, calc.Taxes.SocialSecurityEmployer,
		calc.Taxes.HealthInsurance, calc.Taxes.PensionEmployee, calc.Taxes.PensionEmployer,
		calc.Taxes.UnemploymentInsurance, calc.Taxes.DisabilityInsurance, deductions, calc.NetPay,
		calc.VacationAccrual, calc.YTDGross, calc.YTDNet, calc.YTDTax,
		calc.Status, calc.TaxTableVersion, calc.CalculatedAt, calc.CalculatedBy,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollCalculation{}, payroll.ErrPeriodLocked
		}
		return payroll.PayrollCalculation{}, fmt.Errorf("failed to upsert payroll calculation: %w", err)
	}

	return c, nil
}

func (r *payrollRepository) DeleteCalculation(ctx context.Context, employeeID string, periodID string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM payroll_calculations
		WHERE employee_id = $1 AND payroll_period_id = $2 AND company_id = $3
		  AND status IN ('draft', 'calculated')
	`

	if _, err := q.Exec(ctx, query, employeeID, periodID, companyID); err != nil {
		return fmt.Errorf("failed to delete payroll calculation: %w", err)
	}
	return nil
}

func (r *payrollRepository) GetCalculationByID(ctx context.Context, id string, companyID string) (payroll.PayrollCalculation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + calculationColumns + `
		FROM payroll_calculations pc
		JOIN employees e ON pc.employee_id = e.id
		WHERE pc.id = $1 AND pc.company_id = $2
	`

	c, err := scanCalculation(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollCalculation{}, payroll.ErrCalculationNotFound
		}
		return payroll.PayrollCalculation{}, fmt.Errorf("failed to get payroll calculation: %w", err)
	}

	return c, nil
}

func (r *payrollRepository) queryCalculations(ctx context.Context, query string, args ...any) ([]payroll.PayrollCalculation, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll calculations: %w", err)
	}
	defer rows.Close()

	calcs := make([]payroll.PayrollCalculation, 0)
	for rows.Next() {
		c, err := scanCalculation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll calculation: %w", err)
		}
		calcs = append(calcs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payroll calculations: %w", err)
	}

	return calcs, nil
}

func (r *payrollRepository) ListCalculationsByPeriod(ctx context.Context, periodID string, companyID string) ([]payroll.PayrollCalculation, error) {
	query := `
		SELECT ` + calculationColumns + `
		FROM payroll_calculations pc
		JOIN employees e ON pc.employee_id = e.id
		WHERE pc.payroll_period_id = $1 AND pc.company_id = $2
		ORDER BY e.employee_code
	`
	return r.queryCalculations(ctx, query, periodID, companyID)
}

func (r *payrollRepository) ListCalculationsByEmployee(ctx context.Context, employeeID string, companyID string, year *int) ([]payroll.PayrollCalculation, error) {
	query := `
		SELECT ` + calculationColumns + `
		FROM payroll_calculations pc
		JOIN employees e ON pc.employee_id = e.id
		WHERE pc.employee_id = $1 AND pc.company_id = $2
	`
	args := []any{employeeID, companyID}
	if year != nil {
		query += ` AND EXTRACT(YEAR FROM pc.period_end_date) = $3`
		args = append(args, *year)
	}
	query += ` ORDER BY pc.period_start_date DESC`

	return r.queryCalculations(ctx, query, args...)
}

func (r *payrollRepository) UpdateCalculationStatusByPeriod(ctx context.Context, periodID string, companyID string, status payroll.CalculationStatus) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_calculations
		SET status = $3, updated_at = NOW()
		WHERE payroll_period_id = $1 AND company_id = $2
	`

	if _, err := q.Exec(ctx, query, periodID, companyID, status); err != nil {
		return fmt.Errorf("failed to update payroll calculation status: %w", err)
	}
	return nil
}

// ========== AGGREGATIONS ==========

func (r *payrollRepository) SumPeriodTotals(ctx context.Context, periodID string, companyID string) (payroll.PeriodTotals, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(gross_pay), 0),
			COALESCE(SUM(net_pay), 0),
			COALESCE(SUM(income_tax + social_security_employee), 0)
		FROM payroll_calculations
		WHERE payroll_period_id = $1 AND company_id = $2
	`

	var t payroll.PeriodTotals
	if err := q.QueryRow(ctx, query, periodID, companyID).Scan(&t.EmployeeCount, &t.TotalGross, &t.TotalNet, &t.TotalTax); err != nil {
		return payroll.PeriodTotals{}, fmt.Errorf("failed to sum payroll period totals: %w", err)
	}
	return t, nil
}

// GetYearToDate sums the employee's calculations of the same year that end before the given date.
// Calculations of superseded periods are excluded.
func (r *payrollRepository) GetYearToDate(ctx context.Context, employeeID string, companyID string, year int, before time.Time) (payroll.YearToDate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COALESCE(SUM(pc.gross_pay), 0),
			COALESCE(SUM(pc.net_pay), 0),
			COALESCE(SUM(pc.income_tax + pc.social_security_employee), 0)
		FROM payroll_calculations pc
		JOIN payroll_periods pp ON pc.payroll_period_id = pp.id
		WHERE pc.employee_id = $1 AND pc.company_id = $2
		  AND EXTRACT(YEAR FROM pc.period_end_date) = $3
		  AND pc.period_end_date < $4
		  AND pc.status <> 'superseded' AND pp.status <> 'superseded'
	`

	var ytd payroll.YearToDate
	if err := q.QueryRow(ctx, query, employeeID, companyID, year, before).Scan(&ytd.Gross, &ytd.Net, &ytd.Tax); err != nil {
		return payroll.YearToDate{}, fmt.Errorf("failed to get year to date totals: %w", err)
	}
	return ytd, nil
}
