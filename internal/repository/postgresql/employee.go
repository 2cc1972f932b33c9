package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SandeDesign/alloon-sub000/internal/domain/employee"
	"github.com/SandeDesign/alloon-sub000/internal/domain/timesheet"
	"github.com/SandeDesign/alloon-sub000/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	id, company_id, employee_code, full_name, email, job_title, address, bank_account_iban,
	hire_date, employment_status, hourly_rate, tax_table, tax_credit,
	pension_contribution_pct, pension_employer_contribution_pct, travel_allowance_per_km,
	created_at, updated_at
`

func scanEmployee(row rowScanner) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.CompanyID, &emp.EmployeeCode, &emp.FullName, &emp.Email, &emp.JobTitle,
		&emp.Address, &emp.BankAccountIBAN, &emp.HireDate, &emp.EmploymentStatus,
		&emp.HourlyRate, &emp.TaxTable, &emp.TaxCredit,
		&emp.PensionContributionPct, &emp.PensionEmployerContributionPct, &emp.TravelAllowancePerKm,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee with id %s: %w", id, err)
	}

	return emp, nil
}

// ListForPeriod implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListForPeriod(ctx context.Context, companyID string, periodID string, start, end time.Time) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		WHERE e.company_id = $1 AND (
			(e.employment_status = $2 AND e.deleted_at IS NULL)
			OR EXISTS (
				SELECT 1 FROM timesheets t
				WHERE t.employee_id = e.id AND t.company_id = e.company_id AND t.status = $3
				  AND t.period_start <= $6 AND t.period_end >= $5
			)
			OR EXISTS (
				SELECT 1 FROM payroll_calculations pc
				WHERE pc.employee_id = e.id AND pc.payroll_period_id = $4
			)
		)
		ORDER BY e.employee_code
	`

	rows, err := q.Query(ctx, query, companyID, employee.EmploymentStatusActive, timesheet.StatusApproved, periodID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll employees: %w", err)
	}

	employees, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (employee.Employee, error) {
		return scanEmployee(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan employee: %w", err)
	}
	return employees, nil
}
