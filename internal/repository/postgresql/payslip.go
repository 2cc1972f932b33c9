package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SandeDesign/alloon-sub000/internal/domain/payslip"
	"github.com/SandeDesign/alloon-sub000/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payslipRepository struct {
	db *database.DB
}

func NewPayslipRepository(db *database.DB) payslip.PayslipRepository {
	return &payslipRepository{db: db}
}

const payslipColumns = `
	id, employee_id, company_id, payroll_period_id, payroll_calculation_id,
	period_start_date, period_end_date, payment_date,
	pdf_url, pdf_storage_path, render_error, generated_at, generated_by, downloaded_at,
	created_at, updated_at
`

func scanPayslip(row rowScanner) (payslip.Payslip, error) {
	var p payslip.Payslip
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.CompanyID, &p.PayrollPeriodID, &p.PayrollCalculationID,
		&p.PeriodStartDate, &p.PeriodEndDate, &p.PaymentDate,
		&p.PDFURL, &p.PDFStoragePath, &p.RenderError, &p.GeneratedAt, &p.GeneratedBy, &p.DownloadedAt,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *payslipRepository) UpsertForCalculation(ctx context.Context, p payslip.Payslip) (payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payslips (
			employee_id, company_id, payroll_period_id, payroll_calculation_id,
			period_start_date, period_end_date, payment_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (payroll_calculation_id) DO UPDATE SET
			period_start_date = EXCLUDED.period_start_date,
			period_end_date = EXCLUDED.period_end_date,
			payment_date = EXCLUDED.payment_date,
			updated_at = NOW()
		RETURNING ` + payslipColumns

	saved, err := scanPayslip(q.QueryRow(ctx, query,
		p.EmployeeID, p.CompanyID, p.PayrollPeriodID, p.PayrollCalculationID,
		p.PeriodStartDate, p.PeriodEndDate, p.PaymentDate,
	))
	if err != nil {
		return payslip.Payslip{}, fmt.Errorf("failed to upsert payslip: %w", err)
	}

	return saved, nil
}

func (r *payslipRepository) UpdateDocument(ctx context.Context, id string, companyID string, doc payslip.Document) (payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payslips
		SET pdf_url = $3, pdf_storage_path = $4, generated_at = $5, generated_by = $6,
			render_error = NULL, updated_at = NOW()
		WHERE id = $1 AND company_id = $2
		RETURNING ` + payslipColumns

	p, err := scanPayslip(q.QueryRow(ctx, query, id, companyID, doc.URL, doc.StoragePath, doc.GeneratedAt, doc.GeneratedBy))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payslip.Payslip{}, payslip.ErrPayslipNotFound
		}
		return payslip.Payslip{}, fmt.Errorf("failed to update payslip document: %w", err)
	}

	return p, nil
}

// MarkRenderFailed clears any previous document so a stale PDF is never served for newer figures.
func (r *payslipRepository) MarkRenderFailed(ctx context.Context, id string, companyID string, message string) (payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payslips
		SET render_error = $3, pdf_url = NULL, pdf_storage_path = NULL, updated_at = NOW()
		WHERE id = $1 AND company_id = $2
		RETURNING ` + payslipColumns

	p, err := scanPayslip(q.QueryRow(ctx, query, id, companyID, message))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payslip.Payslip{}, payslip.ErrPayslipNotFound
		}
		return payslip.Payslip{}, fmt.Errorf("failed to mark payslip render failure: %w", err)
	}

	return p, nil
}

func (r *payslipRepository) MarkDownloaded(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE payslips SET downloaded_at = NOW() WHERE id = $1 AND company_id = $2`

	tag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to mark payslip downloaded: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payslip.ErrPayslipNotFound
	}
	return nil
}

func (r *payslipRepository) GetByID(ctx context.Context, id string, companyID string) (payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payslipColumns + ` FROM payslips WHERE id = $1 AND company_id = $2`

	p, err := scanPayslip(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payslip.Payslip{}, payslip.ErrPayslipNotFound
		}
		return payslip.Payslip{}, fmt.Errorf("failed to get payslip: %w", err)
	}

	return p, nil
}

func (r *payslipRepository) GetByCalculationID(ctx context.Context, calculationID string, companyID string) (payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payslipColumns + ` FROM payslips WHERE payroll_calculation_id = $1 AND company_id = $2`

	p, err := scanPayslip(q.QueryRow(ctx, query, calculationID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payslip.Payslip{}, payslip.ErrPayslipNotFound
		}
		return payslip.Payslip{}, fmt.Errorf("failed to get payslip: %w", err)
	}

	return p, nil
}

func (r *payslipRepository) queryPayslips(ctx context.Context, query string, args ...any) ([]payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}
	defer rows.Close()

	payslips := make([]payslip.Payslip, 0)
	for rows.Next() {
		p, err := scanPayslip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payslip: %w", err)
		}
		payslips = append(payslips, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payslips: %w", err)
	}

	return payslips, nil
}

func (r *payslipRepository) ListByEmployee(ctx context.Context, employeeID string, companyID string, year *int) ([]payslip.Payslip, error) {
	query := `SELECT ` + payslipColumns + ` FROM payslips WHERE employee_id = $1 AND company_id = $2`
	args := []any{employeeID, companyID}
	if year != nil {
		query += ` AND EXTRACT(YEAR FROM period_end_date) = $3`
		args = append(args, *year)
	}
	query += ` ORDER BY period_start_date DESC`

	return r.queryPayslips(ctx, query, args...)
}

func (r *payslipRepository) ListWithoutDocument(ctx context.Context, limit int) ([]payslip.Payslip, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT ` + payslipColumns + `
		FROM payslips
		WHERE pdf_storage_path IS NULL
		  AND EXISTS (
			SELECT 1 FROM payroll_calculations pc
			WHERE pc.id = payslips.payroll_calculation_id
			  AND pc.status NOT IN ('draft', 'superseded')
		  )
		ORDER BY updated_at
		LIMIT $1
	`
	return r.queryPayslips(ctx, query, limit)
}
