package payslip

import "context"

type PayslipRepository interface {
	// UpsertForCalculation creates the record of a calculation or refreshes its period fields.
	// Stored document references are left untouched.
	UpsertForCalculation(ctx context.Context, p Payslip) (Payslip, error)
	UpdateDocument(ctx context.Context, id string, companyID string, doc Document) (Payslip, error)
	MarkRenderFailed(ctx context.Context, id string, companyID string, message string) (Payslip, error)
	MarkDownloaded(ctx context.Context, id string, companyID string) error

	GetByID(ctx context.Context, id string, companyID string) (Payslip, error)
	GetByCalculationID(ctx context.Context, calculationID string, companyID string) (Payslip, error)
	ListByEmployee(ctx context.Context, employeeID string, companyID string, year *int) ([]Payslip, error)

	// ListWithoutDocument spans all companies; it feeds the render retry job. Payslips whose
	// calculation is draft or superseded are left out since they can no longer be rendered.
	ListWithoutDocument(ctx context.Context, limit int) ([]Payslip, error)
}
