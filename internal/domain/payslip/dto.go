package payslip

import "time"

type PayslipResponse struct {
	ID                   string     `json:"id"`
	EmployeeID           string     `json:"employee_id"`
	CompanyID            string     `json:"company_id"`
	PayrollPeriodID      string     `json:"payroll_period_id"`
	PayrollCalculationID string     `json:"payroll_calculation_id"`
	PeriodStartDate      string     `json:"period_start_date"`
	PeriodEndDate        string     `json:"period_end_date"`
	PaymentDate          string     `json:"payment_date"`
	PDFURL               *string    `json:"pdf_url,omitempty"`
	PDFStoragePath       *string    `json:"pdf_storage_path,omitempty"`
	RenderError          *string    `json:"render_error,omitempty"`
	GeneratedAt          *time.Time `json:"generated_at,omitempty"`
	GeneratedBy          *string    `json:"generated_by,omitempty"`
	DownloadedAt         *time.Time `json:"downloaded_at,omitempty"`
}

// CalculationFailure - a calculation whose payslip could not be produced
type CalculationFailure struct {
	CalculationID string `json:"calculation_id"`
	EmployeeID    string `json:"employee_id"`
	Error         string `json:"error"`
}

type GenerateResult struct {
	PeriodID  string               `json:"period_id"`
	Generated int                  `json:"generated"`
	Failed    int                  `json:"failed"`
	Failures  []CalculationFailure `json:"failures"`
}
