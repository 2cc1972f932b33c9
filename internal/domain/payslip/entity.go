package payslip

import (
	"time"

	"github.com/SandeDesign/alloon-sub000/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// Payslip - rendering record of one payroll calculation
type Payslip struct {
	ID                   string
	EmployeeID           string
	CompanyID            string
	PayrollPeriodID      string
	PayrollCalculationID string
	PeriodStartDate      time.Time
	PeriodEndDate        time.Time
	PaymentDate          time.Time
	PDFURL               *string
	PDFStoragePath       *string
	RenderError          *string
	GeneratedAt          *time.Time
	GeneratedBy          *string
	DownloadedAt         *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// HasDocument reports whether the payslip points to a rendered document.
func (p Payslip) HasDocument() bool {
	return p.PDFStoragePath != nil && *p.PDFStoragePath != ""
}

// Document - stored rendering of a payslip
type Document struct {
	URL         string
	StoragePath string
	GeneratedBy *string
	GeneratedAt time.Time
}

// ViewModel - everything printed on a payslip
type ViewModel struct {
	Company         CompanyHeader
	Employee        EmployeeHeader
	Period          PeriodInfo
	Earnings        []payroll.LineItem
	Reimbursements  []payroll.LineItem
	Deductions      []payroll.LineItem
	Taxes           []payroll.LineItem
	EmployerCharges []payroll.LineItem
	Summary         Summary
	LeaveBalances   []LeaveBalance
	TaxTableVersion string
}

type CompanyHeader struct {
	Name                string
	Address             string
	ChamberOfCommerceNo string
	TaxNumber           string
}

type EmployeeHeader struct {
	Name      string
	Code      string
	JobTitle  string
	Address   string
	IBAN      string
	TaxTable  string
	TaxCredit bool
}

type PeriodInfo struct {
	Name        string
	StartDate   time.Time
	EndDate     time.Time
	PaymentDate time.Time
}

type Summary struct {
	GrossPay                decimal.Decimal
	TotalDeductions         decimal.Decimal
	TotalTaxes              decimal.Decimal
	TotalDeductionsAndTaxes decimal.Decimal
	NetPay                  decimal.Decimal
	Reimbursements          decimal.Decimal
	TotalPayout             decimal.Decimal
	VacationAccrual         decimal.Decimal
	YTDGross                decimal.Decimal
	YTDNet                  decimal.Decimal
	YTDTax                  decimal.Decimal
}

// LeaveBalance - leave snapshot per leave type, in hours
type LeaveBalance struct {
	LeaveType string
	Entitled  float64
	Used      float64
	Pending   float64
	Available float64
}
