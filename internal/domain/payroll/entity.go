package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodType enum
type PeriodType string

const (
	PeriodTypeMonthly    PeriodType = "monthly"
	PeriodTypeWeekly     PeriodType = "weekly"
	PeriodTypeFourWeekly PeriodType = "four_weekly"
)

func (t PeriodType) IsValid() bool {
	switch t {
	case PeriodTypeMonthly, PeriodTypeWeekly, PeriodTypeFourWeekly:
		return true
	}
	return false
}

// PeriodStatus enum
type PeriodStatus string

const (
	PeriodStatusDraft      PeriodStatus = "draft"
	PeriodStatusCalculated PeriodStatus = "calculated"
	PeriodStatusApproved   PeriodStatus = "approved"
	PeriodStatusPaid       PeriodStatus = "paid"
	PeriodStatusSuperseded PeriodStatus = "superseded"
)

// PayrollPeriod - one payroll run window of a company
type PayrollPeriod struct {
	ID              string
	CompanyID       string
	Name            string
	PeriodType      PeriodType
	StartDate       time.Time
	EndDate         time.Time
	PaymentDate     time.Time
	Status          PeriodStatus
	EmployeeCount   int
	TotalGross      decimal.Decimal
	TotalNet        decimal.Decimal
	TotalTax        decimal.Decimal
	TaxTableVersion *string
	CalculatedAt    *time.Time
	ApprovedAt      *time.Time
	ApprovedBy      *string
	PaidAt          *time.Time
	PaidBy          *string
	CreatedBy       *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CanCalculate reports whether runCalculation may (re)compute the period.
func (p PayrollPeriod) CanCalculate() bool {
	return p.Status == PeriodStatusDraft || p.Status == PeriodStatusCalculated
}

// Contains reports whether day falls inside [StartDate, EndDate], compared by calendar date.
func (p PayrollPeriod) Contains(day time.Time) bool {
	return !dateOnly(day).Before(dateOnly(p.StartDate)) && !dateOnly(day).After(dateOnly(p.EndDate))
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CalculationStatus enum
type CalculationStatus string

const (
	CalculationStatusDraft      CalculationStatus = "draft"
	CalculationStatusCalculated CalculationStatus = "calculated"
	CalculationStatusApproved   CalculationStatus = "approved"
	CalculationStatusPaid       CalculationStatus = "paid"
	CalculationStatusSuperseded CalculationStatus = "superseded"
)

// HourBucket - typed hour totals of one employee within a period
type HourBucket struct {
	Regular  decimal.Decimal
	Overtime decimal.Decimal
	Evening  decimal.Decimal
	Night    decimal.Decimal
	Weekend  decimal.Decimal
	Holiday  decimal.Decimal
	TravelKm decimal.Decimal
}

// TotalHours excludes travel kilometers.
func (b HourBucket) TotalHours() decimal.Decimal {
	return b.Regular.Add(b.Overtime).Add(b.Evening).Add(b.Night).Add(b.Weekend).Add(b.Holiday)
}

// RateSchedule - base hourly rate plus differential multipliers in percent of base
type RateSchedule struct {
	BaseRate           decimal.Decimal
	OvertimeMultiplier decimal.Decimal
	EveningMultiplier  decimal.Decimal
	NightMultiplier    decimal.Decimal
	WeekendMultiplier  decimal.Decimal
	HolidayMultiplier  decimal.Decimal
}

// RateScheduleSettings - company configured schedule; nil fields fall through to defaults
type RateScheduleSettings struct {
	ID                 string
	CompanyID          string
	BaseRate           *decimal.Decimal
	OvertimeMultiplier *decimal.Decimal
	EveningMultiplier  *decimal.Decimal
	NightMultiplier    *decimal.Decimal
	WeekendMultiplier  *decimal.Decimal
	HolidayMultiplier  *decimal.Decimal
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// CategoryPay - hours, effective rate and pay of one hour category
type CategoryPay struct {
	Hours decimal.Decimal
	Rate  decimal.Decimal
	Pay   decimal.Decimal
}

// LineItem - one itemized payslip line
type LineItem struct {
	Code        string          `json:"code"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// Taxes - statutory deductions and employer charges of one calculation
type Taxes struct {
	IncomeTax              decimal.Decimal
	SocialSecurityEmployee decimal.Decimal
	SocialSecurityEmployer decimal.Decimal
	HealthInsurance        decimal.Decimal
	PensionEmployee        decimal.Decimal
	PensionEmployer        decimal.Decimal
	UnemploymentInsurance  decimal.Decimal
	DisabilityInsurance    decimal.Decimal
}

// PayrollCalculation - one employee's result for one period
type PayrollCalculation struct {
	ID              string
	EmployeeID      string
	CompanyID       string
	PayrollPeriodID string
	PeriodStartDate time.Time
	PeriodEndDate   time.Time

	Regular  CategoryPay
	Overtime CategoryPay
	Evening  CategoryPay
	Night    CategoryPay
	Weekend  CategoryPay
	Holiday  CategoryPay

	TravelKilometers decimal.Decimal
	TravelRate       decimal.Decimal
	TravelAllowance  decimal.Decimal
	OtherEarnings    []LineItem

	GrossPay   decimal.Decimal
	Taxes      Taxes
	Deductions []LineItem
	NetPay     decimal.Decimal

	VacationAccrual decimal.Decimal
	YTDGross        decimal.Decimal
	YTDNet          decimal.Decimal
	YTDTax          decimal.Decimal

	Status          CalculationStatus
	TaxTableVersion string
	CalculatedAt    time.Time
	CalculatedBy    *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

// TotalTax is the tax figure rolled up into period totals and YTD.
func (c PayrollCalculation) TotalTax() decimal.Decimal {
	return c.Taxes.IncomeTax.Add(c.Taxes.SocialSecurityEmployee)
}

// EarningLines returns the wage lines in fixed category order.
func (c PayrollCalculation) EarningLines() []LineItem {
	categories := []struct {
		code, description string
		pay               CategoryPay
	}{
		{"regular", "Regular hours", c.Regular},
		{"overtime", "Overtime", c.Overtime},
		{"evening", "Evening hours", c.Evening},
		{"night", "Night hours", c.Night},
		{"weekend", "Weekend hours", c.Weekend},
		{"holiday", "Holiday hours", c.Holiday},
	}

	lines := make([]LineItem, 0, len(categories))
	for _, cat := range categories {
		lines = append(lines, LineItem{
			Code:        cat.code,
			Description: cat.description,
			Quantity:    cat.pay.Hours,
			Rate:        cat.pay.Rate,
			Amount:      cat.pay.Pay,
		})
	}
	return lines
}

// PeriodTotals - aggregate over all calculations of a period
type PeriodTotals struct {
	EmployeeCount int
	TotalGross    decimal.Decimal
	TotalNet      decimal.Decimal
	TotalTax      decimal.Decimal
}

// YearToDate - cumulative figures of earlier periods in the same calendar year
type YearToDate struct {
	Gross decimal.Decimal
	Net   decimal.Decimal
	Tax   decimal.Decimal
}

// TaxTable - versioned set of statutory rates used by one calculation run
type TaxTable struct {
	Version               string
	WhiteTableRate        decimal.Decimal
	GreenTableRate        decimal.Decimal
	TaxCreditFactor       decimal.Decimal
	EmployeeContributions []Contribution
	HealthInsuranceRate   decimal.Decimal
	UnemploymentRate      decimal.Decimal
	DisabilityRate        decimal.Decimal
	HolidayAllowanceRate  decimal.Decimal
}

// Contribution - named statutory percentage, Rate is a fraction of gross (0.0125 = 1.25%)
type Contribution struct {
	Code string
	Name string
	Rate decimal.Decimal
}

// EmployeeContributionRate sums all employee contribution rates.
func (t TaxTable) EmployeeContributionRate() decimal.Decimal {
	total := decimal.Zero
	for _, c := range t.EmployeeContributions {
		total = total.Add(c.Rate)
	}
	return total
}
