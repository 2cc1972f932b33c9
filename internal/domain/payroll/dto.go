package payroll

import (
	"time"

	"github.com/SandeDesign/alloon-sub000/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== RATE SCHEDULE DTOs ==========

type RateScheduleResponse struct {
	CompanyID          string          `json:"company_id"`
	IsDefault          bool            `json:"is_default"`
	BaseRate           decimal.Decimal `json:"base_rate"`
	OvertimeMultiplier decimal.Decimal `json:"overtime_multiplier"`
	EveningMultiplier  decimal.Decimal `json:"evening_multiplier"`
	NightMultiplier    decimal.Decimal `json:"night_multiplier"`
	WeekendMultiplier  decimal.Decimal `json:"weekend_multiplier"`
	HolidayMultiplier  decimal.Decimal `json:"holiday_multiplier"`
}

type UpdateRateScheduleRequest struct {
	BaseRate           *decimal.Decimal `json:"base_rate,omitempty"`
	OvertimeMultiplier *decimal.Decimal `json:"overtime_multiplier,omitempty"`
	EveningMultiplier  *decimal.Decimal `json:"evening_multiplier,omitempty"`
	NightMultiplier    *decimal.Decimal `json:"night_multiplier,omitempty"`
	WeekendMultiplier  *decimal.Decimal `json:"weekend_multiplier,omitempty"`
	HolidayMultiplier  *decimal.Decimal `json:"holiday_multiplier,omitempty"`
}

func (r *UpdateRateScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	errs.Check(r.BaseRate == nil || r.BaseRate.IsPositive(), "base_rate", "must be greater than zero")

	hundred := decimal.NewFromInt(100)
	for _, m := range []struct {
		field string
		value *decimal.Decimal
	}{
		{"overtime_multiplier", r.OvertimeMultiplier},
		{"evening_multiplier", r.EveningMultiplier},
		{"night_multiplier", r.NightMultiplier},
		{"weekend_multiplier", r.WeekendMultiplier},
		{"holiday_multiplier", r.HolidayMultiplier},
	} {
		errs.Check(m.value == nil || !m.value.LessThan(hundred), m.field, "must be at least 100 (percent of base rate)")
	}

	return errs.Err()
}

// ========== TAX TABLE DTOs ==========

type ContributionResponse struct {
	Code string          `json:"code"`
	Name string          `json:"name"`
	Rate decimal.Decimal `json:"rate"`
}

type TaxTableResponse struct {
	Version               string                 `json:"version"`
	WhiteTableRate        decimal.Decimal        `json:"white_table_rate"`
	GreenTableRate        decimal.Decimal        `json:"green_table_rate"`
	TaxCreditFactor       decimal.Decimal        `json:"tax_credit_factor"`
	EmployeeContributions []ContributionResponse `json:"employee_contributions"`
	HealthInsuranceRate   decimal.Decimal        `json:"health_insurance_rate"`
	UnemploymentRate      decimal.Decimal        `json:"unemployment_rate"`
	DisabilityRate        decimal.Decimal        `json:"disability_rate"`
	HolidayAllowanceRate  decimal.Decimal        `json:"holiday_allowance_rate"`
}

// ========== PERIOD DTOs ==========

type CreatePeriodRequest struct {
	Name        *string `json:"name,omitempty"`
	PeriodType  string  `json:"period_type"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	PaymentDate string  `json:"payment_date"`
}

func (r *CreatePeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	errs.Check(PeriodType(r.PeriodType).IsValid(), "period_type", "must be 'monthly', 'weekly' or 'four_weekly'")

	start, startOK := errs.Date("start_date", r.StartDate)
	end, endOK := errs.Date("end_date", r.EndDate)
	payment, paymentOK := errs.Date("payment_date", r.PaymentDate)

	if startOK && endOK {
		errs.Check(start.Before(end), "end_date", "must be after start_date")
	}
	if endOK && paymentOK {
		errs.Check(end.Before(payment), "payment_date", "must be after end_date")
	}
	errs.Check(r.Name == nil || len(*r.Name) <= 100, "name", "must be at most 100 characters")

	return errs.Err()
}

type PeriodFilter struct {
	Status *string
	Year   *int
	Page   int
	Limit  int
}

type PeriodResponse struct {
	ID              string          `json:"id"`
	CompanyID       string          `json:"company_id"`
	Name            string          `json:"name"`
	PeriodType      string          `json:"period_type"`
	StartDate       string          `json:"start_date"`
	EndDate         string          `json:"end_date"`
	PaymentDate     string          `json:"payment_date"`
	Status          string          `json:"status"`
	EmployeeCount   int             `json:"employee_count"`
	TotalGross      decimal.Decimal `json:"total_gross"`
	TotalNet        decimal.Decimal `json:"total_net"`
	TotalTax        decimal.Decimal `json:"total_tax"`
	TaxTableVersion *string         `json:"tax_table_version,omitempty"`
	CalculatedAt    *time.Time      `json:"calculated_at,omitempty"`
	ApprovedAt      *time.Time      `json:"approved_at,omitempty"`
	ApprovedBy      *string         `json:"approved_by,omitempty"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
	PaidBy          *string         `json:"paid_by,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type ListPeriodsResponse struct {
	Periods    []PeriodResponse `json:"periods"`
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
}

// EmployeeFailure - an employee skipped because its calculation failed
type EmployeeFailure struct {
	EmployeeID string `json:"employee_id"`
	Error      string `json:"error"`
}

// PeriodSummary - outcome of one runCalculation
type PeriodSummary struct {
	PeriodID          string            `json:"period_id"`
	Status            string            `json:"status"`
	TaxTableVersion   string            `json:"tax_table_version"`
	EmployeeCount     int               `json:"employee_count"`
	TotalGross        decimal.Decimal   `json:"total_gross"`
	TotalNet          decimal.Decimal   `json:"total_net"`
	TotalTax          decimal.Decimal   `json:"total_tax"`
	Calculated        int               `json:"calculated"`
	Skipped           int               `json:"skipped"`
	Failures          []EmployeeFailure `json:"failures"`
	PayslipsGenerated int               `json:"payslips_generated"`
	PayslipFailures   int               `json:"payslip_failures"`
}

// ========== CALCULATION DTOs ==========

type CategoryPayResponse struct {
	Hours decimal.Decimal `json:"hours"`
	Rate  decimal.Decimal `json:"rate"`
	Pay   decimal.Decimal `json:"pay"`
}

type TaxesResponse struct {
	IncomeTax              decimal.Decimal `json:"income_tax"`
	SocialSecurityEmployee decimal.Decimal `json:"social_security_employee"`
	SocialSecurityEmployer decimal.Decimal `json:"social_security_employer"`
	HealthInsurance        decimal.Decimal `json:"health_insurance"`
	PensionEmployee        decimal.Decimal `json:"pension_employee"`
	PensionEmployer        decimal.Decimal `json:"pension_employer"`
	UnemploymentInsurance  decimal.Decimal `json:"unemployment_insurance"`
	DisabilityInsurance    decimal.Decimal `json:"disability_insurance"`
}

type CalculationResponse struct {
	ID               string              `json:"id"`
	EmployeeID       string              `json:"employee_id"`
	EmployeeName     *string             `json:"employee_name,omitempty"`
	EmployeeCode     *string             `json:"employee_code,omitempty"`
	CompanyID        string              `json:"company_id"`
	PayrollPeriodID  string              `json:"payroll_period_id"`
	PeriodStartDate  string              `json:"period_start_date"`
	PeriodEndDate    string              `json:"period_end_date"`
	Regular          CategoryPayResponse `json:"regular"`
	Overtime         CategoryPayResponse `json:"overtime"`
	Evening          CategoryPayResponse `json:"evening"`
	Night            CategoryPayResponse `json:"night"`
	Weekend          CategoryPayResponse `json:"weekend"`
	Holiday          CategoryPayResponse `json:"holiday"`
	TravelKilometers decimal.Decimal     `json:"travel_kilometers"`
	TravelRate       decimal.Decimal     `json:"travel_rate"`
	TravelAllowance  decimal.Decimal     `json:"travel_allowance"`
	OtherEarnings    []LineItem          `json:"other_earnings"`
	GrossPay         decimal.Decimal     `json:"gross_pay"`
	Taxes            TaxesResponse       `json:"taxes"`
	Deductions       []LineItem          `json:"deductions"`
	NetPay           decimal.Decimal     `json:"net_pay"`
	VacationAccrual  decimal.Decimal     `json:"vacation_accrual"`
	YTDGross         decimal.Decimal     `json:"ytd_gross"`
	YTDNet           decimal.Decimal     `json:"ytd_net"`
	YTDTax           decimal.Decimal     `json:"ytd_tax"`
	Status           string              `json:"status"`
	TaxTableVersion  string              `json:"tax_table_version"`
	CalculatedAt     time.Time           `json:"calculated_at"`
	CalculatedBy     *string             `json:"calculated_by,omitempty"`
}
