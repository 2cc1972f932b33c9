package payroll

import (
	"errors"
	"time"

	"github.com/SandeDesign/alloon-sub000/internal/domain/employee"
	"github.com/SandeDesign/alloon-sub000/internal/domain/payroll"
	"github.com/SandeDesign/alloon-sub000/internal/domain/timesheet"
	"github.com/shopspring/decimal"
)

// EmployeeInput - everything one employee's calculation reads
type EmployeeInput struct {
	Employee     employee.Employee
	Timesheets   []timesheet.Timesheet
	Period       payroll.PayrollPeriod
	RateSchedule *payroll.RateScheduleSettings
}

// Calculator chains aggregation, rate resolution, earnings and taxes for one employee.
// It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	defaults payroll.RateSchedule
	table    payroll.TaxTable
}

// NewCalculator returns a Calculator using defaults when a company has no rate schedule.
func NewCalculator(defaults payroll.RateSchedule, table payroll.TaxTable) *Calculator {
	return &Calculator{defaults: defaults, table: table}
}

// TaxTable returns the tax table every calculation is stamped with.
func (c *Calculator) TaxTable() payroll.TaxTable {
	return c.table
}

// Defaults returns the fallback rate schedule.
func (c *Calculator) Defaults() payroll.RateSchedule {
	return c.defaults
}

// Calculate returns ok == false when the employee worked no hours in the period.
// YTD figures are left zero; see ApplyYearToDate.
func (c *Calculator) Calculate(in EmployeeInput, calculatedAt time.Time, calculatedBy *string) (payroll.PayrollCalculation, bool, error) {
	if in.Employee.ID == "" {
		return payroll.PayrollCalculation{}, false, errors.New("employee record has no id")
	}

	bucket, err := AggregateHours(in.Timesheets, in.Period.StartDate, in.Period.EndDate)
	if err != nil {
		return payroll.PayrollCalculation{}, false, err
	}
	if bucket.TotalHours().IsZero() {
		return payroll.PayrollCalculation{}, false, nil
	}

	rates := ResolveRates(in.Employee, in.RateSchedule, c.defaults)
	earnings := CalculateEarnings(bucket, rates, in.Employee.TravelAllowancePerKm)
	taxCfg := TaxConfigFor(in.Employee)
	taxes := CalculateTaxes(earnings.GrossPay, taxCfg, c.table)

	otherEarnings := []payroll.LineItem{}
	if earnings.TravelAllowance.IsPositive() {
		otherEarnings = append(otherEarnings, earnings.TravelLine())
	}

	calc := payroll.PayrollCalculation{
		EmployeeID:      in.Employee.ID,
		CompanyID:       in.Period.CompanyID,
		PayrollPeriodID: in.Period.ID,
		PeriodStartDate: in.Period.StartDate,
		PeriodEndDate:   in.Period.EndDate,

		Regular:  earnings.Regular,
		Overtime: earnings.Overtime,
		Evening:  earnings.Evening,
		Night:    earnings.Night,
		Weekend:  earnings.Weekend,
		Holiday:  earnings.Holiday,

		TravelKilometers: earnings.TravelKilometers,
		TravelRate:       earnings.TravelRate,
		TravelAllowance:  earnings.TravelAllowance,
		OtherEarnings:    otherEarnings,

		GrossPay:   earnings.GrossPay,
		Taxes:      taxes,
		Deductions: DeductionLines(taxes, taxCfg),
		NetPay:     NetPay(earnings.GrossPay, taxes),

		VacationAccrual: roundMoney(earnings.GrossPay.Mul(c.table.HolidayAllowanceRate)),

		Status:          payroll.CalculationStatusCalculated,
		TaxTableVersion: c.table.Version,
		CalculatedAt:    calculatedAt,
		CalculatedBy:    calculatedBy,
	}

	return calc, true, nil
}

// ApplyYearToDate adds the current period on top of earlier periods of the year.
func ApplyYearToDate(calc payroll.PayrollCalculation, prior payroll.YearToDate) payroll.PayrollCalculation {
	calc.YTDGross = prior.Gross.Add(calc.GrossPay)
	calc.YTDNet = prior.Net.Add(calc.NetPay)
	calc.YTDTax = prior.Tax.Add(calc.TotalTax())
	return calc
}

// sumCalculations mirrors the store aggregation; used for the register footer.
func sumCalculations(calcs []payroll.PayrollCalculation) payroll.PeriodTotals {
	totals := payroll.PeriodTotals{TotalGross: decimal.Zero, TotalNet: decimal.Zero, TotalTax: decimal.Zero}
	for _, c := range calcs {
		totals.EmployeeCount++
		totals.TotalGross = totals.TotalGross.Add(c.GrossPay)
		totals.TotalNet = totals.TotalNet.Add(c.NetPay)
		totals.TotalTax = totals.TotalTax.Add(c.TotalTax())
	}
	return totals
}
