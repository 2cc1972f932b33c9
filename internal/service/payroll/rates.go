package payroll

import (
	"github.com/SandeDesign/alloon-sub000/internal/domain/employee"
	"github.com/SandeDesign/alloon-sub000/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// DefaultRateSchedule is used for every value neither the employee nor the company sets.
func DefaultRateSchedule() payroll.RateSchedule {
	return payroll.RateSchedule{
		BaseRate:           decimal.NewFromInt(15),
		OvertimeMultiplier: decimal.NewFromInt(150),
		EveningMultiplier:  decimal.NewFromInt(125),
		NightMultiplier:    decimal.NewFromInt(150),
		WeekendMultiplier:  decimal.NewFromInt(150),
		HolidayMultiplier:  decimal.NewFromInt(200),
	}
}

// ResolveRates picks the employee's hourly rate over the company base rate, and company
// multipliers over defaults. company may be nil.
func ResolveRates(emp employee.Employee, company *payroll.RateScheduleSettings, defaults payroll.RateSchedule) payroll.RateSchedule {
	rates := defaults
	if company != nil {
		rates.BaseRate = pick(company.BaseRate, defaults.BaseRate)
		rates.OvertimeMultiplier = pick(company.OvertimeMultiplier, defaults.OvertimeMultiplier)
		rates.EveningMultiplier = pick(company.EveningMultiplier, defaults.EveningMultiplier)
		rates.NightMultiplier = pick(company.NightMultiplier, defaults.NightMultiplier)
		rates.WeekendMultiplier = pick(company.WeekendMultiplier, defaults.WeekendMultiplier)
		rates.HolidayMultiplier = pick(company.HolidayMultiplier, defaults.HolidayMultiplier)
	}
	if emp.HourlyRate != nil && emp.HourlyRate.IsPositive() {
		rates.BaseRate = *emp.HourlyRate
	}
	return rates
}

func pick(value *decimal.Decimal, fallback decimal.Decimal) decimal.Decimal {
	if value == nil {
		return fallback
	}
	return *value
}
