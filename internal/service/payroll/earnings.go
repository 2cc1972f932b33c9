package payroll

import (
	"github.com/SandeDesign/alloon-sub000/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Earnings is the wage part of a calculation.
type Earnings struct {
	Regular  payroll.CategoryPay
	Overtime payroll.CategoryPay
	Evening  payroll.CategoryPay
	Night    payroll.CategoryPay
	Weekend  payroll.CategoryPay
	Holiday  payroll.CategoryPay

	TravelKilometers decimal.Decimal
	TravelRate       decimal.Decimal
	TravelAllowance  decimal.Decimal

	// GrossPay excludes the travel allowance, which is a reimbursement.
	GrossPay decimal.Decimal
}

// Lines returns the wage lines in category order.
func (e Earnings) Lines() []payroll.LineItem {
	calc := payroll.PayrollCalculation{
		Regular:  e.Regular,
		Overtime: e.Overtime,
		Evening:  e.Evening,
		Night:    e.Night,
		Weekend:  e.Weekend,
		Holiday:  e.Holiday,
	}
	return calc.EarningLines()
}

// TravelLine is the reimbursement line shown next to the wage lines.
func (e Earnings) TravelLine() payroll.LineItem {
	return payroll.LineItem{
		Code:        "travel",
		Description: "Travel allowance",
		Quantity:    e.TravelKilometers,
		Rate:        e.TravelRate,
		Amount:      e.TravelAllowance,
	}
}

// CalculateEarnings prices every hour category as hours * baseRate * multiplier/100.
func CalculateEarnings(bucket payroll.HourBucket, rates payroll.RateSchedule, travelPerKm decimal.Decimal) Earnings {
	e := Earnings{
		Regular:  categoryPay(bucket.Regular, rates.BaseRate, hundred),
		Overtime: categoryPay(bucket.Overtime, rates.BaseRate, rates.OvertimeMultiplier),
		Evening:  categoryPay(bucket.Evening, rates.BaseRate, rates.EveningMultiplier),
		Night:    categoryPay(bucket.Night, rates.BaseRate, rates.NightMultiplier),
		Weekend:  categoryPay(bucket.Weekend, rates.BaseRate, rates.WeekendMultiplier),
		Holiday:  categoryPay(bucket.Holiday, rates.BaseRate, rates.HolidayMultiplier),

		TravelKilometers: bucket.TravelKm,
		TravelRate:       travelPerKm,
		TravelAllowance:  roundMoney(bucket.TravelKm.Mul(travelPerKm)),
	}

	e.GrossPay = e.Regular.Pay.Add(e.Overtime.Pay).Add(e.Evening.Pay).Add(e.Night.Pay).Add(e.Weekend.Pay).Add(e.Holiday.Pay)
	return e
}

func categoryPay(hours, baseRate, multiplier decimal.Decimal) payroll.CategoryPay {
	exact := baseRate.Mul(multiplier).Div(hundred)
	return payroll.CategoryPay{
		Hours: hours,
		Rate:  roundMoney(exact),
		Pay:   roundMoney(hours.Mul(exact)),
	}
}

// roundMoney rounds half away from zero to cents.
func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
