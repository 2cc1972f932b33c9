package payroll

import (
	"github.com/SandeDesign/alloon-sub000/internal/domain/employee"
	"github.com/SandeDesign/alloon-sub000/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// TaxConfig - tax settings of one employee
type TaxConfig struct {
	Table              employee.TaxTable
	TaxCredit          bool
	PensionPct         decimal.Decimal
	PensionEmployerPct decimal.Decimal
}

// TaxConfigFor reads the tax settings off an employee record.
func TaxConfigFor(emp employee.Employee) TaxConfig {
	return TaxConfig{
		Table:              emp.TaxTable,
		TaxCredit:          emp.TaxCredit,
		PensionPct:         emp.PensionContributionPct,
		PensionEmployerPct: emp.PensionEmployerContributionPct,
	}
}

// CalculateTaxes applies the flat table rate, the employee contribution rates and the
// pension split to gross pay. An unknown table falls back to the white table.
func CalculateTaxes(gross decimal.Decimal, cfg TaxConfig, table payroll.TaxTable) payroll.Taxes {
	rate := table.WhiteTableRate
	if cfg.Table == employee.TaxTableGreen {
		rate = table.GreenTableRate
	}
	if cfg.TaxCredit {
		rate = rate.Mul(table.TaxCreditFactor)
	}

	taxes := payroll.Taxes{
		IncomeTax:              roundMoney(gross.Mul(rate)),
		SocialSecurityEmployee: roundMoney(gross.Mul(table.EmployeeContributionRate())),
		HealthInsurance:        roundMoney(gross.Mul(table.HealthInsuranceRate)),
		UnemploymentInsurance:  roundMoney(gross.Mul(table.UnemploymentRate)),
		DisabilityInsurance:    roundMoney(gross.Mul(table.DisabilityRate)),
		PensionEmployee:        roundMoney(gross.Mul(cfg.PensionPct).Div(hundred)),
		PensionEmployer:        roundMoney(gross.Mul(cfg.PensionEmployerPct).Div(hundred)),
	}
	taxes.SocialSecurityEmployer = taxes.HealthInsurance.Add(taxes.UnemploymentInsurance).Add(taxes.DisabilityInsurance)

	return taxes
}

// NetPay is gross minus income tax, employee contributions and employee pension.
func NetPay(gross decimal.Decimal, taxes payroll.Taxes) decimal.Decimal {
	return gross.Sub(taxes.IncomeTax).Sub(taxes.SocialSecurityEmployee).Sub(taxes.PensionEmployee)
}

// DeductionLines itemizes deductions that are not taxes.
func DeductionLines(taxes payroll.Taxes, cfg TaxConfig) []payroll.LineItem {
	if taxes.PensionEmployee.IsZero() {
		return []payroll.LineItem{}
	}
	return []payroll.LineItem{{
		Code:        "pension_employee",
		Description: "Pension contribution",
		Quantity:    decimal.NewFromInt(1),
		Rate:        cfg.PensionPct,
		Amount:      taxes.PensionEmployee,
	}}
}
