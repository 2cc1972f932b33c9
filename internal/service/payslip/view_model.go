package payslip

import (
	"github.com/SandeDesign/alloon-sub000/internal/domain/company"
	"github.com/SandeDesign/alloon-sub000/internal/domain/employee"
	"github.com/SandeDesign/alloon-sub000/internal/domain/leave"
	"github.com/SandeDesign/alloon-sub000/internal/domain/payroll"
	"github.com/SandeDesign/alloon-sub000/internal/domain/payslip"
	"github.com/shopspring/decimal"
)

// BuildViewModel assembles the printable payslip from stored records only.
func BuildViewModel(
	calc payroll.PayrollCalculation,
	period payroll.PayrollPeriod,
	emp employee.Employee,
	comp company.Company,
	quotas []leave.LeaveQuota,
) payslip.ViewModel {
	one := decimal.NewFromInt(1)

	taxes := positive([]payroll.LineItem{
		{Code: "income_tax", Description: "Wage tax", Quantity: one, Amount: calc.Taxes.IncomeTax},
		{Code: "social_security", Description: "Employee insurance contributions", Quantity: one, Amount: calc.Taxes.SocialSecurityEmployee},
	})
	employerCharges := positive([]payroll.LineItem{
		{Code: "health_insurance", Description: "Health insurance (employer)", Quantity: one, Amount: calc.Taxes.HealthInsurance},
		{Code: "unemployment", Description: "Unemployment insurance (employer)", Quantity: one, Amount: calc.Taxes.UnemploymentInsurance},
		{Code: "disability", Description: "Disability insurance (employer)", Quantity: one, Amount: calc.Taxes.DisabilityInsurance},
		{Code: "pension_employer", Description: "Pension contribution (employer)", Quantity: one, Amount: calc.Taxes.PensionEmployer},
	})
	deductions := positive(calc.Deductions)
	reimbursements := positive(calc.OtherEarnings)

	totalDeductions := sumLines(deductions)
	totalTaxes := calc.TotalTax()
	totalReimbursements := sumLines(reimbursements)

	return payslip.ViewModel{
		Company: payslip.CompanyHeader{
			Name:                comp.Name,
			Address:             deref(comp.Address),
			ChamberOfCommerceNo: deref(comp.ChamberOfCommerceNo),
			TaxNumber:           deref(comp.TaxNumber),
		},
		Employee: payslip.EmployeeHeader{
			Name:      emp.FullName,
			Code:      emp.EmployeeCode,
			JobTitle:  deref(emp.JobTitle),
			Address:   deref(emp.Address),
			IBAN:      deref(emp.BankAccountIBAN),
			TaxTable:  string(emp.TaxTable),
			TaxCredit: emp.TaxCredit,
		},
		Period: payslip.PeriodInfo{
			Name:        period.Name,
			StartDate:   calc.PeriodStartDate,
			EndDate:     calc.PeriodEndDate,
			PaymentDate: period.PaymentDate,
		},
		Earnings:        positive(calc.EarningLines()),
		Reimbursements:  reimbursements,
		Deductions:      deductions,
		Taxes:           taxes,
		EmployerCharges: employerCharges,
		Summary: payslip.Summary{
			GrossPay:                calc.GrossPay,
			TotalDeductions:         totalDeductions,
			TotalTaxes:              totalTaxes,
			TotalDeductionsAndTaxes: totalDeductions.Add(totalTaxes),
			NetPay:                  calc.NetPay,
			Reimbursements:          totalReimbursements,
			TotalPayout:             calc.NetPay.Add(totalReimbursements),
			VacationAccrual:         calc.VacationAccrual,
			YTDGross:                calc.YTDGross,
			YTDNet:                  calc.YTDNet,
			YTDTax:                  calc.YTDTax,
		},
		LeaveBalances:   leaveSnapshot(quotas),
		TaxTableVersion: calc.TaxTableVersion,
	}
}

// positive keeps lines with an amount above zero.
func positive(lines []payroll.LineItem) []payroll.LineItem {
	out := make([]payroll.LineItem, 0, len(lines))
	for _, l := range lines {
		if l.Amount.IsPositive() {
			out = append(out, l)
		}
	}
	return out
}

func sumLines(lines []payroll.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Amount)
	}
	return total
}

func leaveSnapshot(quotas []leave.LeaveQuota) []payslip.LeaveBalance {
	balances := make([]payslip.LeaveBalance, 0, len(quotas))
	for _, q := range quotas {
		balances = append(balances, payslip.LeaveBalance{
			LeaveType: q.LeaveTypeName,
			Entitled:  q.Entitled(),
			Used:      q.Used(),
			Pending:   q.Pending(),
			Available: q.Available(),
		})
	}
	return balances
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
