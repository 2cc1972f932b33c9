package payroll

import (
	"context"
	"fmt"

	"github.com/SandeDesign/alloon-sub000/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	registerSheet = "Register"
	periodSheet   = "Period"
)

var registerHeaders = []string{
	"Employee code", "Employee",
	"Regular hours", "Overtime hours", "Evening hours", "Night hours", "Weekend hours", "Holiday hours",
	"Gross pay", "Income tax", "Social security", "Pension", "Net pay",
	"Travel allowance", "Vacation accrual", "Employer charges", "YTD gross", "Status",
}

// ExportRegister renders the period's calculations as an xlsx payroll register.
func (s *PayrollServiceImpl) ExportRegister(ctx context.Context, periodID string) ([]byte, string, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, "", err
	}

	period, err := s.payrollRepo.GetPeriodByID(ctx, periodID, companyID)
	if err != nil {
		return nil, "", err
	}

	calcs, err := s.payrollRepo.ListCalculationsByPeriod(ctx, periodID, companyID)
	if err != nil {
		return nil, "", err
	}

	content, err := buildRegister(period, calcs)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build payroll register: %w", err)
	}

	filename := fmt.Sprintf("payroll-register-%s-%s.xlsx", period.StartDate.Format(dateLayout), period.EndDate.Format(dateLayout))
	return content, filename, nil
}

func buildRegister(period payroll.PayrollPeriod, calcs []payroll.PayrollCalculation) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", registerSheet); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	header := make([]interface{}, len(registerHeaders))
	for i, h := range registerHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(registerSheet, "A1", &header); err != nil {
		return nil, err
	}
	if err := f.SetRowStyle(registerSheet, 1, 1, bold); err != nil {
		return nil, err
	}

	for i, c := range calcs {
		row := []interface{}{
			derefString(c.EmployeeCode), derefString(c.EmployeeName),
			c.Regular.Hours.InexactFloat64(), c.Overtime.Hours.InexactFloat64(), c.Evening.Hours.InexactFloat64(),
			c.Night.Hours.InexactFloat64(), c.Weekend.Hours.InexactFloat64(), c.Holiday.Hours.InexactFloat64(),
			money(c.GrossPay), money(c.Taxes.IncomeTax), money(c.Taxes.SocialSecurityEmployee),
			money(c.Taxes.PensionEmployee), money(c.NetPay),
			money(c.TravelAllowance), money(c.VacationAccrual),
			money(c.Taxes.SocialSecurityEmployer.Add(c.Taxes.PensionEmployer)), money(c.YTDGross),
			string(c.Status),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(registerSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	totals := sumCalculations(calcs)
	totalRow := len(calcs) + 2
	footer := []interface{}{"Total", fmt.Sprintf("%d employees", totals.EmployeeCount)}
	cell, err := excelize.CoordinatesToCellName(1, totalRow)
	if err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(registerSheet, cell, &footer); err != nil {
		return nil, err
	}
	for col, v := range map[int]decimal.Decimal{9: totals.TotalGross, 13: totals.TotalNet} {
		cell, err := excelize.CoordinatesToCellName(col, totalRow)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(registerSheet, cell, money(v)); err != nil {
			return nil, err
		}
	}
	if err := f.SetRowStyle(registerSheet, totalRow, totalRow, bold); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(registerSheet, "A", "B", 22); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(periodSheet); err != nil {
		return nil, err
	}
	info := [][]interface{}{
		{"Period", period.Name},
		{"Type", string(period.PeriodType)},
		{"Start date", period.StartDate.Format(dateLayout)},
		{"End date", period.EndDate.Format(dateLayout)},
		{"Payment date", period.PaymentDate.Format(dateLayout)},
		{"Status", string(period.Status)},
		{"Employees", period.EmployeeCount},
		{"Total gross", money(period.TotalGross)},
		{"Total net", money(period.TotalNet)},
		{"Total tax", money(period.TotalTax)},
		{"Tax table", derefString(period.TaxTableVersion)},
	}
	for i, row := range info {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(periodSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
