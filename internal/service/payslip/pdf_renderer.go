package payslip

import (
	"bytes"
	"fmt"

	"github.com/SandeDesign/alloon-sub000/internal/domain/payroll"
	"github.com/SandeDesign/alloon-sub000/internal/domain/payslip"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

const (
	pageWidth   = 190.0
	lineHeight  = 6.0
	dateDisplay = "02-01-2006"
)

// PDFRenderer renders payslips as A4 PDF documents with the core Helvetica font.
type PDFRenderer struct {
	currency string
}

func NewPDFRenderer(currency string) *PDFRenderer {
	if currency == "" {
		currency = "€"
	}
	return &PDFRenderer{currency: currency}
}

func (r *PDFRenderer) ContentType() string {
	return "application/pdf"
}

// Render stamps the document with the payment date of the period.
func (r *PDFRenderer) Render(vm payslip.ViewModel) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(vm.Period.PaymentDate)
	pdf.SetTitle(fmt.Sprintf("Payslip %s %s", vm.Employee.Name, vm.Period.Name), true)
	pdf.SetAuthor(vm.Company.Name, true)
	pdf.SetMargins(10, 12, 10)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Company header
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(pageWidth/2, 8, tr(vm.Company.Name), "", 0, "L", false, 0, "")
	pdf.CellFormat(pageWidth/2, 8, "Payslip", "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, line := range []string{
		vm.Company.Address,
		labelled("CoC", vm.Company.ChamberOfCommerceNo),
		labelled("Payroll tax no.", vm.Company.TaxNumber),
	} {
		if line != "" {
			pdf.CellFormat(pageWidth, 4.5, tr(line), "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(4)

	// Employee and period block
	pdf.SetFont("Helvetica", "", 10)
	left := [][2]string{
		{"Employee", vm.Employee.Name},
		{"Personnel no.", vm.Employee.Code},
		{"Job title", vm.Employee.JobTitle},
		{"Address", vm.Employee.Address},
		{"IBAN", vm.Employee.IBAN},
	}
	right := [][2]string{
		{"Period", vm.Period.Name},
		{"From", vm.Period.StartDate.Format(dateDisplay)},
		{"To", vm.Period.EndDate.Format(dateDisplay)},
		{"Payment date", vm.Period.PaymentDate.Format(dateDisplay)},
		{"Tax table", taxTableLabel(vm.Employee.TaxTable, vm.Employee.TaxCredit)},
	}
	for i := range left {
		pdf.CellFormat(30, lineHeight, left[i][0], "", 0, "L", false, 0, "")
		pdf.CellFormat(65, lineHeight, tr(left[i][1]), "", 0, "L", false, 0, "")
		pdf.CellFormat(30, lineHeight, right[i][0], "", 0, "L", false, 0, "")
		pdf.CellFormat(65, lineHeight, tr(right[i][1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	r.lineTable(pdf, tr, "Earnings", vm.Earnings, true)
	r.lineTable(pdf, tr, "Deductions", vm.Deductions, false)
	r.lineTable(pdf, tr, "Taxes and contributions", vm.Taxes, false)
	r.lineTable(pdf, tr, "Reimbursements (untaxed)", vm.Reimbursements, true)

	// Summary
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(pageWidth, 7, "Summary", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	summary := [][2]string{
		{"Gross pay", r.amount(vm.Summary.GrossPay)},
		{"Total deductions and taxes", r.amount(vm.Summary.TotalDeductionsAndTaxes.Neg())},
		{"Net pay", r.amount(vm.Summary.NetPay)},
		{"Reimbursements", r.amount(vm.Summary.Reimbursements)},
		{"Amount paid out", r.amount(vm.Summary.TotalPayout)},
		{"Holiday allowance accrued", r.amount(vm.Summary.VacationAccrual)},
	}
	for i, row := range summary {
		if i == 2 || i == 4 {
			pdf.SetFont("Helvetica", "B", 10)
		}
		pdf.CellFormat(pageWidth-40, lineHeight, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(40, lineHeight, tr(row[1]), "", 1, "R", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
	}
	pdf.Ln(3)

	// Year to date
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(pageWidth, 7, "Year to date", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range [][2]string{
		{"Gross", r.amount(vm.Summary.YTDGross)},
		{"Tax", r.amount(vm.Summary.YTDTax)},
		{"Net", r.amount(vm.Summary.YTDNet)},
	} {
		pdf.CellFormat(pageWidth-40, lineHeight, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(40, lineHeight, tr(row[1]), "", 1, "R", false, 0, "")
	}
	pdf.Ln(3)

	if len(vm.LeaveBalances) > 0 {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(pageWidth, 7, "Leave balance (hours)", "B", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 9)
		widths := []float64{70, 30, 30, 30, 30}
		for i, h := range []string{"Type", "Entitled", "Used", "Pending", "Available"} {
			align := "R"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(widths[i], lineHeight, h, "", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
		for _, b := range vm.LeaveBalances {
			pdf.CellFormat(widths[0], lineHeight, tr(b.LeaveType), "", 0, "L", false, 0, "")
			pdf.CellFormat(widths[1], lineHeight, fmt.Sprintf("%.2f", b.Entitled), "", 0, "R", false, 0, "")
			pdf.CellFormat(widths[2], lineHeight, fmt.Sprintf("%.2f", b.Used), "", 0, "R", false, 0, "")
			pdf.CellFormat(widths[3], lineHeight, fmt.Sprintf("%.2f", b.Pending), "", 0, "R", false, 0, "")
			pdf.CellFormat(widths[4], lineHeight, fmt.Sprintf("%.2f", b.Available), "", 1, "R", false, 0, "")
		}
		pdf.Ln(3)
	}

	if len(vm.EmployerCharges) > 0 {
		r.lineTable(pdf, tr, "Employer charges (for information)", vm.EmployerCharges, false)
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(pageWidth, 5, tr("Rates: "+vm.TaxTableVersion), "", 1, "L", false, 0, "")

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render payslip pdf: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write payslip pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *PDFRenderer) lineTable(pdf *gofpdf.Fpdf, tr func(string) string, title string, lines []payroll.LineItem, withQuantity bool) {
	if len(lines) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(pageWidth, 7, tr(title), "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	for _, l := range lines {
		pdf.CellFormat(90, lineHeight, tr(l.Description), "", 0, "L", false, 0, "")
		if withQuantity {
			pdf.CellFormat(30, lineHeight, l.Quantity.StringFixed(2), "", 0, "R", false, 0, "")
			pdf.CellFormat(30, lineHeight, tr(r.amount(l.Rate)), "", 0, "R", false, 0, "")
		} else {
			pdf.CellFormat(60, lineHeight, "", "", 0, "R", false, 0, "")
		}
		pdf.CellFormat(40, lineHeight, tr(r.amount(l.Amount)), "", 1, "R", false, 0, "")
	}
	pdf.Ln(3)
}

func (r *PDFRenderer) amount(d decimal.Decimal) string {
	return fmt.Sprintf("%s %s", r.currency, d.StringFixed(2))
}

func labelled(label, value string) string {
	if value == "" {
		return ""
	}
	return label + ": " + value
}

func taxTableLabel(table string, credit bool) string {
	if credit {
		return table + ", with tax credit"
	}
	return table + ", no tax credit"
}
