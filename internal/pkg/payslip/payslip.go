package payslip

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/staffly/hr-backend-go/internal/domain/payroll"
)

// CompanyInfo is the letterhead printed at the top of every slip.
type CompanyInfo struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

// Generate renders a salary slip PDF for the given payroll record and
// returns the document bytes. employeeName and employeeCode come from the
// employee registry rather than the payroll row so slips stay printable for
// rows created before the joined fields existed.
func Generate(company CompanyInfo, p payroll.Payroll, employeeName, employeeCode string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Letterhead
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, company.Name, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, company.Address, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Phone: %s | Email: %s", company.Phone, company.Email), "", 1, "C", false, 0, "")
	pdf.Ln(4)
	pdf.Line(10, pdf.GetY(), 200, pdf.GetY())
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "BU", 16)
	pdf.CellFormat(0, 10, "SALARY SLIP", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Employee: %s (%s)", employeeName, employeeCode), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Month: %s %d", p.Month, p.Year), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Processed At: %s", p.ProcessedAt.Format("Mon Jan 02 2006")), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	row := func(title, amount string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 11)
		pdf.CellFormat(120, 7, title, "", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, amount, "", 1, "R", false, 0, "")
	}

	row("Earnings", "Amount", true)
	row("Basic Salary", p.BasicSalary.StringFixed(2), false)
	row("Medical Allowance", p.Allowances.Medical.StringFixed(2), false)
	row("Transport Allowance", p.Allowances.Transport.StringFixed(2), false)
	row("Other Allowance", p.Allowances.Others.StringFixed(2), false)
	pdf.Ln(3)

	row("Deductions", "Amount", true)
	row("PF", p.Deductions.PF.StringFixed(2), false)
	row("Loan", p.Deductions.Loan.StringFixed(2), false)
	row("Advance Salary", p.Deductions.AdvanceSalary.StringFixed(2), false)
	row("Tax", p.Deductions.Tax.StringFixed(2), false)
	row("Other", p.Deductions.Others.StringFixed(2), false)
	pdf.Ln(5)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(120, 8, "Net Salary", "", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, p.NetPay.StringFixed(2), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render salary slip: %w", err)
	}
	return buf.Bytes(), nil
}

// FileName is the storage key for a payroll record's slip.
func FileName(p payroll.Payroll) string {
	return fmt.Sprintf("salary-slips/salary-slip-%s-%s-%d.pdf", p.ID, p.Month, p.Year)
}
