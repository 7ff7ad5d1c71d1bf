package payroll

import (
	"bytes"
	"fmt"

	"github.com/YugandharPise/SME-HR/internal/store"

	"github.com/jung-kurt/gofpdf/v2"
)

type ArtifactRenderer interface {
	Render(p store.Payslip) ([]byte, error)
}

// PDFRenderer lays a payslip out on one A4 page.
type PDFRenderer struct {
	CurrencySymbol string
}

func NewPDFRenderer() PDFRenderer {
	return PDFRenderer{CurrencySymbol: "$"}
}

func (r PDFRenderer) money(v float64) string {
	return fmt.Sprintf("%s%.2f", r.CurrencySymbol, v)
}

func (r PDFRenderer) Render(p store.Payslip) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Payslip %s - %s", p.Period, p.EmployeeName), true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 14, "Payslip", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	for _, line := range []string{
		"Employee: " + p.EmployeeName,
		"Period: " + p.Period,
		"Pay Date: " + p.PayDate.Format("2006-01-02"),
	} {
		pdf.CellFormat(0, 8, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetFillColor(217, 225, 242)
	pdf.CellFormat(60, 9, "Earnings", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 9, "Amount", "1", 0, "R", true, 0, "")
	pdf.CellFormat(60, 9, "Deductions", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 9, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(60, 9, "Basic Salary", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 9, r.money(p.Basic), "1", 0, "R", false, 0, "")
	pdf.CellFormat(60, 9, "Taxes", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 9, r.money(p.Deductions), "1", 1, "R", false, 0, "")

	pdf.CellFormat(60, 9, "Allowances", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 9, r.money(p.Allowances), "1", 0, "R", false, 0, "")
	pdf.CellFormat(60, 9, "", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 9, "", "1", 1, "R", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(90, 10, "Net Pay", "T", 0, "L", false, 0, "")
	pdf.CellFormat(90, 10, r.money(p.NetPay), "T", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render payslip %d: %w", p.ID, err)
	}
	return buf.Bytes(), nil
}
