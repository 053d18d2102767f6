// Package report turns the currently loaded paid-bill list into a PDF
// document: a title, a two-line summary, and one table row per record. It
// operates on the in-memory snapshot it is given; it never fetches.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/smartbills/billctl/internal/models"
	"github.com/smartbills/billctl/internal/service"
	"github.com/smartbills/billctl/internal/ui"
)

// ErrEmptyReport is returned when there is nothing to report on. No
// document is generated for an empty list.
var ErrEmptyReport = errors.New("no paid bills to report")

const (
	reportTitle = "My Paid Bills Report"

	// currencyGlyph is the fixed BDT sign used throughout the document.
	currencyGlyph = "৳"
)

var tableHeader = []string{"Username", "Email", "Amount", "Address", "Phone", "Date"}

// Column widths in mm; sized to fill an A4 page inside default margins.
var columnWidths = []float64{30, 48, 24, 35, 25, 20}

// FileName returns the conventional report file name for an owner.
func FileName(owner string) string {
	return fmt.Sprintf("my_pay_bills_%s.pdf", owner)
}

// Export writes the report for owner into dir and returns the written path.
func Export(dir, owner string, bills []models.PaidBill, theme ui.Theme) (string, error) {
	if len(bills) == 0 {
		return "", ErrEmptyReport
	}
	path := filepath.Join(dir, FileName(owner))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	if err := Write(f, bills, theme); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

// Write renders the report document to w. The header fill color follows the
// caller's display theme; everything else is fixed.
func Write(w io.Writer, bills []models.PaidBill, theme ui.Theme) error {
	if len(bills) == 0 {
		return ErrEmptyReport
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(14, 14)
	pdf.Cell(0, 10, reportTitle)

	pdf.SetFont("Helvetica", "", 12)
	for i, line := range summaryLines(bills) {
		pdf.SetXY(14, 28+float64(i)*6)
		pdf.Cell(0, 6, tr(line))
	}

	pdf.SetY(42)
	drawHeader(pdf, theme)

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range tableRows(bills) {
		// Repeat the header after an automatic page break.
		if pdf.GetY() > 270 {
			pdf.AddPage()
			drawHeader(pdf, theme)
			pdf.SetFont("Helvetica", "", 10)
		}
		for i, cell := range row {
			pdf.CellFormat(columnWidths[i], 8, tr(cell), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

func drawHeader(pdf *gofpdf.Fpdf, theme ui.Theme) {
	r, g, b := theme.HeaderFill()
	pdf.SetFillColor(r, g, b)
	if theme == ui.ThemeDark {
		pdf.SetTextColor(255, 255, 255)
	} else {
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetX(10)
	for i, col := range tableHeader {
		pdf.CellFormat(columnWidths[i], 8, col, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetTextColor(0, 0, 0)
}

// summaryLines builds the two fixed summary lines: record count and the
// grouped total amount.
func summaryLines(bills []models.PaidBill) []string {
	agg := service.Aggregate(bills)
	p := message.NewPrinter(language.English)
	return []string{
		fmt.Sprintf("Total Bills Paid: %d", agg.Count),
		p.Sprintf("Total Amount: %s%v", currencyGlyph, number.Decimal(agg.Total)),
	}
}

// tableRows maps the records into display cells, one row per record, in the
// order given.
func tableRows(bills []models.PaidBill) [][]string {
	rows := make([][]string, len(bills))
	for i, b := range bills {
		rows[i] = []string{
			b.Username,
			b.Email,
			currencyGlyph + b.Amount.String(),
			b.Address,
			b.Phone,
			b.Date.LocaleString(),
		}
	}
	return rows
}
