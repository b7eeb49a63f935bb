package render

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// PDFRenderer draws an invoice onto a single A4 page: header, counterparty
// block, boxed item table, amount totals.
type PDFRenderer struct{}

func NewRenderer() Renderer {
	return &PDFRenderer{}
}

func (r *PDFRenderer) RenderPDF(input RenderInput) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 28)
	pdf.CellFormat(0, 40, "Invoice", "", 1, "C", false, 0, "")
	pdf.Ln(20)

	writeField(pdf, "Invoice ID:", shortID(input.Invoice.ID))
	writeField(pdf, "Date:", formatDate(input.Invoice.CreatedAt))
	writeField(pdf, input.Counterparty.Label+":", input.Counterparty.Name)
	writeField(pdf, "Mobile No:", input.Counterparty.MobileNo)
	writeField(pdf, "Company:", input.Counterparty.Company)
	writeField(pdf, "Cash Type:", input.Counterparty.CashType)
	pdf.Ln(16)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 16, "Items:", "", 1, "L", false, 0, "")
	pdf.Ln(4)

	colWidths := []float64{120, 160, 70, 70, 90}
	headers := []string{"Name", "Description", "Quantity", "Price", "Total Amount"}

	pdf.SetFillColor(128, 128, 128)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 10)
	for i, header := range headers {
		pdf.CellFormat(colWidths[i], 20, header, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 10)
	for _, item := range input.Items {
		lineTotal := item.Price * float64(item.Quantity)
		pdf.CellFormat(colWidths[0], 20, item.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[1], 20, item.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[2], 20, fmt.Sprintf("%02d", item.Quantity), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[3], 20, fmt.Sprintf("%.2f", item.Price), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[4], 20, fmt.Sprintf("%.2f", lineTotal), "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(20)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 16, fmt.Sprintf("Total Amount: %.2f", input.Invoice.TotalAmount), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 16, fmt.Sprintf("Paid Amount: %.2f", input.Invoice.PaidAmount), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeField(pdf *fpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(90, 18, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 18, value, "", 1, "L", false, 0, "")
}

// shortID keeps only the last three digits, matching the human-facing id
// printed on paper slips.
func shortID(id string) string {
	digits := make([]rune, 0, len(id))
	for _, r := range id {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) > 3 {
		digits = digits[len(digits)-3:]
	}
	return string(digits)
}

func formatDate(value time.Time) string {
	if value.IsZero() {
		return "-"
	}
	return value.UTC().Format("2006-01-02")
}
