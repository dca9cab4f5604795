package invoices

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"packlister/frontend/shared/docimage"
)

func renderInvoicePDF(inv Invoice) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Invoice %s", inv.Details.InvoiceNumber), false)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	margin := 15.0
	contentW := pageW - 2*margin
	pdf.SetMargins(margin, margin, margin)

	y := margin
	if logo := strings.TrimSpace(inv.Details.InvoiceLogo); logo != "" {
		raw, imageType, err := docimage.DecodeDataURL(logo)
		if err != nil {
			// A broken logo should not sink the document.
			slog.Warn("skipping invoice logo", slog.String("invoice", inv.Details.InvoiceNumber), slog.Any("err", err))
		} else {
			opt := gofpdf.ImageOptions{ImageType: imageType, ReadDpi: false}
			pdf.RegisterImageOptionsReader("invoice-logo", opt, bytes.NewReader(raw))
			pdf.ImageOptions("invoice-logo", margin, y, 42, 0, false, opt, 0, "")
		}
	}

	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetXY(margin, y)
	pdf.CellFormat(contentW, 12, "INVOICE", "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 5, "No: "+inv.Details.InvoiceNumber, "", 1, "R", false, 0, "")
	pdf.CellFormat(contentW, 5, "Date: "+inv.Details.InvoiceDate, "", 1, "R", false, 0, "")
	if inv.Details.DueDate != "" {
		pdf.CellFormat(contentW, 5, "Due: "+inv.Details.DueDate, "", 1, "R", false, 0, "")
	}

	pdf.Ln(8)
	renderPartyColumns(pdf, contentW, "From", inv.Sender, "Bill To", inv.Receiver)
	pdf.Ln(6)

	currency := inv.Details.Currency
	if currency == "" {
		currency = "USD"
	}

	colW := []float64{contentW * 0.45, contentW * 0.15, contentW * 0.2, contentW * 0.2}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(235, 235, 235)
	headers := []string{"Item", "Qty", "Unit Price", "Total"}
	for i, h := range headers {
		align := "L"
		if i > 0 {
			align = "R"
		}
		pdf.CellFormat(colW[i], 7, h, "1", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	var subtotal float64
	pdf.SetFont("Helvetica", "", 9)
	for _, item := range inv.Details.Items {
		lineTotal := item.Quantity * item.UnitPrice
		subtotal += lineTotal

		name := item.Name
		if item.Description != "" {
			name += " - " + item.Description
		}
		pdf.CellFormat(colW[0], 6, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[1], 6, trimFloat(item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colW[2], 6, fmt.Sprintf("%.2f %s", item.UnitPrice, currency), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colW[3], 6, fmt.Sprintf("%.2f %s", lineTotal, currency), "1", 1, "R", false, 0, "")
	}

	total := subtotal
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(colW[0]+colW[1]+colW[2], 6, "Subtotal", "1", 0, "R", false, 0, "")
	pdf.CellFormat(colW[3], 6, fmt.Sprintf("%.2f %s", subtotal, currency), "1", 1, "R", false, 0, "")
	if inv.Details.ShippingDetails != nil && inv.Details.ShippingDetails.ShippingCost > 0 {
		total += inv.Details.ShippingDetails.ShippingCost
		pdf.CellFormat(colW[0]+colW[1]+colW[2], 6, "Shipping", "1", 0, "R", false, 0, "")
		pdf.CellFormat(colW[3], 6, fmt.Sprintf("%.2f %s", inv.Details.ShippingDetails.ShippingCost, currency), "1", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(colW[0]+colW[1]+colW[2], 7, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(colW[3], 7, fmt.Sprintf("%.2f %s", total, currency), "1", 1, "R", false, 0, "")

	if inv.Details.PaymentTerms != "" {
		pdf.Ln(5)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(contentW, 5, "Payment Terms", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(contentW, 5, inv.Details.PaymentTerms, "", "L", false)
	}
	if inv.Details.AdditionalNotes != "" {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(contentW, 5, "Notes", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(contentW, 5, inv.Details.AdditionalNotes, "", "L", false)
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func renderPartyColumns(pdf *gofpdf.Fpdf, contentW float64, leftTitle string, left Party, rightTitle string, right Party) {
	colW := contentW / 2
	startY := pdf.GetY()
	x := pdf.GetX()

	renderPartyBlock(pdf, x, startY, colW-5, leftTitle, left)
	leftEnd := pdf.GetY()
	renderPartyBlock(pdf, x+colW, startY, colW-5, rightTitle, right)
	if leftEnd > pdf.GetY() {
		pdf.SetY(leftEnd)
	}
}

func renderPartyBlock(pdf *gofpdf.Fpdf, x, y, w float64, title string, p Party) {
	pdf.SetXY(x, y)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(w, 5, title, "", 2, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, line := range partyLines(p) {
		pdf.SetX(x)
		pdf.CellFormat(w, 4.5, line, "", 2, "L", false, 0, "")
	}
}

func partyLines(p Party) []string {
	lines := make([]string, 0, 5)
	if p.Name != "" {
		lines = append(lines, p.Name)
	}
	if p.Address != "" {
		lines = append(lines, p.Address)
	}
	cityLine := p.City
	if p.ZipCode != "" {
		cityLine = p.ZipCode + ", " + cityLine
	}
	if strings.TrimSpace(cityLine) != "" {
		lines = append(lines, cityLine)
	}
	if p.Country != "" {
		lines = append(lines, p.Country)
	}
	if p.Phone != "" {
		lines = append(lines, p.Phone)
	}
	if p.Email != "" {
		lines = append(lines, p.Email)
	}
	return lines
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
