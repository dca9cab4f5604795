package packinglists

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"log/slog"
	"math"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/jung-kurt/gofpdf"

	"packlister/frontend/invoices"
	"packlister/frontend/shared/docimage"
)

const (
	pageMarginMM    = 12.0
	contentHeightMM = 297.0 - 2*pageMarginMM
	itemRowHeightMM = 6.0
	packageHeaderMM = 18.0
	fixedSectionsMM = 120.0 // header, parties, shipping, totals, barcode

	autoResizeThresholdPercent = 5.0
	maxAutoResizePercent       = 8.0
)

// shouldAutoResize decides whether a slightly overflowing document should be
// shrunk to fit one page instead of pushing a few rows onto a second one.
// Overflow within the threshold gets a reduction of overflow+1 percent,
// capped; anything larger paginates normally.
func shouldAutoResize(estimatedHeight, maxHeight float64) (bool, float64) {
	if estimatedHeight <= maxHeight {
		return false, 0
	}
	overflowPercent := (estimatedHeight - maxHeight) / maxHeight * 100
	if overflowPercent <= autoResizeThresholdPercent {
		return true, math.Min(overflowPercent+1, maxAutoResizePercent)
	}
	return false, 0
}

func estimateContentHeight(doc PackingList) float64 {
	height := fixedSectionsMM
	for _, pkg := range doc.Packages {
		height += packageHeaderMM + float64(len(pkg.Items))*itemRowHeightMM
	}
	return height
}

func renderPackingListPDF(doc PackingList) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Packing List %s", doc.PackingListNumber), false)
	pdf.SetMargins(pageMarginMM, pageMarginMM, pageMarginMM)
	pdf.SetAutoPageBreak(true, pageMarginMM)
	pdf.AddPage()

	scale := 1.0
	if resize, pct := shouldAutoResize(estimateContentHeight(doc), contentHeightMM); resize {
		scale = 1 - pct/100
	}

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 2*pageMarginMM

	if logo := strings.TrimSpace(doc.Logo); logo != "" {
		raw, imageType, err := docimage.DecodeDataURL(logo)
		if err != nil {
			slog.Warn("skipping packing list logo", slog.String("packingList", doc.PackingListNumber), slog.Any("err", err))
		} else {
			opt := gofpdf.ImageOptions{ImageType: imageType, ReadDpi: false}
			pdf.RegisterImageOptionsReader("packing-list-logo", opt, bytes.NewReader(raw))
			pdf.ImageOptions("packing-list-logo", pageMarginMM, pageMarginMM, 38, 0, false, opt, 0, "")
		}
	}

	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(contentW, 11, "PACKING LIST", "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 5, "No: "+doc.PackingListNumber, "", 1, "R", false, 0, "")
	pdf.CellFormat(contentW, 5, "Date: "+doc.PackingListDate, "", 1, "R", false, 0, "")
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Invoice: %s (%s)", doc.InvoiceNumber, doc.InvoiceDate), "", 1, "R", false, 0, "")
	pdf.Ln(4)

	renderAddressColumns(pdf, contentW, doc)
	pdf.Ln(4)
	renderShippingInfo(pdf, contentW, doc.ShippingInfo)

	itemFont := 8.5 * scale
	rowH := itemRowHeightMM * scale
	for _, pkg := range doc.Packages {
		renderPackage(pdf, contentW, pkg, itemFont, rowH)
	}

	renderTotals(pdf, contentW, doc.Totals)

	if doc.SpecialInstructions != "" {
		renderTextSection(pdf, contentW, "Special Instructions", doc.SpecialInstructions)
	}
	if doc.Notes != "" {
		renderTextSection(pdf, contentW, "Notes", doc.Notes)
	}
	if doc.CertificateOfOrigin || doc.ExportLicense != "" {
		compliance := make([]string, 0, 2)
		if doc.CertificateOfOrigin {
			compliance = append(compliance, "Certificate of Origin required")
		}
		if doc.ExportLicense != "" {
			compliance = append(compliance, "Export License: "+doc.ExportLicense)
		}
		renderTextSection(pdf, contentW, "Compliance", strings.Join(compliance, "\n"))
	}

	if err := renderTrackingBarcode(pdf, contentW, doc.PackingListNumber); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func renderAddressColumns(pdf *gofpdf.Fpdf, contentW float64, doc PackingList) {
	colW := contentW / 2
	startY := pdf.GetY()

	renderAddressBlock(pdf, pageMarginMM, startY, colW-5, "Shipper", partyLines(doc.Shipper))
	leftEnd := pdf.GetY()
	renderAddressBlock(pdf, pageMarginMM+colW, startY, colW-5, "Consignee", partyLines(doc.Consignee))
	if leftEnd > pdf.GetY() {
		pdf.SetY(leftEnd)
	}
}

func renderAddressBlock(pdf *gofpdf.Fpdf, x, y, w float64, title string, lines []string) {
	pdf.SetXY(x, y)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(w, 5, title, "", 2, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, line := range lines {
		pdf.SetX(x)
		pdf.CellFormat(w, 4.5, line, "", 2, "L", false, 0, "")
	}
}

func renderShippingInfo(pdf *gofpdf.Fpdf, contentW float64, info ShippingInfo) {
	fields := []struct{ label, value string }{
		{"Carrier", info.Carrier},
		{"Tracking", info.TrackingNumber},
		{"Method", info.ShippingMethod},
		{"Incoterms", info.Incoterms},
		{"Port of Loading", info.PortOfLoading},
		{"Port of Discharge", info.PortOfDischarge},
		{"Container", info.ContainerNumber},
		{"Seal", info.SealNumber},
	}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.value != "" {
			parts = append(parts, f.label+": "+f.value)
		}
	}
	if len(parts) == 0 {
		return
	}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 5, "Shipping Information", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(contentW, 4.5, strings.Join(parts, "   "), "", "L", false)
	pdf.Ln(2)
}

func renderPackage(pdf *gofpdf.Fpdf, contentW float64, pkg Package, itemFont, rowH float64) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	header := fmt.Sprintf("Package %s - %s", pkg.PackageNumber, strings.ToUpper(pkg.PackageType))
	pdf.CellFormat(contentW, 7, header, "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 8.5)
	dims := fmt.Sprintf("%gx%gx%g %s", pkg.Dimensions.Length, pkg.Dimensions.Width, pkg.Dimensions.Height, pkg.Dimensions.Unit)
	meta := fmt.Sprintf("Dimensions: %s   Net: %g %s   Gross: %g %s   Volume: %g m3",
		dims, pkg.NetWeight, pkg.WeightUnit, pkg.GrossWeight, pkg.WeightUnit, CalculateVolume(pkg.Dimensions))
	if pkg.Marks != "" {
		meta += "   Marks: " + pkg.Marks
	}
	pdf.CellFormat(contentW, 5.5, meta, "LR", 1, "L", false, 0, "")

	colW := []float64{contentW * 0.34, contentW * 0.13, contentW * 0.13, contentW * 0.1, contentW * 0.15, contentW * 0.15}
	headers := []string{"Item", "HS Code", "Origin", "Qty", "Unit Wt", "Total Wt"}
	pdf.SetFont("Helvetica", "B", itemFont)
	for i, h := range headers {
		align := "L"
		if i >= 3 {
			align = "R"
		}
		pdf.CellFormat(colW[i], rowH, h, "1", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", itemFont)
	for _, item := range pkg.Items {
		name := item.ItemName
		if item.Description != "" {
			name += " - " + item.Description
		}
		pdf.CellFormat(colW[0], rowH, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[1], rowH, item.HSCode, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[2], rowH, item.CountryOfOrigin, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[3], rowH, fmt.Sprintf("%g", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colW[4], rowH, fmt.Sprintf("%g kg", item.UnitWeight), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colW[5], rowH, fmt.Sprintf("%g kg", item.TotalWeight), "1", 1, "R", false, 0, "")
	}
	if pkg.Notes != "" {
		pdf.SetFont("Helvetica", "I", itemFont)
		pdf.CellFormat(contentW, rowH, "Note: "+pkg.Notes, "1", 1, "L", false, 0, "")
	}
	pdf.Ln(3)
}

func renderTotals(pdf *gofpdf.Fpdf, contentW float64, totals Totals) {
	pdf.SetFont("Helvetica", "B", 9.5)
	pdf.CellFormat(contentW, 5.5, "Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 4.5, fmt.Sprintf("Total Packages: %d", totals.TotalPackages), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 4.5, fmt.Sprintf("Total Net Weight: %.2f kg", totals.TotalNetWeight), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 4.5, fmt.Sprintf("Total Gross Weight: %.2f kg", totals.TotalGrossWeight), "", 1, "L", false, 0, "")
	if totals.TotalVolume > 0 {
		pdf.CellFormat(contentW, 4.5, fmt.Sprintf("Total Volume: %.3f %s", totals.TotalVolume, totals.VolumeUnit), "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)
}

func renderTextSection(pdf *gofpdf.Fpdf, contentW float64, title, body string) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 5, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(contentW, 4.5, body, "", "L", false)
	pdf.Ln(2)
}

func renderTrackingBarcode(pdf *gofpdf.Fpdf, contentW float64, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	barcodePNG, err := renderCode128PNG(value, 900, 180)
	if err != nil {
		return err
	}
	opt := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	pdf.RegisterImageOptionsReader("packing-list-barcode", opt, bytes.NewReader(barcodePNG))

	imgW := 80.0
	imgH := 16.0
	x := pageMarginMM + (contentW-imgW)/2
	pdf.Ln(2)
	pdf.ImageOptions("packing-list-barcode", x, pdf.GetY(), imgW, imgH, false, opt, 0, "")
	pdf.SetY(pdf.GetY() + imgH + 1)
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 4, value, "", 1, "C", false, 0, "")
	return nil
}

func renderCode128PNG(value string, width, height int) ([]byte, error) {
	code, err := code128.Encode(value)
	if err != nil {
		return nil, err
	}
	scaled, err := barcode.Scale(code, width, height)
	if err != nil {
		return nil, err
	}
	normalized := toNRGBA(scaled)
	var barcodePNG bytes.Buffer
	if err := png.Encode(&barcodePNG, normalized); err != nil {
		return nil, err
	}
	return barcodePNG.Bytes(), nil
}

func toNRGBA(src image.Image) *image.NRGBA {
	bounds := src.Bounds()
	dst := image.NewNRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)
	return dst
}

func partyLines(p invoices.Party) []string {
	lines := make([]string, 0, 6)
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
