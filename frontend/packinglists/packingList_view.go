package packinglists

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"packlister/frontend/invoices"
)

// Page renders a read-only HTML view of a saved packing list.
func Page(doc PackingList) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		bw := &errWriter{w: w}

		bw.printf("<!doctype html><html lang=\"en\"><head><meta charset=\"utf-8\">")
		bw.printf("<title>Packing List %s</title>", templ.EscapeString(doc.PackingListNumber))
		bw.printf("<style>body{font-family:sans-serif;margin:2rem;max-width:60rem}")
		bw.printf("table{border-collapse:collapse;width:100%%;margin-bottom:1rem}")
		bw.printf("th,td{border:1px solid #ccc;padding:.35rem .6rem;text-align:left}")
		bw.printf("th{background:#f0f0f0}.meta{color:#555}.num{text-align:right}</style></head><body>")

		bw.printf("<h1>Packing List %s</h1>", templ.EscapeString(doc.PackingListNumber))
		bw.printf("<p class=\"meta\">Date %s &middot; Invoice %s (%s)</p>",
			templ.EscapeString(doc.PackingListDate),
			templ.EscapeString(doc.InvoiceNumber),
			templ.EscapeString(doc.InvoiceDate))

		writeParty(bw, "Shipper", doc.Shipper)
		writeParty(bw, "Consignee", doc.Consignee)

		for _, pkg := range doc.Packages {
			bw.printf("<h2>Package %s (%s)</h2>", templ.EscapeString(pkg.PackageNumber), templ.EscapeString(pkg.PackageType))
			bw.printf("<p class=\"meta\">%gx%gx%g %s &middot; net %g %s &middot; gross %g %s</p>",
				pkg.Dimensions.Length, pkg.Dimensions.Width, pkg.Dimensions.Height,
				templ.EscapeString(pkg.Dimensions.Unit),
				pkg.NetWeight, templ.EscapeString(pkg.WeightUnit),
				pkg.GrossWeight, templ.EscapeString(pkg.WeightUnit))

			bw.printf("<table><tr><th>Item</th><th>HS Code</th><th>Origin</th><th class=\"num\">Qty</th><th class=\"num\">Unit Wt</th><th class=\"num\">Total Wt</th></tr>")
			for _, item := range pkg.Items {
				bw.printf("<tr><td>%s</td><td>%s</td><td>%s</td><td class=\"num\">%g</td><td class=\"num\">%g kg</td><td class=\"num\">%g kg</td></tr>",
					templ.EscapeString(item.ItemName),
					templ.EscapeString(item.HSCode),
					templ.EscapeString(item.CountryOfOrigin),
					item.Quantity, item.UnitWeight, item.TotalWeight)
			}
			bw.printf("</table>")
		}

		bw.printf("<h2>Summary</h2><p>%d packages &middot; net %.2f kg &middot; gross %.2f kg &middot; volume %.3f %s</p>",
			doc.Totals.TotalPackages, doc.Totals.TotalNetWeight, doc.Totals.TotalGrossWeight,
			doc.Totals.TotalVolume, templ.EscapeString(doc.Totals.VolumeUnit))

		if doc.SpecialInstructions != "" {
			bw.printf("<h2>Special Instructions</h2><p>%s</p>", templ.EscapeString(doc.SpecialInstructions))
		}
		if doc.Notes != "" {
			bw.printf("<h2>Notes</h2><p>%s</p>", templ.EscapeString(doc.Notes))
		}

		bw.printf("</body></html>")
		return bw.err
	})
}

// ListPage renders the saved packing lists index.
func ListPage(summaries []SavedListSummary) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		bw := &errWriter{w: w}

		bw.printf("<!doctype html><html lang=\"en\"><head><meta charset=\"utf-8\">")
		bw.printf("<title>Packing Lists</title>")
		bw.printf("<style>body{font-family:sans-serif;margin:2rem;max-width:60rem}")
		bw.printf("table{border-collapse:collapse;width:100%%}")
		bw.printf("th,td{border:1px solid #ccc;padding:.35rem .6rem;text-align:left}")
		bw.printf("th{background:#f0f0f0}.num{text-align:right}</style></head><body>")
		bw.printf("<h1>Packing Lists</h1>")

		if len(summaries) == 0 {
			bw.printf("<p>No packing lists saved yet.</p></body></html>")
			return bw.err
		}

		bw.printf("<table><tr><th>Number</th><th>Invoice</th><th>Date</th><th>Consignee</th>")
		bw.printf("<th class=\"num\">Packages</th><th class=\"num\">Net (kg)</th><th class=\"num\">Gross (kg)</th></tr>")
		for _, s := range summaries {
			bw.printf("<tr><td><a href=\"/packing-lists/%s\">%s</a></td><td>%s</td><td>%s</td><td>%s</td>",
				templ.EscapeString(s.PackingListNumber),
				templ.EscapeString(s.PackingListNumber),
				templ.EscapeString(s.InvoiceNumber),
				templ.EscapeString(s.PackingListDate),
				templ.EscapeString(s.Consignee))
			bw.printf("<td class=\"num\">%d</td><td class=\"num\">%.2f</td><td class=\"num\">%.2f</td></tr>",
				s.TotalPackages, s.TotalNetWeight, s.TotalGrossWeight)
		}
		bw.printf("</table></body></html>")
		return bw.err
	})
}

func writeParty(bw *errWriter, title string, p invoices.Party) {
	bw.printf("<h2>%s</h2><p>%s<br>%s<br>%s %s<br>%s</p>",
		templ.EscapeString(title),
		templ.EscapeString(p.Name),
		templ.EscapeString(p.Address),
		templ.EscapeString(p.ZipCode), templ.EscapeString(p.City),
		templ.EscapeString(p.Country))
}

// errWriter keeps the first write error and drops writes after it.
type errWriter struct {
	w   io.Writer
	err error
}

func (bw *errWriter) printf(format string, args ...any) {
	if bw.err != nil {
		return
	}
	_, bw.err = fmt.Fprintf(bw.w, format, args...)
}
