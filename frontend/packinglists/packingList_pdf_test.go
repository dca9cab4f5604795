package packinglists

import (
	"bytes"
	"testing"
)

func TestRenderPackingListPDF(t *testing.T) {
	t.Parallel()

	doc := DeriveFromInvoice(testInvoice(), testNow)
	doc.ShippingInfo.Carrier = "Maersk"
	doc.ShippingInfo.TrackingNumber = "TRK-99"
	doc.SpecialInstructions = "Keep dry"
	doc.CertificateOfOrigin = true
	doc.ExportLicense = "EXP-2026-001"

	out, err := renderPackingListPDF(doc)
	if err != nil {
		t.Fatalf("renderPackingListPDF: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output does not start with a PDF header: %q", out[:min(8, len(out))])
	}
	if len(out) < 1500 {
		t.Fatalf("suspiciously small PDF: %d bytes", len(out))
	}
}

func TestRenderPackingListPDFBadLogoIsSkipped(t *testing.T) {
	t.Parallel()

	doc := DeriveFromInvoice(testInvoice(), testNow)
	doc.Logo = "data:image/gif;base64,AAAA"

	if _, err := renderPackingListPDF(doc); err != nil {
		t.Fatalf("bad logo should be skipped, got %v", err)
	}
}

func TestRenderPackingListPDFEmptyDocument(t *testing.T) {
	t.Parallel()

	out, err := renderPackingListPDF(PackingList{PackingListNumber: "PL-EMPTY"})
	if err != nil {
		t.Fatalf("renderPackingListPDF: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatal("output does not start with a PDF header")
	}
}

func TestShouldAutoResize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		estimated  float64
		max        float64
		wantResize bool
		wantPct    float64
	}{
		{"fits exactly", 100, 100, false, 0},
		{"well under", 60, 100, false, 0},
		{"slight overflow", 103, 100, true, 4},
		{"at threshold", 105, 100, true, 6},
		{"capped reduction", 104.9, 100, true, 5.9},
		{"far over", 140, 100, false, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			resize, pct := shouldAutoResize(tc.estimated, tc.max)
			if resize != tc.wantResize {
				t.Fatalf("resize = %v, want %v", resize, tc.wantResize)
			}
			if diff := pct - tc.wantPct; diff > 1e-9 || diff < -1e-9 {
				t.Fatalf("pct = %v, want %v", pct, tc.wantPct)
			}
		})
	}
}

func TestRenderCode128PNG(t *testing.T) {
	t.Parallel()

	out, err := renderCode128PNG("PL-INV-42", 900, 180)
	if err != nil {
		t.Fatalf("renderCode128PNG: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("\x89PNG")) {
		t.Fatal("output is not a PNG")
	}
}
