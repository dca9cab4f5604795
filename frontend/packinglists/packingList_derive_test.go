package packinglists

import (
	"reflect"
	"testing"
	"time"

	"packlister/frontend/invoices"
)

var testNow = time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)

func testInvoice(items ...invoices.InvoiceItem) invoices.Invoice {
	return invoices.Invoice{
		Sender:   invoices.Party{Name: "Acme Exports", Address: "Rua A 1", City: "Porto", Country: "Portugal"},
		Receiver: invoices.Party{Name: "Widget Corp", Address: "Hauptstr. 2", City: "Berlin", Country: "Germany"},
		Details: invoices.InvoiceDetails{
			InvoiceNumber: "INV-42",
			InvoiceDate:   "2026-08-01",
			Items:         items,
		},
	}
}

func TestDeriveFromInvoice_SinglePackageDraft(t *testing.T) {
	t.Parallel()

	inv := testInvoice(invoices.InvoiceItem{
		Name:            "Widget",
		Quantity:        3,
		UnitPrice:       10,
		PhysicalDetails: &invoices.PhysicalDetails{UnitWeight: 2},
	})
	draft := DeriveFromInvoice(inv, testNow)

	if len(draft.Packages) != 1 {
		t.Fatalf("expected exactly one package, got %d", len(draft.Packages))
	}
	pkg := draft.Packages[0]
	if pkg.NetWeight != 6 {
		t.Fatalf("expected net weight 6, got %v", pkg.NetWeight)
	}
	if len(pkg.Items) != 1 || pkg.Items[0].TotalWeight != 6 {
		t.Fatalf("unexpected package items: %+v", pkg.Items)
	}
	if pkg.PackageNumber != "PKG-001" || pkg.PackageType != TypeBox {
		t.Fatalf("unexpected package defaults: %+v", pkg)
	}
	if pkg.Dimensions != defaultDimensions {
		t.Fatalf("unexpected default dimensions: %+v", pkg.Dimensions)
	}
	if pkg.Marks != "INV-42" {
		t.Fatalf("expected marks INV-42, got %q", pkg.Marks)
	}

	// gross = 6 net + 1.5 medium box + 6*0.05 materials
	if pkg.GrossWeight != 7.8 {
		t.Fatalf("expected gross weight 7.8, got %v", pkg.GrossWeight)
	}

	if draft.PackingListNumber != "PL-INV-42" {
		t.Fatalf("unexpected packing list number %q", draft.PackingListNumber)
	}
	if draft.PackingListDate != "2026-08-20" {
		t.Fatalf("unexpected packing list date %q", draft.PackingListDate)
	}
	if draft.ShippingInfo.Incoterms != "EXW" || draft.ShippingInfo.ShippingMethod != "standard" {
		t.Fatalf("unexpected shipping defaults: %+v", draft.ShippingInfo)
	}
	if draft.Shipper.Name != "Acme Exports" || draft.Consignee.Name != "Widget Corp" {
		t.Fatalf("parties not copied: %+v / %+v", draft.Shipper, draft.Consignee)
	}
	if draft.Totals.TotalNetWeight != 6 || draft.Totals.TotalGrossWeight != 7.8 || draft.Totals.TotalPackages != 1 {
		t.Fatalf("unexpected totals: %+v", draft.Totals)
	}
	if draft.Notes != "Packing list generated from Invoice #INV-42" {
		t.Fatalf("unexpected notes: %q", draft.Notes)
	}
}

func TestDeriveFromInvoice_DefaultsForMissingDetails(t *testing.T) {
	t.Parallel()

	inv := testInvoice(invoices.InvoiceItem{Name: "Mystery", Quantity: 2, UnitPrice: 5})
	draft := DeriveFromInvoice(inv, testNow)

	item := draft.Packages[0].Items[0]
	if item.UnitWeight != 1 || item.TotalWeight != 2 {
		t.Fatalf("expected 1 kg default unit weight, got %+v", item)
	}
	if item.CountryOfOrigin != "Portugal" {
		t.Fatalf("expected shipper country fallback, got %q", item.CountryOfOrigin)
	}
	if item.HSCode != "" {
		t.Fatalf("expected empty hs code, got %q", item.HSCode)
	}
}

func TestDeriveFromInvoice_IncotermsFromInvoice(t *testing.T) {
	t.Parallel()

	inv := testInvoice()
	inv.Details.ShippingDetails = &invoices.ShippingDetails{Incoterms: "FOB"}
	draft := DeriveFromInvoice(inv, testNow)
	if draft.ShippingInfo.Incoterms != "FOB" {
		t.Fatalf("expected FOB, got %q", draft.ShippingInfo.Incoterms)
	}
}

func TestDeriveFromInvoice_ZeroItems(t *testing.T) {
	t.Parallel()

	draft := DeriveFromInvoice(testInvoice(), testNow)
	pkg := draft.Packages[0]
	if pkg.NetWeight != 0 {
		t.Fatalf("expected zero net weight, got %v", pkg.NetWeight)
	}
	if len(pkg.Items) != 0 {
		t.Fatalf("expected empty item list, got %d items", len(pkg.Items))
	}
	// Empty medium box still weighs something.
	if pkg.GrossWeight != 1.5 {
		t.Fatalf("expected gross 1.5, got %v", pkg.GrossWeight)
	}
}

func TestDeriveFromInvoice_Idempotent(t *testing.T) {
	t.Parallel()

	inv := testInvoice(
		invoices.InvoiceItem{Name: "Widget", Quantity: 3, UnitPrice: 10, PhysicalDetails: &invoices.PhysicalDetails{UnitWeight: 2}},
		invoices.InvoiceItem{Name: "Gadget", Quantity: 1, UnitPrice: 99},
	)
	first := DeriveFromInvoice(inv, testNow)
	second := DeriveFromInvoice(inv, testNow)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("derivation is not deterministic:\n%+v\n%+v", first, second)
	}
}

func TestDeriveForSelection(t *testing.T) {
	t.Parallel()

	inv := testInvoice(
		invoices.InvoiceItem{Name: "Steel Box", Quantity: 2, UnitPrice: 50, PhysicalDetails: &invoices.PhysicalDetails{UnitWeight: 3}},
		invoices.InvoiceItem{Name: "Consulting", Quantity: 1.5, UnitPrice: 100},
		invoices.InvoiceItem{Name: "Cable", Quantity: 4, UnitPrice: 2},
	)

	// Explicit selection, with one out-of-range index skipped.
	draft := DeriveForSelection(inv, []int{0, 2, 9}, testNow)
	if len(draft.Packages[0].Items) != 2 {
		t.Fatalf("expected 2 selected items, got %d", len(draft.Packages[0].Items))
	}
	if !reflect.DeepEqual(draft.SelectedItems, []int{0, 2}) {
		t.Fatalf("unexpected effective selection: %v", draft.SelectedItems)
	}
	if draft.Packages[0].NetWeight != 10 { // 2*3 + 4*1
		t.Fatalf("expected net 10, got %v", draft.Packages[0].NetWeight)
	}

	// Nil selection defaults to physical-classified items.
	draft = DeriveForSelection(inv, nil, testNow)
	if !reflect.DeepEqual(draft.SelectedItems, []int{0, 2}) {
		t.Fatalf("expected physical pre-selection [0 2], got %v", draft.SelectedItems)
	}

	// Empty but non-nil selection means none.
	draft = DeriveForSelection(inv, []int{}, testNow)
	if len(draft.Packages[0].Items) != 0 || len(draft.SelectedItems) != 0 {
		t.Fatalf("expected empty selection to keep zero items, got %+v", draft.Packages[0].Items)
	}
}

func TestCalculateVolume(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		dims Dimensions
		want float64
	}{
		{"cm", Dimensions{Length: 100, Width: 50, Height: 30, Unit: "cm"}, 0.15},
		{"default package", defaultDimensions, 0.06},
		{"meters pass through", Dimensions{Length: 1, Width: 1, Height: 0.5, Unit: "m"}, 0.5},
		{"inches", Dimensions{Length: 10, Width: 10, Height: 10, Unit: "in"}, 0.016},
		{"feet", Dimensions{Length: 2, Width: 2, Height: 2, Unit: "ft"}, 0.227},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CalculateVolume(tc.dims); got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCalculatePackagingWeight_SizeTiers(t *testing.T) {
	t.Parallel()

	small := Dimensions{Length: 20, Width: 10, Height: 10, Unit: "cm"}
	medium := Dimensions{Length: 50, Width: 40, Height: 30, Unit: "cm"}
	large := Dimensions{Length: 120, Width: 80, Height: 100, Unit: "cm"}

	if got := CalculatePackagingWeight(TypeBox, small); got != 0.5 {
		t.Fatalf("small box: got %v", got)
	}
	if got := CalculatePackagingWeight(TypeBox, medium); got != 1.5 {
		t.Fatalf("medium box: got %v", got)
	}
	if got := CalculatePackagingWeight(TypeBox, large); got != 3.0 {
		t.Fatalf("large box: got %v", got)
	}

	// Unit normalization: 0.2 m = 20 cm is still small.
	meters := Dimensions{Length: 0.2, Width: 0.1, Height: 0.1, Unit: "m"}
	if got := CalculatePackagingWeight(TypeCrate, meters); got != 5.0 {
		t.Fatalf("crate in meters: got %v", got)
	}

	// Unknown type falls back to the other table.
	if got := CalculatePackagingWeight("envelope", medium); got != 3.0 {
		t.Fatalf("unknown type: got %v", got)
	}
}

func TestCalculateGrossWeight(t *testing.T) {
	t.Parallel()

	// 10 net + 15 medium crate + 10*0.03 materials = 25.3
	if got := CalculateGrossWeight(10, TypeCrate, defaultDimensions, true); got != 25.3 {
		t.Fatalf("crate: got %v", got)
	}
	// Without materials: 10 + 15
	if got := CalculateGrossWeight(10, TypeCrate, defaultDimensions, false); got != 25 {
		t.Fatalf("crate without materials: got %v", got)
	}
}

func TestCalculateTotals_MultiplePackages(t *testing.T) {
	t.Parallel()

	packages := []Package{
		{GrossWeight: 7.8, NetWeight: 6, Dimensions: defaultDimensions},
		{GrossWeight: 25.3, NetWeight: 10, Dimensions: Dimensions{Length: 100, Width: 50, Height: 30, Unit: "cm"}},
	}
	totals := CalculateTotals(packages)
	if totals.TotalPackages != 2 {
		t.Fatalf("expected 2 packages, got %d", totals.TotalPackages)
	}
	if totals.TotalGrossWeight != 33.1 || totals.TotalNetWeight != 16 {
		t.Fatalf("unexpected weight totals: %+v", totals)
	}
	if totals.TotalVolume != 0.21 || totals.VolumeUnit != "m3" {
		t.Fatalf("unexpected volume totals: %+v", totals)
	}
}
