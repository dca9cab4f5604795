package packinglists

import (
	"fmt"
	"math"
	"time"

	"packlister/frontend/invoices"
)

// Defaults applied to a freshly derived packing list.
var defaultDimensions = Dimensions{Length: 50, Width: 40, Height: 30, Unit: "cm"}

const (
	defaultPackageType  = TypeBox
	defaultUnitWeightKg = 1.0
	defaultIncoterms    = "EXW"
)

// Empty-package weight in kg by package type and size tier. Size is decided
// by the largest outer dimension after normalizing to centimeters.
var packagingWeights = map[string][3]float64{
	//                 small  medium  large
	TypeBox:       {0.5, 1.5, 3.0},
	TypeCrate:     {5.0, 15.0, 30.0},
	TypePallet:    {15.0, 25.0, 35.0},
	TypeDrum:      {8.0, 15.0, 25.0},
	TypeBag:       {0.1, 0.3, 0.5},
	TypeBundle:    {1.0, 2.5, 5.0},
	TypeContainer: {2200, 3800, 4800},
	TypeOther:     {1.0, 3.0, 6.0},
}

// Protective-materials weight as a fraction of net weight, per package type.
var materialRatios = map[string]float64{
	TypeBox:       0.05,
	TypeCrate:     0.03,
	TypePallet:    0.02,
	TypeDrum:      0.02,
	TypeBag:       0.01,
	TypeBundle:    0.02,
	TypeContainer: 0.01,
	TypeOther:     0.04,
}

const defaultMaterialRatio = 0.04

// DeriveFromInvoice builds a default packing-list draft from an invoice:
// every item in one box-type package with estimated weights, totals
// snapshotted, and shipping fields left for the user. It never fails;
// missing optional fields default silently (a missing unit weight counts as
// 1 kg per unit, which can mislead totals for unconfigured items).
func DeriveFromInvoice(inv invoices.Invoice, now time.Time) PackingList {
	items := make([]PackageItem, 0, len(inv.Details.Items))
	var netWeight float64
	for _, item := range inv.Details.Items {
		unitWeight := defaultUnitWeightKg
		hsCode := ""
		origin := inv.Sender.Country
		if pd := item.PhysicalDetails; pd != nil {
			if pd.UnitWeight > 0 {
				unitWeight = pd.UnitWeight
			}
			if pd.HSCode != "" {
				hsCode = pd.HSCode
			}
			if pd.CountryOfOrigin != "" {
				origin = pd.CountryOfOrigin
			}
		}
		totalWeight := item.Quantity * unitWeight
		netWeight += totalWeight

		items = append(items, PackageItem{
			ItemName:        item.Name,
			Description:     item.Description,
			Quantity:        item.Quantity,
			UnitWeight:      unitWeight,
			TotalWeight:     totalWeight,
			HSCode:          hsCode,
			CountryOfOrigin: origin,
		})
	}

	pkg := Package{
		PackageNumber: "PKG-001",
		PackageType:   defaultPackageType,
		Dimensions:    defaultDimensions,
		GrossWeight:   CalculateGrossWeight(netWeight, defaultPackageType, defaultDimensions, true),
		NetWeight:     netWeight,
		WeightUnit:    "kg",
		Items:         items,
		Marks:         inv.Details.InvoiceNumber,
	}

	incoterms := defaultIncoterms
	if sd := inv.Details.ShippingDetails; sd != nil && sd.Incoterms != "" {
		incoterms = sd.Incoterms
	}

	return PackingList{
		InvoiceNumber:     inv.Details.InvoiceNumber,
		InvoiceDate:       inv.Details.InvoiceDate,
		PackingListNumber: "PL-" + inv.Details.InvoiceNumber,
		PackingListDate:   now.Format("2006-01-02"),
		Logo:              inv.Details.InvoiceLogo,
		Shipper:           inv.Sender,
		Consignee:         inv.Receiver,
		ShippingInfo: ShippingInfo{
			ShippingMethod: "standard",
			Incoterms:      incoterms,
		},
		Packages: []Package{pkg},
		Totals:   CalculateTotals([]Package{pkg}),
		Notes:    fmt.Sprintf("Packing list generated from Invoice #%s", inv.Details.InvoiceNumber),
	}
}

// DeriveForSelection derives a draft from the invoice lines at the given
// indices. Out-of-range indices are skipped. A nil selection defaults to the
// items classified as physical, mirroring the pre-selection a user sees.
// The returned draft records the effective selection.
func DeriveForSelection(inv invoices.Invoice, selected []int, now time.Time) PackingList {
	if selected == nil {
		selected = make([]int, 0)
		for _, ci := range invoices.PhysicalItems(inv) {
			selected = append(selected, ci.Index)
		}
	}

	filtered := inv
	filtered.Details.Items = make([]invoices.InvoiceItem, 0, len(selected))
	effective := make([]int, 0, len(selected))
	for _, idx := range selected {
		if idx < 0 || idx >= len(inv.Details.Items) {
			continue
		}
		filtered.Details.Items = append(filtered.Details.Items, inv.Details.Items[idx])
		effective = append(effective, idx)
	}

	draft := DeriveFromInvoice(filtered, now)
	draft.SelectedItems = effective
	return draft
}

// CalculateVolume converts a package's dimensions to cubic meters, rounded
// to 3 decimal places.
func CalculateVolume(d Dimensions) float64 {
	volume := d.Length * d.Width * d.Height
	switch d.Unit {
	case "cm":
		volume = volume / 1e6
	case "in":
		volume = volume * 0.000016387
	case "ft":
		volume = volume * 0.028317
	default: // m
	}
	return round3(volume)
}

// CalculatePackagingWeight returns the empty-package weight for a type and
// outer dimensions. Unknown types fall back to the "other" tier table.
func CalculatePackagingWeight(packageType string, d Dimensions) float64 {
	maxDimension := math.Max(d.Length, math.Max(d.Width, d.Height))
	switch d.Unit {
	case "m":
		maxDimension *= 100
	case "in":
		maxDimension *= 2.54
	case "ft":
		maxDimension *= 30.48
	default: // cm
	}

	tier := 2
	if maxDimension < 30 {
		tier = 0
	} else if maxDimension < 100 {
		tier = 1
	}

	weights, ok := packagingWeights[packageType]
	if !ok {
		weights = packagingWeights[TypeOther]
	}
	return weights[tier]
}

// CalculateGrossWeight estimates gross weight as net weight plus the empty
// package plus, optionally, protective materials proportional to the net
// weight. Rounded to 2 decimal places.
func CalculateGrossWeight(netWeight float64, packageType string, d Dimensions, includePackingMaterials bool) float64 {
	gross := netWeight + CalculatePackagingWeight(packageType, d)
	if includePackingMaterials {
		ratio, ok := materialRatios[packageType]
		if !ok {
			ratio = defaultMaterialRatio
		}
		gross += netWeight * ratio
	}
	return round2(gross)
}

// CalculateTotals snapshots the aggregate weights and volume of a package
// set. Weight sums round to 2 decimals, the volume sum to 3.
func CalculateTotals(packages []Package) Totals {
	var gross, net, volume float64
	for _, pkg := range packages {
		gross += pkg.GrossWeight
		net += pkg.NetWeight
		volume += CalculateVolume(pkg.Dimensions)
	}
	return Totals{
		TotalPackages:    len(packages),
		TotalGrossWeight: round2(gross),
		TotalNetWeight:   round2(net),
		TotalVolume:      round3(volume),
		VolumeUnit:       "m3",
	}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
