package packinglists

import "packlister/frontend/invoices"

// Dimensions are outer package dimensions in the given unit (cm, in, m, ft).
type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Unit   string  `json:"unit"`
}

// PackageItem is one invoice line placed inside a package. TotalWeight is
// quantity times unit weight at derivation time; later form edits may
// desynchronize it and no recomputation is attempted here.
type PackageItem struct {
	ItemName        string  `json:"itemName"`
	Description     string  `json:"description,omitempty"`
	Quantity        float64 `json:"quantity"`
	UnitWeight      float64 `json:"unitWeight"`
	TotalWeight     float64 `json:"totalWeight"`
	HSCode          string  `json:"hsCode,omitempty"`
	CountryOfOrigin string  `json:"countryOfOrigin,omitempty"`
}

// Package types understood by the packaging-weight tables.
const (
	TypeBox       = "box"
	TypeCrate     = "crate"
	TypePallet    = "pallet"
	TypeDrum      = "drum"
	TypeBag       = "bag"
	TypeBundle    = "bundle"
	TypeContainer = "container"
	TypeOther     = "other"
)

// Package is one physical shipping unit.
type Package struct {
	PackageNumber string        `json:"packageNumber"`
	PackageType   string        `json:"packageType"`
	Dimensions    Dimensions    `json:"dimensions"`
	GrossWeight   float64       `json:"grossWeight"`
	NetWeight     float64       `json:"netWeight"`
	WeightUnit    string        `json:"weightUnit"`
	Items         []PackageItem `json:"items"`
	Marks         string        `json:"marks,omitempty"`
	Notes         string        `json:"notes,omitempty"`
}

// ShippingInfo is user-editable carrier data, defaulted mostly empty.
type ShippingInfo struct {
	Carrier         string `json:"carrier,omitempty"`
	TrackingNumber  string `json:"trackingNumber,omitempty"`
	ShippingMethod  string `json:"shippingMethod,omitempty"`
	Incoterms       string `json:"incoterms,omitempty"`
	PortOfLoading   string `json:"portOfLoading,omitempty"`
	PortOfDischarge string `json:"portOfDischarge,omitempty"`
	ContainerNumber string `json:"containerNumber,omitempty"`
	SealNumber      string `json:"sealNumber,omitempty"`
}

// Totals are snapshot sums over packages, computed at derivation and
// recomputed only on request.
type Totals struct {
	TotalPackages    int     `json:"totalPackages"`
	TotalGrossWeight float64 `json:"totalGrossWeight"`
	TotalNetWeight   float64 `json:"totalNetWeight"`
	TotalVolume      float64 `json:"totalVolume"`
	VolumeUnit       string  `json:"volumeUnit"`
}

// PackingList is the full document. SelectedItems records which invoice
// line indices were included when the list was saved, so a later edit
// session can restore the selection.
type PackingList struct {
	InvoiceNumber     string         `json:"invoiceNumber"`
	InvoiceDate       string         `json:"invoiceDate"`
	PackingListNumber string         `json:"packingListNumber"`
	PackingListDate   string         `json:"packingListDate"`
	Logo              string         `json:"logo,omitempty"`
	Shipper           invoices.Party `json:"shipper"`
	Consignee         invoices.Party `json:"consignee"`
	ShippingInfo      ShippingInfo   `json:"shippingInfo"`
	Packages          []Package      `json:"packages"`
	Totals            Totals         `json:"totals"`

	SpecialInstructions string `json:"specialInstructions,omitempty"`
	CertificateOfOrigin bool   `json:"certificateOfOrigin,omitempty"`
	ExportLicense       string `json:"exportLicense,omitempty"`
	Notes               string `json:"notes,omitempty"`

	SelectedItems []int `json:"_selectedItems,omitempty"`
}
