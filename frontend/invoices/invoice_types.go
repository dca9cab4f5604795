package invoices

// Party is a sender or receiver address block.
type Party struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	ZipCode string `json:"zipCode,omitempty"`
	City    string `json:"city"`
	Country string `json:"country"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

// ItemDimensions are per-unit dimensions of a physical item.
type ItemDimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Unit   string  `json:"unit"`
}

// PhysicalDetails carries the shipping attributes of a physical line item.
type PhysicalDetails struct {
	UnitWeight      float64         `json:"unitWeight,omitempty"`
	WeightUnit      string          `json:"weightUnit,omitempty"`
	Dimensions      *ItemDimensions `json:"dimensions,omitempty"`
	HSCode          string          `json:"hsCode,omitempty"`
	CountryOfOrigin string          `json:"countryOfOrigin,omitempty"`
	Fragile         bool            `json:"fragile,omitempty"`
	Hazardous       bool            `json:"hazardous,omitempty"`
}

// InvoiceItem is a single invoice line. IsPhysicalProduct is tri-state: nil
// means the user never said either way and classification falls back to
// heuristics.
type InvoiceItem struct {
	Name              string           `json:"name"`
	Description       string           `json:"description,omitempty"`
	Quantity          float64          `json:"quantity"`
	UnitPrice         float64          `json:"unitPrice"`
	Total             float64          `json:"total,omitempty"`
	IsPhysicalProduct *bool            `json:"isPhysicalProduct,omitempty"`
	PhysicalDetails   *PhysicalDetails `json:"physicalDetails,omitempty"`
}

// ShippingDetails are invoice-level shipping terms.
type ShippingDetails struct {
	Incoterms    string  `json:"incoterms,omitempty"`
	ShippingCost float64 `json:"shippingCost,omitempty"`
}

// InvoiceDetails groups the document fields of an invoice.
type InvoiceDetails struct {
	InvoiceNumber   string           `json:"invoiceNumber"`
	InvoiceDate     string           `json:"invoiceDate"`
	DueDate         string           `json:"dueDate,omitempty"`
	Currency        string           `json:"currency,omitempty"`
	InvoiceLogo     string           `json:"invoiceLogo,omitempty"`
	Items           []InvoiceItem    `json:"items"`
	ShippingDetails *ShippingDetails `json:"shippingDetails,omitempty"`
	AdditionalNotes string           `json:"additionalNotes,omitempty"`
	PaymentTerms    string           `json:"paymentTerms,omitempty"`
	TotalAmount     float64          `json:"totalAmount,omitempty"`
}

// Invoice is the full document as submitted by the client.
type Invoice struct {
	Sender   Party          `json:"sender"`
	Receiver Party          `json:"receiver"`
	Details  InvoiceDetails `json:"details"`
}
