package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"packlister/frontend/invoices"
	"packlister/frontend/packinglists"
	"packlister/infrastructure/audit"
	"packlister/infrastructure/sqlite"
)

// Seeds one demo invoice and its derived packing list so a fresh install has
// something to look at.
func main() {
	dbPath := getenv("SQLITE_PATH", "packlister.db")

	db, err := sqlite.OpenDB(dbPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := sqlite.ApplyMigrations(ctx, db); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	auditSvc := audit.NewService()
	inv := sampleInvoice()

	if _, err := invoices.SaveInvoice(ctx, db, auditSvc, inv); err != nil {
		log.Fatalf("seed invoice: %v", err)
	}
	doc := packinglists.DeriveFromInvoice(inv, time.Now())
	if _, err := packinglists.SavePackingList(ctx, db, auditSvc, doc); err != nil {
		log.Fatalf("seed packing list: %v", err)
	}

	fmt.Printf("seeded invoice %s and packing list %s\n", inv.Details.InvoiceNumber, doc.PackingListNumber)
}

func sampleInvoice() invoices.Invoice {
	return invoices.Invoice{
		Sender: invoices.Party{
			Name:    "Atlantico Trading Lda",
			Address: "Rua do Cais 14",
			ZipCode: "4000-123",
			City:    "Porto",
			Country: "Portugal",
			Email:   "exports@atlantico.example",
		},
		Receiver: invoices.Party{
			Name:    "Nordwind Handel GmbH",
			Address: "Lagerstrasse 8",
			ZipCode: "20457",
			City:    "Hamburg",
			Country: "Germany",
		},
		Details: invoices.InvoiceDetails{
			InvoiceNumber: "INV-2026-0001",
			InvoiceDate:   time.Now().Format("2006-01-02"),
			Currency:      "EUR",
			PaymentTerms:  "Net 30",
			Items: []invoices.InvoiceItem{
				{
					Name:      "Ceramic tableware set",
					Quantity:  40,
					UnitPrice: 35,
					PhysicalDetails: &invoices.PhysicalDetails{
						UnitWeight:      1.8,
						HSCode:          "6912.00",
						CountryOfOrigin: "Portugal",
						Fragile:         true,
					},
				},
				{
					Name:      "Cork board panel",
					Quantity:  120,
					UnitPrice: 12,
					PhysicalDetails: &invoices.PhysicalDetails{
						UnitWeight: 0.9,
						HSCode:     "4504.10",
					},
				},
				{Name: "Freight insurance service", Quantity: 1, UnitPrice: 180},
			},
			ShippingDetails: &invoices.ShippingDetails{Incoterms: "FOB", ShippingCost: 420},
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
