package models

import (
	"time"

	"github.com/uptrace/bun"
)

// SavedInvoice holds a serialized invoice document keyed by invoice number.
// Saving an existing number overwrites the stored document (last write wins).
type SavedInvoice struct {
	bun.BaseModel `bun:"table:saved_invoices,alias:si"`

	ID            int64     `bun:"id,pk,autoincrement"`
	InvoiceNumber string    `bun:"invoice_number,unique,notnull"`
	DocumentJSON  string    `bun:"document_json,notnull"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt     time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// SavedPackingList holds a serialized packing list document. A save matches
// an existing row by packing list number or invoice number and overwrites it;
// updated_at records which write won.
type SavedPackingList struct {
	bun.BaseModel `bun:"table:saved_packing_lists,alias:spl"`

	ID                int64     `bun:"id,pk,autoincrement"`
	PackingListNumber string    `bun:"packing_list_number,notnull"`
	InvoiceNumber     string    `bun:"invoice_number,notnull"`
	DocumentJSON      string    `bun:"document_json,notnull"`
	CreatedAt         time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt         time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// ExportRun records each CSV or XLSX export, with the row count served.
type ExportRun struct {
	bun.BaseModel `bun:"table:export_runs,alias:er"`

	ID         int64     `bun:"id,pk,autoincrement"`
	ExportType string    `bun:"export_type,notnull"`
	RowCount   int64     `bun:"row_count,notnull"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// DocumentEvent journals saves and deletes of stored documents, keeping the
// superseded version retrievable after a last-write-wins overwrite.
type DocumentEvent struct {
	bun.BaseModel `bun:"table:document_events,alias:de"`

	ID         int64     `bun:"id,pk,autoincrement"`
	Action     string    `bun:"action,notnull"`
	EntityType string    `bun:"entity_type,notnull"`
	EntityID   string    `bun:"entity_id,notnull"`
	BeforeJSON string    `bun:"before_json"`
	AfterJSON  string    `bun:"after_json"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
