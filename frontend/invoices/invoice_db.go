package invoices

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"packlister/infrastructure/audit"
	"packlister/infrastructure/sqlite"
	"packlister/models"
)

// ErrNumberRequired is returned when a document is saved without its key.
var ErrNumberRequired = errors.New("invoice number is required")

// SaveInvoice upserts an invoice document keyed by invoice number. The write
// is last-write-wins; the previous version is journalled before being
// overwritten.
func SaveInvoice(ctx context.Context, db *sqlite.DB, auditSvc *audit.Service, inv Invoice) (created bool, err error) {
	number := strings.TrimSpace(inv.Details.InvoiceNumber)
	if number == "" {
		return false, ErrNumberRequired
	}

	docJSON, err := json.Marshal(inv)
	if err != nil {
		return false, fmt.Errorf("marshal invoice: %w", err)
	}

	err = db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		existing := new(models.SavedInvoice)
		findErr := tx.NewSelect().
			Model(existing).
			Where("invoice_number = ?", number).
			Scan(ctx)
		if findErr != nil && findErr != sql.ErrNoRows {
			return findErr
		}

		if findErr == sql.ErrNoRows {
			created = true
			row := &models.SavedInvoice{
				InvoiceNumber: number,
				DocumentJSON:  string(docJSON),
			}
			if _, err := tx.NewInsert().Model(row).Exec(ctx); err != nil {
				return err
			}
			if auditSvc != nil {
				return auditSvc.Write(ctx, tx, audit.ActionCreate, audit.EntityInvoice, number, nil, inv)
			}
			return nil
		}

		_, err := tx.NewUpdate().
			Model((*models.SavedInvoice)(nil)).
			Set("document_json = ?", string(docJSON)).
			Set("updated_at = ?", time.Now().UTC()).
			Where("id = ?", existing.ID).
			Exec(ctx)
		if err != nil {
			return err
		}
		if auditSvc != nil {
			return auditSvc.Write(ctx, tx, audit.ActionUpdate, audit.EntityInvoice, number, json.RawMessage(existing.DocumentJSON), inv)
		}
		return nil
	})
	return created, err
}

// LoadInvoice returns the stored invoice for a number. sql.ErrNoRows when
// absent.
func LoadInvoice(ctx context.Context, db *sqlite.DB, number string) (Invoice, error) {
	var inv Invoice
	row := new(models.SavedInvoice)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().
			Model(row).
			Where("invoice_number = ?", number).
			Scan(ctx)
	})
	if err != nil {
		return inv, err
	}
	if err := json.Unmarshal([]byte(row.DocumentJSON), &inv); err != nil {
		return inv, fmt.Errorf("unmarshal stored invoice %s: %w", number, err)
	}
	return inv, nil
}

// SavedInvoiceSummary is one row of the saved-invoices listing.
type SavedInvoiceSummary struct {
	InvoiceNumber string    `json:"invoiceNumber"`
	InvoiceDate   string    `json:"invoiceDate"`
	Receiver      string    `json:"receiver"`
	ItemCount     int       `json:"itemCount"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ListInvoices returns summaries of all saved invoices, most recent first.
func ListInvoices(ctx context.Context, db *sqlite.DB) ([]SavedInvoiceSummary, error) {
	rows := make([]models.SavedInvoice, 0)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().
			Model(&rows).
			OrderExpr("updated_at DESC, id DESC").
			Scan(ctx)
	})
	if err != nil {
		return nil, err
	}

	summaries := make([]SavedInvoiceSummary, 0, len(rows))
	for _, row := range rows {
		var inv Invoice
		if err := json.Unmarshal([]byte(row.DocumentJSON), &inv); err != nil {
			return nil, fmt.Errorf("unmarshal stored invoice %s: %w", row.InvoiceNumber, err)
		}
		summaries = append(summaries, SavedInvoiceSummary{
			InvoiceNumber: row.InvoiceNumber,
			InvoiceDate:   inv.Details.InvoiceDate,
			Receiver:      inv.Receiver.Name,
			ItemCount:     len(inv.Details.Items),
			UpdatedAt:     row.UpdatedAt,
		})
	}
	return summaries, nil
}

// DeleteInvoice removes a stored invoice. sql.ErrNoRows when absent.
func DeleteInvoice(ctx context.Context, db *sqlite.DB, auditSvc *audit.Service, number string) error {
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		existing := new(models.SavedInvoice)
		if err := tx.NewSelect().
			Model(existing).
			Where("invoice_number = ?", number).
			Scan(ctx); err != nil {
			return err
		}
		if _, err := tx.NewDelete().
			Model((*models.SavedInvoice)(nil)).
			Where("id = ?", existing.ID).
			Exec(ctx); err != nil {
			return err
		}
		if auditSvc != nil {
			return auditSvc.Write(ctx, tx, audit.ActionDelete, audit.EntityInvoice, number, json.RawMessage(existing.DocumentJSON), nil)
		}
		return nil
	})
}
