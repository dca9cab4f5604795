package packinglists

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

// ErrNumberRequired is returned when a packing list is saved without a
// packing list number.
var ErrNumberRequired = errors.New("packing list number is required")

// SavePackingList upserts a packing list. An existing row is matched by
// packing list number or by invoice number, oldest row first, and
// overwritten; otherwise the document is appended. Last write wins; the
// superseded version goes to the document journal.
func SavePackingList(ctx context.Context, db *sqlite.DB, auditSvc *audit.Service, doc PackingList) (created bool, err error) {
	number := strings.TrimSpace(doc.PackingListNumber)
	if number == "" {
		return false, ErrNumberRequired
	}

	docJSON, err := json.Marshal(doc)
	if err != nil {
		return false, fmt.Errorf("marshal packing list: %w", err)
	}

	err = db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		existing := new(models.SavedPackingList)
		query := tx.NewSelect().
			Model(existing).
			Where("packing_list_number = ?", number).
			OrderExpr("id ASC").
			Limit(1)
		if doc.InvoiceNumber != "" {
			query = tx.NewSelect().
				Model(existing).
				Where("(packing_list_number = ? OR invoice_number = ?)", number, doc.InvoiceNumber).
				OrderExpr("id ASC").
				Limit(1)
		}
		findErr := query.Scan(ctx)
		if findErr != nil && findErr != sql.ErrNoRows {
			return findErr
		}

		if findErr == sql.ErrNoRows {
			created = true
			row := &models.SavedPackingList{
				PackingListNumber: number,
				InvoiceNumber:     doc.InvoiceNumber,
				DocumentJSON:      string(docJSON),
			}
			if _, err := tx.NewInsert().Model(row).Exec(ctx); err != nil {
				return err
			}
			if auditSvc != nil {
				return auditSvc.Write(ctx, tx, audit.ActionCreate, audit.EntityPackingList, number, nil, doc)
			}
			return nil
		}

		_, err := tx.NewUpdate().
			Model((*models.SavedPackingList)(nil)).
			Set("packing_list_number = ?", number).
			Set("invoice_number = ?", doc.InvoiceNumber).
			Set("document_json = ?", string(docJSON)).
			Set("updated_at = ?", time.Now().UTC()).
			Where("id = ?", existing.ID).
			Exec(ctx)
		if err != nil {
			return err
		}
		if auditSvc != nil {
			return auditSvc.Write(ctx, tx, audit.ActionUpdate, audit.EntityPackingList, number, json.RawMessage(existing.DocumentJSON), doc)
		}
		return nil
	})
	return created, err
}

// LoadPackingList returns the stored document for a packing list number.
// sql.ErrNoRows when absent.
func LoadPackingList(ctx context.Context, db *sqlite.DB, number string) (PackingList, error) {
	var doc PackingList
	row := new(models.SavedPackingList)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().
			Model(row).
			Where("packing_list_number = ?", number).
			OrderExpr("id ASC").
			Limit(1).
			Scan(ctx)
	})
	if err != nil {
		return doc, err
	}
	if err := json.Unmarshal([]byte(row.DocumentJSON), &doc); err != nil {
		return doc, fmt.Errorf("unmarshal stored packing list %s: %w", number, err)
	}
	return doc, nil
}

// SavedListSummary is one row of the saved packing lists listing.
type SavedListSummary struct {
	PackingListNumber string    `json:"packingListNumber"`
	InvoiceNumber     string    `json:"invoiceNumber"`
	PackingListDate   string    `json:"packingListDate"`
	Consignee         string    `json:"consignee"`
	TotalPackages     int       `json:"totalPackages"`
	TotalNetWeight    float64   `json:"totalNetWeight"`
	TotalGrossWeight  float64   `json:"totalGrossWeight"`
	TotalVolume       float64   `json:"totalVolume"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// ListPackingLists returns summaries of all saved lists, most recent first.
func ListPackingLists(ctx context.Context, db *sqlite.DB) ([]SavedListSummary, error) {
	rows := make([]models.SavedPackingList, 0)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().
			Model(&rows).
			OrderExpr("updated_at DESC, id DESC").
			Scan(ctx)
	})
	if err != nil {
		return nil, err
	}

	summaries := make([]SavedListSummary, 0, len(rows))
	for _, row := range rows {
		var doc PackingList
		if err := json.Unmarshal([]byte(row.DocumentJSON), &doc); err != nil {
			return nil, fmt.Errorf("unmarshal stored packing list %s: %w", row.PackingListNumber, err)
		}
		summaries = append(summaries, SavedListSummary{
			PackingListNumber: row.PackingListNumber,
			InvoiceNumber:     row.InvoiceNumber,
			PackingListDate:   doc.PackingListDate,
			Consignee:         doc.Consignee.Name,
			TotalPackages:     doc.Totals.TotalPackages,
			TotalNetWeight:    doc.Totals.TotalNetWeight,
			TotalGrossWeight:  doc.Totals.TotalGrossWeight,
			TotalVolume:       doc.Totals.TotalVolume,
			UpdatedAt:         row.UpdatedAt,
		})
	}
	return summaries, nil
}

// DeletePackingList removes one saved list. sql.ErrNoRows when absent.
func DeletePackingList(ctx context.Context, db *sqlite.DB, auditSvc *audit.Service, number string) error {
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		existing := new(models.SavedPackingList)
		if err := tx.NewSelect().
			Model(existing).
			Where("packing_list_number = ?", number).
			OrderExpr("id ASC").
			Limit(1).
			Scan(ctx); err != nil {
			return err
		}
		if _, err := tx.NewDelete().
			Model((*models.SavedPackingList)(nil)).
			Where("id = ?", existing.ID).
			Exec(ctx); err != nil {
			return err
		}
		if auditSvc != nil {
			return auditSvc.Write(ctx, tx, audit.ActionDelete, audit.EntityPackingList, number, json.RawMessage(existing.DocumentJSON), nil)
		}
		return nil
	})
}
