package exports

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/uptrace/bun"
	"github.com/xuri/excelize/v2"

	"packlister/infrastructure/sqlite"
	"packlister/models"
)

type packingListRow struct {
	PackingListNumber string  `bun:"packing_list_number"`
	InvoiceNumber     string  `bun:"invoice_number"`
	PackingListDate   string  `bun:"packing_list_date"`
	Shipper           string  `bun:"shipper"`
	Consignee         string  `bun:"consignee"`
	TotalPackages     int64   `bun:"total_packages"`
	NetWeight         float64 `bun:"net_weight"`
	GrossWeight       float64 `bun:"gross_weight"`
	Volume            float64 `bun:"volume"`
	UpdatedAt         string  `bun:"updated_at"`
}

func loadPackingListRows(ctx context.Context, db *sqlite.DB) ([]packingListRow, error) {
	rows := make([]packingListRow, 0)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`
SELECT spl.packing_list_number, spl.invoice_number,
       COALESCE(json_extract(spl.document_json, '$.packingListDate'), '') AS packing_list_date,
       COALESCE(json_extract(spl.document_json, '$.shipper.name'), '') AS shipper,
       COALESCE(json_extract(spl.document_json, '$.consignee.name'), '') AS consignee,
       COALESCE(json_extract(spl.document_json, '$.totals.totalPackages'), 0) AS total_packages,
       COALESCE(json_extract(spl.document_json, '$.totals.totalNetWeight'), 0) AS net_weight,
       COALESCE(json_extract(spl.document_json, '$.totals.totalGrossWeight'), 0) AS gross_weight,
       COALESCE(json_extract(spl.document_json, '$.totals.totalVolume'), 0) AS volume,
       strftime('%d/%m/%Y %H:%M', spl.updated_at) AS updated_at
FROM saved_packing_lists spl
ORDER BY spl.updated_at DESC, spl.id DESC`).Scan(ctx, &rows)
	})
	return rows, err
}

var packingListHeader = []string{
	"packing_list_number", "invoice_number", "date", "shipper", "consignee",
	"packages", "net_weight_kg", "gross_weight_kg", "volume_m3", "updated_at",
}

func writePackingListsCSV(ctx context.Context, db *sqlite.DB, w io.Writer) (int, error) {
	rows, err := loadPackingListRows(ctx, db)
	if err != nil {
		return 0, err
	}

	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(packingListHeader); err != nil {
		return 0, err
	}
	for _, r := range rows {
		record := []string{
			r.PackingListNumber,
			r.InvoiceNumber,
			r.PackingListDate,
			r.Shipper,
			r.Consignee,
			strconv.FormatInt(r.TotalPackages, 10),
			strconv.FormatFloat(r.NetWeight, 'f', -1, 64),
			strconv.FormatFloat(r.GrossWeight, 'f', -1, 64),
			strconv.FormatFloat(r.Volume, 'f', -1, 64),
			r.UpdatedAt,
		}
		if err := writer.Write(record); err != nil {
			return 0, err
		}
	}
	return len(rows), writer.Error()
}

func writePackingListsXLSX(ctx context.Context, db *sqlite.DB, w io.Writer) (int, error) {
	rows, err := loadPackingListRows(ctx, db)
	if err != nil {
		return 0, err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := make([]any, len(packingListHeader))
	for i, h := range packingListHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return 0, err
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return 0, err
		}
		record := []any{
			r.PackingListNumber,
			r.InvoiceNumber,
			r.PackingListDate,
			r.Shipper,
			r.Consignee,
			r.TotalPackages,
			r.NetWeight,
			r.GrossWeight,
			r.Volume,
			r.UpdatedAt,
		}
		if err := f.SetSheetRow(sheet, cell, &record); err != nil {
			return 0, err
		}
	}

	if err := f.Write(w); err != nil {
		return 0, err
	}
	return len(rows), nil
}

func recordExportRun(ctx context.Context, db *sqlite.DB, exportType string, rowCount int) error {
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		run := models.ExportRun{ExportType: exportType, RowCount: int64(rowCount)}
		_, err := tx.NewInsert().Model(&run).Exec(ctx)
		return err
	})
}
