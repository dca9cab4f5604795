package exports

import (
	"log/slog"
	"net/http"

	"packlister/infrastructure/sqlite"
)

// PackingListsCSVHandler streams every saved packing list as a CSV summary.
func PackingListsCSVHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename=packing-lists.csv")
		rowCount, err := writePackingListsCSV(r.Context(), db, w)
		if err != nil {
			slog.Error("export packing lists csv", slog.Any("err", err))
			http.Error(w, "failed to export csv", http.StatusInternalServerError)
			return
		}
		if err := recordExportRun(r.Context(), db, "packing_lists_csv", rowCount); err != nil {
			slog.Error("record export run", slog.Any("err", err))
		}
	}
}

// PackingListsXLSXHandler serves the same summary as an Excel workbook.
func PackingListsXLSXHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename=packing-lists.xlsx")
		rowCount, err := writePackingListsXLSX(r.Context(), db, w)
		if err != nil {
			slog.Error("export packing lists xlsx", slog.Any("err", err))
			http.Error(w, "failed to export xlsx", http.StatusInternalServerError)
			return
		}
		if err := recordExportRun(r.Context(), db, "packing_lists_xlsx", rowCount); err != nil {
			slog.Error("record export run", slog.Any("err", err))
		}
	}
}
