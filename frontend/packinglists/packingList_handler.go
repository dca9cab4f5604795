package packinglists

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"packlister/frontend/invoices"
	"packlister/frontend/shared/webapi"
	"packlister/infrastructure/audit"
	"packlister/infrastructure/sqlite"
)

// DeriveRequest carries an invoice and an optional line selection. A nil
// selection means every physical item; an empty slice means none.
type DeriveRequest struct {
	Invoice       invoices.Invoice `json:"invoice"`
	SelectedItems []int            `json:"selectedItems"`
}

// DerivePackingListCommandHandler builds a packing-list draft from an
// invoice without persisting anything.
func DerivePackingListCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DeriveRequest
		if err := webapi.DecodeBody(r, &req); err != nil {
			webapi.WriteError(w, http.StatusBadRequest, "invalid derive payload")
			return
		}

		doc := DeriveForSelection(req.Invoice, req.SelectedItems, time.Now())
		webapi.WriteJSON(w, http.StatusOK, doc)
	}
}

// GeneratePackingListPDFHandler renders a packing-list document to PDF.
func GeneratePackingListPDFHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var doc PackingList
		if err := webapi.DecodeBody(r, &doc); err != nil {
			webapi.WriteError(w, http.StatusBadRequest, "invalid packing list payload")
			return
		}

		pdfBytes, err := renderPackingListPDF(doc)
		if err != nil {
			slog.Error("render packing list pdf", slog.String("packingList", doc.PackingListNumber), slog.Any("err", err))
			webapi.WriteError(w, http.StatusInternalServerError, "Failed to generate packing list PDF")
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=\"packing-list-%s.pdf\"", doc.PackingListNumber))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(pdfBytes)
	}
}

// SavePackingListCommandHandler upserts a packing-list document. The match
// runs on the packing-list number first, then the invoice number, so a
// renumbered draft replaces its predecessor instead of duplicating it.
func SavePackingListCommandHandler(db *sqlite.DB, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var doc PackingList
		if err := webapi.DecodeBody(r, &doc); err != nil {
			webapi.WriteError(w, http.StatusBadRequest, "invalid packing list payload")
			return
		}

		created, err := SavePackingList(r.Context(), db, auditSvc, doc)
		if err != nil {
			if errors.Is(err, ErrNumberRequired) {
				webapi.WriteError(w, http.StatusBadRequest, "packing list number is required")
				return
			}
			slog.Error("save packing list", slog.String("packingList", doc.PackingListNumber), slog.Any("err", err))
			webapi.WriteError(w, http.StatusInternalServerError, "failed to save packing list")
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		webapi.WriteJSON(w, status, map[string]string{"packingListNumber": doc.PackingListNumber})
	}
}

// ListPackingListsQueryHandler lists saved packing-list summaries.
func ListPackingListsQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summaries, err := ListPackingLists(r.Context(), db)
		if err != nil {
			slog.Error("list packing lists", slog.Any("err", err))
			webapi.WriteError(w, http.StatusInternalServerError, "failed to list packing lists")
			return
		}
		webapi.WriteJSON(w, http.StatusOK, summaries)
	}
}

// GetPackingListQueryHandler returns one saved packing-list document.
func GetPackingListQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		number := chi.URLParam(r, "number")
		doc, err := LoadPackingList(r.Context(), db, number)
		if err != nil {
			if err == sql.ErrNoRows {
				webapi.WriteError(w, http.StatusNotFound, "packing list not found")
				return
			}
			slog.Error("load packing list", slog.String("packingList", number), slog.Any("err", err))
			webapi.WriteError(w, http.StatusInternalServerError, "failed to load packing list")
			return
		}
		webapi.WriteJSON(w, http.StatusOK, doc)
	}
}

// DeletePackingListCommandHandler removes one saved packing list.
func DeletePackingListCommandHandler(db *sqlite.DB, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		number := chi.URLParam(r, "number")
		if err := DeletePackingList(r.Context(), db, auditSvc, number); err != nil {
			if err == sql.ErrNoRows {
				webapi.WriteError(w, http.StatusNotFound, "packing list not found")
				return
			}
			slog.Error("delete packing list", slog.String("packingList", number), slog.Any("err", err))
			webapi.WriteError(w, http.StatusInternalServerError, "failed to delete packing list")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ListPackingListsPageHandler renders the saved packing lists index page.
func ListPackingListsPageHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summaries, err := ListPackingLists(r.Context(), db)
		if err != nil {
			slog.Error("list packing lists page", slog.Any("err", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := ListPage(summaries).Render(r.Context(), w); err != nil {
			slog.Error("render packing lists page", slog.Any("err", err))
		}
	}
}

// ViewPackingListPageHandler renders a saved packing list as an HTML page.
func ViewPackingListPageHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		number := chi.URLParam(r, "number")
		doc, err := LoadPackingList(r.Context(), db, number)
		if err != nil {
			if err == sql.ErrNoRows {
				http.NotFound(w, r)
				return
			}
			slog.Error("load packing list page", slog.String("packingList", number), slog.Any("err", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := Page(doc).Render(r.Context(), w); err != nil {
			slog.Error("render packing list page", slog.String("packingList", number), slog.Any("err", err))
		}
	}
}
