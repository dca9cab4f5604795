package invoices

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"packlister/frontend/shared/webapi"
	"packlister/infrastructure/audit"
	"packlister/infrastructure/sqlite"
)

// ClassifyInvoiceQueryHandler tags every line item and suggests a package
// configuration for the physical ones.
func ClassifyInvoiceQueryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var inv Invoice
		if err := webapi.DecodeBody(r, &inv); err != nil {
			webapi.WriteError(w, http.StatusBadRequest, "invalid invoice payload")
			return
		}

		summary := SummarizeClassification(inv)
		suggestion := SuggestPackageConfiguration(summary.Physical.Items)
		webapi.WriteJSON(w, http.StatusOK, struct {
			Summary    ClassificationSummary `json:"summary"`
			Suggestion PackageSuggestion     `json:"suggestion"`
		}{summary, suggestion})
	}
}

// GenerateInvoicePDFHandler renders an invoice document to PDF.
func GenerateInvoicePDFHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var inv Invoice
		if err := webapi.DecodeBody(r, &inv); err != nil {
			webapi.WriteError(w, http.StatusBadRequest, "invalid invoice payload")
			return
		}

		pdfBytes, err := renderInvoicePDF(inv)
		if err != nil {
			slog.Error("render invoice pdf", slog.String("invoice", inv.Details.InvoiceNumber), slog.Any("err", err))
			webapi.WriteError(w, http.StatusInternalServerError, "Failed to generate invoice PDF")
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=\"invoice-%s.pdf\"", inv.Details.InvoiceNumber))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(pdfBytes)
	}
}

// SaveInvoiceCommandHandler upserts an invoice document by invoice number.
func SaveInvoiceCommandHandler(db *sqlite.DB, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var inv Invoice
		if err := webapi.DecodeBody(r, &inv); err != nil {
			webapi.WriteError(w, http.StatusBadRequest, "invalid invoice payload")
			return
		}

		created, err := SaveInvoice(r.Context(), db, auditSvc, inv)
		if err != nil {
			if errors.Is(err, ErrNumberRequired) {
				webapi.WriteError(w, http.StatusBadRequest, "invoice number is required")
				return
			}
			slog.Error("save invoice", slog.String("invoice", inv.Details.InvoiceNumber), slog.Any("err", err))
			webapi.WriteError(w, http.StatusInternalServerError, "failed to save invoice")
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		webapi.WriteJSON(w, status, map[string]string{"invoiceNumber": inv.Details.InvoiceNumber})
	}
}

// ListInvoicesQueryHandler lists saved invoice summaries.
func ListInvoicesQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summaries, err := ListInvoices(r.Context(), db)
		if err != nil {
			slog.Error("list invoices", slog.Any("err", err))
			webapi.WriteError(w, http.StatusInternalServerError, "failed to list invoices")
			return
		}
		webapi.WriteJSON(w, http.StatusOK, summaries)
	}
}

// GetInvoiceQueryHandler returns one saved invoice document.
func GetInvoiceQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		number := chi.URLParam(r, "number")
		inv, err := LoadInvoice(r.Context(), db, number)
		if err != nil {
			if err == sql.ErrNoRows {
				webapi.WriteError(w, http.StatusNotFound, "invoice not found")
				return
			}
			slog.Error("load invoice", slog.String("invoice", number), slog.Any("err", err))
			webapi.WriteError(w, http.StatusInternalServerError, "failed to load invoice")
			return
		}
		webapi.WriteJSON(w, http.StatusOK, inv)
	}
}

// DeleteInvoiceCommandHandler removes one saved invoice.
func DeleteInvoiceCommandHandler(db *sqlite.DB, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		number := chi.URLParam(r, "number")
		if err := DeleteInvoice(r.Context(), db, auditSvc, number); err != nil {
			if err == sql.ErrNoRows {
				webapi.WriteError(w, http.StatusNotFound, "invoice not found")
				return
			}
			slog.Error("delete invoice", slog.String("invoice", number), slog.Any("err", err))
			webapi.WriteError(w, http.StatusInternalServerError, "failed to delete invoice")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
