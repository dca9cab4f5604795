package http

import (
	"packlister/frontend/exports"
	"packlister/frontend/invoices"
	"packlister/frontend/packinglists"
)

// RegisterAPIRoutes registers the JSON and file-download API.
func (s *Server) RegisterAPIRoutes() {
	s.router.Post("/api/invoice/classify", invoices.ClassifyInvoiceQueryHandler())
	s.router.Post("/api/invoice/generate", invoices.GenerateInvoicePDFHandler())

	s.router.Post("/api/invoices", invoices.SaveInvoiceCommandHandler(s.DB, s.Audit))
	s.router.Get("/api/invoices", invoices.ListInvoicesQueryHandler(s.DB))
	s.router.Get("/api/invoices/{number}", invoices.GetInvoiceQueryHandler(s.DB))
	s.router.Delete("/api/invoices/{number}", invoices.DeleteInvoiceCommandHandler(s.DB, s.Audit))

	s.router.Post("/api/packing-list/derive", packinglists.DerivePackingListCommandHandler())
	s.router.Post("/api/packing-list/generate", packinglists.GeneratePackingListPDFHandler())

	// Export routes precede the {number} route so the literal segments win.
	s.router.Get("/api/packing-lists/export.csv", exports.PackingListsCSVHandler(s.DB))
	s.router.Get("/api/packing-lists/export.xlsx", exports.PackingListsXLSXHandler(s.DB))

	s.router.Post("/api/packing-lists", packinglists.SavePackingListCommandHandler(s.DB, s.Audit))
	s.router.Get("/api/packing-lists", packinglists.ListPackingListsQueryHandler(s.DB))
	s.router.Get("/api/packing-lists/{number}", packinglists.GetPackingListQueryHandler(s.DB))
	s.router.Delete("/api/packing-lists/{number}", packinglists.DeletePackingListCommandHandler(s.DB, s.Audit))
}

// RegisterPageRoutes registers the HTML pages.
func (s *Server) RegisterPageRoutes() {
	s.router.Get("/packing-lists", packinglists.ListPackingListsPageHandler(s.DB))
	s.router.Get("/packing-lists/{number}", packinglists.ViewPackingListPageHandler(s.DB))
}
