package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"packlister/frontend/invoices"
	"packlister/frontend/packinglists"
	"packlister/infrastructure/audit"
	"packlister/infrastructure/sqlite"
)

func setupIntegrationServer(t *testing.T) *httptest.Server {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "server-integration.db")
	db, err := sqlite.OpenDB(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := sqlite.ApplyMigrations(context.Background(), db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	s := NewServer("127.0.0.1:0", db, audit.NewService())
	ts := httptest.NewServer(s.router)
	t.Cleanup(func() {
		ts.Close()
		_ = db.Close()
	})
	return ts
}

func integrationInvoice() invoices.Invoice {
	return invoices.Invoice{
		Sender:   invoices.Party{Name: "Acme Exports", Address: "Rua A 1", City: "Porto", Country: "Portugal"},
		Receiver: invoices.Party{Name: "Widget Corp", Address: "Hauptstr. 2", City: "Berlin", Country: "Germany"},
		Details: invoices.InvoiceDetails{
			InvoiceNumber: "INV-100",
			InvoiceDate:   "2026-08-01",
			Currency:      "EUR",
			Items: []invoices.InvoiceItem{
				{
					Name:            "Steel machine part",
					Quantity:        4,
					UnitPrice:       25,
					PhysicalDetails: &invoices.PhysicalDetails{UnitWeight: 2.5},
				},
				{Name: "Installation service", Quantity: 1, UnitPrice: 150},
			},
		},
	}
}

func TestHealthAndSecurityHeaders(t *testing.T) {
	ts := setupIntegrationServer(t)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Fatalf("health = %d %q", resp.StatusCode, body)
	}
	if got := resp.Header.Get("X-Frame-Options"); got != "DENY" {
		t.Fatalf("X-Frame-Options = %q", got)
	}
	if got := resp.Header.Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("X-Content-Type-Options = %q", got)
	}
}

func TestInvoiceToPackingListFlow(t *testing.T) {
	ts := setupIntegrationServer(t)
	inv := integrationInvoice()

	// Classify: one physical, one service line.
	var classifyResp struct {
		Summary invoices.ClassificationSummary `json:"summary"`
	}
	postAndDecode(t, ts, "/api/invoice/classify", inv, &classifyResp)
	if got := len(classifyResp.Summary.Physical.Items); got != 1 {
		t.Fatalf("physical items = %d, want 1", got)
	}
	if got := len(classifyResp.Summary.Services.Items); got != 1 {
		t.Fatalf("service items = %d, want 1", got)
	}

	// Derive a draft.
	var draft packinglists.PackingList
	postAndDecode(t, ts, "/api/packing-list/derive", packinglists.DeriveRequest{Invoice: inv}, &draft)
	if draft.PackingListNumber != "PL-INV-100" {
		t.Fatalf("packingListNumber = %q", draft.PackingListNumber)
	}
	if got := draft.Packages[0].NetWeight; got != 10 {
		t.Fatalf("net weight = %v, want 10", got)
	}

	// Render the draft to PDF.
	payload, _ := json.Marshal(draft)
	resp, err := http.Post(ts.URL+"/api/packing-list/generate", "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	pdfBody, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("generate status = %d: %s", resp.StatusCode, pdfBody)
	}
	if got := resp.Header.Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("generate Content-Type = %q", got)
	}
	if !bytes.HasPrefix(pdfBody, []byte("%PDF")) {
		t.Fatal("generate body is not a PDF")
	}

	// Save, list, fetch, export, view, delete.
	payload, _ = json.Marshal(draft)
	resp, err = http.Post(ts.URL+"/api/packing-lists", "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("save status = %d", resp.StatusCode)
	}

	var summaries []packinglists.SavedListSummary
	getAndDecode(t, ts, "/api/packing-lists", &summaries)
	if len(summaries) != 1 || summaries[0].PackingListNumber != "PL-INV-100" {
		t.Fatalf("unexpected summaries: %+v", summaries)
	}

	var loaded packinglists.PackingList
	getAndDecode(t, ts, "/api/packing-lists/PL-INV-100", &loaded)
	if loaded.InvoiceNumber != "INV-100" {
		t.Fatalf("loaded invoiceNumber = %q", loaded.InvoiceNumber)
	}

	resp, err = http.Get(ts.URL + "/api/packing-lists/export.csv")
	if err != nil {
		t.Fatalf("export csv: %v", err)
	}
	csvBody, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("export status = %d", resp.StatusCode)
	}
	if !strings.Contains(string(csvBody), "PL-INV-100") {
		t.Fatalf("export missing saved list:\n%s", csvBody)
	}

	resp, err = http.Get(ts.URL + "/packing-lists/PL-INV-100")
	if err != nil {
		t.Fatalf("view page: %v", err)
	}
	pageBody, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(pageBody), "PL-INV-100") {
		t.Fatalf("view page = %d:\n%s", resp.StatusCode, pageBody)
	}

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/packing-lists/PL-INV-100", nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d", resp.StatusCode)
	}
}

func TestRootRedirectsToPackingLists(t *testing.T) {
	ts := setupIntegrationServer(t)

	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	resp, err := client.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("root: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("root status = %d, want %d", resp.StatusCode, http.StatusSeeOther)
	}
	if got := resp.Header.Get("Location"); got != "/packing-lists" {
		t.Fatalf("Location = %q", got)
	}
}

func postAndDecode(t *testing.T, ts *httptest.Server, path string, body, out any) {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal %s body: %v", path, err)
	}
	resp, err := http.Post(ts.URL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("post %s: %v", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("post %s status = %d: %s", path, resp.StatusCode, raw)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode %s response: %v", path, err)
	}
}

func getAndDecode(t *testing.T, ts *httptest.Server, path string, out any) {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatalf("get %s: %v", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("get %s status = %d: %s", path, resp.StatusCode, raw)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode %s response: %v", path, err)
	}
}
