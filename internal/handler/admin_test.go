package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/yut0n/ticketstock/internal/model"
)

type stubSalesReader struct {
	recent []model.RecentSale
	orders []model.Order
	err    error
}

func (s *stubSalesReader) RecentSales(ctx context.Context) ([]model.RecentSale, error) {
	return s.recent, s.err
}

func (s *stubSalesReader) AllSales(ctx context.Context) ([]model.Order, error) {
	return s.orders, s.err
}

func TestExportCSV(t *testing.T) {
	t.Parallel()
	sales := &stubSalesReader{orders: []model.Order{
		{ID: 1, MemberID: "alice", SeatID: "05-01", VariationID: 1,
			UpdatedAt: time.Date(2026, 8, 30, 12, 0, 5, 0, time.UTC)},
		{ID: 2, MemberID: "bob", SeatID: "10-12", VariationID: 3,
			UpdatedAt: time.Date(2026, 8, 30, 12, 1, 44, 0, time.UTC)},
	}}
	h := &AdminHandler{Sales: sales}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/orders.csv", nil)
	rec := httptest.NewRecorder()
	if err := h.ExportCSV(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "text/csv" {
		t.Errorf("content type: got %q, want text/csv", ct)
	}
	want := "1,alice,05-01,1,2026-08-30 12:00:05\n" +
		"2,bob,10-12,3,2026-08-30 12:01:44\n"
	if got := rec.Body.String(); got != want {
		t.Errorf("csv body:\ngot  %q\nwant %q", got, want)
	}
}

func TestExportCSVEmptyLedger(t *testing.T) {
	t.Parallel()
	h := &AdminHandler{Sales: &stubSalesReader{}}
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/orders.csv", nil)
	rec := httptest.NewRecorder()
	if err := h.ExportCSV(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("empty ledger should produce an empty body, got %q", rec.Body.String())
	}
}

func TestRecentSales(t *testing.T) {
	t.Parallel()
	sales := &stubSalesReader{recent: []model.RecentSale{
		{SeatID: "10-12", ArtistName: "NHN48", TicketName: "Dome Live", VariationName: "Arena", Position: 1},
	}}
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/sales/recent", nil)
	rec := httptest.NewRecorder()
	if err := NewSalesHandler(sales).Recent(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	for _, frag := range []string{`"items"`, `"10-12"`, `"NHN48"`} {
		if !strings.Contains(rec.Body.String(), frag) {
			t.Errorf("body missing %s: %s", frag, rec.Body.String())
		}
	}
}

func TestRecentSalesStoreDown(t *testing.T) {
	t.Parallel()
	sales := &stubSalesReader{err: errors.New("connection refused")}
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/sales/recent", nil)
	rec := httptest.NewRecorder()
	if err := NewSalesHandler(sales).Recent(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status: got %d, want 503", rec.Code)
	}
}
