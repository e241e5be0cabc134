package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/yut0n/ticketstock/internal/allocation"
)

type stubAllocator struct {
	seatID string
	err    error

	gotMember    string
	gotVariation uint64
}

func (s *stubAllocator) Buy(ctx context.Context, memberID string, variationID uint64) (string, error) {
	s.gotMember = memberID
	s.gotVariation = variationID
	return s.seatID, s.err
}

func postBuy(t *testing.T, alloc Allocator, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/buy", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := NewBuyHandler(alloc).Buy(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestBuySuccess(t *testing.T) {
	t.Parallel()
	alloc := &stubAllocator{seatID: "31-16"}
	rec := postBuy(t, alloc, `{"member_id":"alice","variation_id":3}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if alloc.gotMember != "alice" || alloc.gotVariation != 3 {
		t.Errorf("allocator called with (%q, %d)", alloc.gotMember, alloc.gotVariation)
	}
	if !strings.Contains(rec.Body.String(), `"seat_id":"31-16"`) {
		t.Errorf("body: %s", rec.Body.String())
	}
}

func TestBuySoldOutIsNotAnError(t *testing.T) {
	t.Parallel()
	rec := postBuy(t, &stubAllocator{err: allocation.ErrSoldOut}, `{"member_id":"alice","variation_id":3}`)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status: got %d, want 409", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"sold_out"`) {
		t.Errorf("body should name the sold-out outcome: %s", rec.Body.String())
	}
}

func TestBuyUnknownVariation(t *testing.T) {
	t.Parallel()
	rec := postBuy(t, &stubAllocator{err: allocation.ErrNotFound}, `{"member_id":"alice","variation_id":99}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
}

func TestBuyStoreFailure(t *testing.T) {
	t.Parallel()
	rec := postBuy(t, &stubAllocator{err: errors.New("dial tcp: connection refused")}, `{"member_id":"alice","variation_id":3}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status: got %d, want 503", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "sold_out") {
		t.Errorf("store failure rendered as sold out: %s", rec.Body.String())
	}
}

func TestBuyValidation(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		body string
	}{
		{"missing member", `{"variation_id":3}`},
		{"missing variation", `{"member_id":"alice"}`},
		{"zero variation", `{"member_id":"alice","variation_id":0}`},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rec := postBuy(t, &stubAllocator{seatID: "X"}, tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status: got %d, want 400", rec.Code)
			}
		})
	}
}
