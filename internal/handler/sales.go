package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yut0n/ticketstock/internal/model"
)

// SalesReader exposes the two sale views: the bounded display feed and the
// full durable ledger.
type SalesReader interface {
	RecentSales(ctx context.Context) ([]model.RecentSale, error)
	AllSales(ctx context.Context) ([]model.Order, error)
}

// SalesHandler serves the recent-sales feed.
type SalesHandler struct {
	Sales SalesReader
}

// NewSalesHandler constructs a SalesHandler.
func NewSalesHandler(sales SalesReader) *SalesHandler {
	if sales == nil {
		panic("nil sales reader passed to NewSalesHandler")
	}
	return &SalesHandler{Sales: sales}
}

// Recent handles GET /v1/sales/recent.  It returns at most the ten most
// recent sales, newest first.
func (h *SalesHandler) Recent(c echo.Context) error {
	sales, err := h.Sales.RecentSales(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "allocation store unavailable"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": sales})
}
