package handler

import (
	"context"
	"database/sql"
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/yut0n/ticketstock/internal/model"
	"github.com/yut0n/ticketstock/internal/repository"
)

// Rebuilder triggers the full regeneration of the fast allocation store
// from the durable ledger.
type Rebuilder interface {
	Rebuild(ctx context.Context) error
}

// AdminHandler serves the administrative surface: reseeding the ledger,
// rebuilding the allocation store and exporting the sale ledger.  All
// routes behind it require an admin token.
type AdminHandler struct {
	DB       *sql.DB
	SeedFile string
	Alloc    Rebuilder
	Sales    SalesReader
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(db *sql.DB, seedFile string, alloc Rebuilder, sales SalesReader) *AdminHandler {
	if db == nil || alloc == nil || sales == nil {
		panic("nil dependency passed to NewAdminHandler")
	}
	return &AdminHandler{DB: db, SeedFile: seedFile, Alloc: alloc, Sales: sales}
}

// Init handles POST /v1/admin/init.  It restores the fixed initial dataset
// in the durable ledger and then rebuilds the fast allocation store from
// it.  Rebuild must not run concurrently with live buys; this endpoint is
// intended for a maintenance window.
func (h *AdminHandler) Init(c echo.Context) error {
	ctx := c.Request().Context()
	if err := repository.ExecScriptFile(ctx, h.DB, h.SeedFile); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "seed failed"})
	}
	if err := h.Alloc.Rebuild(ctx); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "rebuild failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// ExportCSV handles GET /v1/admin/orders.csv.  It streams the full sale
// ledger as CSV with columns id, member_id, seat_id, variation_id,
// updated_at (formatted "YYYY-MM-DD HH:MM:SS"), ordered by order ID.
func (h *AdminHandler) ExportCSV(c echo.Context) error {
	orders, err := h.Sales.AllSales(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().WriteHeader(http.StatusOK)
	w := csv.NewWriter(c.Response())
	for _, o := range orders {
		record := []string{
			strconv.FormatUint(o.ID, 10),
			o.MemberID,
			o.SeatID,
			strconv.FormatUint(o.VariationID, 10),
			o.UpdatedAt.UTC().Format(model.LedgerTimeFormat),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
