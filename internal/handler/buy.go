package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yut0n/ticketstock/internal/allocation"
)

// Allocator is the slice of the allocation service the buy endpoint needs.
type Allocator interface {
	Buy(ctx context.Context, memberID string, variationID uint64) (string, error)
}

// BuyHandler serves POST /v1/buy.
type BuyHandler struct {
	Alloc Allocator
}

// NewBuyHandler constructs a BuyHandler.
func NewBuyHandler(alloc Allocator) *BuyHandler {
	if alloc == nil {
		panic("nil allocator passed to NewBuyHandler")
	}
	return &BuyHandler{Alloc: alloc}
}

// Buy allocates one seat of the requested variation to the member.  Sold
// out is an expected outcome and returns 409 with a distinct body; an
// unknown variation returns 404; a store failure returns 503 and is safe
// for the client to retry.
func (h *BuyHandler) Buy(c echo.Context) error {
	var body struct {
		MemberID    string `json:"member_id" form:"member_id"`
		VariationID uint64 `json:"variation_id" form:"variation_id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.MemberID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "member_id is required"})
	}
	if body.VariationID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "variation_id is required"})
	}

	seatID, err := h.Alloc.Buy(c.Request().Context(), body.MemberID, body.VariationID)
	if err != nil {
		if errors.Is(err, allocation.ErrSoldOut) {
			return c.JSON(http.StatusConflict, echo.Map{"status": "sold_out"})
		}
		if errors.Is(err, allocation.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "variation not found"})
		}
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "allocation store unavailable"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"seat_id":   seatID,
		"member_id": body.MemberID,
	})
}
