// Package handler implements the HTTP surface over the allocation engine:
// public catalog browsing, the buy endpoint, the sales feeds and the admin
// operations.  Handlers translate engine sentinels into HTTP statuses; in
// particular a sold-out variation is an expected outcome with its own
// response, never an error page.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/yut0n/ticketstock/internal/allocation"
	"github.com/yut0n/ticketstock/internal/repository"
)

// AvailabilityReader is the slice of the allocation service the browse
// pages need: maintained display counters and the derived seat map.
// Counters are eventually consistent with the true pool sizes.
type AvailabilityReader interface {
	FreeCountTicket(ctx context.Context, ticketID uint64) (int64, error)
	FreeCountVariation(ctx context.Context, variationID uint64) (int64, error)
	SeatMap(ctx context.Context, variationID uint64) (map[string]bool, error)
}

// BrowseHandler serves the public catalog views.
type BrowseHandler struct {
	Catalog *repository.CatalogRepo
	Avail   AvailabilityReader
}

// NewBrowseHandler constructs a BrowseHandler.
func NewBrowseHandler(catalog *repository.CatalogRepo, avail AvailabilityReader) *BrowseHandler {
	if catalog == nil || avail == nil {
		panic("nil dependency passed to NewBrowseHandler")
	}
	return &BrowseHandler{Catalog: catalog, Avail: avail}
}

// ListArtists handles GET /v1/artists.
func (h *BrowseHandler) ListArtists(c echo.Context) error {
	artists, err := h.Catalog.ListArtists(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": artists})
}

// GetArtist handles GET /v1/artists/:id.  It returns the artist and its
// tickets, each annotated with the ticket-level free seat count.
func (h *BrowseHandler) GetArtist(c echo.Context) error {
	artistID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || artistID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid artist id"})
	}
	ctx := c.Request().Context()
	artist, err := h.Catalog.GetArtist(ctx, artistID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "artist not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	tickets, err := h.Catalog.ListTicketsByArtist(ctx, artistID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	for i := range tickets {
		count, err := h.Avail.FreeCountTicket(ctx, tickets[i].ID)
		if err != nil {
			if errors.Is(err, allocation.ErrNotFound) {
				continue // ticket not in the index yet (no rebuild since seed)
			}
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "allocation store unavailable"})
		}
		tickets[i].FreeCount = count
	}
	return c.JSON(http.StatusOK, echo.Map{
		"artist":  artist,
		"tickets": tickets,
	})
}

// GetTicket handles GET /v1/tickets/:id.  It returns the ticket with its
// artist's name and every variation annotated with the variation-level free
// count and the full seat map.
func (h *BrowseHandler) GetTicket(c echo.Context) error {
	ticketID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || ticketID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ticket id"})
	}
	ctx := c.Request().Context()
	ticket, err := h.Catalog.GetTicketWithArtist(ctx, ticketID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	variations, err := h.Catalog.ListVariationsByTicket(ctx, ticketID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	for i := range variations {
		count, err := h.Avail.FreeCountVariation(ctx, variations[i].ID)
		if err != nil {
			if errors.Is(err, allocation.ErrNotFound) {
				continue
			}
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "allocation store unavailable"})
		}
		variations[i].FreeCount = count
		seatMap, err := h.Avail.SeatMap(ctx, variations[i].ID)
		if err != nil {
			if errors.Is(err, allocation.ErrNotFound) {
				continue
			}
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "allocation store unavailable"})
		}
		variations[i].SeatMap = seatMap
	}
	return c.JSON(http.StatusOK, echo.Map{
		"ticket":     ticket,
		"variations": variations,
	})
}
