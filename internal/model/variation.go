package model

// Variation is the finest-grained sellable unit of a ticket, for example a
// seating category.  Its seat inventory is fixed when the catalog is seeded.
// FreeCount and SeatMap are view-only fields populated from the fast
// allocation store; SeatMap maps seat ID to true when the seat is sold.
type Variation struct {
	ID        uint64          `json:"id"`
	Name      string          `json:"name"`
	TicketID  uint64          `json:"ticket_id"`
	FreeCount int64           `json:"free_count"`
	SeatMap   map[string]bool `json:"seat_map,omitempty"`
}
