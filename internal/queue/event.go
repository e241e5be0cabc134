// Package queue defines message payloads exchanged over the message broker
// and the background consumer for the sale feed.
package queue

// SaleCompletedEvent is published after every successful buy.  It carries
// enough display data for downstream consumers to log or notify without
// querying the ledger.  Delivery is best-effort: a lost event never affects
// the allocation itself.
type SaleCompletedEvent struct {
	MemberID      string `json:"member_id"`
	SeatID        string `json:"seat_id"`
	VariationID   uint64 `json:"variation_id"`
	VariationName string `json:"variation_name"`
	TicketName    string `json:"ticket_name"`
	ArtistName    string `json:"artist_name"`
	SoldAt        string `json:"sold_at"`
}
