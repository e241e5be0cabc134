package model

import "strings"

// RecentSale is a display-only view of a completed sale, kept in the fast
// allocation store as a bounded most-recent-first feed.  Position is the
// 1-based ordinal of the entry within the feed at read time.
type RecentSale struct {
	SeatID        string `json:"seat_id"`
	ArtistName    string `json:"a_name"`
	TicketName    string `json:"t_name"`
	VariationName string `json:"v_name"`
	Position      int    `json:"position"`
}

// FeedValue serializes the sale for storage in the feed list.  The format is
// a comma-joined quadruple; the variation name may itself contain commas, so
// it is always the last field and parsing splits at most four ways.
func (r RecentSale) FeedValue() string {
	return r.SeatID + "," + r.ArtistName + "," + r.TicketName + "," + r.VariationName
}

// ParseRecentSale decodes a feed list element produced by FeedValue.  The
// position is supplied by the reader based on the element's place in the
// feed.  Malformed elements decode to a RecentSale with empty name fields so
// a corrupt entry never fails a whole feed read.
func ParseRecentSale(value string, position int) RecentSale {
	parts := strings.SplitN(value, ",", 4)
	r := RecentSale{Position: position}
	if len(parts) > 0 {
		r.SeatID = parts[0]
	}
	if len(parts) > 1 {
		r.ArtistName = parts[1]
	}
	if len(parts) > 2 {
		r.TicketName = parts[2]
	}
	if len(parts) > 3 {
		r.VariationName = parts[3]
	}
	return r
}
