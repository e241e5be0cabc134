package model

// Ticket is an event sold under an artist.  ArtistName is populated only by
// queries that join the artist table.  FreeCount is filled from the fast
// allocation store when the ticket is rendered in a listing; it is the sum
// of the free counts of the ticket's variations and is eventually consistent
// with the true pool sizes.
type Ticket struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	ArtistID   uint64 `json:"artist_id"`
	ArtistName string `json:"artist_name,omitempty"`
	FreeCount  int64  `json:"free_count"`
}
