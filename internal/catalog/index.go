// Package catalog provides the precomputed index that maps a variation to
// its parent ticket and artist.  The index replaces any form of keyspace
// scanning on the buy hot path: resolving a variation's display names is a
// single map lookup.  An Index is built once by the rebuild pipeline and is
// read-only afterwards; rebuild installs a fresh one rather than patching.
package catalog

// VariationInfo carries everything the allocation service needs to know
// about one variation without touching the durable ledger.
type VariationInfo struct {
	ID         uint64
	Name       string
	TicketID   uint64
	TicketName string
	ArtistID   uint64
	ArtistName string
	TotalSeats int
}

// Index is an immutable variation lookup table.
type Index struct {
	byVariation map[uint64]VariationInfo
	byTicket    map[uint64][]VariationInfo
}

// NewIndex builds an Index from catalog rows.  Input order is preserved in
// the per-ticket slices so listings render in catalog order.
func NewIndex(infos []VariationInfo) *Index {
	ix := &Index{
		byVariation: make(map[uint64]VariationInfo, len(infos)),
		byTicket:    make(map[uint64][]VariationInfo),
	}
	for _, info := range infos {
		ix.byVariation[info.ID] = info
		ix.byTicket[info.TicketID] = append(ix.byTicket[info.TicketID], info)
	}
	return ix
}

// Resolve returns the catalog info for a variation.  The second return is
// false when the variation is unknown; callers surface that as a not-found
// condition rather than a silent nil.
func (ix *Index) Resolve(variationID uint64) (VariationInfo, bool) {
	info, ok := ix.byVariation[variationID]
	return info, ok
}

// VariationsByTicket returns the variations of a ticket in catalog order.
// The slice is shared with the index and must not be mutated.
func (ix *Index) VariationsByTicket(ticketID uint64) []VariationInfo {
	return ix.byTicket[ticketID]
}

// HasTicket reports whether any variation of the ticket is indexed.
func (ix *Index) HasTicket(ticketID uint64) bool {
	_, ok := ix.byTicket[ticketID]
	return ok
}

// Len returns the number of indexed variations.
func (ix *Index) Len() int {
	return len(ix.byVariation)
}
