package model

// Stock is one seat row of the durable ledger.  A seat belongs to exactly
// one variation and its seat ID is unique within that variation.  Sold is
// derived from the order reference on the row: once an order claims the
// seat it never returns to the available state.
type Stock struct {
	SeatID      string `json:"seat_id"`
	VariationID uint64 `json:"variation_id"`
	Sold        bool   `json:"sold"`
}
