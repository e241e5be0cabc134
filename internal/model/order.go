package model

import "time"

// LedgerTimeFormat is the layout used when sale timestamps are exported,
// e.g. in the admin CSV.
const LedgerTimeFormat = "2006-01-02 15:04:05"

// Order is a completed sale as recorded in the durable ledger.  Rows are
// append-only: they are created by a successful buy and never updated or
// deleted.  UpdatedAt is the time the seat was claimed, in UTC.
type Order struct {
	ID          uint64    `json:"id"`
	MemberID    string    `json:"member_id"`
	SeatID      string    `json:"seat_id"`
	VariationID uint64    `json:"variation_id"`
	UpdatedAt   time.Time `json:"updated_at"`
}
