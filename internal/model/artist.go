// Package model defines the domain entities of the ticket catalog and the
// sale ledger.  Artists, tickets, variations and seats are created by the
// initial data load and never mutated afterwards; the only state change in
// the system is a seat moving from available to sold exactly once.
package model

// Artist is the top level of the catalog.  Each artist owns one or more
// tickets (events).
type Artist struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}
