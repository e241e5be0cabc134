// Package repository is the adapter over the durable ledger: the relational
// store holding the artist/ticket/variation catalog, the seat inventory and
// the append-only record of completed sales.  Sentinel errors defined here
// let callers distinguish outcomes that must not be conflated — in
// particular an exhausted variation is never reported the same way as an
// unreachable store.
package repository

import "errors"

// ErrNotFound is returned when an artist, ticket or variation ID does not
// resolve to a row.  Handlers translate it into an HTTP 404.  Lookups never
// return a nil row without an error.
var ErrNotFound = errors.New("not found")

// ErrNoFreeSeat is returned by the transactional allocator when every seat
// of the variation is already sold.  It is an expected outcome and maps to
// the sold-out response, not to a server error.
var ErrNoFreeSeat = errors.New("no free seat")

// ErrSeatAlreadySold is returned when recording a sale for a seat whose
// ledger row already carries an order.  Under normal operation the fast
// store hands out each seat at most once, so this indicates drift between
// the store and the ledger; the caller logs it as a consistency warning.
var ErrSeatAlreadySold = errors.New("seat already sold")
