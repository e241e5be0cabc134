package store

import "strconv"

// Key builders for the fast allocation store.  Every piece of per-variation
// state lives under a key derived from the variation ID so that lookups are
// direct; nothing in the hot path ever scans the keyspace to discover
// relationships.
//
//	avail:<vid>           list of unsold seat IDs (the pool), randomized order
//	sold:<vid>            list of seat IDs claimed by buys, newest first
//	all:<vid>             list of every seat ID of the variation
//	count:variation:<vid> display counter of unsold seats
//	count:ticket:<tid>    display counter summed over the ticket's variations
//	meta:variation:<vid>  display cache "artist,ticket,variation" names
//	recent                bounded most-recent-first sale feed

// RecentKey is the feed of recently completed sales.
const RecentKey = "recent"

// AvailKey returns the key of the unsold seat pool for a variation.
func AvailKey(variationID uint64) string {
	return "avail:" + strconv.FormatUint(variationID, 10)
}

// SoldKey returns the key of the sold seat list for a variation.
func SoldKey(variationID uint64) string {
	return "sold:" + strconv.FormatUint(variationID, 10)
}

// AllKey returns the key of the full seat list for a variation.
func AllKey(variationID uint64) string {
	return "all:" + strconv.FormatUint(variationID, 10)
}

// VariationCountKey returns the free-count counter key for a variation.
func VariationCountKey(variationID uint64) string {
	return "count:variation:" + strconv.FormatUint(variationID, 10)
}

// TicketCountKey returns the free-count counter key for a ticket.
func TicketCountKey(ticketID uint64) string {
	return "count:ticket:" + strconv.FormatUint(ticketID, 10)
}

// VariationMetaKey returns the catalog metadata cache key for a variation.
func VariationMetaKey(variationID uint64) string {
	return "meta:variation:" + strconv.FormatUint(variationID, 10)
}
