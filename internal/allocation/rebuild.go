package allocation

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/yut0n/ticketstock/internal/catalog"
	"github.com/yut0n/ticketstock/internal/store"
)

// Rebuild wipes the fast allocation store and repopulates it from the
// durable ledger, then installs a fresh catalog index.  For every variation
// it loads the metadata cache, sets the display counters to the number of
// currently unsold seats, and bulk-loads the available pool with the unsold
// seat IDs in randomized order so allocation order cannot be predicted from
// seat IDs.
//
// Rebuild is a coarse, stop-the-world administrative operation.  It must
// not run concurrently with Buy on the same store; the caller is
// responsible for serializing it against live traffic.
func (s *Service) Rebuild(ctx context.Context) error {
	if s.store == nil {
		return ErrStoreUnavailable
	}
	infos, err := s.source.ListCatalog(ctx)
	if err != nil {
		return fmt.Errorf("rebuild: load catalog: %w", err)
	}
	if err := s.store.Flush(ctx); err != nil {
		return fmt.Errorf("rebuild: %w", err)
	}

	ticketCounts := make(map[uint64]int64)
	ticketOrder := make([]uint64, 0)

	for _, info := range infos {
		seats, err := s.ledger.SeatsByVariation(ctx, info.ID)
		if err != nil {
			return fmt.Errorf("rebuild: seats of variation %d: %w", info.ID, err)
		}
		if len(seats) != info.TotalSeats {
			log.Printf("rebuild: consistency warning: variation %d has %d ledger seats, catalog says %d",
				info.ID, len(seats), info.TotalSeats)
		}

		all := make([]string, 0, len(seats))
		unsold := make([]string, 0, len(seats))
		for _, seat := range seats {
			all = append(all, seat.SeatID)
			if !seat.Sold {
				unsold = append(unsold, seat.SeatID)
			}
		}
		rand.Shuffle(len(unsold), func(i, j int) {
			unsold[i], unsold[j] = unsold[j], unsold[i]
		})

		meta := info.ArtistName + "," + info.TicketName + "," + info.Name
		if err := s.store.SetInfo(ctx, store.VariationMetaKey(info.ID), meta); err != nil {
			return fmt.Errorf("rebuild: meta of variation %d: %w", info.ID, err)
		}
		if err := s.store.BulkLoad(ctx, store.AllKey(info.ID), all); err != nil {
			return fmt.Errorf("rebuild: seat list of variation %d: %w", info.ID, err)
		}
		if err := s.store.BulkLoad(ctx, store.AvailKey(info.ID), unsold); err != nil {
			return fmt.Errorf("rebuild: pool of variation %d: %w", info.ID, err)
		}
		if err := s.store.SetCounter(ctx, store.VariationCountKey(info.ID), int64(len(unsold))); err != nil {
			return fmt.Errorf("rebuild: counter of variation %d: %w", info.ID, err)
		}

		if _, seen := ticketCounts[info.TicketID]; !seen {
			ticketOrder = append(ticketOrder, info.TicketID)
		}
		ticketCounts[info.TicketID] += int64(len(unsold))
	}

	for _, ticketID := range ticketOrder {
		if err := s.store.SetCounter(ctx, store.TicketCountKey(ticketID), ticketCounts[ticketID]); err != nil {
			return fmt.Errorf("rebuild: counter of ticket %d: %w", ticketID, err)
		}
	}

	s.setIndex(catalog.NewIndex(infos))
	log.Printf("rebuild: loaded %d variations across %d tickets in %s mode at %s",
		len(infos), len(ticketOrder), s.mode, time.Now().UTC().Format(time.RFC3339))
	return nil
}
