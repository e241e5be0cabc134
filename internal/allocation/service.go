// Package allocation implements the seat allocation engine: the atomic buy
// operation, the derived availability views and the rebuild pipeline that
// regenerates the fast store from the durable ledger.
//
// Correctness rests on a single primitive: the atomic transfer of one seat
// ID from the available pool to the sold pool.  Everything that follows a
// successful transfer — counters, the recent feed, the durable sale record,
// the broker event — is best-effort bookkeeping that may lag or fail
// without ever causing a seat to be sold twice.  There is no in-process
// lock around allocation state; safety comes entirely from the store's
// atomic primitives.
package allocation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/yut0n/ticketstock/internal/catalog"
	"github.com/yut0n/ticketstock/internal/model"
	"github.com/yut0n/ticketstock/internal/queue"
	"github.com/yut0n/ticketstock/internal/repository"
	"github.com/yut0n/ticketstock/internal/store"
)

// RecentSalesLimit is the display capacity of the recent-sales feed.
const RecentSalesLimit = 10

// Mode selects which allocation backend is active.  Exactly one path runs
// per deployment; the choice is configuration, not runtime fallback.
type Mode string

const (
	// ModeFast allocates from the in-memory pool store (the hot path).
	ModeFast Mode = "redis"
	// ModeDurable allocates transactionally inside the ledger.  The
	// durable path is the authoritative reference behavior; it trades
	// throughput for running without the pool store.
	ModeDurable Mode = "mysql"
)

// SeatStore is the surface of the fast allocation store the service needs.
// Each method is a single bounded remote call, atomic with respect to
// itself.  *store.Store implements it.
type SeatStore interface {
	TransferOne(ctx context.Context, from, to string) (string, error)
	Decrement(ctx context.Context, key string) (int64, error)
	PushBounded(ctx context.Context, key, value string, capacity int64) error
	BulkLoad(ctx context.Context, key string, values []string) error
	SetCounter(ctx context.Context, key string, value int64) error
	SetInfo(ctx context.Context, key, value string) error
	ReadAll(ctx context.Context, key string) ([]string, error)
	ReadCounter(ctx context.Context, key string) (int64, error)
	ReadFeed(ctx context.Context, key string, n int64) ([]string, error)
	Flush(ctx context.Context) error
}

// Ledger is the surface of the durable ledger the service needs.
// *repository.OrderRepo implements it.
type Ledger interface {
	SeatsByVariation(ctx context.Context, variationID uint64) ([]model.Stock, error)
	RecordSale(ctx context.Context, memberID string, variationID uint64, seatID string, soldAt time.Time) error
	BuyRandomSeat(ctx context.Context, memberID string, variationID uint64) (string, error)
	AllSales(ctx context.Context) ([]model.Order, error)
}

// CatalogSource lists the full catalog for index construction.
// *repository.CatalogRepo implements it.
type CatalogSource interface {
	ListCatalog(ctx context.Context) ([]catalog.VariationInfo, error)
}

// Publisher delivers sale events to the message broker.  Publishing is
// best-effort; a nil Publisher disables it.
type Publisher interface {
	PublishSaleCompleted(ctx context.Context, event queue.SaleCompletedEvent) error
}

// PublisherFunc adapts a plain function to the Publisher interface.
type PublisherFunc func(ctx context.Context, event queue.SaleCompletedEvent) error

// PublishSaleCompleted calls f.
func (f PublisherFunc) PublishSaleCompleted(ctx context.Context, event queue.SaleCompletedEvent) error {
	return f(ctx, event)
}

// Service orchestrates seat allocation.  Construct with New; the Publisher
// field may be set before the service starts taking traffic.
type Service struct {
	store   SeatStore
	ledger  Ledger
	source  CatalogSource
	mode    Mode

	// Publisher, when non-nil, receives an event after every successful
	// buy.  Failures are logged and ignored.
	Publisher Publisher

	// mu guards only the catalog index pointer, which rebuild swaps
	// wholesale.  It is never held across a store or ledger call.
	mu  sync.RWMutex
	idx *catalog.Index
}

// New returns a Service using the given backends.  The catalog index
// starts empty; call LoadIndex or Rebuild before serving traffic.
//
// seatStore may be nil only in ModeDurable, where allocation runs inside
// the ledger: buys then skip the counter and feed bookkeeping, and the
// store-backed read views return ErrStoreUnavailable.
func New(seatStore SeatStore, ledger Ledger, source CatalogSource, mode Mode) *Service {
	return &Service{
		store:  seatStore,
		ledger: ledger,
		source: source,
		mode:   mode,
		idx:    catalog.NewIndex(nil),
	}
}

// LoadIndex builds the catalog index from the ledger without touching the
// fast store.  It is used at startup so a restarted process can resolve
// variations against a store populated by an earlier rebuild.
func (s *Service) LoadIndex(ctx context.Context) error {
	infos, err := s.source.ListCatalog(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	s.setIndex(catalog.NewIndex(infos))
	return nil
}

func (s *Service) index() *catalog.Index {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.idx
}

func (s *Service) setIndex(ix *catalog.Index) {
	s.mu.Lock()
	s.idx = ix
	s.mu.Unlock()
}

// resolve returns the catalog info for a variation, or ErrNotFound.
func (s *Service) resolve(variationID uint64) (catalog.VariationInfo, error) {
	info, ok := s.index().Resolve(variationID)
	if !ok {
		return catalog.VariationInfo{}, ErrNotFound
	}
	return info, nil
}

// Buy allocates one seat of the variation to the member.  On success it
// returns the seat ID; when the variation is exhausted it returns
// ErrSoldOut; an unknown variation returns ErrNotFound.  Any other error
// means the allocation itself failed and nothing was sold.
//
// The pool transfer is the only step whose atomicity matters: once it
// succeeds the seat is sold, and every subsequent bookkeeping failure is
// logged rather than rolled back.
func (s *Service) Buy(ctx context.Context, memberID string, variationID uint64) (string, error) {
	info, err := s.resolve(variationID)
	if err != nil {
		return "", err
	}
	if s.mode == ModeDurable {
		return s.buyDurable(ctx, memberID, info)
	}
	if s.store == nil {
		return "", ErrStoreUnavailable
	}

	seatID, err := s.store.TransferOne(ctx, store.AvailKey(variationID), store.SoldKey(variationID))
	if errors.Is(err, store.ErrPoolEmpty) {
		return "", ErrSoldOut
	}
	if err != nil {
		return "", fmt.Errorf("allocate seat: %w", err)
	}

	s.bookkeep(ctx, memberID, seatID, info, true)
	return seatID, nil
}

// buyDurable runs the transactional fallback: the ledger claims a random
// unsold seat itself, so no separate sale record is needed afterwards.
// Display counters and the feed are still maintained best-effort so the
// read views behave the same in either mode.
func (s *Service) buyDurable(ctx context.Context, memberID string, info catalog.VariationInfo) (string, error) {
	seatID, err := s.ledger.BuyRandomSeat(ctx, memberID, info.ID)
	if errors.Is(err, repository.ErrNoFreeSeat) {
		return "", ErrSoldOut
	}
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("allocate seat: %w", err)
	}

	s.bookkeep(ctx, memberID, seatID, info, false)
	return seatID, nil
}

// bookkeep performs the post-allocation steps: counter decrements, the
// recent feed push, the durable sale record (fast path only) and the
// broker event.  Every step is independent; a failure is logged and the
// rest still run.  The allocated seat is never rolled back from here.
func (s *Service) bookkeep(ctx context.Context, memberID, seatID string, info catalog.VariationInfo, recordSale bool) {
	soldAt := time.Now().UTC()

	if s.store == nil {
		log.Printf("allocation: no fast store, skipping counters and feed for seat %s", seatID)
	} else {
		if _, err := s.store.Decrement(ctx, store.VariationCountKey(info.ID)); err != nil {
			log.Printf("allocation: decrement variation %d counter failed: %v", info.ID, err)
		}
		if _, err := s.store.Decrement(ctx, store.TicketCountKey(info.TicketID)); err != nil {
			log.Printf("allocation: decrement ticket %d counter failed: %v", info.TicketID, err)
		}

		entry := model.RecentSale{
			SeatID:        seatID,
			ArtistName:    info.ArtistName,
			TicketName:    info.TicketName,
			VariationName: info.Name,
		}
		if err := s.store.PushBounded(ctx, store.RecentKey, entry.FeedValue(), RecentSalesLimit); err != nil {
			log.Printf("allocation: push recent sale failed: %v", err)
		}
	}

	if recordSale {
		if err := s.ledger.RecordSale(ctx, memberID, info.ID, seatID, soldAt); err != nil {
			if errors.Is(err, repository.ErrSeatAlreadySold) {
				log.Printf("allocation: consistency warning: seat %s of variation %d already recorded as sold", seatID, info.ID)
			} else {
				log.Printf("allocation: record sale for seat %s failed: %v", seatID, err)
			}
		}
	}

	if s.Publisher != nil {
		event := queue.SaleCompletedEvent{
			MemberID:      memberID,
			SeatID:        seatID,
			VariationID:   info.ID,
			VariationName: info.Name,
			TicketName:    info.TicketName,
			ArtistName:    info.ArtistName,
			SoldAt:        soldAt.Format(time.RFC3339),
		}
		if err := s.Publisher.PublishSaleCompleted(ctx, event); err != nil {
			log.Printf("allocation: publish sale event failed: %v", err)
		}
	}
}

// FreeCountVariation returns the maintained free-seat counter of a
// variation.  The counter is eventually consistent with the true pool size;
// a concurrent buy may not be reflected yet.
func (s *Service) FreeCountVariation(ctx context.Context, variationID uint64) (int64, error) {
	if _, err := s.resolve(variationID); err != nil {
		return 0, err
	}
	if s.store == nil {
		return 0, ErrStoreUnavailable
	}
	return s.store.ReadCounter(ctx, store.VariationCountKey(variationID))
}

// FreeCountTicket returns the maintained free-seat counter of a ticket,
// which the rebuild pipeline sets to the sum over the ticket's variations
// and every buy decrements alongside the variation counter.
func (s *Service) FreeCountTicket(ctx context.Context, ticketID uint64) (int64, error) {
	if !s.index().HasTicket(ticketID) {
		return 0, ErrNotFound
	}
	if s.store == nil {
		return 0, ErrStoreUnavailable
	}
	return s.store.ReadCounter(ctx, store.TicketCountKey(ticketID))
}

// SeatMap returns seat ID → sold for every seat of the variation.  It is
// computed by set difference: seats present in the full list but absent
// from the available pool are sold.  Buyer identity is not part of this
// view.
func (s *Service) SeatMap(ctx context.Context, variationID uint64) (map[string]bool, error) {
	if _, err := s.resolve(variationID); err != nil {
		return nil, err
	}
	if s.store == nil {
		return nil, ErrStoreUnavailable
	}
	all, err := s.store.ReadAll(ctx, store.AllKey(variationID))
	if err != nil {
		return nil, fmt.Errorf("read seats: %w", err)
	}
	avail, err := s.store.ReadAll(ctx, store.AvailKey(variationID))
	if err != nil {
		return nil, fmt.Errorf("read pool: %w", err)
	}
	seats := make(map[string]bool, len(all))
	for _, seatID := range all {
		seats[seatID] = true
	}
	for _, seatID := range avail {
		seats[seatID] = false
	}
	return seats, nil
}

// RecentSales returns the bounded recent-sales feed, most recent first.
func (s *Service) RecentSales(ctx context.Context) ([]model.RecentSale, error) {
	if s.store == nil {
		return nil, ErrStoreUnavailable
	}
	values, err := s.store.ReadFeed(ctx, store.RecentKey, RecentSalesLimit)
	if err != nil {
		return nil, fmt.Errorf("read feed: %w", err)
	}
	sales := make([]model.RecentSale, 0, len(values))
	for i, v := range values {
		sales = append(sales, model.ParseRecentSale(v, i+1))
	}
	return sales, nil
}

// AllSales returns the full ordered sale ledger from the durable store.
func (s *Service) AllSales(ctx context.Context) ([]model.Order, error) {
	return s.ledger.AllSales(ctx)
}
