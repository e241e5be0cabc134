package allocation

import (
	"context"
	"sync"
	"time"

	"github.com/yut0n/ticketstock/internal/catalog"
	"github.com/yut0n/ticketstock/internal/model"
	"github.com/yut0n/ticketstock/internal/repository"
	"github.com/yut0n/ticketstock/internal/store"
)

// fakeStore is an in-memory SeatStore.  A single mutex makes each primitive
// atomic with respect to itself, mirroring the guarantee the real store
// provides per command.
type fakeStore struct {
	mu       sync.Mutex
	lists    map[string][]string
	counters map[string]int64
	infos    map[string]string

	transferErr  error // injected failure for TransferOne
	decrementErr error // injected failure for Decrement
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		lists:    make(map[string][]string),
		counters: make(map[string]int64),
		infos:    make(map[string]string),
	}
}

func (f *fakeStore) TransferOne(ctx context.Context, from, to string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.transferErr != nil {
		return "", f.transferErr
	}
	l := f.lists[from]
	if len(l) == 0 {
		return "", store.ErrPoolEmpty
	}
	seatID := l[len(l)-1]
	f.lists[from] = l[:len(l)-1]
	f.lists[to] = append([]string{seatID}, f.lists[to]...)
	return seatID, nil
}

func (f *fakeStore) Decrement(ctx context.Context, key string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.decrementErr != nil {
		return 0, f.decrementErr
	}
	f.counters[key]--
	return f.counters[key], nil
}

func (f *fakeStore) PushBounded(ctx context.Context, key, value string, capacity int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	l := append([]string{value}, f.lists[key]...)
	if int64(len(l)) > capacity {
		l = l[:capacity]
	}
	f.lists[key] = l
	return nil
}

func (f *fakeStore) BulkLoad(ctx context.Context, key string, values []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists[key] = append(f.lists[key], values...)
	return nil
}

func (f *fakeStore) SetCounter(ctx context.Context, key string, value int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counters[key] = value
	return nil
}

func (f *fakeStore) SetInfo(ctx context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.infos[key] = value
	return nil
}

func (f *fakeStore) ReadAll(ctx context.Context, key string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.lists[key]...), nil
}

func (f *fakeStore) ReadCounter(ctx context.Context, key string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counters[key], nil
}

func (f *fakeStore) ReadFeed(ctx context.Context, key string, n int64) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l := f.lists[key]
	if int64(len(l)) > n {
		l = l[:n]
	}
	return append([]string(nil), l...), nil
}

func (f *fakeStore) Flush(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = make(map[string][]string)
	f.counters = make(map[string]int64)
	f.infos = make(map[string]string)
	return nil
}

// fakeLedger is an in-memory Ledger holding seat rows per variation and an
// append-only order list.
type fakeLedger struct {
	mu        sync.Mutex
	seats     map[uint64][]model.Stock
	orders    []model.Order
	nextID    uint64
	recordErr error // injected failure for RecordSale
}

func newFakeLedger(seats map[uint64][]string) *fakeLedger {
	l := &fakeLedger{seats: make(map[uint64][]model.Stock)}
	for vid, ids := range seats {
		for _, id := range ids {
			l.seats[vid] = append(l.seats[vid], model.Stock{SeatID: id, VariationID: vid})
		}
	}
	return l
}

func (l *fakeLedger) SeatsByVariation(ctx context.Context, variationID uint64) ([]model.Stock, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]model.Stock(nil), l.seats[variationID]...), nil
}

func (l *fakeLedger) RecordSale(ctx context.Context, memberID string, variationID uint64, seatID string, soldAt time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.recordErr != nil {
		return l.recordErr
	}
	for i, s := range l.seats[variationID] {
		if s.SeatID != seatID {
			continue
		}
		if s.Sold {
			return repository.ErrSeatAlreadySold
		}
		l.seats[variationID][i].Sold = true
		l.nextID++
		l.orders = append(l.orders, model.Order{
			ID:          l.nextID,
			MemberID:    memberID,
			SeatID:      seatID,
			VariationID: variationID,
			UpdatedAt:   soldAt,
		})
		return nil
	}
	return repository.ErrNotFound
}

func (l *fakeLedger) BuyRandomSeat(ctx context.Context, memberID string, variationID uint64) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	rows, ok := l.seats[variationID]
	if !ok {
		return "", repository.ErrNotFound
	}
	for i, s := range rows {
		if s.Sold {
			continue
		}
		l.seats[variationID][i].Sold = true
		l.nextID++
		l.orders = append(l.orders, model.Order{
			ID:          l.nextID,
			MemberID:    memberID,
			SeatID:      s.SeatID,
			VariationID: variationID,
			UpdatedAt:   time.Now().UTC(),
		})
		return s.SeatID, nil
	}
	return "", repository.ErrNoFreeSeat
}

func (l *fakeLedger) AllSales(ctx context.Context) ([]model.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]model.Order(nil), l.orders...), nil
}

// fakeCatalog lists a fixed catalog.
type fakeCatalog struct {
	infos []catalog.VariationInfo
}

func (c *fakeCatalog) ListCatalog(ctx context.Context) ([]catalog.VariationInfo, error) {
	return append([]catalog.VariationInfo(nil), c.infos...), nil
}

// capturingPublisher records published events.
type capturingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *capturingPublisher) publish(seatID string) {
	p.mu.Lock()
	p.events = append(p.events, seatID)
	p.mu.Unlock()
}
