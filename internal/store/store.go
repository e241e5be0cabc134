// Package store implements the fast allocation store on top of Redis.  It
// holds, per variation, the ordered pool of unsold seat IDs, the sold list,
// the full seat list, display counters and a small metadata cache, plus the
// bounded recent-sales feed.  Every method is a single bounded remote call
// and is atomic with respect to itself; TransferOne is the only primitive
// whose atomicity is load-bearing for correctness — two concurrent callers
// can never receive the same seat because the pop-and-push is indivisible
// on the server.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ErrPoolEmpty is returned by TransferOne when the source pool has no
// elements left.  It is an expected outcome, not a store failure, and
// callers must treat it differently from connection errors.
var ErrPoolEmpty = errors.New("store: pool empty")

// Store wraps a Redis client with the allocation primitives.  The zero
// value is not usable; construct with New.
type Store struct {
	rdb *redis.Client
}

// New returns a Store backed by the given Redis client.
func New(rdb *redis.Client) *Store {
	if rdb == nil {
		panic("nil redis client passed to store.New")
	}
	return &Store{rdb: rdb}
}

// TransferOne atomically removes one seat ID from the tail of the from list
// and pushes it onto the head of the to list, returning the moved ID.  When
// the source list is empty it returns ErrPoolEmpty.
func (s *Store) TransferOne(ctx context.Context, from, to string) (string, error) {
	seatID, err := s.rdb.LMove(ctx, from, to, "RIGHT", "LEFT").Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrPoolEmpty
	}
	if err != nil {
		return "", fmt.Errorf("lmove %s -> %s: %w", from, to, err)
	}
	return seatID, nil
}

// Decrement atomically decrements a display counter and returns the new
// value.  Counters are bookkeeping only; allocation correctness never
// depends on them.
func (s *Store) Decrement(ctx context.Context, key string) (int64, error) {
	n, err := s.rdb.Decr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("decr %s: %w", key, err)
	}
	return n, nil
}

// PushBounded prepends value to the feed at key and trims the feed to its
// capacity most recent entries.  The push and trim run in one pipeline so
// the feed never grows past capacity in storage.
func (s *Store) PushBounded(ctx context.Context, key, value string, capacity int64) error {
	pipe := s.rdb.TxPipeline()
	pipe.LPush(ctx, key, value)
	pipe.LTrim(ctx, key, 0, capacity-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("push %s: %w", key, err)
	}
	return nil
}

// BulkLoad appends values to the list at key in order.  Used only by the
// rebuild pipeline; a nil or empty slice is a no-op.
func (s *Store) BulkLoad(ctx context.Context, key string, values []string) error {
	if len(values) == 0 {
		return nil
	}
	args := make([]interface{}, len(values))
	for i, v := range values {
		args[i] = v
	}
	if err := s.rdb.RPush(ctx, key, args...).Err(); err != nil {
		return fmt.Errorf("rpush %s: %w", key, err)
	}
	return nil
}

// SetCounter sets a display counter to an absolute value (rebuild only).
func (s *Store) SetCounter(ctx context.Context, key string, value int64) error {
	if err := s.rdb.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// SetInfo stores a catalog metadata string (rebuild only).
func (s *Store) SetInfo(ctx context.Context, key, value string) error {
	if err := s.rdb.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// ReadAll returns every element of the list at key, head first.
func (s *Store) ReadAll(ctx context.Context, key string) ([]string, error) {
	vals, err := s.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("lrange %s: %w", key, err)
	}
	return vals, nil
}

// ReadCounter returns the current value of a display counter.  A missing
// counter reads as zero.
func (s *Store) ReadCounter(ctx context.Context, key string) (int64, error) {
	n, err := s.rdb.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get %s: %w", key, err)
	}
	return n, nil
}

// ReadFeed returns up to n elements from the head of the feed at key,
// most recent first.
func (s *Store) ReadFeed(ctx context.Context, key string, n int64) ([]string, error) {
	vals, err := s.rdb.LRange(ctx, key, 0, n-1).Result()
	if err != nil {
		return nil, fmt.Errorf("lrange %s: %w", key, err)
	}
	return vals, nil
}

// Flush wipes the entire store.  Only the rebuild pipeline calls this, and
// rebuild must never run concurrently with live buys.
func (s *Store) Flush(ctx context.Context) error {
	if err := s.rdb.FlushDB(ctx).Err(); err != nil {
		return fmt.Errorf("flushdb: %w", err)
	}
	return nil
}
