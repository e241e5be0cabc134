package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/yut0n/ticketstock/internal/model"
)

// OrderRepo owns the sale side of the durable ledger: the stock table
// holding one row per seat and the order_request table holding one row per
// completed buy.  A sale claims a stock row by setting its order reference;
// the `order_id IS NULL` guard on every claiming update is what makes the
// ledger itself refuse a double sale even if a caller misbehaves.
type OrderRepo struct {
	db *sql.DB
}

// NewOrderRepo returns an OrderRepo bound to the given database.
func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// SeatsByVariation returns every seat of a variation with its sold state,
// ordered by seat ID.  The rebuild pipeline uses this to repopulate the
// allocation pools.
func (r *OrderRepo) SeatsByVariation(ctx context.Context, variationID uint64) ([]model.Stock, error) {
	const q = `SELECT seat_id, order_id FROM stock WHERE variation_id = ? ORDER BY seat_id`
	rows, err := r.db.QueryContext(ctx, q, variationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	seats := make([]model.Stock, 0)
	for rows.Next() {
		var seatID string
		var orderID sql.NullInt64
		if err := rows.Scan(&seatID, &orderID); err != nil {
			return nil, err
		}
		seats = append(seats, model.Stock{
			SeatID:      seatID,
			VariationID: variationID,
			Sold:        orderID.Valid,
		})
	}
	return seats, rows.Err()
}

// RecordSale durably records a completed buy for a seat that the fast
// allocation store already handed out.  It inserts the order row and claims
// the exact stock row in one transaction.  When the stock row is already
// claimed the transaction is rolled back and ErrSeatAlreadySold is
// returned; the seat stays sold in the fast store either way.
func (r *OrderRepo) RecordSale(ctx context.Context, memberID string, variationID uint64, seatID string, soldAt time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const insQ = `INSERT INTO order_request (member_id) VALUES (?)`
	result, err := tx.ExecContext(ctx, insQ, memberID)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	orderID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("order id: %w", err)
	}

	const claimQ = `UPDATE stock SET order_id = ?, updated_at = ?
	                WHERE variation_id = ? AND seat_id = ? AND order_id IS NULL`
	claim, err := tx.ExecContext(ctx, claimQ, orderID, soldAt.UTC(), variationID, seatID)
	if err != nil {
		return fmt.Errorf("claim seat: %w", err)
	}
	affected, err := claim.RowsAffected()
	if err != nil {
		return fmt.Errorf("claim seat: %w", err)
	}
	if affected == 0 {
		return ErrSeatAlreadySold
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	committed = true
	return nil
}

// BuyRandomSeat is the transactional fallback allocator: it claims one
// random unsold seat of the variation entirely inside the ledger, without
// the fast store.  Only one allocation path is active per deployment; this
// one is selected by configuration.
//
// A zero-row claim is ambiguous on its own — it happens both when the
// variation is sold out and when the variation does not exist — so the
// method distinguishes the cases with an explicit count inside the same
// transaction instead of inferring from affected rows alone.  Store
// failures surface as wrapped errors, never as ErrNoFreeSeat.
func (r *OrderRepo) BuyRandomSeat(ctx context.Context, memberID string, variationID uint64) (string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const insQ = `INSERT INTO order_request (member_id) VALUES (?)`
	result, err := tx.ExecContext(ctx, insQ, memberID)
	if err != nil {
		return "", fmt.Errorf("insert order: %w", err)
	}
	orderID, err := result.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("order id: %w", err)
	}

	const claimQ = `UPDATE stock SET order_id = ?, updated_at = ?
	                WHERE variation_id = ? AND order_id IS NULL
	                ORDER BY RAND() LIMIT 1`
	claim, err := tx.ExecContext(ctx, claimQ, orderID, time.Now().UTC(), variationID)
	if err != nil {
		return "", fmt.Errorf("claim seat: %w", err)
	}
	affected, err := claim.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("claim seat: %w", err)
	}
	if affected == 0 {
		const countQ = `SELECT COUNT(*) FROM stock WHERE variation_id = ?`
		var total int64
		if err := tx.QueryRowContext(ctx, countQ, variationID).Scan(&total); err != nil {
			return "", fmt.Errorf("count seats: %w", err)
		}
		if total == 0 {
			return "", ErrNotFound
		}
		return "", ErrNoFreeSeat
	}

	const seatQ = `SELECT seat_id FROM stock WHERE order_id = ? LIMIT 1`
	var seatID string
	if err := tx.QueryRowContext(ctx, seatQ, orderID).Scan(&seatID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("claimed seat vanished for order %d", orderID)
		}
		return "", fmt.Errorf("read seat: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	committed = true
	return seatID, nil
}

// AllSales returns the full sale ledger ordered by order ID ascending.
// This is the authoritative, unbounded audit trail used for CSV export;
// the fast store's recent feed is display-only and capped.
func (r *OrderRepo) AllSales(ctx context.Context) ([]model.Order, error) {
	const q = `SELECT o.id, o.member_id, s.seat_id, s.variation_id, s.updated_at
	           FROM order_request o
	           JOIN stock s ON s.order_id = o.id
	           ORDER BY o.id ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	orders := make([]model.Order, 0)
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.MemberID, &o.SeatID, &o.VariationID, &o.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
