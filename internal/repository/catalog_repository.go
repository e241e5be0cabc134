package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/yut0n/ticketstock/internal/catalog"
	"github.com/yut0n/ticketstock/internal/model"
)

// CatalogRepo reads the static catalog tables: artist, ticket and
// variation.  The catalog is written only by the admin seed; every method
// here is a read.  All queries are parameterized — caller-supplied
// identifiers are never interpolated into query text.
type CatalogRepo struct {
	db *sql.DB
}

// NewCatalogRepo returns a CatalogRepo bound to the given database.
func NewCatalogRepo(db *sql.DB) *CatalogRepo { return &CatalogRepo{db: db} }

// ListArtists returns every artist ordered by ID.
func (r *CatalogRepo) ListArtists(ctx context.Context) ([]model.Artist, error) {
	const q = `SELECT id, name FROM artist ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	artists := make([]model.Artist, 0)
	for rows.Next() {
		var a model.Artist
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, err
		}
		artists = append(artists, a)
	}
	return artists, rows.Err()
}

// GetArtist returns a single artist by ID, or ErrNotFound.
func (r *CatalogRepo) GetArtist(ctx context.Context, artistID uint64) (*model.Artist, error) {
	const q = `SELECT id, name FROM artist WHERE id = ?`
	var a model.Artist
	err := r.db.QueryRowContext(ctx, q, artistID).Scan(&a.ID, &a.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListTicketsByArtist returns the artist's tickets ordered by ID.  The
// FreeCount field is left zero; callers fill it from the allocation store.
func (r *CatalogRepo) ListTicketsByArtist(ctx context.Context, artistID uint64) ([]model.Ticket, error) {
	const q = `SELECT id, name, artist_id FROM ticket WHERE artist_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, artistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	tickets := make([]model.Ticket, 0)
	for rows.Next() {
		var t model.Ticket
		if err := rows.Scan(&t.ID, &t.Name, &t.ArtistID); err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

// GetTicketWithArtist returns a ticket joined with its artist's name, or
// ErrNotFound.
func (r *CatalogRepo) GetTicketWithArtist(ctx context.Context, ticketID uint64) (*model.Ticket, error) {
	const q = `SELECT t.id, t.name, t.artist_id, a.name
	           FROM ticket t
	           JOIN artist a ON a.id = t.artist_id
	           WHERE t.id = ?`
	var t model.Ticket
	err := r.db.QueryRowContext(ctx, q, ticketID).Scan(&t.ID, &t.Name, &t.ArtistID, &t.ArtistName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListVariationsByTicket returns the ticket's variations ordered by ID.
func (r *CatalogRepo) ListVariationsByTicket(ctx context.Context, ticketID uint64) ([]model.Variation, error) {
	const q = `SELECT id, name, ticket_id FROM variation WHERE ticket_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	variations := make([]model.Variation, 0)
	for rows.Next() {
		var v model.Variation
		if err := rows.Scan(&v.ID, &v.Name, &v.TicketID); err != nil {
			return nil, err
		}
		variations = append(variations, v)
	}
	return variations, rows.Err()
}

// ListCatalog traverses the whole artist → ticket → variation hierarchy in
// one query and returns a row per variation together with its display names
// and total seat count.  The rebuild pipeline feeds this straight into a
// catalog.Index.
func (r *CatalogRepo) ListCatalog(ctx context.Context) ([]catalog.VariationInfo, error) {
	const q = `SELECT a.id, a.name, t.id, t.name, v.id, v.name, COUNT(s.seat_id)
	           FROM variation v
	           JOIN ticket t ON t.id = v.ticket_id
	           JOIN artist a ON a.id = t.artist_id
	           LEFT JOIN stock s ON s.variation_id = v.id
	           GROUP BY a.id, a.name, t.id, t.name, v.id, v.name
	           ORDER BY a.id, t.id, v.id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	infos := make([]catalog.VariationInfo, 0)
	for rows.Next() {
		var info catalog.VariationInfo
		if err := rows.Scan(
			&info.ArtistID, &info.ArtistName,
			&info.TicketID, &info.TicketName,
			&info.ID, &info.Name,
			&info.TotalSeats,
		); err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}
