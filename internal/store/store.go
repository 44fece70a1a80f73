// Package store reads back-office rows from the events database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"ms-backoffice/internal/models"
)

var ErrNotFound = errors.New("store: not found")

// Store is the read-only query layer. An empty eventID lists rows across all
// events.
type Store interface {
	ListEvents(ctx context.Context) ([]models.EventRow, error)
	GetEvent(ctx context.Context, id string) (*models.EventRow, error)
	ListReservations(ctx context.Context, eventID string) ([]models.ReservationRow, error)
	ListPayments(ctx context.Context, eventID string) ([]models.PaymentRow, error)
	ListTickets(ctx context.Context, eventID string) ([]models.TicketRow, error)
	GetTicket(ctx context.Context, id string) (*models.TicketRow, error)
	ListReviews(ctx context.Context, eventID string) ([]models.ReviewRow, error)
	ListSongs(ctx context.Context, eventID string) ([]models.SongSuggestionRow, error)
	ListVenues(ctx context.Context) ([]models.VenueRow, error)
}

// DB implements Store on bun.
type DB struct {
	Bun *bun.DB
}

func New(db *bun.DB) *DB {
	return &DB{Bun: db}
}

var _ Store = (*DB)(nil)

func (d *DB) ListEvents(ctx context.Context) ([]models.EventRow, error) {
	var rows []models.EventRow
	err := d.eventQuery(&rows).
		Order("e.starts_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	for i := range rows {
		pruneEvent(&rows[i])
	}
	return rows, nil
}

func (d *DB) GetEvent(ctx context.Context, id string) (*models.EventRow, error) {
	var row models.EventRow
	err := d.eventQuery(&row).
		Where("e.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, notFound(fmt.Sprintf("get event %s", id), err)
	}
	pruneEvent(&row)
	return &row, nil
}

func (d *DB) eventQuery(model any) *bun.SelectQuery {
	return d.Bun.NewSelect().
		Model(model).
		Relation("Venue").
		Relation("Organizer").
		Relation("Tags.Tag")
}

func (d *DB) ListReservations(ctx context.Context, eventID string) ([]models.ReservationRow, error) {
	var rows []models.ReservationRow
	q := d.Bun.NewSelect().
		Model(&rows).
		Relation("Event").
		Relation("Items.TicketType").
		Order("r.created_at DESC")
	if eventID != "" {
		q = q.Where("r.event_id = ?", eventID)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	for i := range rows {
		pruneReservation(&rows[i])
	}
	return rows, nil
}

func (d *DB) ListPayments(ctx context.Context, eventID string) ([]models.PaymentRow, error) {
	var rows []models.PaymentRow
	q := d.Bun.NewSelect().
		Model(&rows).
		Relation("Reservation").
		Relation("Reservation.Event").
		Order("p.created_at DESC")
	if eventID != "" {
		q = q.Where(`"reservation"."event_id" = ?`, eventID)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	for i := range rows {
		if rows[i].Reservation != nil && rows[i].Reservation.ID == "" {
			rows[i].Reservation = nil
		}
		if rows[i].Reservation != nil {
			pruneReservation(rows[i].Reservation)
		}
	}
	return rows, nil
}

func (d *DB) ListTickets(ctx context.Context, eventID string) ([]models.TicketRow, error) {
	var rows []models.TicketRow
	q := d.ticketQuery(&rows).Order("tk.created_at ASC")
	if eventID != "" {
		q = q.Where("tk.event_id = ?", eventID)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	for i := range rows {
		pruneTicket(&rows[i])
	}
	return rows, nil
}

func (d *DB) GetTicket(ctx context.Context, id string) (*models.TicketRow, error) {
	var row models.TicketRow
	err := d.ticketQuery(&row).
		Where("tk.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, notFound(fmt.Sprintf("get ticket %s", id), err)
	}
	pruneTicket(&row)
	return &row, nil
}

func (d *DB) ticketQuery(model any) *bun.SelectQuery {
	return d.Bun.NewSelect().
		Model(model).
		Relation("ReservationItem").
		Relation("ReservationItem.TicketType").
		Relation("CheckIns")
}

func (d *DB) ListReviews(ctx context.Context, eventID string) ([]models.ReviewRow, error) {
	var rows []models.ReviewRow
	q := d.Bun.NewSelect().
		Model(&rows).
		Relation("Profile").
		Relation("Event").
		Order("rv.created_at DESC")
	if eventID != "" {
		q = q.Where("rv.event_id = ?", eventID)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	for i := range rows {
		if rows[i].Profile != nil && rows[i].Profile.ID == "" {
			rows[i].Profile = nil
		}
		if rows[i].Event != nil && rows[i].Event.ID == "" {
			rows[i].Event = nil
		}
	}
	return rows, nil
}

func (d *DB) ListSongs(ctx context.Context, eventID string) ([]models.SongSuggestionRow, error) {
	var rows []models.SongSuggestionRow
	q := d.Bun.NewSelect().
		Model(&rows).
		Order("ss.created_at DESC")
	if eventID != "" {
		q = q.Where("ss.event_id = ?", eventID)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}
	return rows, nil
}

func (d *DB) ListVenues(ctx context.Context) ([]models.VenueRow, error) {
	var rows []models.VenueRow
	err := d.Bun.NewSelect().
		Model(&rows).
		Order("v.name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	return rows, nil
}

func notFound(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}
