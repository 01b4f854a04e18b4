package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/ticketr/internal/model"
)

const ticketColumns = "ticket_id, event_id, user_id, ticket_status, qr_code, purchase_date, check_in_time, purchase_source"

type TicketRepo struct{ db *sql.DB }

func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{db: db} }

func scanTicket(s rowScanner) (model.Ticket, error) {
	var t model.Ticket
	err := s.Scan(&t.ID, &t.EventID, &t.UserID, &t.Status, &t.QRCode, &t.PurchaseDate, &t.CheckInTime, &t.PurchaseSource)
	return t, err
}

// Create inserts t and fills t.ID.
func (r *TicketRepo) Create(ctx context.Context, t *model.Ticket) error {
	id, err := insertID(ctx, r.db,
		`INSERT INTO tickets (event_id, user_id, ticket_status, qr_code, purchase_date, check_in_time, purchase_source)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.EventID, t.UserID, t.Status, t.QRCode, t.PurchaseDate, t.CheckInTime, t.PurchaseSource)
	if err != nil {
		return err
	}
	t.ID = id
	return nil
}

func (r *TicketRepo) GetByID(ctx context.Context, id uint64) (model.Ticket, error) {
	return queryOne(ctx, r.db, scanTicket, ErrTicketNotFound,
		"SELECT "+ticketColumns+" FROM tickets WHERE ticket_id = ?", id)
}

func (r *TicketRepo) List(ctx context.Context) ([]model.Ticket, error) {
	return queryAll(ctx, r.db, scanTicket, "SELECT "+ticketColumns+" FROM tickets ORDER BY ticket_id")
}

func (r *TicketRepo) ListByEvent(ctx context.Context, eventID uint64) ([]model.Ticket, error) {
	return queryAll(ctx, r.db, scanTicket,
		"SELECT "+ticketColumns+" FROM tickets WHERE event_id = ? ORDER BY ticket_id", eventID)
}

func (r *TicketRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Ticket, error) {
	return queryAll(ctx, r.db, scanTicket,
		"SELECT "+ticketColumns+" FROM tickets WHERE user_id = ? ORDER BY ticket_id", userID)
}

func (r *TicketRepo) Update(ctx context.Context, t *model.Ticket) error {
	return updateOne(ctx, r.db, "SELECT 1 FROM tickets WHERE ticket_id = ?", t.ID, ErrTicketNotFound,
		`UPDATE tickets SET event_id = ?, user_id = ?, ticket_status = ?, qr_code = ?, purchase_date = ?,
			check_in_time = ?, purchase_source = ?
		 WHERE ticket_id = ?`,
		t.EventID, t.UserID, t.Status, t.QRCode, t.PurchaseDate, t.CheckInTime, t.PurchaseSource, t.ID)
}

func (r *TicketRepo) Delete(ctx context.Context, id uint64) error {
	return deleteOne(ctx, r.db, ErrTicketNotFound, "DELETE FROM tickets WHERE ticket_id = ?", id)
}

// CheckIn marks an active ticket as used at the given time. It returns
// ErrTicketNotFound for unknown ids and ErrConflict when the ticket is not
// active.
func (r *TicketRepo) CheckIn(ctx context.Context, id uint64, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE tickets SET ticket_status = ?, check_in_time = ? WHERE ticket_id = ? AND ticket_status = ?",
		model.TicketUsed, at, id, model.TicketActive)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	var status string
	err = r.db.QueryRowContext(ctx, "SELECT ticket_status FROM tickets WHERE ticket_id = ?", id).Scan(&status)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return ErrTicketNotFound
	case err != nil:
		return err
	default:
		return ErrConflict
	}
}
