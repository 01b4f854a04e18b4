package repository

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/ticketr/internal/model"
)

const eventColumns = `event_id, org_id, event_name, event_date, location, max_attendees,
	ticket_price, event_category, event_status, is_sponsored, sponsor_name,
	vip_access_time, general_access_time`

// EventRepo encapsulates all queries on EVENTS, including the upcoming-event
// search used by the recommender.
type EventRepo struct{ db *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// scanEvent reads a NULL ticket_price as zero, which renders as FREE.
func scanEvent(s rowScanner) (model.Event, error) {
	var e model.Event
	var price decimal.NullDecimal
	err := s.Scan(&e.ID, &e.OrgID, &e.Name, &e.Date, &e.Location, &e.MaxAttendees,
		&price, &e.Category, &e.Status, &e.IsSponsored, &e.SponsorName,
		&e.VIPAccessTime, &e.GeneralAccessTime)
	e.TicketPrice = price.Decimal
	return e, err
}

// Create inserts e and fills e.ID. Category and status are normalised first.
func (r *EventRepo) Create(ctx context.Context, e *model.Event) error {
	normalizeEvent(e)
	id, err := insertID(ctx, r.db,
		`INSERT INTO EVENTS (org_id, event_name, event_date, location, max_attendees, ticket_price,
			event_category, event_status, is_sponsored, sponsor_name, vip_access_time, general_access_time)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.OrgID, e.Name, e.Date, e.Location, e.MaxAttendees, e.TicketPrice,
		e.Category, e.Status, e.IsSponsored, e.SponsorName, e.VIPAccessTime, e.GeneralAccessTime)
	if err != nil {
		return err
	}
	e.ID = id
	return nil
}

func (r *EventRepo) GetByID(ctx context.Context, id uint64) (model.Event, error) {
	return queryOne(ctx, r.db, scanEvent, ErrEventNotFound,
		"SELECT "+eventColumns+" FROM EVENTS WHERE event_id = ?", id)
}

func (r *EventRepo) List(ctx context.Context) ([]model.Event, error) {
	return queryAll(ctx, r.db, scanEvent, "SELECT "+eventColumns+" FROM EVENTS ORDER BY event_date")
}

// ListByOrg returns the events owned by one organization.
func (r *EventRepo) ListByOrg(ctx context.Context, orgID uint64) ([]model.Event, error) {
	return queryAll(ctx, r.db, scanEvent,
		"SELECT "+eventColumns+" FROM EVENTS WHERE org_id = ? ORDER BY event_date", orgID)
}

func (r *EventRepo) Update(ctx context.Context, e *model.Event) error {
	normalizeEvent(e)
	return updateOne(ctx, r.db, "SELECT 1 FROM EVENTS WHERE event_id = ?", e.ID, ErrEventNotFound,
		`UPDATE EVENTS SET org_id = ?, event_name = ?, event_date = ?, location = ?, max_attendees = ?,
			ticket_price = ?, event_category = ?, event_status = ?, is_sponsored = ?, sponsor_name = ?,
			vip_access_time = ?, general_access_time = ?
		 WHERE event_id = ?`,
		e.OrgID, e.Name, e.Date, e.Location, e.MaxAttendees, e.TicketPrice, e.Category, e.Status,
		e.IsSponsored, e.SponsorName, e.VIPAccessTime, e.GeneralAccessTime, e.ID)
}

// Delete removes the event and its tickets in one transaction. Advertisements
// and chat records referencing the event are left untouched.
func (r *EventRepo) Delete(ctx context.Context, id uint64) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM tickets WHERE event_id = ?", id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM EVENTS WHERE event_id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrEventNotFound
		return err
	}
	return nil
}

func normalizeEvent(e *model.Event) {
	e.Category = model.NormalizeCategory(e.Category)
	if e.Status == "" {
		e.Status = model.EventUpcoming
	}
}
