package repository

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/ticketr/internal/model"
)

// EventSearch filters upcoming events. Zero values disable a filter; the
// name keywords are OR-ed together and AND-ed with the rest.
type EventSearch struct {
	Category     string
	NameKeywords []string
	MaxPrice     *decimal.Decimal
	Limit        int
}

// SearchUpcoming returns upcoming events matching q ordered by date.
func (r *EventRepo) SearchUpcoming(ctx context.Context, q EventSearch) ([]model.Event, error) {
	where := []string{"event_status = ?"}
	args := []any{model.EventUpcoming}

	if q.MaxPrice != nil {
		where = append(where, "ticket_price <= ?")
		args = append(args, *q.MaxPrice)
	}
	if q.Category != "" {
		where = append(where, "event_category = ?")
		args = append(args, q.Category)
	}
	if len(q.NameKeywords) > 0 {
		likes := make([]string, 0, len(q.NameKeywords))
		for _, kw := range q.NameKeywords {
			likes = append(likes, "event_name LIKE ?")
			args = append(args, "%"+kw+"%")
		}
		where = append(where, "("+strings.Join(likes, " OR ")+")")
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 10
	}
	args = append(args, limit)

	sql := "SELECT " + eventColumns + " FROM EVENTS WHERE " + strings.Join(where, " AND ") +
		" ORDER BY event_date ASC LIMIT ?"
	return queryAll(ctx, r.db, scanEvent, sql, args...)
}

// ListUpcoming returns the soonest upcoming events.
func (r *EventRepo) ListUpcoming(ctx context.Context, limit int) ([]model.Event, error) {
	return queryAll(ctx, r.db, scanEvent,
		"SELECT "+eventColumns+" FROM EVENTS WHERE event_status = ? ORDER BY event_date ASC LIMIT ?",
		model.EventUpcoming, limit)
}
