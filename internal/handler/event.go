package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/ticketr/internal/model"
	"github.com/iliyamo/ticketr/internal/repository"
)

// EventHandler serves /api/events.
type EventHandler struct {
	Events *repository.EventRepo
	Log    zerolog.Logger
}

func NewEventHandler(events *repository.EventRepo, log zerolog.Logger) *EventHandler {
	return &EventHandler{Events: events, Log: log}
}

type eventReq struct {
	OrgID             uint64           `json:"org_id" validate:"required"`
	Name              string           `json:"event_name" validate:"required"`
	Date              model.Timestamp  `json:"event_date" validate:"required"`
	Location          string           `json:"location" validate:"required"`
	MaxAttendees      *int64           `json:"max_attendees" validate:"omitempty,gte=0"`
	TicketPrice       *decimal.Decimal `json:"ticket_price" validate:"required"`
	Category          string           `json:"event_category"`
	Status            string           `json:"event_status" validate:"omitempty,oneof=upcoming active closed"`
	IsSponsored       bool             `json:"is_sponsored"`
	SponsorName       *string          `json:"sponsor_name"`
	VIPAccessTime     model.Timestamp  `json:"vip_access_time"`
	GeneralAccessTime model.Timestamp  `json:"general_access_time"`
}

func (r eventReq) model(id uint64) model.Event {
	return model.Event{
		ID:                id,
		OrgID:             r.OrgID,
		Name:              strings.TrimSpace(r.Name),
		Date:              r.Date,
		Location:          strings.TrimSpace(r.Location),
		MaxAttendees:      r.MaxAttendees,
		TicketPrice:       *r.TicketPrice,
		Category:          r.Category,
		Status:            r.Status,
		IsSponsored:       r.IsSponsored,
		SponsorName:       r.SponsorName,
		VIPAccessTime:     r.VIPAccessTime,
		GeneralAccessTime: r.GeneralAccessTime,
	}
}

func (h *EventHandler) bindEvent(c echo.Context) (eventReq, error) {
	var req eventReq
	if err := bind(c, &req); err != nil {
		return req, err
	}
	if req.TicketPrice.IsNegative() {
		return req, errors.New("ticket_price must not be negative")
	}
	return req, nil
}

func (h *EventHandler) Create(c echo.Context) error {
	req, err := h.bindEvent(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	e := req.model(0)
	if err := h.Events.Create(ctx, &e); err != nil {
		return serverError(c, h.Log, err, "failed to create event")
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Event created successfully", "event_id": e.ID})
}

func (h *EventHandler) List(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()

	events, err := h.Events.List(ctx)
	if err != nil {
		return serverError(c, h.Log, err, "failed to list events")
	}
	return c.JSON(http.StatusOK, events)
}

func (h *EventHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid event id")
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	e, err := h.Events.GetByID(ctx, id)
	if errors.Is(err, repository.ErrEventNotFound) {
		return notFound(c, "Event not found")
	}
	if err != nil {
		return serverError(c, h.Log, err, "failed to load event")
	}
	return c.JSON(http.StatusOK, e)
}

// ListByOrg returns the events an organization runs.
func (h *EventHandler) ListByOrg(c echo.Context) error {
	orgID, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid organization id")
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	events, err := h.Events.ListByOrg(ctx, orgID)
	if err != nil {
		return serverError(c, h.Log, err, "failed to list events")
	}
	return c.JSON(http.StatusOK, events)
}

func (h *EventHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid event id")
	}
	req, err := h.bindEvent(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	e := req.model(id)
	err = h.Events.Update(ctx, &e)
	if errors.Is(err, repository.ErrEventNotFound) {
		return notFound(c, "Event not found")
	}
	if err != nil {
		return serverError(c, h.Log, err, "failed to update event")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Event updated successfully"})
}

// Delete removes the event together with its tickets.
func (h *EventHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid event id")
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	err := h.Events.Delete(ctx, id)
	if errors.Is(err, repository.ErrEventNotFound) {
		return notFound(c, "Event not found")
	}
	if err != nil {
		return serverError(c, h.Log, err, "failed to delete event")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Event deleted successfully", "event_id": id})
}
