package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/skip2/go-qrcode"

	"github.com/iliyamo/ticketr/internal/model"
	"github.com/iliyamo/ticketr/internal/queue"
	"github.com/iliyamo/ticketr/internal/repository"
)

const qrSize = 256

// TicketNotifier announces newly issued tickets. Delivery is best-effort.
type TicketNotifier interface {
	PublishTicketIssued(ctx context.Context, ev queue.TicketIssuedEvent) error
}

// TicketHandler serves /api/tickets, check-in and QR images.
type TicketHandler struct {
	Tickets  *repository.TicketRepo
	Notifier TicketNotifier // nil disables publishing
	Log      zerolog.Logger
}

func NewTicketHandler(tickets *repository.TicketRepo, notifier TicketNotifier, log zerolog.Logger) *TicketHandler {
	return &TicketHandler{Tickets: tickets, Notifier: notifier, Log: log}
}

type ticketReq struct {
	EventID        uint64          `json:"event_id" validate:"required"`
	UserID         uint64          `json:"user_id" validate:"required"`
	Status         string          `json:"ticket_status" validate:"omitempty,oneof=active used cancelled"`
	QRCode         string          `json:"qr_code"`
	PurchaseDate   model.Timestamp `json:"purchase_date"`
	CheckInTime    model.Timestamp `json:"check_in_time"`
	PurchaseSource string          `json:"purchase_source"`
}

// model fills the defaults a new ticket gets: active status, a generated QR
// payload, purchase time now and source "direct".
func (r ticketReq) model(id uint64) model.Ticket {
	t := model.Ticket{
		ID:             id,
		EventID:        r.EventID,
		UserID:         r.UserID,
		Status:         r.Status,
		QRCode:         strings.TrimSpace(r.QRCode),
		PurchaseDate:   r.PurchaseDate,
		CheckInTime:    r.CheckInTime,
		PurchaseSource: strings.TrimSpace(r.PurchaseSource),
	}
	if t.Status == "" {
		t.Status = model.TicketActive
	}
	if t.QRCode == "" {
		t.QRCode = "TICKET-" + uuid.NewString()
	}
	if t.PurchaseDate.IsZero() {
		t.PurchaseDate = model.NewTimestamp(time.Now().UTC().Truncate(time.Second))
	}
	if t.PurchaseSource == "" {
		t.PurchaseSource = "direct"
	}
	return t
}

func (h *TicketHandler) Create(c echo.Context) error {
	var req ticketReq
	if err := bind(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	t := req.model(0)
	if err := h.Tickets.Create(ctx, &t); err != nil {
		return serverError(c, h.Log, err, "failed to create ticket")
	}
	h.announce(t)
	return c.JSON(http.StatusCreated, echo.Map{
		"message":   "Ticket created successfully",
		"ticket_id": t.ID,
		"qr_code":   t.QRCode,
	})
}

// announce publishes ticket.issued off the request goroutine.
func (h *TicketHandler) announce(t model.Ticket) {
	if h.Notifier == nil {
		return
	}
	ev := queue.TicketIssuedEvent{
		TicketID:       t.ID,
		EventID:        t.EventID,
		UserID:         t.UserID,
		QRCode:         t.QRCode,
		PurchaseSource: t.PurchaseSource,
		IssuedAt:       time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
		defer cancel()
		if err := h.Notifier.PublishTicketIssued(ctx, ev); err != nil {
			h.Log.Warn().Err(err).Uint64("ticket_id", ev.TicketID).Msg("ticket.issued publish failed")
		}
	}()
}

func (h *TicketHandler) List(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()

	tickets, err := h.Tickets.List(ctx)
	if err != nil {
		return serverError(c, h.Log, err, "failed to list tickets")
	}
	return c.JSON(http.StatusOK, tickets)
}

func (h *TicketHandler) Get(c echo.Context) error {
	t, ok, err := h.load(c)
	if !ok {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

// load fetches the ticket named by :id. When ok is false the error
// response has already been written and err is what writing it returned.
func (h *TicketHandler) load(c echo.Context) (t model.Ticket, ok bool, err error) {
	id, ok := pathID(c, "id")
	if !ok {
		return t, false, badRequest(c, "invalid ticket id")
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	t, err = h.Tickets.GetByID(ctx, id)
	if errors.Is(err, repository.ErrTicketNotFound) {
		return t, false, notFound(c, "Ticket not found")
	}
	if err != nil {
		return t, false, serverError(c, h.Log, err, "failed to load ticket")
	}
	return t, true, nil
}

func (h *TicketHandler) ListByEvent(c echo.Context) error {
	eventID, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid event id")
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	tickets, err := h.Tickets.ListByEvent(ctx, eventID)
	if err != nil {
		return serverError(c, h.Log, err, "failed to list tickets")
	}
	return c.JSON(http.StatusOK, tickets)
}

func (h *TicketHandler) ListByUser(c echo.Context) error {
	userID, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid user id")
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	tickets, err := h.Tickets.ListByUser(ctx, userID)
	if err != nil {
		return serverError(c, h.Log, err, "failed to list tickets")
	}
	return c.JSON(http.StatusOK, tickets)
}

func (h *TicketHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid ticket id")
	}
	var req ticketReq
	if err := bind(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	t := req.model(id)
	err := h.Tickets.Update(ctx, &t)
	if errors.Is(err, repository.ErrTicketNotFound) {
		return notFound(c, "Ticket not found")
	}
	if err != nil {
		return serverError(c, h.Log, err, "failed to update ticket")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Ticket updated successfully"})
}

func (h *TicketHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid ticket id")
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	err := h.Tickets.Delete(ctx, id)
	if errors.Is(err, repository.ErrTicketNotFound) {
		return notFound(c, "Ticket not found")
	}
	if err != nil {
		return serverError(c, h.Log, err, "failed to delete ticket")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Ticket deleted successfully"})
}

// CheckIn marks an active ticket as used. Used or cancelled tickets get 409.
func (h *TicketHandler) CheckIn(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid ticket id")
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	at := time.Now().UTC().Truncate(time.Second)
	switch err := h.Tickets.CheckIn(ctx, id, at); {
	case errors.Is(err, repository.ErrTicketNotFound):
		return notFound(c, "Ticket not found")
	case errors.Is(err, repository.ErrConflict):
		return conflict(c, "ticket is not active")
	case err != nil:
		return serverError(c, h.Log, err, "failed to check in ticket")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":       "Ticket checked in successfully",
		"ticket_id":     id,
		"check_in_time": model.NewTimestamp(at),
	})
}

// QR renders the ticket's qr_code payload as a PNG.
func (h *TicketHandler) QR(c echo.Context) error {
	t, ok, err := h.load(c)
	if !ok {
		return err
	}
	if t.QRCode == "" {
		return notFound(c, "Ticket has no QR code")
	}
	png, err := qrcode.Encode(t.QRCode, qrcode.Medium, qrSize)
	if err != nil {
		return serverError(c, h.Log, err, "failed to render QR code")
	}
	return c.Blob(http.StatusOK, "image/png", png)
}
