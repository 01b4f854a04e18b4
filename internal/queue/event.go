// Package queue defines the ticket.issued message and its log consumer.
package queue

import "fmt"

// TicketIssuedQueue is the durable queue ticket events are published to.
const TicketIssuedQueue = "ticket.issued"

// TicketIssuedEvent is published after a ticket row is created. It carries
// enough for downstream consumers to log or notify without querying MySQL.
type TicketIssuedEvent struct {
	TicketID       uint64 `json:"ticket_id"`
	EventID        uint64 `json:"event_id"`
	UserID         uint64 `json:"user_id"`
	QRCode         string `json:"qr_code"`
	PurchaseSource string `json:"purchase_source"`
	IssuedAt       string `json:"issued_at"`
}

// LogLine renders ev as one line of logs/tickets.log.
func (ev TicketIssuedEvent) LogLine() string {
	return fmt.Sprintf("[%s] Ticket issued | ticket_id=%d | event_id=%d | user_id=%d | source=%q | qr=%q\n",
		ev.IssuedAt, ev.TicketID, ev.EventID, ev.UserID, ev.PurchaseSource, ev.QRCode)
}
