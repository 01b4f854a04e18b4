package model

// Ticket statuses.
const (
	TicketActive    = "active"
	TicketUsed      = "used"
	TicketCancelled = "cancelled"
)

// Ticket mirrors a row of the tickets table.
type Ticket struct {
	ID             uint64    `json:"ticket_id"`
	EventID        uint64    `json:"event_id"`
	UserID         uint64    `json:"user_id"`
	Status         string    `json:"ticket_status"`
	QRCode         string    `json:"qr_code"`
	PurchaseDate   Timestamp `json:"purchase_date"`
	CheckInTime    Timestamp `json:"check_in_time"`
	PurchaseSource string    `json:"purchase_source"`
}
