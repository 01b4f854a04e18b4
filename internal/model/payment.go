package model

import "github.com/shopspring/decimal"

// Payment mirrors a row of the PAYMENTS table.
type Payment struct {
	ID            uint64          `json:"payment_id"`
	UserID        uint64          `json:"user_id"`
	Amount        decimal.Decimal `json:"amount"`
	PlatformFee   decimal.Decimal `json:"platform_fee"`
	PaymentMethod string          `json:"payment_method"`
}
