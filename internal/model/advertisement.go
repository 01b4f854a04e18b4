package model

import "github.com/shopspring/decimal"

// Advertisement mirrors a row of the ADVERTISEMENTS table. Each ad promotes
// one event for a date range.
type Advertisement struct {
	ID             uint64          `json:"advertisement_id"`
	AdvertiserName string          `json:"advertiser_name"`
	Type           string          `json:"advertisement_type"`
	EventID        uint64          `json:"event_id"`
	StartDate      Timestamp       `json:"start_date"`
	EndDate        Timestamp       `json:"end_date"`
	Cost           decimal.Decimal `json:"cost"`
	Status         string          `json:"status"`
}
