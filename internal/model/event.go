package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Event categories. The set is closed; anything else is stored as "other".
const (
	CategoryMusic     = "music"
	CategoryTech      = "tech"
	CategorySports    = "sports"
	CategoryFood      = "food"
	CategoryArt       = "art"
	CategoryCulture   = "culture"
	CategoryBusiness  = "business"
	CategoryEducation = "education"
	CategoryHealth    = "health"
	CategoryOther     = "other"
)

// Categories lists every category in display order.
var Categories = []string{
	CategoryMusic, CategoryTech, CategorySports, CategoryFood, CategoryArt,
	CategoryCulture, CategoryBusiness, CategoryEducation, CategoryHealth, CategoryOther,
}

// Event statuses.
const (
	EventUpcoming = "upcoming"
	EventActive   = "active"
	EventClosed   = "closed"
)

// NormalizeCategory lower-cases c and maps unknown values to CategoryOther.
func NormalizeCategory(c string) string {
	c = strings.ToLower(strings.TrimSpace(c))
	for _, known := range Categories {
		if c == known {
			return c
		}
	}
	return CategoryOther
}

// Event mirrors a row of the EVENTS table. An event belongs to one
// organization; tickets and advertisements reference it.
type Event struct {
	ID                uint64          `json:"event_id"`
	OrgID             uint64          `json:"org_id"`
	Name              string          `json:"event_name"`
	Date              Timestamp       `json:"event_date"`
	Location          string          `json:"location"`
	MaxAttendees      *int64          `json:"max_attendees"`
	TicketPrice       decimal.Decimal `json:"ticket_price"`
	Category          string          `json:"event_category"`
	Status            string          `json:"event_status"`
	IsSponsored       bool            `json:"is_sponsored"`
	SponsorName       *string         `json:"sponsor_name"`
	VIPAccessTime     Timestamp       `json:"vip_access_time"`
	GeneralAccessTime Timestamp       `json:"general_access_time"`
}
