package recommend

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/ticketr/internal/model"
)

const dateLayout = "January 2, 2006 at 3:04 PM"

const apology = "I'm having trouble finding events right now. Please try again in a moment!"

// FormatDate renders a structured date in long form, passes unparsed text
// through and falls back to "TBD".
func FormatDate(ts model.Timestamp) string {
	switch {
	case ts.Parsed():
		return ts.Time.Format(dateLayout)
	case ts.Raw != "":
		return ts.Raw
	default:
		return "TBD"
	}
}

// FormatPrice renders "$15" for whole amounts, "$12.50" otherwise and
// "FREE" when the price is not positive.
func FormatPrice(p decimal.Decimal) string {
	if !p.IsPositive() {
		return "FREE"
	}
	if p.Equal(p.Truncate(0)) {
		return "$" + p.StringFixed(0)
	}
	return "$" + p.StringFixed(2)
}

func suggest(e model.Event) Suggestion {
	return Suggestion{
		ID:        e.ID,
		Name:      e.Name,
		Date:      FormatDate(e.Date),
		Location:  e.Location,
		Price:     FormatPrice(e.TicketPrice),
		Attendees: e.MaxAttendees,
		Status:    e.Status,
	}
}

func render(f Filters, events []Suggestion) string {
	switch len(events) {
	case 0:
		switch {
		case f.Category != "":
			return fmt.Sprintf("I couldn't find any %s events matching your criteria right now. Try browsing all upcoming events!", f.Category)
		case f.MaxPrice != nil && *f.MaxPrice == 0:
			return "No free events available at the moment. Check out our other affordable events!"
		default:
			return "No events match your request right now. Try adjusting your search criteria!"
		}
	case 1:
		e := events[0]
		return fmt.Sprintf("Great! I found a perfect event for you: **%s** on %s at %s. Price: %s. Would you like to register for it?",
			e.Name, e.Date, e.Location, e.Price)
	}

	var priceInfo, typeInfo string
	if f.MaxPrice != nil {
		if *f.MaxPrice > 0 {
			priceInfo = fmt.Sprintf(" under $%d", *f.MaxPrice)
		} else {
			priceInfo = " for free"
		}
	}
	if f.Category != "" {
		typeInfo = f.Category + " "
	}

	top := events
	if len(top) > listedInText {
		top = top[:listedInText]
	}
	lines := make([]string, 0, len(top))
	for _, e := range top {
		lines = append(lines, fmt.Sprintf("• **%s** - %s @ %s (%s)", e.Name, e.Date, e.Location, e.Price))
	}

	return fmt.Sprintf("Awesome! I found %d %sevents%s that match your interests! Here are the top recommendations:\n",
		len(events), typeInfo, priceInfo) +
		strings.Join(lines, "\n") +
		"\n\nClick on any event to register or get more details!"
}
