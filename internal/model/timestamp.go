package model

import (
	"bytes"
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// timestampLayouts are tried in order when a value arrives as text, either
// from a request body or from a driver running without parseTime.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Timestamp is a nullable DATETIME column. Text the store hands back that
// matches no known layout is kept verbatim in Raw so it can still be shown.
type Timestamp struct {
	Time  time.Time
	Raw   string
	Valid bool
}

// NewTimestamp wraps a time value.
func NewTimestamp(t time.Time) Timestamp { return Timestamp{Time: t, Valid: true} }

// ParseTimestamp parses text using the accepted layouts.
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewTimestamp(t), nil
		}
	}
	return Timestamp{}, fmt.Errorf("invalid date/time %q", s)
}

// IsZero reports whether the value is NULL.
func (t Timestamp) IsZero() bool { return !t.Valid && t.Raw == "" }

// Parsed reports whether a structured time is available.
func (t Timestamp) Parsed() bool { return t.Valid }

// Scan implements sql.Scanner.
func (t *Timestamp) Scan(src any) error {
	*t = Timestamp{}
	switch v := src.(type) {
	case nil:
		return nil
	case time.Time:
		*t = NewTimestamp(v)
		return nil
	case []byte:
		return t.scanText(string(v))
	case string:
		return t.scanText(v)
	default:
		return fmt.Errorf("timestamp: unsupported source type %T", src)
	}
}

func (t *Timestamp) scanText(s string) error {
	if parsed, err := ParseTimestamp(s); err == nil {
		*t = parsed
		return nil
	}
	t.Raw = s
	return nil
}

// Value implements driver.Valuer.
func (t Timestamp) Value() (driver.Value, error) {
	switch {
	case t.Valid:
		return t.Time, nil
	case t.Raw != "":
		return t.Raw, nil
	default:
		return nil, nil
	}
}

// MarshalJSON renders RFC 3339, the raw text, or null.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	switch {
	case t.Valid:
		return json.Marshal(t.Time.Format(time.RFC3339))
	case t.Raw != "":
		return json.Marshal(t.Raw)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts null or a string in one of the accepted layouts.
// Unlike Scan it rejects text it cannot parse.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if strings.TrimSpace(s) == "" {
		*t = Timestamp{}
		return nil
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
