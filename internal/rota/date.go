package rota

import (
	"fmt"
	"time"
)

// dateLayout is the ISO-8601 calendar date format used on the wire.
const dateLayout = "2006-01-02"

// Date is a calendar day, independent of time zone or time of day.
type Date struct {
	t time.Time
}

// NewDate constructs a Date from a year/month/day triple.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO-8601 "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("rota: invalid date %q: %w", s, err)
	}
	return Date{t: t}, nil
}

// String renders the date as "YYYY-MM-DD".
func (d Date) String() string {
	return d.t.Format(dateLayout)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	if len(data) < 2 {
		return fmt.Errorf("rota: invalid date literal %q", data)
	}
	parsed, err := ParseDate(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool { return d.t.After(other.t) }

// Equal reports whether d and other are the same calendar day.
func (d Date) Equal(other Date) bool { return d.t.Equal(other.t) }

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// Sub returns the number of days between d and other (d - other), as an int.
func (d Date) Sub(other Date) int {
	return int(d.t.Sub(other.t).Hours() / 24)
}

// ISOWeek returns the ISO-8601 (year, week) the date falls in.
func (d Date) ISOWeek() (year, week int) {
	return d.t.ISOWeek()
}

// WeekKey returns a stable "YYYY-Www" identifier for the date's ISO week.
func (d Date) WeekKey() string {
	year, week := d.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// Weekday returns the day of the week, Monday-first (0 = Monday).
func (d Date) Weekday() int {
	wd := int(d.t.Weekday())
	if wd == 0 {
		return 6
	}
	return wd - 1
}
