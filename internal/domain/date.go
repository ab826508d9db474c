package domain

import (
	"fmt"
	"time"
)

// dateLayout is the wire format for calendar dates: ISO 8601 without a time
// or timezone component. A Date is a whole day, never an instant.
const dateLayout = "2006-01-02"

// Date is a single calendar day. The embedded time.Time is always normalized
// to midnight UTC — truncation is mandatory before any comparison, otherwise
// daylight-saving shifts produce off-by-one errors when dates cross a DST
// boundary in the local zone.
type Date struct {
	time.Time
}

// NewDate builds a Date for the given year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an arbitrary instant to its calendar day in UTC.
func DateOf(t time.Time) Date {
	t = t.UTC()
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a "YYYY-MM-DD" string into a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("domain.ParseDate: %w", err)
	}
	return Date{t}, nil
}

// String returns the date in "YYYY-MM-DD" form.
func (d Date) String() string {
	return d.Format(dateLayout)
}

// AddDays returns the date n calendar days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return Date{d.AddDate(0, 0, n)}
}

// Epoch returns the number of whole days since the Unix epoch.
// Two Dates are the same calendar day iff their Epoch values are equal,
// which makes Epoch a safe map key where time.Time equality is not.
func (d Date) Epoch() int {
	return int(d.Unix() / 86400)
}

// MarshalJSON encodes the date as a quoted "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a quoted "YYYY-MM-DD" string.
func (d *Date) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("domain.Date: invalid date literal %q", string(b))
	}
	parsed, err := ParseDate(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DateRange is an inclusive span of calendar days. A single-day selection has
// Start == End. Invariant: Start <= End — use NewDateRange, which swaps the
// endpoints if the caller passes them reversed.
type DateRange struct {
	Start Date `json:"start"`
	End   Date `json:"end"`
}

// NewDateRange builds a DateRange from two endpoints in either order.
func NewDateRange(a, b Date) DateRange {
	if b.Before(a.Time) {
		a, b = b, a
	}
	return DateRange{Start: a, End: b}
}

// Contains reports whether d falls inside the range, bounds inclusive.
func (r DateRange) Contains(d Date) bool {
	return !d.Before(r.Start.Time) && !d.After(r.End.Time)
}

// Days returns the inclusive length of the range in days.
func (r DateRange) Days() int {
	return r.End.Epoch() - r.Start.Epoch() + 1
}
