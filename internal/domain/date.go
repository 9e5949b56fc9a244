package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// DateLayout is the wire and storage format of every calendar date.
const DateLayout = "2006-01-02"

// Date is a calendar day with no time-of-day or zone.
// The zero Date means "absent" (an unscheduled destination).
//
// Dates are held at UTC midnight so that day arithmetic never crosses a
// daylight-saving boundary.
type Date struct {
	t time.Time
}

// NewDate returns the calendar date year-month-day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate parses a "2006-01-02" string. An empty string yields the zero
// Date. A full timestamp ("2024-06-01T10:00:00Z") is truncated to its date part.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	if len(s) > len(DateLayout) && s[len(DateLayout)] == 'T' {
		s = s[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: invalid date %q", ErrValidation, s)
	}
	return Date{t: t}, nil
}

// MustParseDate is ParseDate for literals known to be valid. It panics otherwise.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// IsZero reports whether d is absent.
func (d Date) IsZero() bool { return d.t.IsZero() }

// Time returns d as a time.Time at UTC midnight.
func (d Date) Time() time.Time { return d.t }

// String formats d as "2006-01-02", or "" when d is absent.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

// AddDays returns d moved by n calendar days. Absent dates stay absent.
func (d Date) AddDays(n int) Date {
	if d.IsZero() {
		return d
	}
	return Date{t: d.t.AddDate(0, 0, n)}
}

// DaysSince returns the number of whole days from o to d (negative when d is earlier).
func (d Date) DaysSince(o Date) int {
	return int(math.Round(d.t.Sub(o.t).Hours() / 24))
}

// Equal reports whether d and o are the same calendar day.
func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }

// Before reports whether d is an earlier calendar day than o.
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after o.
func (d Date) Compare(o Date) int { return d.t.Compare(o.t) }

// MarshalJSON encodes d as "2006-01-02", and an absent date as "".
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts "2006-01-02", "", or null.
func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("%w: date must be a string", ErrValidation)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
