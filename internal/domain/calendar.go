package domain

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Supported calendar range. Stored instants must also fall inside it once
// converted to UTC.
const (
	MinYear = 1
	MaxYear = 9999
)

// Date is a calendar date without a time zone.
// It is the key sessions are bucketed by once their start instant has been
// projected through the zone they were recorded in.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// NewDate normalizes the given components the way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// ParseDate parses a YYYY-MM-DD string with a year in 0001-9999.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil || t.Year() < MinYear {
		return Date{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return DateOf(t), nil
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after o.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

// Before reports whether d is before o.
func (d Date) Before(o Date) bool {
	return d.Compare(o) < 0
}

// AddDays returns the date n days after d.
func (d Date) AddDays(n int) Date {
	return NewDate(d.Year, d.Month, d.Day+n)
}

// CalendarMonth returns the month d falls in.
func (d Date) CalendarMonth() Month {
	return Month{Year: d.Year, Month: d.Month}
}

// StartIn returns the first instant whose local date in loc is d.
// When midnight falls in a DST gap that is the transition instant, not 00:00.
func (d Date) StartIn(loc *time.Location) time.Time {
	t := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
	if DateOf(t) == d {
		return t
	}
	// time.Date resolved the missing midnight with the offset in effect
	// before the gap, landing on the previous day.
	_, offset := t.Zone()
	naive := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
	return naive.Add(-time.Duration(offset) * time.Second).In(loc)
}

// Month is a calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// NewMonth validates and builds a Month.
func NewMonth(year int, month time.Month) (Month, error) {
	if month < time.January || month > time.December {
		return Month{}, fmt.Errorf("invalid month %d", month)
	}
	if year < MinYear || year > MaxYear {
		return Month{}, fmt.Errorf("invalid year %d", year)
	}
	return Month{Year: year, Month: month}, nil
}

// MonthOf returns the calendar month of t in t's own location.
func MonthOf(t time.Time) Month {
	return DateOf(t).CalendarMonth()
}

// String formats the month as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, m.Month)
}

// ParseMonth parses a YYYY-MM string.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q, expected YYYY-MM", s)
	}
	return NewMonth(t.Year(), t.Month())
}

// MarshalText implements encoding.TextMarshaler.
func (m Month) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Month) UnmarshalText(b []byte) error {
	parsed, err := ParseMonth(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Days returns the number of days in the month.
func (m Month) Days() int {
	return DaysIn(m.Year, m.Month)
}

// FirstDay returns the first date of the month.
func (m Month) FirstDay() Date {
	return Date{Year: m.Year, Month: m.Month, Day: 1}
}

// Next returns the following month.
func (m Month) Next() Month {
	return m.FirstDay().AddDays(m.Days()).CalendarMonth()
}

// Previous returns the preceding month.
func (m Month) Previous() Month {
	return m.FirstDay().AddDays(-1).CalendarMonth()
}

// Before reports whether m is before o.
func (m Month) Before(o Month) bool {
	return m.FirstDay().Before(o.FirstDay())
}

// Contains reports whether d falls in m.
func (m Month) Contains(d Date) bool {
	return d.Year == m.Year && d.Month == m.Month
}

// DaysIn returns the number of days in the given month of the proleptic
// Gregorian calendar.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
