package domain

import (
	"time"
)

// Session is one recorded span of work on a project.
// Start and End are absolute instants; TimeZone is the IANA zone of the user
// when the session was last saved and decides which local day it belongs to.
type Session struct {
	ID          int64
	ProjectID   int64
	ProjectName string
	Start       time.Time
	End         time.Time
	Breaks      int
	TimeZone    string
}

// Minutes returns the net minutes worked: the whole minutes between Start and
// End minus breaks. The span is measured on absolute instants, so overnight
// and DST-crossing sessions count the time that actually elapsed.
func (s Session) Minutes() int {
	return int(s.End.Sub(s.Start)/time.Minute) - s.Breaks
}

// Duration returns the formatted net duration.
func (s Session) Duration() string {
	return FormatDuration(s.Minutes())
}

// Location returns the zone the session was recorded in.
func (s Session) Location() *time.Location {
	return MustLoadZone(s.TimeZone)
}

// LocalStart returns Start in the session's own zone.
func (s Session) LocalStart() time.Time {
	return s.Start.In(s.Location())
}

// LocalEnd returns End in the session's own zone.
func (s Session) LocalEnd() time.Time {
	return s.End.In(s.Location())
}

// LocalDate returns the calendar date the session started on, in its own zone.
func (s Session) LocalDate() Date {
	return DateOf(s.LocalStart())
}

// Overnight reports whether the session ends on a later local date than it starts.
func (s Session) Overnight() bool {
	return DateOf(s.LocalEnd()) != s.LocalDate()
}
