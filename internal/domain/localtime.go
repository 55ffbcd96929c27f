package domain

import (
	"fmt"
	"sync"
	"time"
	_ "time/tzdata"
)

const clockLayout = "15:04"

// Clock is a wall-clock time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses an HH:MM string.
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return Clock{}, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// ClockOf returns the wall clock of t in t's own location.
func ClockOf(t time.Time) Clock {
	return Clock{Hour: t.Hour(), Minute: t.Minute()}
}

// String formats the clock as HH:MM.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Minutes returns the minutes elapsed since midnight on an ordinary day.
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

var (
	zoneCacheMu sync.RWMutex
	zoneCache   = map[string]*time.Location{}
)

// LoadZone resolves an IANA zone name, caching the result.
// The empty name resolves to UTC.
func LoadZone(name string) (*time.Location, error) {
	if name == "" || name == "UTC" {
		return time.UTC, nil
	}

	zoneCacheMu.RLock()
	loc, ok := zoneCache[name]
	zoneCacheMu.RUnlock()
	if ok {
		return loc, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unknown time zone %q: %w", name, err)
	}

	zoneCacheMu.Lock()
	zoneCache[name] = loc
	zoneCacheMu.Unlock()
	return loc, nil
}

// MustLoadZone is LoadZone for names already validated; unknown names fall back to UTC.
func MustLoadZone(name string) *time.Location {
	loc, err := LoadZone(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// WallClockProblem names why a wall-clock reading has no single instant.
type WallClockProblem string

const (
	WallClockNonexistent WallClockProblem = "nonexistent"
	WallClockAmbiguous   WallClockProblem = "ambiguous"
)

// WallClockError is returned when a date and clock reading falls in a
// daylight-saving gap or overlap of the zone it is resolved in.
type WallClockError struct {
	Date    Date
	Clock   Clock
	Zone    string
	Problem WallClockProblem
}

func (e *WallClockError) Error() string {
	switch e.Problem {
	case WallClockAmbiguous:
		return fmt.Sprintf("%s %s occurs twice in %s because of a time zone change; the time is ambiguous", e.Date, e.Clock, e.Zone)
	default:
		return fmt.Sprintf("%s %s does not exist in %s because of a time zone change", e.Date, e.Clock, e.Zone)
	}
}

// ResolveWallClock converts a local date and clock reading in loc into an
// absolute instant. Readings skipped by a forward DST shift and readings
// repeated by a backward shift are rejected with a *WallClockError rather
// than silently normalized.
func ResolveWallClock(date Date, clock Clock, loc *time.Location) (time.Time, error) {
	naive := time.Date(date.Year, date.Month, date.Day, clock.Hour, clock.Minute, 0, 0, time.UTC)
	guess := time.Date(date.Year, date.Month, date.Day, clock.Hour, clock.Minute, 0, 0, loc)

	offsets := make(map[int]struct{}, 3)
	for _, probe := range []time.Time{guess.Add(-24 * time.Hour), guess, guess.Add(24 * time.Hour)} {
		_, offset := probe.Zone()
		offsets[offset] = struct{}{}
	}

	var matches []time.Time
	for offset := range offsets {
		candidate := naive.Add(-time.Duration(offset) * time.Second).In(loc)
		if DateOf(candidate) != date || ClockOf(candidate) != clock {
			continue
		}
		if !containsInstant(matches, candidate) {
			matches = append(matches, candidate)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return time.Time{}, &WallClockError{Date: date, Clock: clock, Zone: loc.String(), Problem: WallClockNonexistent}
	default:
		return time.Time{}, &WallClockError{Date: date, Clock: clock, Zone: loc.String(), Problem: WallClockAmbiguous}
	}
}

func containsInstant(ts []time.Time, t time.Time) bool {
	for _, existing := range ts {
		if existing.Equal(t) {
			return true
		}
	}
	return false
}
