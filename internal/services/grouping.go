package services

import (
	"sort"
	"time"

	"timesheet/internal/domain"
)

// SortDirection orders day buckets by date.
type SortDirection int

const (
	// Ascending puts the earliest day first.
	Ascending SortDirection = iota
	// Descending puts the most recent day first.
	Descending
)

// NewDayBucket builds a bucket for date, sorting sessions by local start clock.
// A nil or empty input yields an empty, non-nil session slice and "0 minutes".
func NewDayBucket(date domain.Date, sessions []domain.Session) DayBucket {
	sorted := make([]domain.Session, len(sessions))
	copy(sorted, sessions)
	sortByLocalStart(sorted)

	minutes := domain.TotalMinutes(sorted)
	return DayBucket{
		Date:     date,
		Minutes:  minutes,
		Total:    domain.FormatDuration(minutes),
		Sessions: sorted,
	}
}

// GroupByLocalDate groups sessions by the date they start on in their own
// recorded zone. Input order does not matter; every session lands in exactly
// one bucket.
func GroupByLocalDate(sessions []domain.Session, dir SortDirection) []DayBucket {
	byDate := make(map[domain.Date][]domain.Session)
	for _, s := range sessions {
		date := s.LocalDate()
		byDate[date] = append(byDate[date], s)
	}

	dates := make([]domain.Date, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool {
		if dir == Descending {
			return dates[j].Before(dates[i])
		}
		return dates[i].Before(dates[j])
	})

	buckets := make([]DayBucket, len(dates))
	for i, date := range dates {
		buckets[i] = NewDayBucket(date, byDate[date])
	}
	return buckets
}

// GroupMonth returns one ascending bucket for every day of the month, empty
// days included. Sessions whose local date is not in the month are returned
// separately in outside.
func GroupMonth(sessions []domain.Session, year int, month time.Month) (buckets []DayBucket, outside []domain.Session) {
	m := domain.Month{Year: year, Month: month}

	byDate := make(map[domain.Date][]domain.Session)
	for _, s := range sessions {
		date := s.LocalDate()
		if !m.Contains(date) {
			outside = append(outside, s)
			continue
		}
		byDate[date] = append(byDate[date], s)
	}

	days := m.Days()
	buckets = make([]DayBucket, days)
	for day := 1; day <= days; day++ {
		date := domain.Date{Year: year, Month: month, Day: day}
		buckets[day-1] = NewDayBucket(date, byDate[date])
	}
	return buckets, outside
}

// sortByLocalStart orders sessions by wall-clock start in their own zone,
// falling back to the absolute instant.
func sortByLocalStart(sessions []domain.Session) {
	sort.SliceStable(sessions, func(i, j int) bool {
		ci, cj := secondOfDay(sessions[i].LocalStart()), secondOfDay(sessions[j].LocalStart())
		if ci != cj {
			return ci < cj
		}
		return sessions[i].Start.Before(sessions[j].Start)
	})
}

func secondOfDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}
