package domain

import (
	"fmt"
)

// FormatDuration renders a minute count as "2 hours, 10 minutes".
// Hours and minutes are pluralized independently and a zero minute remainder
// is left out, so 120 becomes "2 hours".
func FormatDuration(minutes int) string {
	if minutes < 0 {
		return "-" + FormatDuration(-minutes)
	}
	if minutes < 60 {
		return pluralize(minutes, "minute")
	}

	hours := minutes / 60
	rest := minutes % 60

	formatted := pluralize(hours, "hour")
	if rest > 0 {
		formatted += ", " + pluralize(rest, "minute")
	}
	return formatted
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// TotalMinutes sums the net minutes of all sessions.
func TotalMinutes(sessions []Session) int {
	total := 0
	for _, s := range sessions {
		total += s.Minutes()
	}
	return total
}
