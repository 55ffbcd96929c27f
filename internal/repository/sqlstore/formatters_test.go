package sqlstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTimeForDB(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected string
	}{
		{
			name:     "utc time",
			input:    time.Date(2024, 1, 15, 10, 30, 45, 0, time.UTC),
			expected: "2024-01-15T10:30:45Z",
		},
		{
			name:     "offset time is normalized to utc",
			input:    time.Date(2024, 6, 15, 14, 30, 0, 0, time.FixedZone("EST", -5*3600)),
			expected: "2024-06-15T19:30:00Z",
		},
		{
			name:     "nanoseconds are dropped",
			input:    time.Date(2024, 3, 10, 9, 15, 30, 123456789, time.UTC),
			expected: "2024-03-10T09:15:30Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatTimeForDB(tt.input))
		})
	}
}

func TestFormatTimePtrForDB(t *testing.T) {
	assert.Nil(t, FormatTimePtrForDB(nil))

	ts := time.Date(2024, 2, 29, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "2024-02-29T23:59:00Z", FormatTimePtrForDB(&ts))
}

func TestParseTimeFromDB(t *testing.T) {
	parsed, err := ParseTimeFromDB("2024-03-10T07:30:00-05:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 10, 12, 30, 0, 0, time.UTC), parsed)
	assert.Equal(t, time.UTC, parsed.Location())

	_, err = ParseTimeFromDB("2024-03-10 07:30")
	assert.Error(t, err)
}

func TestFormattedTimesSortChronologically(t *testing.T) {
	pacificEvening := FormatTimeForDB(time.Date(2024, 3, 10, 23, 0, 0, 0, time.FixedZone("PST", -8*3600)))
	utcNight := FormatTimeForDB(time.Date(2024, 3, 11, 1, 0, 0, 0, time.UTC))

	// 23:00-08:00 is 07:00Z the next day, after 01:00Z.
	assert.Greater(t, pacificEvening, utcNight)
}

func TestStoredTimeRange(t *testing.T) {
	tests := []struct {
		name      string
		input     time.Time
		storable  bool
		formatted string
	}{
		{
			name:      "first storable instant",
			input:     MinStoredTime,
			storable:  true,
			formatted: "0001-01-01T00:00:00Z",
		},
		{
			name:      "last storable instant",
			input:     MaxStoredTime,
			storable:  true,
			formatted: "9999-12-31T23:59:59Z",
		},
		{
			name:      "year zero",
			input:     time.Date(0, time.December, 31, 15, 11, 0, 0, time.UTC),
			storable:  false,
			formatted: "0001-01-01T00:00:00Z",
		},
		{
			name:      "year ten thousand",
			input:     time.Date(10000, time.January, 1, 1, 0, 0, 0, time.UTC),
			storable:  false,
			formatted: "9999-12-31T23:59:59Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.storable, IsStorableTime(tt.input))
			bound := FormatBoundForDB(tt.input)
			assert.Equal(t, tt.formatted, bound)
			_, err := ParseTimeFromDB(bound)
			assert.NoError(t, err)
		})
	}
}
