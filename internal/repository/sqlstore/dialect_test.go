package sqlstore

import (
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestDialect_Rebind(t *testing.T) {
	query := "SELECT id FROM sessions WHERE project_id = ? AND start_time >= ? AND start_time < ?"

	assert.Equal(t, query, DialectSQLite.Rebind(query))
	assert.Equal(t,
		"SELECT id FROM sessions WHERE project_id = $1 AND start_time >= $2 AND start_time < $3",
		DialectPostgres.Rebind(query))
}

func TestParseDialect(t *testing.T) {
	tests := []struct {
		driver   string
		expected Dialect
		ok       bool
	}{
		{"sqlite", DialectSQLite, true},
		{"SQLite3", DialectSQLite, true},
		{"postgres", DialectPostgres, true},
		{"postgresql", DialectPostgres, true},
		{"mysql", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			dialect, ok := ParseDialect(tt.driver)
			assert.Equal(t, tt.expected, dialect)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestIsUniqueViolation_Postgres(t *testing.T) {
	assert.True(t, isUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("plain")))
}
