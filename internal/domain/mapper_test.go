package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"timesheet/internal/repository/sqlstore"
)

func TestUserMapper_RoundTrip(t *testing.T) {
	mapper := NewUserMapper()
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	user := User{ID: 1, Username: "ada", Email: "ada@example.com", PasswordHash: "h", TimeZone: "Europe/London", ProjectOrder: OrderByTotalTime, CreatedAt: created}
	row := mapper.ToDatabase(user)

	assert.Equal(t, "total_time", row.ProjectOrder)
	assert.Equal(t, user, mapper.FromDatabase(row))
}

func TestUserMapper_UnknownOrderFallsBack(t *testing.T) {
	user := NewUserMapper().FromDatabase(sqlstore.User{ID: 1, ProjectOrder: "alphabetical"})
	assert.Equal(t, OrderByName, user.ProjectOrder)
}

func TestSessionMapper_FromDatabaseSlice(t *testing.T) {
	start := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	rows := []*sqlstore.Session{
		{ID: 1, ProjectID: 2, ProjectName: "Engine", StartTime: start, EndTime: start.Add(time.Hour), Breaks: 5, TimeZone: "UTC"},
	}

	sessions := NewSessionMapper().FromDatabaseSlice(rows)

	expected := []Session{
		{ID: 1, ProjectID: 2, ProjectName: "Engine", Start: start, End: start.Add(time.Hour), Breaks: 5, TimeZone: "UTC"},
	}
	assert.Equal(t, expected, sessions)
	assert.Equal(t, *rows[0], NewSessionMapper().ToDatabase(sessions[0]))
}

func TestProjectMapper(t *testing.T) {
	mapper := NewProjectMapper()
	project := Project{ID: 3, UserID: 1, Name: "Notes"}

	assert.Equal(t, sqlstore.Project{ID: 3, UserID: 1, Name: "Notes"}, mapper.ToDatabase(project))
	assert.Equal(t, []Project{project}, mapper.FromDatabaseSlice([]*sqlstore.Project{{ID: 3, UserID: 1, Name: "Notes"}}))
}
