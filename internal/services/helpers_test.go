package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"timesheet/internal/database"
	"timesheet/internal/domain"
	"timesheet/internal/repository/sqlstore"
)

func setupTestRepo(t *testing.T) *sqlstore.SQLRepository {
	t.Helper()

	db, dialect, err := database.Open("sqlite", ":memory:")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db, dialect, ":memory:"))

	repo := sqlstore.New(db, dialect)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func createTestUser(t *testing.T, repo sqlstore.Repository, username, zone string) int64 {
	t.Helper()
	user := &sqlstore.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		TimeZone:     zone,
		ProjectOrder: string(domain.OrderByName),
	}
	require.NoError(t, repo.CreateUser(context.Background(), user))
	return user.ID
}

func createTestProject(t *testing.T, repo sqlstore.Repository, userID int64, name string) int64 {
	t.Helper()
	project := &sqlstore.Project{UserID: userID, Name: name}
	require.NoError(t, repo.CreateProject(context.Background(), project))
	return project.ID
}

func insertTestSession(t *testing.T, repo sqlstore.Repository, projectID int64, start, end time.Time, breaks int, zone string) int64 {
	t.Helper()
	session := &sqlstore.Session{
		ProjectID: projectID,
		StartTime: start,
		EndTime:   end,
		Breaks:    breaks,
		TimeZone:  zone,
	}
	require.NoError(t, repo.CreateSession(context.Background(), session))
	return session.ID
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func utc(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}
