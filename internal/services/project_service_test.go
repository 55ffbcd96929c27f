package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timesheet/internal/domain"
	"timesheet/internal/errors"
	"timesheet/internal/repository/sqlstore"
)

func stats(name string, minutes int, lastActive *time.Time) domain.ProjectStats {
	return domain.ProjectStats{
		Project:      domain.Project{Name: name},
		TotalMinutes: minutes,
		LastActive:   lastActive,
	}
}

func names(stats []domain.ProjectStats) []string {
	out := make([]string, len(stats))
	for i, s := range stats {
		out[i] = s.Name
	}
	return out
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestOrderProjects(t *testing.T) {
	input := []domain.ProjectStats{
		stats("beta", 30, timePtr(utc(2024, 1, 5, 9, 0))),
		stats("Alpha", 120, timePtr(utc(2024, 1, 1, 9, 0))),
		stats("gamma", 0, nil),
		stats("alpha", 30, timePtr(utc(2024, 1, 9, 9, 0))),
		stats("Delta", 0, nil),
	}

	tests := []struct {
		name     string
		order    domain.ProjectOrder
		expected []string
	}{
		{"by name, case-insensitive", domain.OrderByName, []string{"Alpha", "alpha", "beta", "Delta", "gamma"}},
		{"by total time", domain.OrderByTotalTime, []string{"Alpha", "alpha", "beta", "Delta", "gamma"}},
		{"by recent activity, idle last", domain.OrderByRecentActivity, []string{"alpha", "beta", "Alpha", "Delta", "gamma"}},
		{"unknown order falls back to name", domain.ProjectOrder("size"), []string{"Alpha", "alpha", "beta", "Delta", "gamma"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, names(OrderProjects(input, tt.order)))
		})
	}

	assert.Equal(t, "beta", input[0].Name, "input must not be reordered")
}

func TestOrderProjects_TotalTimeTies(t *testing.T) {
	input := []domain.ProjectStats{
		stats("Mill", 60, nil),
		stats("engine", 60, nil),
		stats("Notes", 90, nil),
	}
	assert.Equal(t, []string{"Notes", "engine", "Mill"}, names(OrderProjects(input, domain.OrderByTotalTime)))
}

func TestProjectService_CreateProject(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	service := NewProjectService(repo, nil)
	userID := createTestUser(t, repo, "ada", "UTC")

	tests := []struct {
		name           string
		projectName    string
		errorAssertion func(t *testing.T, err error)
	}{
		{
			name:        "trims the name",
			projectName: "  Engine  ",
		},
		{
			name:        "duplicate name conflicts",
			projectName: "Engine",
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeConflict))
			},
		},
		{
			name:        "different case is a different project",
			projectName: "engine",
		},
		{
			name:        "blank name",
			projectName: " ",
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeEmptyProjectName))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			project, err := service.CreateProject(ctx, userID, tt.projectName)
			if tt.errorAssertion != nil {
				tt.errorAssertion(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotZero(t, project.ID)
			assert.Equal(t, userID, project.UserID)
			assert.Equal(t, domain.NewProject(userID, tt.projectName).Name, project.Name)
		})
	}
}

func TestProjectService_TenantIsolation(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	service := NewProjectService(repo, nil)

	ada := createTestUser(t, repo, "ada", "UTC")
	charles := createTestUser(t, repo, "charles", "UTC")
	foreign := createTestProject(t, repo, charles, "Mill")

	_, err := service.GetProject(ctx, ada, foreign)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))

	_, err = service.RenameProject(ctx, ada, foreign, "Stolen")
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))

	err = service.DeleteProject(ctx, ada, foreign)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))

	project, err := service.GetProject(ctx, charles, foreign)
	require.NoError(t, err)
	assert.Equal(t, "Mill", project.Name)
}

func TestProjectService_RenameProject(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	service := NewProjectService(repo, nil)

	userID := createTestUser(t, repo, "ada", "UTC")
	engine := createTestProject(t, repo, userID, "Engine")
	createTestProject(t, repo, userID, "Notes")

	renamed, err := service.RenameProject(ctx, userID, engine, " Analytical Engine ")
	require.NoError(t, err)
	assert.Equal(t, "Analytical Engine", renamed.Name)

	_, err = service.RenameProject(ctx, userID, engine, "Notes")
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeConflict))
}

func TestProjectService_DeleteProjectCascades(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	service := NewProjectService(repo, nil)

	userID := createTestUser(t, repo, "ada", "UTC")
	engine := createTestProject(t, repo, userID, "Engine")
	sessionID := insertTestSession(t, repo, engine, utc(2024, 1, 8, 9, 0), utc(2024, 1, 8, 10, 0), 0, "UTC")

	require.NoError(t, service.DeleteProject(ctx, userID, engine))

	_, err := repo.GetSession(ctx, userID, sessionID)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestProjectService_EnsureProject(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	service := NewProjectService(repo, nil)
	userID := createTestUser(t, repo, "ada", "UTC")

	created, err := service.EnsureProject(ctx, userID, "Engine ")
	require.NoError(t, err)

	again, err := service.EnsureProject(ctx, userID, "Engine")
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)

	projects, err := repo.ListProjects(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, projects, 1)
}

func TestProjectService_ListOrderedProjects(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	service := NewProjectService(repo, nil)

	userID := createTestUser(t, repo, "ada", "UTC")
	engine := createTestProject(t, repo, userID, "engine")
	mill := createTestProject(t, repo, userID, "Mill")
	createTestProject(t, repo, userID, "Notes")

	insertTestSession(t, repo, engine, utc(2024, 1, 8, 9, 0), utc(2024, 1, 8, 10, 0), 0, "UTC")
	insertTestSession(t, repo, mill, utc(2024, 1, 9, 9, 0), utc(2024, 1, 9, 9, 30), 0, "UTC")
	insertTestSession(t, repo, engine, utc(2024, 1, 5, 9, 0), utc(2024, 1, 5, 9, 30), 10, "UTC")

	tests := []struct {
		order    domain.ProjectOrder
		expected []string
	}{
		{domain.OrderByName, []string{"engine", "Mill", "Notes"}},
		{domain.OrderByTotalTime, []string{"engine", "Mill", "Notes"}},
		{domain.OrderByRecentActivity, []string{"Mill", "engine", "Notes"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.order), func(t *testing.T) {
			require.NoError(t, repo.UpdateUserSettings(ctx, &sqlstore.User{ID: userID, TimeZone: "UTC", ProjectOrder: string(tt.order)}))

			ordered, err := service.ListOrderedProjects(ctx, userID)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, names(ordered))
		})
	}

	all, err := service.ProjectStats(ctx, userID)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 80, all[0].TotalMinutes)
	assert.Equal(t, 2, all[0].SessionCount)
	assert.Equal(t, utc(2024, 1, 8, 9, 0), *all[0].LastActive)
	assert.Nil(t, all[2].LastActive)
}

func TestProjectService_RecentProjects(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	service := NewProjectService(repo, nil)

	userID := createTestUser(t, repo, "ada", "UTC")
	for i, name := range []string{"A", "B", "C"} {
		id := createTestProject(t, repo, userID, name)
		start := utc(2024, 1, 1+i, 9, 0)
		insertTestSession(t, repo, id, start, start.Add(time.Hour), 0, "UTC")
	}
	createTestProject(t, repo, userID, "Idle")

	recent, err := service.RecentProjects(ctx, userID, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "B"}, names(recent))

	recent, err = service.RecentProjects(ctx, userID, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "B", "A"}, names(recent))
}
