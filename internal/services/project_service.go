package services

import (
	"context"
	"sort"
	"strings"

	"timesheet/internal/domain"
	"timesheet/internal/errors"
	"timesheet/internal/repository/sqlstore"
	"timesheet/internal/validation"
)

const (
	// DefaultRecentProjectsLimit is the number of "recently touched" shortcuts
	DefaultRecentProjectsLimit = 5
)

// projectServiceImpl implements the ProjectService interface
type projectServiceImpl struct {
	repo             sqlstore.Repository
	mapper           *domain.Mapper
	projectValidator *validation.ProjectValidator
}

// NewProjectService creates a new ProjectService instance
func NewProjectService(repo sqlstore.Repository, v *validation.Validator) ProjectService {
	return &projectServiceImpl{
		repo:             repo,
		mapper:           domain.NewMapper(),
		projectValidator: validation.NewProjectValidator(v),
	}
}

// CreateProject creates a project for the user
func (p *projectServiceImpl) CreateProject(ctx context.Context, userID int64, name string) (*domain.Project, error) {
	trimmedName, err := p.projectValidator.GetValidProjectName(name)
	if err != nil {
		return nil, err
	}

	dbProject := p.mapper.Project.ToDatabase(domain.NewProject(userID, trimmedName))
	if err := p.repo.CreateProject(ctx, &dbProject); err != nil {
		return nil, err
	}

	project := p.mapper.Project.FromDatabase(dbProject)
	return &project, nil
}

// GetProject retrieves one of the user's projects
func (p *projectServiceImpl) GetProject(ctx context.Context, userID, id int64) (*domain.Project, error) {
	if err := p.projectValidator.ValidateProjectID(id); err != nil {
		return nil, err
	}

	dbProject, err := p.repo.GetProject(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	project := p.mapper.Project.FromDatabase(*dbProject)
	return &project, nil
}

// RenameProject changes the name of one of the user's projects
func (p *projectServiceImpl) RenameProject(ctx context.Context, userID, id int64, name string) (*domain.Project, error) {
	trimmedName, err := p.projectValidator.GetValidProjectName(name)
	if err != nil {
		return nil, err
	}

	project, err := p.GetProject(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	project.Name = trimmedName
	dbProject := p.mapper.Project.ToDatabase(*project)
	if err := p.repo.RenameProject(ctx, &dbProject); err != nil {
		return nil, err
	}
	return project, nil
}

// DeleteProject deletes one of the user's projects and, through the store's
// cascade, all of its sessions
func (p *projectServiceImpl) DeleteProject(ctx context.Context, userID, id int64) error {
	if err := p.projectValidator.ValidateProjectID(id); err != nil {
		return err
	}
	return p.repo.DeleteProject(ctx, userID, id)
}

// EnsureProject returns the user's project called name, creating it on first use
func (p *projectServiceImpl) EnsureProject(ctx context.Context, userID int64, name string) (*domain.Project, error) {
	trimmedName, err := p.projectValidator.GetValidProjectName(name)
	if err != nil {
		return nil, err
	}

	dbProject, err := p.repo.GetProjectByName(ctx, userID, trimmedName)
	if err == nil {
		project := p.mapper.Project.FromDatabase(*dbProject)
		return &project, nil
	}
	if !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		return nil, err
	}

	project, err := p.CreateProject(ctx, userID, trimmedName)
	if errors.IsErrorType(err, errors.ErrorTypeConflict) {
		// Created concurrently by another request of the same user.
		dbProject, err = p.repo.GetProjectByName(ctx, userID, trimmedName)
		if err != nil {
			return nil, err
		}
		existing := p.mapper.Project.FromDatabase(*dbProject)
		return &existing, nil
	}
	return project, err
}

// ProjectStats returns every project of the user with its session totals, ordered by name
func (p *projectServiceImpl) ProjectStats(ctx context.Context, userID int64) ([]domain.ProjectStats, error) {
	dbProjects, err := p.repo.ListProjects(ctx, userID)
	if err != nil {
		return nil, err
	}

	dbSessions, err := p.repo.SearchSessions(ctx, sqlstore.SearchOptions{UserID: userID})
	if err != nil {
		return nil, err
	}

	stats := make([]domain.ProjectStats, len(dbProjects))
	index := make(map[int64]int, len(dbProjects))
	for i, project := range p.mapper.Project.FromDatabaseSlice(dbProjects) {
		stats[i] = domain.ProjectStats{Project: project}
		index[project.ID] = i
	}

	for _, session := range p.mapper.Session.FromDatabaseSlice(dbSessions) {
		i, ok := index[session.ProjectID]
		if !ok {
			continue
		}
		stats[i].TotalMinutes += session.Minutes()
		stats[i].SessionCount++
		if stats[i].LastActive == nil || session.Start.After(*stats[i].LastActive) {
			start := session.Start
			stats[i].LastActive = &start
		}
	}

	return OrderProjects(stats, domain.OrderByName), nil
}

// ListOrderedProjects returns the user's projects in their preferred order
func (p *projectServiceImpl) ListOrderedProjects(ctx context.Context, userID int64) ([]domain.ProjectStats, error) {
	dbUser, err := p.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	user := p.mapper.User.FromDatabase(*dbUser)

	stats, err := p.ProjectStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	return OrderProjects(stats, user.ProjectOrder), nil
}

// RecentProjects returns up to limit projects that have sessions, most recently active first
func (p *projectServiceImpl) RecentProjects(ctx context.Context, userID int64, limit int) ([]domain.ProjectStats, error) {
	if limit <= 0 {
		limit = DefaultRecentProjectsLimit
	}

	stats, err := p.ProjectStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	recent := make([]domain.ProjectStats, 0, limit)
	for _, s := range OrderProjects(stats, domain.OrderByRecentActivity) {
		if s.LastActive == nil || len(recent) == limit {
			break
		}
		recent = append(recent, s)
	}
	return recent, nil
}

// OrderProjects returns a sorted copy of stats.
// Unknown orders sort by name.
func OrderProjects(stats []domain.ProjectStats, order domain.ProjectOrder) []domain.ProjectStats {
	sorted := make([]domain.ProjectStats, len(stats))
	copy(sorted, stats)

	var less func(a, b domain.ProjectStats) bool
	switch order {
	case domain.OrderByTotalTime:
		less = func(a, b domain.ProjectStats) bool {
			if a.TotalMinutes != b.TotalMinutes {
				return a.TotalMinutes > b.TotalMinutes
			}
			return nameLess(a, b)
		}
	case domain.OrderByRecentActivity:
		less = func(a, b domain.ProjectStats) bool {
			switch {
			case a.LastActive == nil && b.LastActive == nil:
				return nameLess(a, b)
			case a.LastActive == nil:
				return false
			case b.LastActive == nil:
				return true
			case !a.LastActive.Equal(*b.LastActive):
				return a.LastActive.After(*b.LastActive)
			default:
				return nameLess(a, b)
			}
		}
	default:
		less = nameLess
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})
	return sorted
}

// nameLess compares case-insensitively, breaking ties case-sensitively
func nameLess(a, b domain.ProjectStats) bool {
	la, lb := strings.ToLower(a.Name), strings.ToLower(b.Name)
	if la != lb {
		return la < lb
	}
	return a.Name < b.Name
}
