package domain

import (
	"strings"
	"time"
)

// Project groups sessions under a user-chosen name.
type Project struct {
	ID        int64
	UserID    int64
	Name      string
	CreatedAt time.Time
}

// NewProject creates a new Project with a trimmed name.
func NewProject(userID int64, name string) Project {
	return Project{
		UserID: userID,
		Name:   strings.TrimSpace(name),
	}
}

// IsValid checks if the project has valid data.
func (p Project) IsValid() bool {
	return p.UserID > 0 && strings.TrimSpace(p.Name) != ""
}

// String returns the project name.
func (p Project) String() string {
	return p.Name
}

// ProjectStats is a project with its aggregate session data.
// LastActive is nil for a project without sessions.
type ProjectStats struct {
	Project
	TotalMinutes int
	SessionCount int
	LastActive   *time.Time
}

// Duration returns the formatted total time.
func (p ProjectStats) Duration() string {
	return FormatDuration(p.TotalMinutes)
}
