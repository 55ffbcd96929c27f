package services

import (
	"context"
	"time"

	"timesheet/internal/domain"
	"timesheet/internal/validation"
)

// DayBucket is one local calendar date with its sessions and total.
type DayBucket struct {
	Date     domain.Date      `json:"date"`
	Minutes  int              `json:"minutes"`
	Total    string           `json:"total"`
	Sessions []domain.Session `json:"sessions"`
}

// MonthReport is a zero-filled month view.
// Outside holds sessions selected for the month in the user's current zone
// whose own recorded zone puts them on a neighbouring month.
type MonthReport struct {
	Month    domain.Month     `json:"month"`
	Days     []DayBucket      `json:"days"`
	Outside  []domain.Session `json:"outside,omitempty"`
	Minutes  int              `json:"minutes"`
	Total    string           `json:"total"`
	Previous *domain.Month    `json:"previous"`
	Next     *domain.Month    `json:"next"`
}

// ProjectReport is the full history of one project, most recent day first.
type ProjectReport struct {
	Project      domain.Project `json:"project"`
	Days         []DayBucket    `json:"days"`
	Minutes      int            `json:"minutes"`
	Total        string         `json:"total"`
	SessionCount int            `json:"session_count"`
}

// SessionInput is a session as entered: local dates and wall-clock times in the
// user's current zone. EndDate is optional.
type SessionInput struct {
	ProjectName string `json:"project"`
	Date        string `json:"date"`
	StartTime   string `json:"start"`
	EndDate     string `json:"end_date,omitempty"`
	EndTime     string `json:"end"`
	Breaks      int    `json:"breaks"`
}

func (in SessionInput) fields() validation.SessionFields {
	return validation.SessionFields{
		ProjectName: in.ProjectName,
		Date:        in.Date,
		StartTime:   in.StartTime,
		EndDate:     in.EndDate,
		EndTime:     in.EndTime,
		Breaks:      in.Breaks,
	}
}

// SessionPreview is the resolved span of unsaved input.
type SessionPreview struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Minutes  int       `json:"minutes"`
	Duration string    `json:"duration"`
}

// ReportingService builds the grouped day, month and project views.
// Every call is scoped to one user.
type ReportingService interface {
	SessionsForDay(ctx context.Context, userID int64, date domain.Date) (*DayBucket, error)
	SessionsForMonth(ctx context.Context, userID int64, year int, month time.Month) (*MonthReport, error)
	SessionsForProject(ctx context.Context, userID, projectID int64) (*ProjectReport, error)
	SessionsAll(ctx context.Context, userID int64) ([]DayBucket, error)
	MinutesWorkedToday(ctx context.Context, userID int64) (int, error)
	FirstActiveMonth(ctx context.Context, userID int64) (*domain.Month, error)
}

// ProjectService handles project lifecycle and ordering
type ProjectService interface {
	CreateProject(ctx context.Context, userID int64, name string) (*domain.Project, error)
	GetProject(ctx context.Context, userID, id int64) (*domain.Project, error)
	RenameProject(ctx context.Context, userID, id int64, name string) (*domain.Project, error)
	DeleteProject(ctx context.Context, userID, id int64) error
	EnsureProject(ctx context.Context, userID int64, name string) (*domain.Project, error)

	ProjectStats(ctx context.Context, userID int64) ([]domain.ProjectStats, error)
	ListOrderedProjects(ctx context.Context, userID int64) ([]domain.ProjectStats, error)
	RecentProjects(ctx context.Context, userID int64, limit int) ([]domain.ProjectStats, error)
}

// SessionService handles session entry, editing and deletion
type SessionService interface {
	CreateSession(ctx context.Context, userID int64, in SessionInput) (*domain.Session, error)
	UpdateSession(ctx context.Context, userID, id int64, in SessionInput) (*domain.Session, error)
	GetSession(ctx context.Context, userID, id int64) (*domain.Session, error)
	DeleteSession(ctx context.Context, userID, id int64) error
	Preview(ctx context.Context, userID int64, in SessionInput) (*SessionPreview, error)
}

// UserService handles accounts, login sessions and preferences
type UserService interface {
	SignUp(ctx context.Context, fields validation.SignUpFields) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*domain.LoginSession, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateSettings(ctx context.Context, userID int64, timeZone, projectOrder string) (*domain.User, error)
	PurgeExpiredLogins(ctx context.Context) (int64, error)
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	ReportingService ReportingService
	ProjectService   ProjectService
	SessionService   SessionService
	UserService      UserService
}
