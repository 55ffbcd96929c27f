package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"timesheet/internal/errors"
)

// Repository defines the interface for database operations.
// Every project and session query is scoped by the owning user id.
type Repository interface {
	// Users
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, id int64) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	UpdateUserSettings(ctx context.Context, user *User) error

	// Projects
	CreateProject(ctx context.Context, project *Project) error
	GetProject(ctx context.Context, userID, id int64) (*Project, error)
	GetProjectByName(ctx context.Context, userID int64, name string) (*Project, error)
	ListProjects(ctx context.Context, userID int64) ([]*Project, error)
	RenameProject(ctx context.Context, project *Project) error
	DeleteProject(ctx context.Context, userID, id int64) error

	// Sessions
	CreateSession(ctx context.Context, session *Session) error
	GetSession(ctx context.Context, userID, id int64) (*Session, error)
	UpdateSession(ctx context.Context, userID int64, session *Session) error
	DeleteSession(ctx context.Context, userID, id int64) error
	SearchSessions(ctx context.Context, opts SearchOptions) ([]*Session, error)
	FirstSessionStart(ctx context.Context, userID int64) (*time.Time, error)

	// Login sessions
	CreateLoginSession(ctx context.Context, login *LoginSession) error
	GetLoginSession(ctx context.Context, token string) (*LoginSession, error)
	DeleteLoginSession(ctx context.Context, token string) error
	DeleteExpiredLoginSessions(ctx context.Context, now time.Time) (int64, error)

	// Utility
	Ping(ctx context.Context) error
	Close() error
}

// SQLRepository implements Repository over database/sql for SQLite and PostgreSQL.
type SQLRepository struct {
	db      *sql.DB
	dialect Dialect
}

// New wraps an open, migrated database handle.
func New(db *sql.DB, dialect Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

// DB returns the underlying handle.
func (r *SQLRepository) DB() *sql.DB {
	return r.db
}

// Dialect returns the SQL dialect the repository speaks.
func (r *SQLRepository) Dialect() Dialect {
	return r.dialect
}

// Ping checks the connection
func (r *SQLRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return HandleDatabaseError("ping", err)
	}
	return nil
}

// Close closes the database connection
func (r *SQLRepository) Close() error {
	return r.db.Close()
}

func (r *SQLRepository) q(query string) string {
	return r.dialect.Rebind(query)
}

const userColumns = `id, username, email, password_hash, time_zone, project_order, created_at`

// CreateUser inserts a new user
func (r *SQLRepository) CreateUser(ctx context.Context, user *User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	query := r.q(`
	INSERT INTO users (username, email, password_hash, time_zone, project_order, created_at)
	VALUES (?, ?, ?, ?, ?, ?)
	RETURNING id`)

	id, err := ExecuteReturningID(ctx, r.db, query,
		user.Username, user.Email, user.PasswordHash, user.TimeZone, user.ProjectOrder, FormatTimeForDB(user.CreatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return errors.NewConflictError("user", "username or email", user.Username)
		}
		return HandleDatabaseError("create user", err)
	}

	user.ID = id
	return nil
}

// GetUser retrieves a user by ID
func (r *SQLRepository) GetUser(ctx context.Context, id int64) (*User, error) {
	query := r.q(`SELECT ` + userColumns + ` FROM users WHERE id = ?`)
	return QuerySingle(ctx, r.db, query, ScanUser, "user", fmt.Sprintf("%d", id), id)
}

// GetUserByUsername retrieves a user by username
func (r *SQLRepository) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	query := r.q(`SELECT ` + userColumns + ` FROM users WHERE username = ?`)
	return QuerySingle(ctx, r.db, query, ScanUser, "user", username, username)
}

// UpdateUserSettings stores the user's time zone and project order
func (r *SQLRepository) UpdateUserSettings(ctx context.Context, user *User) error {
	query := r.q(`UPDATE users SET time_zone = ?, project_order = ? WHERE id = ?`)
	return ExecuteWithRowsAffected(ctx, r.db, query, "user", fmt.Sprintf("%d", user.ID), user.TimeZone, user.ProjectOrder, user.ID)
}

const projectColumns = `id, user_id, name, created_at`

// CreateProject creates a new project
func (r *SQLRepository) CreateProject(ctx context.Context, project *Project) error {
	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now().UTC()
	}

	query := r.q(`INSERT INTO projects (user_id, name, created_at) VALUES (?, ?, ?) RETURNING id`)
	id, err := ExecuteReturningID(ctx, r.db, query, project.UserID, project.Name, FormatTimeForDB(project.CreatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return errors.NewConflictError("project", "name", project.Name)
		}
		return HandleDatabaseError("create project", err)
	}

	project.ID = id
	return nil
}

// GetProject retrieves a project owned by userID
func (r *SQLRepository) GetProject(ctx context.Context, userID, id int64) (*Project, error) {
	query := r.q(`SELECT ` + projectColumns + ` FROM projects WHERE id = ? AND user_id = ?`)
	return QuerySingle(ctx, r.db, query, ScanProject, "project", fmt.Sprintf("%d", id), id, userID)
}

// GetProjectByName retrieves a project by its exact name
func (r *SQLRepository) GetProjectByName(ctx context.Context, userID int64, name string) (*Project, error) {
	query := r.q(`SELECT ` + projectColumns + ` FROM projects WHERE user_id = ? AND name = ?`)
	return QuerySingle(ctx, r.db, query, ScanProject, "project", name, userID, name)
}

// ListProjects retrieves all projects of a user
func (r *SQLRepository) ListProjects(ctx context.Context, userID int64) ([]*Project, error) {
	query := r.q(`SELECT ` + projectColumns + ` FROM projects WHERE user_id = ? ORDER BY name ASC, id ASC`)
	return QueryMultiple(ctx, r.db, query, ScanProjects, "projects", userID)
}

// RenameProject updates the name of a project owned by project.UserID
func (r *SQLRepository) RenameProject(ctx context.Context, project *Project) error {
	query := r.q(`UPDATE projects SET name = ? WHERE id = ? AND user_id = ?`)
	result, err := r.db.ExecContext(ctx, query, project.Name, project.ID, project.UserID)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.NewConflictError("project", "name", project.Name)
		}
		return HandleDatabaseError("rename project", err)
	}
	return ValidateRowsAffected(result, "project", fmt.Sprintf("%d", project.ID))
}

// DeleteProject deletes a project; its sessions go with it through ON DELETE CASCADE
func (r *SQLRepository) DeleteProject(ctx context.Context, userID, id int64) error {
	query := r.q(`DELETE FROM projects WHERE id = ? AND user_id = ?`)
	return ExecuteWithRowsAffected(ctx, r.db, query, "project", fmt.Sprintf("%d", id), id, userID)
}

const sessionSelect = `
	SELECT s.id, s.project_id, p.name, s.start_time, s.end_time, s.breaks, s.time_zone
	FROM sessions s
	JOIN projects p ON p.id = s.project_id`

// CreateSession creates a new session
func (r *SQLRepository) CreateSession(ctx context.Context, session *Session) error {
	query := r.q(`
	INSERT INTO sessions (project_id, start_time, end_time, breaks, time_zone)
	VALUES (?, ?, ?, ?, ?)
	RETURNING id`)

	id, err := ExecuteReturningID(ctx, r.db, query,
		session.ProjectID, FormatTimeForDB(session.StartTime), FormatTimeForDB(session.EndTime), session.Breaks, session.TimeZone)
	if err != nil {
		return HandleDatabaseError("create session", err)
	}

	session.ID = id
	return nil
}

// GetSession retrieves a session whose project is owned by userID
func (r *SQLRepository) GetSession(ctx context.Context, userID, id int64) (*Session, error) {
	query := r.q(sessionSelect + ` WHERE s.id = ? AND p.user_id = ?`)
	return QuerySingle(ctx, r.db, query, ScanSession, "session", fmt.Sprintf("%d", id), id, userID)
}

// UpdateSession updates a session whose project is owned by userID
func (r *SQLRepository) UpdateSession(ctx context.Context, userID int64, session *Session) error {
	query := r.q(`
	UPDATE sessions
	SET project_id = ?, start_time = ?, end_time = ?, breaks = ?, time_zone = ?
	WHERE id = ? AND project_id IN (SELECT id FROM projects WHERE user_id = ?)`)

	return ExecuteWithRowsAffected(ctx, r.db, query, "session", fmt.Sprintf("%d", session.ID),
		session.ProjectID, FormatTimeForDB(session.StartTime), FormatTimeForDB(session.EndTime),
		session.Breaks, session.TimeZone, session.ID, userID)
}

// DeleteSession deletes a session whose project is owned by userID
func (r *SQLRepository) DeleteSession(ctx context.Context, userID, id int64) error {
	query := r.q(`DELETE FROM sessions WHERE id = ? AND project_id IN (SELECT id FROM projects WHERE user_id = ?)`)
	return ExecuteWithRowsAffected(ctx, r.db, query, "session", fmt.Sprintf("%d", id), id, userID)
}

// SearchSessions returns the user's sessions matching opts, ordered by start ascending
func (r *SQLRepository) SearchSessions(ctx context.Context, opts SearchOptions) ([]*Session, error) {
	conditions := []string{"p.user_id = ?"}
	args := []interface{}{opts.UserID}

	if opts.From != nil {
		conditions = append(conditions, "s.start_time >= ?")
		args = append(args, FormatBoundForDB(*opts.From))
	}
	if opts.To != nil {
		conditions = append(conditions, "s.start_time < ?")
		args = append(args, FormatBoundForDB(*opts.To))
	}
	if opts.ProjectID != nil {
		conditions = append(conditions, "s.project_id = ?")
		args = append(args, *opts.ProjectID)
	}

	query := sessionSelect + " WHERE " + strings.Join(conditions, " AND ") + " ORDER BY s.start_time ASC, s.id ASC"
	return QueryMultiple(ctx, r.db, r.q(query), ScanSessions, "sessions", args...)
}

// FirstSessionStart returns the earliest session start of the user, or nil when there is none
func (r *SQLRepository) FirstSessionStart(ctx context.Context, userID int64) (*time.Time, error) {
	query := r.q(`
	SELECT MIN(s.start_time)
	FROM sessions s
	JOIN projects p ON p.id = s.project_id
	WHERE p.user_id = ?`)

	var first sql.NullString
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&first); err != nil {
		return nil, HandleDatabaseError("first session start", err)
	}
	if !first.Valid {
		return nil, nil
	}

	t, err := ParseTimeFromDB(first.String)
	if err != nil {
		return nil, HandleDatabaseError("parse first session start", err)
	}
	return &t, nil
}

// CreateLoginSession stores a new login session
func (r *SQLRepository) CreateLoginSession(ctx context.Context, login *LoginSession) error {
	query := r.q(`INSERT INTO login_sessions (token, user_id, created_at, expires_at) VALUES (?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, query, login.Token, login.UserID, FormatTimeForDB(login.CreatedAt), FormatTimeForDB(login.ExpiresAt))
	if err != nil {
		return HandleDatabaseError("create login session", err)
	}
	return nil
}

// GetLoginSession retrieves a login session by token
func (r *SQLRepository) GetLoginSession(ctx context.Context, token string) (*LoginSession, error) {
	query := r.q(`SELECT token, user_id, created_at, expires_at FROM login_sessions WHERE token = ?`)
	return QuerySingle(ctx, r.db, query, ScanLoginSession, "login session", "token", token)
}

// DeleteLoginSession deletes a login session by token
func (r *SQLRepository) DeleteLoginSession(ctx context.Context, token string) error {
	query := r.q(`DELETE FROM login_sessions WHERE token = ?`)
	return ExecuteWithRowsAffected(ctx, r.db, query, "login session", "token", token)
}

// DeleteExpiredLoginSessions removes login sessions that expired at or before now
func (r *SQLRepository) DeleteExpiredLoginSessions(ctx context.Context, now time.Time) (int64, error) {
	query := r.q(`DELETE FROM login_sessions WHERE expires_at <= ?`)
	result, err := r.db.ExecContext(ctx, query, FormatTimeForDB(now))
	if err != nil {
		return 0, HandleDatabaseError("delete expired login sessions", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, HandleDatabaseError("get rows affected", err)
	}
	return n, nil
}
