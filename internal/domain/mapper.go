package domain

import (
	"timesheet/internal/repository/sqlstore"
)

// UserMapper handles conversion between domain and database User models.
type UserMapper struct{}

// NewUserMapper creates a new UserMapper instance.
func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

// ToDatabase converts a domain User to a database User.
func (m *UserMapper) ToDatabase(u User) sqlstore.User {
	return sqlstore.User{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		TimeZone:     u.TimeZone,
		ProjectOrder: string(u.ProjectOrder),
		CreatedAt:    u.CreatedAt,
	}
}

// FromDatabase converts a database User to a domain User.
// Unknown stored project orders fall back to the default.
func (m *UserMapper) FromDatabase(u sqlstore.User) User {
	return User{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		TimeZone:     u.TimeZone,
		ProjectOrder: ParseProjectOrder(u.ProjectOrder),
		CreatedAt:    u.CreatedAt,
	}
}

// ProjectMapper handles conversion between domain and database Project models.
type ProjectMapper struct{}

// NewProjectMapper creates a new ProjectMapper instance.
func NewProjectMapper() *ProjectMapper {
	return &ProjectMapper{}
}

// ToDatabase converts a domain Project to a database Project.
func (m *ProjectMapper) ToDatabase(p Project) sqlstore.Project {
	return sqlstore.Project{
		ID:        p.ID,
		UserID:    p.UserID,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
	}
}

// FromDatabase converts a database Project to a domain Project.
func (m *ProjectMapper) FromDatabase(p sqlstore.Project) Project {
	return Project{
		ID:        p.ID,
		UserID:    p.UserID,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
	}
}

// FromDatabaseSlice converts a slice of database Projects to domain Projects.
func (m *ProjectMapper) FromDatabaseSlice(rows []*sqlstore.Project) []Project {
	projects := make([]Project, len(rows))
	for i, row := range rows {
		projects[i] = m.FromDatabase(*row)
	}
	return projects
}

// SessionMapper handles conversion between domain and database Session models.
type SessionMapper struct{}

// NewSessionMapper creates a new SessionMapper instance.
func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

// ToDatabase converts a domain Session to a database Session.
func (m *SessionMapper) ToDatabase(s Session) sqlstore.Session {
	return sqlstore.Session{
		ID:          s.ID,
		ProjectID:   s.ProjectID,
		ProjectName: s.ProjectName,
		StartTime:   s.Start,
		EndTime:     s.End,
		Breaks:      s.Breaks,
		TimeZone:    s.TimeZone,
	}
}

// FromDatabase converts a database Session to a domain Session.
func (m *SessionMapper) FromDatabase(s sqlstore.Session) Session {
	return Session{
		ID:          s.ID,
		ProjectID:   s.ProjectID,
		ProjectName: s.ProjectName,
		Start:       s.StartTime,
		End:         s.EndTime,
		Breaks:      s.Breaks,
		TimeZone:    s.TimeZone,
	}
}

// FromDatabaseSlice converts a slice of database Sessions to domain Sessions.
func (m *SessionMapper) FromDatabaseSlice(rows []*sqlstore.Session) []Session {
	sessions := make([]Session, len(rows))
	for i, row := range rows {
		sessions[i] = m.FromDatabase(*row)
	}
	return sessions
}

// LoginSessionMapper handles conversion of login session records.
type LoginSessionMapper struct{}

// ToDatabase converts a domain LoginSession to a database LoginSession.
func (m *LoginSessionMapper) ToDatabase(s LoginSession) sqlstore.LoginSession {
	return sqlstore.LoginSession{Token: s.Token, UserID: s.UserID, CreatedAt: s.CreatedAt, ExpiresAt: s.ExpiresAt}
}

// FromDatabase converts a database LoginSession to a domain LoginSession.
func (m *LoginSessionMapper) FromDatabase(s sqlstore.LoginSession) LoginSession {
	return LoginSession{Token: s.Token, UserID: s.UserID, CreatedAt: s.CreatedAt, ExpiresAt: s.ExpiresAt}
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	User         *UserMapper
	Project      *ProjectMapper
	Session      *SessionMapper
	LoginSession *LoginSessionMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		User:         NewUserMapper(),
		Project:      NewProjectMapper(),
		Session:      NewSessionMapper(),
		LoginSession: &LoginSessionMapper{},
	}
}
