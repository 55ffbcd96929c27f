package sqlstore

import "time"

// User is a row of the users table.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	TimeZone     string
	ProjectOrder string
	CreatedAt    time.Time
}

// Project is a row of the projects table.
type Project struct {
	ID        int64
	UserID    int64
	Name      string
	CreatedAt time.Time
}

// Session is a row of the sessions table joined with its project name.
type Session struct {
	ID          int64
	ProjectID   int64
	ProjectName string
	StartTime   time.Time
	EndTime     time.Time
	Breaks      int
	TimeZone    string
}

// LoginSession is a row of the login_sessions table.
type LoginSession struct {
	Token     string
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

// SearchOptions filters sessions of one user.
// From is inclusive and To exclusive; both compare against the start instant.
type SearchOptions struct {
	UserID    int64
	From      *time.Time
	To        *time.Time
	ProjectID *int64
}
