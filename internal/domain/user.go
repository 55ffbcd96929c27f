package domain

import (
	"time"
)

// ProjectOrder is a user's preferred ordering of project lists.
type ProjectOrder string

const (
	// OrderByName sorts alphabetically, case-insensitively.
	OrderByName ProjectOrder = "name"
	// OrderByTotalTime sorts by total minutes, largest first.
	OrderByTotalTime ProjectOrder = "total_time"
	// OrderByRecentActivity sorts by latest session start, most recent first.
	OrderByRecentActivity ProjectOrder = "recent_activity"
)

// DefaultProjectOrder is used for new users.
const DefaultProjectOrder = OrderByName

// ProjectOrders lists every supported order.
var ProjectOrders = []ProjectOrder{OrderByName, OrderByTotalTime, OrderByRecentActivity}

// IsValid reports whether o is a supported order.
func (o ProjectOrder) IsValid() bool {
	for _, known := range ProjectOrders {
		if o == known {
			return true
		}
	}
	return false
}

// ParseProjectOrder converts a stored or submitted value, falling back to the
// default for unknown values.
func ParseProjectOrder(s string) ProjectOrder {
	o := ProjectOrder(s)
	if o.IsValid() {
		return o
	}
	return DefaultProjectOrder
}

// User is an account owning projects and sessions.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	TimeZone     string
	ProjectOrder ProjectOrder
	CreatedAt    time.Time
}

// Location returns the user's current zone.
func (u User) Location() *time.Location {
	return MustLoadZone(u.TimeZone)
}

// LoginSession is a server-side record of a signed-in browser.
type LoginSession struct {
	Token     string
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the login session is no longer valid at now.
func (s LoginSession) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
