package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProjectOrder(t *testing.T) {
	assert.True(t, OrderByRecentActivity.IsValid())
	assert.False(t, ProjectOrder("newest").IsValid())
	assert.Equal(t, OrderByTotalTime, ParseProjectOrder("total_time"))
	assert.Equal(t, OrderByName, ParseProjectOrder(""))
}

func TestLoginSession_Expired(t *testing.T) {
	expires := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := LoginSession{ExpiresAt: expires}

	assert.False(t, s.Expired(expires.Add(-time.Second)))
	assert.True(t, s.Expired(expires))
}

func TestProject_IsValid(t *testing.T) {
	assert.True(t, NewProject(1, "  Engine ").IsValid())
	assert.Equal(t, "Engine", NewProject(1, "  Engine ").Name)
	assert.False(t, NewProject(1, "   ").IsValid())
	assert.False(t, NewProject(0, "Engine").IsValid())
}
