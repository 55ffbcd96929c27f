package handler

import (
	"time"

	"timesheet/internal/domain"
	"timesheet/internal/services"
)

const clockLayout = "15:04"

// sessionResponse renders a session in the zone it was recorded in.
type sessionResponse struct {
	ID        int64     `json:"id"`
	ProjectID int64     `json:"project_id"`
	Project   string    `json:"project"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	EndDate   string    `json:"end_date"`
	EndTime   string    `json:"end_time"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Breaks    int       `json:"breaks"`
	Minutes   int       `json:"minutes"`
	Duration  string    `json:"duration"`
	TimeZone  string    `json:"time_zone"`
}

func toSessionResponse(s domain.Session) sessionResponse {
	localStart, localEnd := s.LocalStart(), s.LocalEnd()
	return sessionResponse{
		ID:        s.ID,
		ProjectID: s.ProjectID,
		Project:   s.ProjectName,
		Date:      s.LocalDate().String(),
		StartTime: localStart.Format(clockLayout),
		EndDate:   domain.DateOf(localEnd).String(),
		EndTime:   localEnd.Format(clockLayout),
		Start:     localStart,
		End:       localEnd,
		Breaks:    s.Breaks,
		Minutes:   s.Minutes(),
		Duration:  s.Duration(),
		TimeZone:  s.Location().String(),
	}
}

// dayResponse is one bucket of a report.
type dayResponse struct {
	Date     domain.Date       `json:"date"`
	Minutes  int               `json:"minutes"`
	Total    string            `json:"total"`
	Sessions []sessionResponse `json:"sessions"`
}

func toDayResponse(b services.DayBucket) dayResponse {
	sessions := make([]sessionResponse, len(b.Sessions))
	for i, s := range b.Sessions {
		sessions[i] = toSessionResponse(s)
	}
	return dayResponse{
		Date:     b.Date,
		Minutes:  b.Minutes,
		Total:    b.Total,
		Sessions: sessions,
	}
}

func toDayResponses(buckets []services.DayBucket) []dayResponse {
	days := make([]dayResponse, len(buckets))
	for i, b := range buckets {
		days[i] = toDayResponse(b)
	}
	return days
}

// monthResponse is a zero-filled month with navigation.
type monthResponse struct {
	Month    domain.Month      `json:"month"`
	Days     []dayResponse     `json:"days"`
	Outside  []sessionResponse `json:"outside,omitempty"`
	Minutes  int               `json:"minutes"`
	Total    string            `json:"total"`
	Previous *domain.Month     `json:"previous"`
	Next     *domain.Month     `json:"next"`
}

func toMonthResponse(m *services.MonthReport) monthResponse {
	var outside []sessionResponse
	for _, s := range m.Outside {
		outside = append(outside, toSessionResponse(s))
	}
	return monthResponse{
		Month:    m.Month,
		Days:     toDayResponses(m.Days),
		Outside:  outside,
		Minutes:  m.Minutes,
		Total:    m.Total,
		Previous: m.Previous,
		Next:     m.Next,
	}
}

// projectResponse is a project with its totals.
type projectResponse struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Minutes      int        `json:"minutes"`
	Total        string     `json:"total"`
	SessionCount int        `json:"session_count"`
	LastActive   *time.Time `json:"last_active"`
}

func toProjectResponse(p domain.ProjectStats) projectResponse {
	return projectResponse{
		ID:           p.ID,
		Name:         p.Name,
		Minutes:      p.TotalMinutes,
		Total:        p.Duration(),
		SessionCount: p.SessionCount,
		LastActive:   p.LastActive,
	}
}

func toProjectResponses(stats []domain.ProjectStats) []projectResponse {
	projects := make([]projectResponse, len(stats))
	for i, p := range stats {
		projects[i] = toProjectResponse(p)
	}
	return projects
}

// projectRefResponse identifies a project without its totals.
type projectRefResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func toProjectRefResponse(p *domain.Project) projectRefResponse {
	return projectRefResponse{ID: p.ID, Name: p.Name}
}

// projectReportResponse is a project's full history.
type projectReportResponse struct {
	ID           int64         `json:"id"`
	Name         string        `json:"name"`
	Days         []dayResponse `json:"days"`
	Minutes      int           `json:"minutes"`
	Total        string        `json:"total"`
	SessionCount int           `json:"session_count"`
}

// userResponse is the public view of an account.
type userResponse struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	TimeZone     string `json:"time_zone"`
	ProjectOrder string `json:"project_order"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		TimeZone:     u.TimeZone,
		ProjectOrder: string(u.ProjectOrder),
	}
}
