package services

import (
	"context"
	"fmt"
	"time"

	"timesheet/internal/domain"
	"timesheet/internal/errors"
	"timesheet/internal/repository/sqlstore"
)

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct {
	repo   sqlstore.Repository
	mapper *domain.Mapper
	now    func() time.Time
}

// NewReportingService creates a new ReportingService instance
func NewReportingService(repo sqlstore.Repository) ReportingService {
	return NewReportingServiceWithClock(repo, time.Now)
}

// NewReportingServiceWithClock creates a ReportingService whose notion of
// "today" and "this month" comes from now.
func NewReportingServiceWithClock(repo sqlstore.Repository, now func() time.Time) ReportingService {
	return &reportingServiceImpl{
		repo:   repo,
		mapper: domain.NewMapper(),
		now:    now,
	}
}

// userLocation returns the user's current zone
func (r *reportingServiceImpl) userLocation(ctx context.Context, userID int64) (*time.Location, error) {
	dbUser, err := r.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return r.mapper.User.FromDatabase(*dbUser).Location(), nil
}

// search fetches the user's sessions with start in [from, to)
func (r *reportingServiceImpl) search(ctx context.Context, userID int64, from, to *time.Time, projectID *int64) ([]domain.Session, error) {
	rows, err := r.repo.SearchSessions(ctx, sqlstore.SearchOptions{
		UserID:    userID,
		From:      from,
		To:        to,
		ProjectID: projectID,
	})
	if err != nil {
		return nil, err
	}
	return r.mapper.Session.FromDatabaseSlice(rows), nil
}

// SessionsForDay returns the sessions starting on date in the user's current zone
func (r *reportingServiceImpl) SessionsForDay(ctx context.Context, userID int64, date domain.Date) (*DayBucket, error) {
	loc, err := r.userLocation(ctx, userID)
	if err != nil {
		return nil, err
	}

	from := date.StartIn(loc)
	to := date.AddDays(1).StartIn(loc)
	sessions, err := r.search(ctx, userID, &from, &to, nil)
	if err != nil {
		return nil, err
	}

	bucket := NewDayBucket(date, sessions)
	return &bucket, nil
}

// SessionsForMonth returns a zero-filled view of one calendar month
func (r *reportingServiceImpl) SessionsForMonth(ctx context.Context, userID int64, year int, month time.Month) (*MonthReport, error) {
	m, err := domain.NewMonth(year, month)
	if err != nil {
		return nil, errors.NewInvalidInputError("month", fmt.Sprintf("%04d-%02d", year, int(month)), err.Error())
	}

	loc, err := r.userLocation(ctx, userID)
	if err != nil {
		return nil, err
	}

	from := m.FirstDay().StartIn(loc)
	to := m.Next().FirstDay().StartIn(loc)
	sessions, err := r.search(ctx, userID, &from, &to, nil)
	if err != nil {
		return nil, err
	}

	days, outside := GroupMonth(sessions, year, month)
	minutes := domain.TotalMinutes(sessions)
	report := &MonthReport{
		Month:   m,
		Days:    days,
		Outside: outside,
		Minutes: minutes,
		Total:   domain.FormatDuration(minutes),
	}

	first, err := r.firstActiveMonth(ctx, userID, loc)
	if err != nil {
		return nil, err
	}
	if first != nil && first.Before(m) {
		previous := m.Previous()
		report.Previous = &previous
	}
	if current := domain.MonthOf(r.now().In(loc)); m.Before(current) {
		next := m.Next()
		report.Next = &next
	}

	return report, nil
}

// SessionsForProject returns the project's history, most recent day first
func (r *reportingServiceImpl) SessionsForProject(ctx context.Context, userID, projectID int64) (*ProjectReport, error) {
	dbProject, err := r.repo.GetProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	sessions, err := r.search(ctx, userID, nil, nil, &projectID)
	if err != nil {
		return nil, err
	}

	minutes := domain.TotalMinutes(sessions)
	return &ProjectReport{
		Project:      r.mapper.Project.FromDatabase(*dbProject),
		Days:         GroupByLocalDate(sessions, Descending),
		Minutes:      minutes,
		Total:        domain.FormatDuration(minutes),
		SessionCount: len(sessions),
	}, nil
}

// SessionsAll returns the user's full history, most recent day first
func (r *reportingServiceImpl) SessionsAll(ctx context.Context, userID int64) ([]DayBucket, error) {
	if _, err := r.repo.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	sessions, err := r.search(ctx, userID, nil, nil, nil)
	if err != nil {
		return nil, err
	}
	return GroupByLocalDate(sessions, Descending), nil
}

// MinutesWorkedToday sums today's sessions, today being the current date in the user's zone
func (r *reportingServiceImpl) MinutesWorkedToday(ctx context.Context, userID int64) (int, error) {
	loc, err := r.userLocation(ctx, userID)
	if err != nil {
		return 0, err
	}

	bucket, err := r.SessionsForDay(ctx, userID, domain.DateOf(r.now().In(loc)))
	if err != nil {
		return 0, err
	}
	return bucket.Minutes, nil
}

// FirstActiveMonth returns the month of the user's earliest session, or nil
func (r *reportingServiceImpl) FirstActiveMonth(ctx context.Context, userID int64) (*domain.Month, error) {
	loc, err := r.userLocation(ctx, userID)
	if err != nil {
		return nil, err
	}
	return r.firstActiveMonth(ctx, userID, loc)
}

func (r *reportingServiceImpl) firstActiveMonth(ctx context.Context, userID int64, loc *time.Location) (*domain.Month, error) {
	first, err := r.repo.FirstSessionStart(ctx, userID)
	if err != nil || first == nil {
		return nil, err
	}
	m := domain.MonthOf(first.In(loc))
	return &m, nil
}
