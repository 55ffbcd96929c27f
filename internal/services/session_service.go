package services

import (
	"context"
	stderrors "errors"
	"time"

	"timesheet/internal/domain"
	"timesheet/internal/errors"
	"timesheet/internal/repository/sqlstore"
	"timesheet/internal/validation"
)

// sessionServiceImpl implements the SessionService interface
type sessionServiceImpl struct {
	repo             sqlstore.Repository
	projectService   ProjectService
	mapper           *domain.Mapper
	sessionValidator *validation.SessionValidator
}

// NewSessionService creates a new SessionService instance
func NewSessionService(repo sqlstore.Repository, projectService ProjectService, v *validation.Validator) SessionService {
	return &sessionServiceImpl{
		repo:             repo,
		projectService:   projectService,
		mapper:           domain.NewMapper(),
		sessionValidator: validation.NewSessionValidator(v),
	}
}

// resolvedSession is input converted to instants in the user's current zone
type resolvedSession struct {
	projectName string
	start       time.Time
	end         time.Time
	breaks      int
	timeZone    string
}

// resolve validates input and converts its wall-clock readings into instants
func (s *sessionServiceImpl) resolve(ctx context.Context, userID int64, in SessionInput) (*resolvedSession, error) {
	dbUser, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	user := s.mapper.User.FromDatabase(*dbUser)

	parsed, err := s.sessionValidator.ParseSessionFields(in.fields())
	if err != nil {
		return nil, err
	}

	loc := user.Location()
	start, err := resolveField("start", parsed.StartDate, parsed.StartClock, loc)
	if err != nil {
		return nil, err
	}
	end, err := resolveField("end", parsed.EndDate, parsed.EndClock, loc)
	if err != nil {
		return nil, err
	}

	if err := s.sessionValidator.ValidateSpan(start, end, parsed.Breaks); err != nil {
		return nil, err
	}

	return &resolvedSession{
		projectName: parsed.ProjectName,
		start:       start,
		end:         end,
		breaks:      parsed.Breaks,
		timeZone:    loc.String(),
	}, nil
}

// resolveField reports DST gaps and overlaps as an invalid time span on field
func resolveField(field string, date domain.Date, clock domain.Clock, loc *time.Location) (time.Time, error) {
	t, err := domain.ResolveWallClock(date, clock, loc)
	if err != nil {
		var wallErr *domain.WallClockError
		if stderrors.As(err, &wallErr) {
			return time.Time{}, errors.NewInvalidTimeSpanError(field, wallErr.Error())
		}
		return time.Time{}, err
	}
	return t, nil
}

// save persists resolved input as a new session or over an existing one
func (s *sessionServiceImpl) save(ctx context.Context, userID, id int64, r *resolvedSession) (*domain.Session, error) {
	project, err := s.projectService.EnsureProject(ctx, userID, r.projectName)
	if err != nil {
		return nil, err
	}

	session := domain.Session{
		ID:          id,
		ProjectID:   project.ID,
		ProjectName: project.Name,
		Start:       r.start,
		End:         r.end,
		Breaks:      r.breaks,
		TimeZone:    r.timeZone,
	}
	dbSession := s.mapper.Session.ToDatabase(session)

	if id == 0 {
		err = s.repo.CreateSession(ctx, &dbSession)
	} else {
		err = s.repo.UpdateSession(ctx, userID, &dbSession)
	}
	if err != nil {
		return nil, err
	}

	session.ID = dbSession.ID
	return &session, nil
}

// CreateSession records a new session, creating its project on first use
func (s *sessionServiceImpl) CreateSession(ctx context.Context, userID int64, in SessionInput) (*domain.Session, error) {
	resolved, err := s.resolve(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, userID, 0, resolved)
}

// UpdateSession replaces a session's fields and re-stamps it with the user's current zone
func (s *sessionServiceImpl) UpdateSession(ctx context.Context, userID, id int64, in SessionInput) (*domain.Session, error) {
	if _, err := s.GetSession(ctx, userID, id); err != nil {
		return nil, err
	}

	resolved, err := s.resolve(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, userID, id, resolved)
}

// GetSession retrieves one of the user's sessions
func (s *sessionServiceImpl) GetSession(ctx context.Context, userID, id int64) (*domain.Session, error) {
	if err := s.sessionValidator.ValidateSessionID(id); err != nil {
		return nil, err
	}

	dbSession, err := s.repo.GetSession(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	session := s.mapper.Session.FromDatabase(*dbSession)
	return &session, nil
}

// DeleteSession deletes one of the user's sessions
func (s *sessionServiceImpl) DeleteSession(ctx context.Context, userID, id int64) error {
	if err := s.sessionValidator.ValidateSessionID(id); err != nil {
		return err
	}
	return s.repo.DeleteSession(ctx, userID, id)
}

// Preview resolves input without saving it
func (s *sessionServiceImpl) Preview(ctx context.Context, userID int64, in SessionInput) (*SessionPreview, error) {
	resolved, err := s.resolve(ctx, userID, in)
	if err != nil {
		return nil, err
	}

	session := domain.Session{Start: resolved.start, End: resolved.end, Breaks: resolved.breaks}
	return &SessionPreview{
		Start:    resolved.start,
		End:      resolved.end,
		Minutes:  session.Minutes(),
		Duration: session.Duration(),
	}, nil
}
