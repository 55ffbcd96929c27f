package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"timesheet/internal/config"
	"timesheet/internal/domain"
	"timesheet/internal/errors"
	"timesheet/internal/repository/sqlstore"
	"timesheet/internal/validation"
)

// PasswordHasher hashes and checks account passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// BcryptHasher hashes passwords with bcrypt at a fixed cost
type BcryptHasher struct {
	Cost int
}

// Hash returns the bcrypt hash of password
func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", errors.WrapError(err, errors.ErrorTypeInvalidInput, "password could not be hashed")
	}
	return string(hash), nil
}

// Compare returns nil when password matches hash
func (h BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

const badCredentialsMessage = "invalid username or password"

// userServiceImpl implements the UserService interface
type userServiceImpl struct {
	repo          sqlstore.Repository
	hasher        PasswordHasher
	mapper        *domain.Mapper
	userValidator *validation.UserValidator
	config        *config.Config
	now           func() time.Time
}

// NewUserService creates a new UserService instance
func NewUserService(repo sqlstore.Repository, cfg *config.Config, hasher PasswordHasher) UserService {
	return NewUserServiceWithClock(repo, cfg, hasher, time.Now)
}

// NewUserServiceWithClock creates a UserService that expires logins against now
func NewUserServiceWithClock(repo sqlstore.Repository, cfg *config.Config, hasher PasswordHasher, now func() time.Time) UserService {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if hasher == nil {
		hasher = BcryptHasher{Cost: cfg.Security.BcryptCost}
	}
	return &userServiceImpl{
		repo:          repo,
		hasher:        hasher,
		mapper:        domain.NewMapper(),
		userValidator: validation.NewUserValidator(validation.NewValidatorWithConfig(cfg)),
		config:        cfg,
		now:           now,
	}
}

// SignUp creates an account. An empty time zone falls back to the configured default.
func (u *userServiceImpl) SignUp(ctx context.Context, fields validation.SignUpFields) (*domain.User, error) {
	fields.Username = strings.TrimSpace(fields.Username)
	fields.Email = strings.TrimSpace(fields.Email)
	if err := u.userValidator.ValidateSignUp(fields); err != nil {
		return nil, err
	}

	hash, err := u.hasher.Hash(fields.Password)
	if err != nil {
		return nil, err
	}

	timeZone := fields.TimeZone
	if timeZone == "" {
		timeZone = u.config.Application.DefaultTimeZone
	}

	dbUser := u.mapper.User.ToDatabase(domain.User{
		Username:     fields.Username,
		Email:        fields.Email,
		PasswordHash: hash,
		TimeZone:     timeZone,
		ProjectOrder: domain.DefaultProjectOrder,
		CreatedAt:    u.now().UTC(),
	})
	if err := u.repo.CreateUser(ctx, &dbUser); err != nil {
		return nil, err
	}

	user := u.mapper.User.FromDatabase(dbUser)
	return &user, nil
}

// Login checks credentials and opens a login session
func (u *userServiceImpl) Login(ctx context.Context, username, password string) (*domain.LoginSession, error) {
	dbUser, err := u.repo.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return nil, errors.NewUnauthorizedError(badCredentialsMessage)
		}
		return nil, err
	}

	if err := u.hasher.Compare(dbUser.PasswordHash, password); err != nil {
		return nil, errors.NewUnauthorizedError(badCredentialsMessage)
	}

	now := u.now().UTC()
	login := domain.LoginSession{
		Token:     uuid.NewString(),
		UserID:    dbUser.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(u.config.Session.MaxAge),
	}
	dbLogin := u.mapper.LoginSession.ToDatabase(login)
	if err := u.repo.CreateLoginSession(ctx, &dbLogin); err != nil {
		return nil, err
	}
	return &login, nil
}

// Logout ends a login session. Unknown tokens are not an error.
func (u *userServiceImpl) Logout(ctx context.Context, token string) error {
	err := u.repo.DeleteLoginSession(ctx, token)
	if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		return nil
	}
	return err
}

// Authenticate returns the user behind a live login session
func (u *userServiceImpl) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, errors.NewUnauthorizedError("login required")
	}

	dbLogin, err := u.repo.GetLoginSession(ctx, token)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return nil, errors.NewUnauthorizedError("login required")
		}
		return nil, err
	}

	login := u.mapper.LoginSession.FromDatabase(*dbLogin)
	if login.Expired(u.now()) {
		_ = u.repo.DeleteLoginSession(ctx, token)
		return nil, errors.NewUnauthorizedError("login expired")
	}

	return u.GetUser(ctx, login.UserID)
}

// GetUser retrieves a user by id
func (u *userServiceImpl) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	dbUser, err := u.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	user := u.mapper.User.FromDatabase(*dbUser)
	return &user, nil
}

// GetUserByUsername retrieves a user by username
func (u *userServiceImpl) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	dbUser, err := u.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	user := u.mapper.User.FromDatabase(*dbUser)
	return &user, nil
}

// UpdateSettings changes the user's time zone and project order.
// Existing sessions keep the zone they were recorded in.
func (u *userServiceImpl) UpdateSettings(ctx context.Context, userID int64, timeZone, projectOrder string) (*domain.User, error) {
	if err := u.userValidator.ValidateSettings(timeZone, projectOrder); err != nil {
		return nil, err
	}

	user, err := u.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.TimeZone = timeZone
	user.ProjectOrder = domain.ProjectOrder(projectOrder)
	dbUser := u.mapper.User.ToDatabase(*user)
	if err := u.repo.UpdateUserSettings(ctx, &dbUser); err != nil {
		return nil, err
	}
	return user, nil
}

// PurgeExpiredLogins removes expired login sessions
func (u *userServiceImpl) PurgeExpiredLogins(ctx context.Context) (int64, error) {
	return u.repo.DeleteExpiredLoginSessions(ctx, u.now())
}
