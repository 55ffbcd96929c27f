// Package middleware provides HTTP middleware.
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"timesheet/internal/domain"
	"timesheet/internal/errors"
)

// contextKey is a typed key for request context values.
type contextKey string

var (
	userContextKey = contextKey("user")
	userHolderKey  = contextKey("user_holder")
)

// userHolder lets outer middleware see the user authenticated further in.
type userHolder struct {
	userID int64
}

func withUserHolder(ctx context.Context, h *userHolder) context.Context {
	return context.WithValue(ctx, userHolderKey, h)
}

// Authenticator resolves a login token to its user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// UnauthorizedWriter writes the response for a request without a valid login.
type UnauthorizedWriter func(w http.ResponseWriter, r *http.Request, err error)

// NewSessionMiddleware reads the login cookie, authenticates it and injects
// the user into the request context. Requests without a valid login are
// answered by unauthorized.
func NewSessionMiddleware(auth Authenticator, cookieName string, unauthorized UnauthorizedWriter) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				unauthorized(w, r, errors.NewUnauthorizedError("login required"))
				return
			}

			user, err := auth.Authenticate(r.Context(), cookie.Value)
			if err != nil {
				if !errors.IsErrorType(err, errors.ErrorTypeUnauthorized) {
					slog.Error("failed to authenticate login session",
						slog.String("error", err.Error()),
					)
				}
				unauthorized(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
		})
	}
}

// UserFromContext returns the authenticated user of the request.
func UserFromContext(ctx context.Context) (*domain.User, error) {
	user, ok := ctx.Value(userContextKey).(*domain.User)
	if !ok || user == nil {
		return nil, fmt.Errorf("user not found in context")
	}
	return user, nil
}

// UserIDFromContext returns the authenticated user id of the request.
func UserIDFromContext(ctx context.Context) (int64, error) {
	user, err := UserFromContext(ctx)
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}

// ContextWithUser injects an authenticated user into ctx.
func ContextWithUser(ctx context.Context, user *domain.User) context.Context {
	if h, ok := ctx.Value(userHolderKey).(*userHolder); ok && user != nil {
		h.userID = user.ID
	}
	return context.WithValue(ctx, userContextKey, user)
}
