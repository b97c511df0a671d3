package common

import (
	"context"
	"net/http"

	"github.com/Stuart1162/fizzyjuice/internal/public/domain"
)

type contextKey string

const (
	authUserContextKey contextKey = "authUser"
	sessionContextKey  contextKey = "session"
)

// AuthenticatedUser represents the JWT-derived principal.
type AuthenticatedUser struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// ContextWithUser stores the authenticated user into context.
func ContextWithUser(ctx context.Context, user AuthenticatedUser) context.Context {
	return context.WithValue(ctx, authUserContextKey, user)
}

// UserFromContext extracts the authenticated user from context.
func UserFromContext(ctx context.Context) (AuthenticatedUser, bool) {
	user, ok := ctx.Value(authUserContextKey).(AuthenticatedUser)
	return user, ok
}

// ContextWithSession stores the per-request session resolved by the auth middleware.
func ContextWithSession(ctx context.Context, session domain.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, session)
}

// SessionFromContext は未ログインなら匿名セッションを返す。
func SessionFromContext(ctx context.Context) domain.Session {
	if session, ok := ctx.Value(sessionContextKey).(domain.Session); ok {
		return session
	}
	return domain.AnonymousSession()
}

// RequireSession rejects anonymous requests with 401 {error, signIn:true} before any handler runs.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !SessionFromContext(r.Context()).Authenticated() {
			WriteError(nil, w, domain.ErrUnauthenticated, "sign in to continue")
			return
		}
		next.ServeHTTP(w, r)
	})
}
