package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/bhorvath/carwise/internal/domain"
)

// ErrInvalidCredentials covers both unknown email and wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

type contextKey struct{}

var userKey contextKey

// UserFrom returns the signed-in user stashed by RequireUser, or nil.
func UserFrom(ctx context.Context) *domain.User {
	user, _ := ctx.Value(userKey).(*domain.User)
	return user
}

// RequireUser resolves the session cookie and rejects unauthenticated
// requests. HTMX requests get a 401 so the client can redirect; plain
// navigations get a redirect to the login page.
func (a *Auth) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := a.userFromRequest(r)
		if user == nil {
			if r.Header.Get("HX-Request") == "true" {
				http.Error(w, "session expired", http.StatusUnauthorized)
			} else {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
			}
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	})
}

// OptionalUser stashes the user when a valid session exists but lets the
// request through either way.
func (a *Auth) OptionalUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user := a.userFromRequest(r); user != nil {
			r = r.WithContext(context.WithValue(r.Context(), userKey, user))
		}
		next.ServeHTTP(w, r)
	})
}

func (a *Auth) userFromRequest(r *http.Request) *domain.User {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}
	user, err := a.Resolve(r.Context(), cookie.Value)
	if err != nil {
		return nil
	}
	return user
}
