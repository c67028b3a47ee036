// Package auth provides password hashing and cookie-backed sessions. It is
// glue around the user and session stores, not part of the recommendation
// core.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/bhorvath/carwise/internal/domain"
)

const SessionCookie = "carwise_session"

// userRepository is the subset of store.UserStore that Auth requires.
type userRepository interface {
	Create(ctx context.Context, email, name, passwordHash string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// sessionRepository is the subset of store.SessionStore that Auth requires.
type sessionRepository interface {
	Create(ctx context.Context, token string, userID int64, expiresAt time.Time) (*domain.Session, error)
	Get(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) error
}

type Auth struct {
	users      userRepository
	sessions   sessionRepository
	sessionTTL time.Duration
}

func New(users userRepository, sessions sessionRepository, sessionTTL time.Duration) *Auth {
	return &Auth{users: users, sessions: sessions, sessionTTL: sessionTTL}
}

// Register creates a user with a bcrypt-hashed password and opens a session.
func (a *Auth) Register(ctx context.Context, email, name, password string) (*domain.User, *domain.Session, error) {
	existing, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, fmt.Errorf("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := a.users.Create(ctx, email, name, string(hash))
	if err != nil {
		return nil, nil, err
	}

	session, err := a.openSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// Login verifies the password and opens a session. Wrong email and wrong
// password return the same error so the response does not leak which one it
// was.
func (a *Auth) Login(ctx context.Context, email, password string) (*domain.User, *domain.Session, error) {
	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	session, err := a.openSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

func (a *Auth) Logout(ctx context.Context, token string) error {
	return a.sessions.Delete(ctx, token)
}

// Resolve maps a session token to its user, or nil when the session is
// missing, expired, or orphaned.
func (a *Auth) Resolve(ctx context.Context, token string) (*domain.User, error) {
	session, err := a.sessions.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}
	return a.users.GetByID(ctx, session.UserID)
}

// openSession issues a fresh session token. Each login also sweeps expired
// rows so the sessions table does not grow without bound; a failed sweep does
// not block the login.
func (a *Auth) openSession(ctx context.Context, userID int64) (*domain.Session, error) {
	_ = a.sessions.DeleteExpired(ctx)

	token := uuid.NewString()
	session, err := a.sessions.Create(ctx, token, userID, time.Now().Add(a.sessionTTL))
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// SetCookie writes the session cookie on a response.
func SetCookie(w http.ResponseWriter, session *domain.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie.
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
