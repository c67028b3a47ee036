package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhorvath/carwise/internal/domain"
)

// stubUsers is a minimal in-memory userRepository for tests.
type stubUsers struct {
	byID    map[int64]*domain.User
	byEmail map[string]*domain.User
	nextID  int64
}

func newStubUsers() *stubUsers {
	return &stubUsers{byID: map[int64]*domain.User{}, byEmail: map[string]*domain.User{}}
}

func (s *stubUsers) Create(_ context.Context, email, name, passwordHash string) (*domain.User, error) {
	s.nextID++
	u := &domain.User{ID: s.nextID, Email: email, Name: name, PasswordHash: passwordHash, CreatedAt: time.Now()}
	s.byID[u.ID] = u
	s.byEmail[email] = u
	return u, nil
}

func (s *stubUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	return s.byID[id], nil
}

func (s *stubUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return s.byEmail[email], nil
}

// stubSessions is a minimal in-memory sessionRepository for tests.
type stubSessions struct {
	byToken map[string]*domain.Session
}

func newStubSessions() *stubSessions {
	return &stubSessions{byToken: map[string]*domain.Session{}}
}

func (s *stubSessions) Create(_ context.Context, token string, userID int64, expiresAt time.Time) (*domain.Session, error) {
	sess := &domain.Session{Token: token, UserID: userID, ExpiresAt: expiresAt}
	s.byToken[token] = sess
	return sess, nil
}

func (s *stubSessions) Get(_ context.Context, token string) (*domain.Session, error) {
	sess := s.byToken[token]
	if sess != nil && time.Now().After(sess.ExpiresAt) {
		delete(s.byToken, token)
		return nil, nil
	}
	return sess, nil
}

func (s *stubSessions) Delete(_ context.Context, token string) error {
	delete(s.byToken, token)
	return nil
}

func (s *stubSessions) DeleteExpired(_ context.Context) error {
	for token, sess := range s.byToken {
		if time.Now().After(sess.ExpiresAt) {
			delete(s.byToken, token)
		}
	}
	return nil
}

func newTestAuth() *Auth {
	return New(newStubUsers(), newStubSessions(), time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	a := newTestAuth()
	ctx := context.Background()

	user, session, err := a.Register(ctx, "anna@example.com", "Anna", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.NotEqual(t, "secret123", user.PasswordHash)

	loggedIn, session2, err := a.Login(ctx, "anna@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEqual(t, session.Token, session2.Token)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	a := newTestAuth()
	ctx := context.Background()

	_, _, err := a.Register(ctx, "anna@example.com", "Anna", "secret123")
	require.NoError(t, err)

	_, _, err = a.Register(ctx, "anna@example.com", "Imposter", "other")
	assert.Error(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	a := newTestAuth()
	ctx := context.Background()

	_, _, err := a.Register(ctx, "anna@example.com", "Anna", "secret123")
	require.NoError(t, err)

	_, _, err = a.Login(ctx, "anna@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown email yields the same error as a wrong password.
	_, _, err = a.Login(ctx, "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestResolve(t *testing.T) {
	a := newTestAuth()
	ctx := context.Background()

	user, session, err := a.Register(ctx, "anna@example.com", "Anna", "secret123")
	require.NoError(t, err)

	resolved, err := a.Resolve(ctx, session.Token)
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, user.ID, resolved.ID)

	missing, err := a.Resolve(ctx, "bogus")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLoginSweepsExpiredSessions(t *testing.T) {
	users := newStubUsers()
	sessions := newStubSessions()
	a := New(users, sessions, time.Hour)
	ctx := context.Background()

	_, _, err := a.Register(ctx, "anna@example.com", "Anna", "secret123")
	require.NoError(t, err)

	sessions.byToken["stale"] = &domain.Session{
		Token:     "stale",
		UserID:    1,
		ExpiresAt: time.Now().Add(-time.Minute),
	}

	_, live, err := a.Login(ctx, "anna@example.com", "secret123")
	require.NoError(t, err)

	assert.NotContains(t, sessions.byToken, "stale")
	assert.Contains(t, sessions.byToken, live.Token)
}

func TestLogout(t *testing.T) {
	a := newTestAuth()
	ctx := context.Background()

	_, session, err := a.Register(ctx, "anna@example.com", "Anna", "secret123")
	require.NoError(t, err)

	require.NoError(t, a.Logout(ctx, session.Token))

	resolved, err := a.Resolve(ctx, session.Token)
	require.NoError(t, err)
	assert.Nil(t, resolved)
}
