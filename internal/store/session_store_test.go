package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStoreRoundTrip(t *testing.T) {
	d := openTestDB(t)
	sessions := NewSessionStore(d)
	ctx := context.Background()
	userID := testUser(t, d)

	created, err := sessions.Create(ctx, "tok-1", userID, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "tok-1", created.Token)

	got, err := sessions.Get(ctx, "tok-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, userID, got.UserID)
}

func TestSessionStoreGetMissing(t *testing.T) {
	d := openTestDB(t)
	sessions := NewSessionStore(d)

	got, err := sessions.Get(context.Background(), "no-such-token")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionStoreExpired(t *testing.T) {
	d := openTestDB(t)
	sessions := NewSessionStore(d)
	ctx := context.Background()
	userID := testUser(t, d)

	_, err := sessions.Create(ctx, "tok-old", userID, time.Now().Add(-time.Minute))
	require.NoError(t, err)

	got, err := sessions.Get(ctx, "tok-old")
	require.NoError(t, err)
	assert.Nil(t, got)

	// The expired row is gone after the lookup.
	var count int
	err = d.QueryRow("SELECT COUNT(*) FROM sessions WHERE token = 'tok-old'").Scan(&count)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSessionStoreDelete(t *testing.T) {
	d := openTestDB(t)
	sessions := NewSessionStore(d)
	ctx := context.Background()
	userID := testUser(t, d)

	_, err := sessions.Create(ctx, "tok-del", userID, time.Now().Add(time.Hour))
	require.NoError(t, err)

	require.NoError(t, sessions.Delete(ctx, "tok-del"))

	got, err := sessions.Get(ctx, "tok-del")
	require.NoError(t, err)
	assert.Nil(t, got)
}
