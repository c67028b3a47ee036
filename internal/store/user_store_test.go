package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserStoreCreate(t *testing.T) {
	d := openTestDB(t)
	users := NewUserStore(d)
	ctx := context.Background()

	user, err := users.Create(ctx, "anna@example.com", "Anna", "hash123")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "anna@example.com", user.Email)
	assert.Equal(t, "Anna", user.Name)
	assert.Equal(t, "hash123", user.PasswordHash)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestUserStoreCreateDuplicateEmail(t *testing.T) {
	d := openTestDB(t)
	users := NewUserStore(d)
	ctx := context.Background()

	_, err := users.Create(ctx, "anna@example.com", "Anna", "h")
	require.NoError(t, err)

	_, err = users.Create(ctx, "Anna@Example.com", "Other Anna", "h")
	assert.Error(t, err)
}

func TestUserStoreGetByEmail(t *testing.T) {
	d := openTestDB(t)
	users := NewUserStore(d)
	ctx := context.Background()

	created, err := users.Create(ctx, "bela@example.com", "Béla", "h")
	require.NoError(t, err)

	found, err := users.GetByEmail(ctx, "bela@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)

	missing, err := users.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
