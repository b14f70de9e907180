package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoginToken(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	us := NewUserService()

	user, err := us.Register(ctx, "alice", "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", user.Password)

	// Повторная регистрация с тем же именем
	_, err = us.Register(ctx, "alice", "other@example.com", "x")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = us.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrForbidden)

	token, err := us.Login(ctx, "alice", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	checked, err := us.CheckToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, checked.ID)

	require.NoError(t, us.Logout(ctx, token))
	_, err = us.CheckToken(ctx, token)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := hashPassword("password123")
	require.NoError(t, err)
	assert.True(t, verifyPassword(hash, "password123"))
	assert.False(t, verifyPassword(hash, "password124"))
	assert.False(t, verifyPassword("garbage", "password123"))
}
