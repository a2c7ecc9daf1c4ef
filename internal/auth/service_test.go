package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtse/marketing-engine/internal/store"
)

func TestPasswordHashRoundtrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)
	assert.True(t, CheckPassword(hash, "s3cret"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

func TestRegisterLoginVerify(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemoryStore())

	require.NoError(t, svc.Register(ctx, "alice", "pw", "user", "free"))
	assert.ErrorIs(t, svc.Register(ctx, "alice", "other", "user", "free"), store.ErrUserExists)

	_, err := svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrBadCredentials)
	_, err = svc.Login(ctx, "ghost", "pw")
	assert.ErrorIs(t, err, ErrBadCredentials)

	token, err := svc.Login(ctx, "alice", "pw")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	u, err := svc.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Name)

	svc.Logout(token)
	_, err = svc.Verify(ctx, token)
	assert.ErrorIs(t, err, ErrBadCredentials)
}
