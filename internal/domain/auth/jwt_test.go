package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printledger/internal/core/id"
	"printledger/internal/core/session"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService(DefaultTokenConfig("test-secret"))

	user := NewUser("manager@printledger.local", "hash", session.RoleManager)
	user.BranchID = id.New()

	token, expiresAt, err := svc.Generate(user)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, time.Minute)

	sess, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, sess.UserID)
	assert.Equal(t, user.Email, sess.Email)
	assert.Equal(t, session.RoleManager, sess.Role)
	assert.Equal(t, user.BranchID, sess.BranchID)
}

func TestTokenAdminHasNoBranch(t *testing.T) {
	svc := NewTokenService(DefaultTokenConfig("test-secret"))

	token, _, err := svc.Generate(NewUser("admin@printledger.local", "hash", session.RoleAdmin))
	require.NoError(t, err)

	sess, err := svc.Validate(token)
	require.NoError(t, err)
	assert.True(t, sess.IsAdmin())
	assert.True(t, id.IsNil(sess.BranchID))
}

func TestTokenWrongSecretRejected(t *testing.T) {
	signer := NewTokenService(DefaultTokenConfig("secret-a"))
	verifier := NewTokenService(DefaultTokenConfig("secret-b"))

	token, _, err := signer.Generate(NewUser("user@printledger.local", "hash", session.RoleManager))
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.Error(t, err)
}

func TestTokenExpiredRejected(t *testing.T) {
	cfg := DefaultTokenConfig("test-secret")
	cfg.AccessTokenTTL = -time.Minute
	svc := NewTokenService(cfg)

	token, _, err := svc.Generate(NewUser("user@printledger.local", "hash", session.RoleManager))
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.Error(t, err)
}

func TestTokenGarbageRejected(t *testing.T) {
	svc := NewTokenService(DefaultTokenConfig("test-secret"))
	_, err := svc.Validate("not-a-token")
	assert.Error(t, err)
}
