// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptacademy/platform-api/internal/config"
	"github.com/promptacademy/platform-api/internal/core"
)

func newTestJWTManager(t *testing.T, expire time.Duration) *JWTManager {
	t.Helper()

	dir := t.TempDir()
	privatePath := filepath.Join(dir, "private.pem")
	publicPath := filepath.Join(dir, "public.pem")

	require.NoError(t, GenerateKeyPair(privatePath, publicPath))

	mgr, err := NewJWTManager(config.JWTConfig{
		PrivateKeyPath:    privatePath,
		PublicKeyPath:     publicPath,
		AccessTokenExpire: expire,
		Issuer:            "platform-api-test",
		Audience:          "platform-api-test-clients",
	})
	require.NoError(t, err)
	return mgr
}

func TestCreateAndVerifyAccessToken(t *testing.T) {
	mgr := newTestJWTManager(t, time.Hour)

	token, err := mgr.CreateAccessToken(AccessTokenClaims{
		UserID: "user-123",
		Role:   "user",
		Tier:   "intermediate",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := mgr.VerifyAccessToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "intermediate", claims.Tier)
	assert.NotEmpty(t, claims.JTI)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt,
		time.Minute)
}

func TestVerifyExpiredToken(t *testing.T) {
	mgr := newTestJWTManager(t, -time.Minute)

	token, err := mgr.CreateAccessToken(AccessTokenClaims{
		UserID: "user-123",
		Role:   "user",
		Tier:   "basic",
	})
	require.NoError(t, err)

	_, err = mgr.VerifyAccessToken(context.Background(), token)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrTokenExpired)
}

func TestVerifyTamperedToken(t *testing.T) {
	mgr := newTestJWTManager(t, time.Hour)

	token, err := mgr.CreateAccessToken(AccessTokenClaims{
		UserID: "user-123",
		Role:   "user",
		Tier:   "basic",
	})
	require.NoError(t, err)

	tampered := token[:len(token)-4] + "AAAA"

	_, err = mgr.VerifyAccessToken(context.Background(), tampered)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestVerifyTokenSignedByOtherKey(t *testing.T) {
	mgrA := newTestJWTManager(t, time.Hour)
	mgrB := newTestJWTManager(t, time.Hour)

	token, err := mgrA.CreateAccessToken(AccessTokenClaims{
		UserID: "user-123",
		Role:   "user",
		Tier:   "basic",
	})
	require.NoError(t, err)

	_, err = mgrB.VerifyAccessToken(context.Background(), token)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}
