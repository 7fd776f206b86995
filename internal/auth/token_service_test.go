package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thefankor/KanbanBoard/internal/config"
)

func testTokenService(accessMinutes int) *TokenService {
	return NewTokenService(&config.Config{
		AccessSecretKey:          "access-test-secret",
		RefreshSecretKey:         "refresh-test-secret",
		AccessTokenExpireMinutes: accessMinutes,
		RefreshTokenExpireDays:   7,
	})
}

func TestTokenService_GeneratePair(t *testing.T) {
	svc := testTokenService(15)

	pair, err := svc.GeneratePair("alice")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	claims, err := svc.VerifyAccessToken(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Username)

	refreshClaims, err := svc.VerifyRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, "alice", refreshClaims.Username)
	require.NotEmpty(t, refreshClaims.ID)
}

func TestTokenService_CrossSecretRejection(t *testing.T) {
	svc := testTokenService(15)

	pair, err := svc.GeneratePair("alice")
	require.NoError(t, err)

	// A refresh token must never verify as an access token
	_, err = svc.VerifyAccessToken(pair.RefreshToken)
	require.ErrorIs(t, err, ErrTokenInvalid)

	// and an access token must never verify as a refresh token
	_, err = svc.VerifyRefreshToken(pair.AccessToken)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenService_ExpiredToken(t *testing.T) {
	svc := testTokenService(-1)

	pair, err := svc.GeneratePair("alice")
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(pair.AccessToken)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenService_ForeignSecret(t *testing.T) {
	svc := testTokenService(15)
	other := NewTokenService(&config.Config{
		AccessSecretKey:          "a-different-secret",
		RefreshSecretKey:         "another-different-secret",
		AccessTokenExpireMinutes: 15,
		RefreshTokenExpireDays:   7,
	})

	pair, err := other.GeneratePair("alice")
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(pair.AccessToken)
	require.ErrorIs(t, err, ErrTokenInvalid)

	_, err = svc.VerifyRefreshToken(pair.RefreshToken)
	require.ErrorIs(t, err, ErrTokenInvalid)
}
