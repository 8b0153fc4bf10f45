package jwt_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slotbook/config"
	"slotbook/infras/jwt"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "slotbook"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	return cfg
}

func TestGenerateAndValidate(t *testing.T) {
	ctx := context.Background()
	service := jwt.New(testConfig())

	pair, err := service.GenerateTokenPair(ctx, "user-1", "ana@example.com", "admin")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(900), pair.ExpiresIn)

	claims, err := service.ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.NotEmpty(t, claims.ID)

	_, err = service.ValidateToken(ctx, pair.AccessToken, jwt.RefreshToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	_, err = service.ValidateToken(ctx, "garbage", jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestValidateToken_Expired(t *testing.T) {
	ctx := context.Background()
	issued := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	now := issued

	service := jwt.NewWithClock(testConfig(), func() time.Time { return now })

	pair, err := service.GenerateTokenPair(ctx, "user-1", "ana@example.com", "user")
	require.NoError(t, err)

	now = issued.Add(16 * time.Minute)

	_, err = service.ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrExpiredToken)

	refreshed, err := service.RefreshTokens(ctx, pair.RefreshToken)
	require.NoError(t, err)

	claims, err := service.ValidateToken(ctx, refreshed.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user", claims.Role)
}

func TestRefreshTokens_RejectsAccessToken(t *testing.T) {
	ctx := context.Background()
	service := jwt.New(testConfig())

	pair, err := service.GenerateTokenPair(ctx, "user-1", "ana@example.com", "user")
	require.NoError(t, err)

	_, err = service.RefreshTokens(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := jwt.ExtractTokenFromHeader("Bearer abc.def")
	assert.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	for _, header := range []string{"", "Basic abc", "Bearer "} {
		_, err := jwt.ExtractTokenFromHeader(header)
		assert.Error(t, err, header)
	}
}
