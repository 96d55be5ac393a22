package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/config"
)

func testJWTConfig(secret string, expiry time.Duration) *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "storefront-test"},
		JWT: config.JWTConfig{Secret: secret, AccessTokenExpiry: expiry},
	}
}

func TestJWTRoundTrip(t *testing.T) {
	manager := NewJWTManager(testJWTConfig("0123456789abcdef0123456789abcdef", time.Hour))

	token, err := manager.GenerateAccessToken(42, "ada@example.com", true, "sess-1")
	require.NoError(t, err)

	claims, err := manager.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.CustomerID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "sess-1", claims.SessionID)
	assert.Equal(t, "customer:42", claims.Subject)
}

func TestJWTRejects(t *testing.T) {
	manager := NewJWTManager(testJWTConfig("0123456789abcdef0123456789abcdef", time.Hour))
	other := NewJWTManager(testJWTConfig("ffffffffffffffffffffffffffffffff", time.Hour))
	expired := NewJWTManager(testJWTConfig("0123456789abcdef0123456789abcdef", -time.Minute))

	foreign, err := other.GenerateAccessToken(1, "a@b.co", false, "s")
	require.NoError(t, err)
	stale, err := expired.GenerateAccessToken(1, "a@b.co", false, "s")
	require.NoError(t, err)
	noSession, err := manager.GenerateAccessToken(1, "a@b.co", false, "")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong secret", foreign},
		{"expired", stale},
		{"missing session", noSession},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := manager.ValidateAccessToken(tt.token)
			assert.Error(t, err)
		})
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc", ExtractTokenFromHeader("Bearer abc"))
	assert.Equal(t, "abc", ExtractTokenFromHeader("bearer abc"))
	assert.Equal(t, "", ExtractTokenFromHeader("Basic abc"))
	assert.Equal(t, "", ExtractTokenFromHeader(""))
}
